package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ingStudiosOfficial/supereddit/internal/database"
	"github.com/ingStudiosOfficial/supereddit/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const importListing = `{
	"data": {
		"children": [
			{"data": {
				"title": "A text post",
				"selftext": "original body",
				"author": "writer",
				"created_utc": 1700000000,
				"ups": 47,
				"permalink": "/r/golang/comments/aaa/a_text_post/"
			}},
			{"data": {
				"title": "A link post",
				"selftext": "",
				"author": "linker",
				"created_utc": 1700000100,
				"ups": 9,
				"permalink": "/r/golang/comments/bbb/a_link_post/"
			}},
			{"data": {
				"title": "",
				"selftext": "",
				"author": "ghost",
				"created_utc": 1700000200,
				"ups": 100
			}}
		]
	}
}`

// pointRedditAt redirects the import client at a local fake listing server.
func pointRedditAt(t *testing.T, env *testEnv, handler http.HandlerFunc) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	env.server.Reddit.BaseURL = server.URL
	env.server.Reddit.HTTPClient = server.Client()
}

func TestRedditImport(t *testing.T) {
	env := newTestEnv(t)
	user, cookie := env.login(t, "alice")
	env.seedSubreddit(t, "golang", user)

	pointRedditAt(t, env, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/r/golang.json", r.URL.Path)
		fmt.Fprint(w, importListing)
	})

	rec := env.do(t, http.MethodPost, "/reddit/import", RedditImportRequest{
		SourceCommunity: "golang",
		TargetSubreddit: "golang",
	}, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Message string        `json:"message"`
		Count   int           `json:"count"`
		Posts   []models.Post `json:"posts"`
	}
	decodeBody(t, rec, &body)

	// The title-less, body-less entry is skipped.
	assert.Equal(t, 2, body.Count)
	assert.Equal(t, "Successfully imported 2 posts", body.Message)
	require.Len(t, body.Posts, 2)

	textPost := body.Posts[0]
	assert.Equal(t, "A text post", textPost.Title)
	assert.Equal(t, "original body", textPost.Content)
	// 47 ups scale down to 4 local votes with no voter entries.
	assert.Equal(t, 4, textPost.Votes)
	assert.Empty(t, textPost.Voters)
	assert.Equal(t, int64(1700000000), textPost.CreatedAt.Unix())

	// Link posts get an attribution body pointing at the original.
	linkPost := body.Posts[1]
	assert.Equal(t, 0, linkPost.Votes)
	assert.Contains(t, linkPost.Content, "Imported from Reddit")
	assert.Contains(t, linkPost.Content, "u/linker")
	assert.Contains(t, linkPost.Content, "https://reddit.com/r/golang/comments/bbb/a_link_post/")

	// Every imported post is attributed to the synthetic importer user.
	system, err := env.store.GetUserByDiscordID(context.Background(), models.SystemImporterDiscordID)
	require.NoError(t, err)
	for _, post := range body.Posts {
		require.NotNil(t, post.Author)
		assert.Equal(t, system.ID, post.Author.ID)
		assert.Equal(t, "RedditImporter", post.Author.Username)
	}

	stored, err := env.store.ListPosts(context.Background(), uuid.Nil, database.SortNew)
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestRedditImportTargetMissing(t *testing.T) {
	env := newTestEnv(t)
	_, cookie := env.login(t, "alice")

	rec := env.do(t, http.MethodPost, "/reddit/import", RedditImportRequest{
		SourceCommunity: "golang",
		TargetSubreddit: "nosuchplace",
	}, cookie)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRedditImportSourceMissing(t *testing.T) {
	env := newTestEnv(t)
	user, cookie := env.login(t, "alice")
	env.seedSubreddit(t, "golang", user)

	pointRedditAt(t, env, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	rec := env.do(t, http.MethodPost, "/reddit/import", RedditImportRequest{
		SourceCommunity: "does_not_exist",
		TargetSubreddit: "golang",
	}, cookie)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRedditImportUpstreamFailure(t *testing.T) {
	env := newTestEnv(t)
	user, cookie := env.login(t, "alice")
	env.seedSubreddit(t, "golang", user)

	pointRedditAt(t, env, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	rec := env.do(t, http.MethodPost, "/reddit/import", RedditImportRequest{
		SourceCommunity: "golang",
		TargetSubreddit: "golang",
	}, cookie)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRedditImportEmptyListing(t *testing.T) {
	env := newTestEnv(t)
	user, cookie := env.login(t, "alice")
	env.seedSubreddit(t, "golang", user)

	pointRedditAt(t, env, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data": {"children": []}}`)
	})

	rec := env.do(t, http.MethodPost, "/reddit/import", RedditImportRequest{
		SourceCommunity: "golang",
		TargetSubreddit: "golang",
	}, cookie)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRedditImportValidation(t *testing.T) {
	env := newTestEnv(t)
	_, cookie := env.login(t, "alice")

	rec := env.do(t, http.MethodPost, "/reddit/import", RedditImportRequest{TargetSubreddit: "golang"}, cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/reddit/import", RedditImportRequest{SourceCommunity: "golang"}, cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
