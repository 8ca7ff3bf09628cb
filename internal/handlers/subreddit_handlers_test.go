package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/ingStudiosOfficial/supereddit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSubreddit(t *testing.T) {
	env := newTestEnv(t)
	user, cookie := env.login(t, "alice")

	rec := env.do(t, http.MethodPost, "/subreddits/", CreateSubredditRequest{
		Name:        "GoLang",
		Description: "all things Go",
	}, cookie)
	require.Equal(t, http.StatusCreated, rec.Code)

	var body struct {
		Subreddit models.Subreddit `json:"subreddit"`
	}
	decodeBody(t, rec, &body)

	// Name is lowercased and the creator is the first member.
	assert.Equal(t, "golang", body.Subreddit.Name)
	require.Len(t, body.Subreddit.MemberIDs, 1)
	assert.Equal(t, user.ID, body.Subreddit.MemberIDs[0])
	require.NotNil(t, body.Subreddit.Creator)
	assert.Equal(t, "alice", body.Subreddit.Creator.Username)
}

func TestCreateSubredditValidation(t *testing.T) {
	env := newTestEnv(t)
	_, cookie := env.login(t, "alice")

	cases := []CreateSubredditRequest{
		{Name: "", Description: "missing name"},
		{Name: "golang", Description: ""},
		{Name: "ab", Description: "too short"},
		{Name: "has spaces", Description: "bad characters"},
		{Name: "this_name_is_far_too_long", Description: "too long"},
	}

	for _, req := range cases {
		rec := env.do(t, http.MethodPost, "/subreddits/", req, cookie)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "name=%q", req.Name)
	}
}

func TestCreateSubredditDuplicateName(t *testing.T) {
	env := newTestEnv(t)
	_, cookie := env.login(t, "alice")

	first := env.do(t, http.MethodPost, "/subreddits/", CreateSubredditRequest{Name: "golang", Description: "x"}, cookie)
	require.Equal(t, http.StatusCreated, first.Code)

	// Same name in a different case still collides.
	second := env.do(t, http.MethodPost, "/subreddits/", CreateSubredditRequest{Name: "GOLANG", Description: "y"}, cookie)
	assert.Equal(t, http.StatusConflict, second.Code)
}

func TestGetSubreddit(t *testing.T) {
	env := newTestEnv(t)
	user, _ := env.login(t, "alice")
	env.seedSubreddit(t, "golang", user)

	// Lookup is case-insensitive because names are stored lowercase.
	rec := env.do(t, http.MethodGet, "/subreddits/GoLang", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Subreddit models.Subreddit `json:"subreddit"`
	}
	decodeBody(t, rec, &body)
	assert.Equal(t, "golang", body.Subreddit.Name)
	require.Len(t, body.Subreddit.Members, 1)
	assert.Equal(t, "alice", body.Subreddit.Members[0].Username)
}

func TestGetSubredditNotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/subreddits/nosuchplace", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestJoinAndLeaveSubreddit(t *testing.T) {
	env := newTestEnv(t)
	creator, _ := env.login(t, "alice")
	env.seedSubreddit(t, "golang", creator)

	joiner, cookie := env.login(t, "bob")

	rec := env.do(t, http.MethodPost, "/subreddits/golang/join", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	stored, err := env.store.GetSubredditByName(context.Background(), "golang")
	require.NoError(t, err)
	assert.True(t, stored.HasMember(joiner.ID))
	assert.True(t, stored.HasMember(creator.ID))

	// Joining again is a conflict, not a second membership.
	rec = env.do(t, http.MethodPost, "/subreddits/golang/join", nil, cookie)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = env.do(t, http.MethodPost, "/subreddits/golang/leave", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	stored, err = env.store.GetSubredditByName(context.Background(), "golang")
	require.NoError(t, err)
	assert.False(t, stored.HasMember(joiner.ID))

	// Leaving when not a member still succeeds.
	rec = env.do(t, http.MethodPost, "/subreddits/golang/leave", nil, cookie)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListSubreddits(t *testing.T) {
	env := newTestEnv(t)
	user, _ := env.login(t, "alice")
	env.seedSubreddit(t, "golang", user)
	env.seedSubreddit(t, "rust", user)

	rec := env.do(t, http.MethodGet, "/subreddits/", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Subreddits []models.Subreddit `json:"subreddits"`
	}
	decodeBody(t, rec, &body)
	assert.Len(t, body.Subreddits, 2)
}
