package handlers

import (
	"net/http"
	"testing"

	"github.com/ingStudiosOfficial/supereddit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserProfile(t *testing.T) {
	env := newTestEnv(t)
	user, cookie := env.login(t, "alice")
	sub := env.seedSubreddit(t, "golang", user)
	post := env.seedPost(t, "my post", user, sub)

	rec := env.do(t, http.MethodPost, "/posts/"+post.ID.String()+"/comments",
		CreateCommentRequest{Content: "my comment"}, cookie)
	require.Equal(t, http.StatusCreated, rec.Code)

	// Username lookup is case-insensitive.
	rec = env.do(t, http.MethodGet, "/users/ALICE", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		User     UserProfile      `json:"user"`
		Posts    []models.Post    `json:"posts"`
		Comments []models.Comment `json:"comments"`
	}
	decodeBody(t, rec, &body)

	assert.Equal(t, user.ID, body.User.ID)
	assert.Equal(t, "alice", body.User.Username)

	require.Len(t, body.Posts, 1)
	assert.Equal(t, "my post", body.Posts[0].Title)

	require.Len(t, body.Comments, 1)
	assert.Equal(t, "my comment", body.Comments[0].Content)
	require.NotNil(t, body.Comments[0].Post)
	assert.Equal(t, "my post", body.Comments[0].Post.Title)
}

func TestUserProfileDoesNotExposeDiscordID(t *testing.T) {
	env := newTestEnv(t)
	env.login(t, "alice")

	rec := env.do(t, http.MethodGet, "/users/alice", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "discordId")
}

func TestUserProfileNotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/users/nobody", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
