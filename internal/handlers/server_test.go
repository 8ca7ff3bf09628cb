package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ingStudiosOfficial/supereddit/internal/auth"
	"github.com/ingStudiosOfficial/supereddit/internal/database/databasetest"
	"github.com/ingStudiosOfficial/supereddit/internal/models"
	"github.com/ingStudiosOfficial/supereddit/internal/reddit"
	"github.com/ingStudiosOfficial/supereddit/internal/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	server   *Server
	store    *databasetest.MemStore
	sessions *auth.Sessions
	router   chi.Router
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := databasetest.NewMemStore()
	sessions := auth.NewSessions(store, "test-secret", false)
	discord := auth.NewDiscordProvider("client-id", "client-secret", "http://localhost:3000/auth/discord/callback")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	server := NewServer(
		store,
		sessions,
		discord,
		reddit.NewClient("supereddit-test/1.0"),
		utils.NewMetricsCollector(),
		logger,
		"http://localhost:5173",
	)

	return &testEnv{
		server:   server,
		store:    store,
		sessions: sessions,
		router:   server.Routes(nil),
	}
}

// login creates a user and a live session, returning the user and the
// session cookie to attach to requests.
func (e *testEnv) login(t *testing.T, username string) (*models.User, *http.Cookie) {
	t.Helper()

	now := time.Now()
	user := &models.User{
		ID:         uuid.New(),
		DiscordID:  "discord-" + username,
		Username:   username,
		Avatar:     "default",
		LastLogin:  now,
		LoginCount: 1,
		CreatedAt:  now,
	}
	require.NoError(t, e.store.SaveUser(context.Background(), user))

	rec := httptest.NewRecorder()
	require.NoError(t, e.sessions.Issue(context.Background(), rec, user.ID))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	return user, cookies[0]
}

func (e *testEnv) do(t *testing.T, method, target string, body interface{}, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(out))
}

// seedSubreddit creates a subreddit directly in the store.
func (e *testEnv) seedSubreddit(t *testing.T, name string, creator *models.User) *models.Subreddit {
	t.Helper()

	now := time.Now()
	sub := &models.Subreddit{
		ID:          uuid.New(),
		Name:        name,
		Description: "a test community",
		CreatorID:   creator.ID,
		MemberIDs:   []uuid.UUID{creator.ID},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, e.store.CreateSubreddit(context.Background(), sub))
	return sub
}

// seedPost creates a post directly in the store.
func (e *testEnv) seedPost(t *testing.T, title string, author *models.User, sub *models.Subreddit) *models.Post {
	t.Helper()

	now := time.Now()
	post := &models.Post{
		ID:          uuid.New(),
		Title:       title,
		Content:     "post body",
		AuthorID:    author.ID,
		SubredditID: sub.ID,
		Voters:      []models.VoterEntry{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, e.store.CreatePost(context.Background(), post))
	return post
}

func TestHealthEndpoint(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/health", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	decodeBody(t, rec, &body)
	assert.Equal(t, "ok", body["status"])
	assert.Contains(t, body, "requests")
	assert.Contains(t, body, "uptime")
}

func TestGatedRoutesRejectAnonymous(t *testing.T) {
	env := newTestEnv(t)

	gated := []struct {
		method string
		target string
	}{
		{http.MethodPost, "/subreddits/"},
		{http.MethodPost, "/subreddits/golang/join"},
		{http.MethodPost, "/subreddits/golang/leave"},
		{http.MethodPost, "/posts/"},
		{http.MethodPost, "/posts/" + uuid.NewString() + "/vote"},
		{http.MethodPost, "/posts/" + uuid.NewString() + "/comments"},
		{http.MethodPost, "/comments/" + uuid.NewString() + "/vote"},
		{http.MethodPost, "/reddit/import"},
	}

	for _, route := range gated {
		rec := env.do(t, route.method, route.target, map[string]string{}, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", route.method, route.target)
	}

	// Nothing was created as a side effect.
	subs, err := env.store.ListSubreddits(context.Background())
	require.NoError(t, err)
	assert.Empty(t, subs)
}

func TestForgedSessionCookieIsAnonymous(t *testing.T) {
	env := newTestEnv(t)
	forged := &http.Cookie{Name: auth.SessionCookie, Value: uuid.NewString() + ".forgedsignature"}

	rec := env.do(t, http.MethodGet, "/auth/user", nil, forged)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	decodeBody(t, rec, &body)
	assert.Nil(t, body["user"])

	rec = env.do(t, http.MethodPost, "/subreddits/", map[string]string{"name": "golang", "description": "x"}, forged)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
