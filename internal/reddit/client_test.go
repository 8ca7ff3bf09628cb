package reddit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ingStudiosOfficial/supereddit/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleListing = `{
	"data": {
		"children": [
			{"data": {
				"title": "First post",
				"selftext": "hello world",
				"author": "someuser",
				"created_utc": 1700000000,
				"ups": 47,
				"num_comments": 3,
				"permalink": "/r/golang/comments/abc/first_post/"
			}},
			{"data": {
				"title": "A picture",
				"selftext": "",
				"author": "photographer",
				"created_utc": 1700000100,
				"ups": 12,
				"post_hint": "image",
				"url": "https://i.redd.it/pic.jpg?width=640&amp;crop=smart"
			}}
		]
	}
}`

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := NewClient("supereddit-test/1.0")
	client.BaseURL = server.URL
	client.HTTPClient = server.Client()
	return client, server
}

func TestFetchPosts(t *testing.T) {
	var gotPath, gotAgent string
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path + "?" + r.URL.RawQuery
		gotAgent = r.Header.Get("User-Agent")
		w.Write([]byte(sampleListing))
	})
	defer server.Close()

	posts, err := client.FetchPosts(context.Background(), "golang", 30)
	require.NoError(t, err)

	assert.Equal(t, "/r/golang.json?limit=30", gotPath)
	assert.Equal(t, "supereddit-test/1.0", gotAgent)

	require.Len(t, posts, 2)
	assert.Equal(t, "First post", posts[0].Title)
	assert.Equal(t, "someuser", posts[0].Author)
	assert.Equal(t, 47, posts[0].Ups)
	assert.Equal(t, int64(1700000000), posts[0].CreatedAt().Unix())
}

func TestFetchPostsNotFound(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	defer server.Close()

	_, err := client.FetchPosts(context.Background(), "does_not_exist", 30)
	require.Error(t, err)
	assert.True(t, utils.IsErrorCode(err, utils.ErrUpstreamNotFound))
}

func TestFetchPostsUpstreamFailure(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	defer server.Close()

	_, err := client.FetchPosts(context.Background(), "golang", 30)
	require.Error(t, err)
	assert.True(t, utils.IsErrorCode(err, utils.ErrUpstream))
}

func TestImageURLFromHint(t *testing.T) {
	post := PostData{
		PostHint: "image",
		URL:      "https://i.redd.it/pic.jpg?width=640&amp;crop=smart",
	}
	assert.Equal(t, "https://i.redd.it/pic.jpg?width=640&crop=smart", post.ImageURL())
}

func TestImageURLFromPreview(t *testing.T) {
	post := PostData{
		URL: "https://example.com/article",
		Preview: &Preview{Images: []PreviewImage{
			{Source: ImageSource{URL: "https://preview.redd.it/x.png?auto=webp&amp;s=abc"}},
		}},
	}
	assert.Equal(t, "https://preview.redd.it/x.png?auto=webp&s=abc", post.ImageURL())
}

func TestImageURLAbsent(t *testing.T) {
	post := PostData{Title: "text only", Selftext: "body"}
	assert.Empty(t, post.ImageURL())
}
