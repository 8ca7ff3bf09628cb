// Package reddit fetches public post listings from the Reddit JSON API.
package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ingStudiosOfficial/supereddit/internal/utils"
)

// Listing mirrors the shape of https://www.reddit.com/r/<name>.json. Only
// the fields the importer reads are declared.
type Listing struct {
	Data struct {
		Children []Child `json:"children"`
	} `json:"data"`
}

type Child struct {
	Data PostData `json:"data"`
}

// PostData is one post in a listing.
type PostData struct {
	Title       string   `json:"title"`
	Selftext    string   `json:"selftext"`
	Author      string   `json:"author"`
	CreatedUTC  float64  `json:"created_utc"`
	Ups         int      `json:"ups"`
	NumComments int      `json:"num_comments"`
	Permalink   string   `json:"permalink"`
	URL         string   `json:"url"`
	PostHint    string   `json:"post_hint"`
	Preview     *Preview `json:"preview"`
}

type Preview struct {
	Images []PreviewImage `json:"images"`
}

type PreviewImage struct {
	Source ImageSource `json:"source"`
}

type ImageSource struct {
	URL string `json:"url"`
}

// CreatedAt converts the epoch-seconds timestamp to time.Time.
func (p *PostData) CreatedAt() time.Time {
	return time.Unix(int64(p.CreatedUTC), 0)
}

// ImageURL derives an image reference from the post: a direct image link
// when Reddit hints at one, otherwise the first preview image. Reddit
// HTML-escapes ampersands in media URLs, so they are unescaped here.
func (p *PostData) ImageURL() string {
	if p.PostHint == "image" && p.URL != "" {
		return strings.ReplaceAll(p.URL, "&amp;", "&")
	}
	if p.Preview != nil && len(p.Preview.Images) > 0 && p.Preview.Images[0].Source.URL != "" {
		return strings.ReplaceAll(p.Preview.Images[0].Source.URL, "&amp;", "&")
	}
	return ""
}

// Client is a minimal Reddit listing client. Reddit rejects requests without
// a distinctive User-Agent, so one is always sent.
type Client struct {
	BaseURL    string
	UserAgent  string
	HTTPClient *http.Client
}

func NewClient(userAgent string) *Client {
	return &Client{
		BaseURL:    "https://www.reddit.com",
		UserAgent:  userAgent,
		HTTPClient: http.DefaultClient,
	}
}

// FetchPosts retrieves up to limit recent posts from r/<subreddit>. An
// upstream 404 (unknown subreddit) and other upstream failures are
// distinguished so handlers can map them to different statuses.
func (c *Client) FetchPosts(ctx context.Context, subreddit string, limit int) ([]PostData, error) {
	url := fmt.Sprintf("%s/r/%s.json?limit=%d", c.BaseURL, subreddit, limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, utils.NewAppError(utils.ErrUpstream, "failed to build Reddit request", err)
	}
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, utils.NewAppError(utils.ErrUpstream, "Reddit is unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, utils.NewAppError(utils.ErrUpstreamNotFound, "Reddit subreddit not found", nil)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, utils.NewAppError(utils.ErrUpstream,
			fmt.Sprintf("Reddit returned status %d", resp.StatusCode), nil)
	}

	var listing Listing
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, utils.NewAppError(utils.ErrUpstream, "failed to decode Reddit response", err)
	}

	posts := make([]PostData, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		posts = append(posts, child.Data)
	}
	return posts, nil
}
