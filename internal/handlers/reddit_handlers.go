package handlers

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/ingStudiosOfficial/supereddit/internal/models"
	"github.com/ingStudiosOfficial/supereddit/internal/utils"

	"github.com/google/uuid"
)

// RedditImportRequest names the source Reddit community and the local
// subreddit that receives the imported posts.
type RedditImportRequest struct {
	SourceCommunity string `json:"sourceCommunity"`
	TargetSubreddit string `json:"targetSubreddit"`
}

const importFetchLimit = 30

// HandleRedditImport copies recent posts from a public Reddit community into
// a local subreddit under the synthetic importer user. The import is
// best-effort: posts created before a failure stay created.
func (s *Server) HandleRedditImport(w http.ResponseWriter, r *http.Request) {
	var req RedditImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, utils.NewValidationError("Invalid request body"))
		return
	}
	if req.SourceCommunity == "" || req.TargetSubreddit == "" {
		writeError(w, utils.NewValidationError("Both sourceCommunity and targetSubreddit are required"))
		return
	}

	subreddit, err := s.Store.GetSubredditByName(r.Context(), strings.ToLower(req.TargetSubreddit))
	if err != nil {
		if utils.IsErrorCode(err, utils.ErrNotFound) {
			writeError(w, utils.NewNotFoundError("Target subreddit not found"))
			return
		}
		writeError(w, err)
		return
	}

	sourcePosts, err := s.Reddit.FetchPosts(r.Context(), req.SourceCommunity, importFetchLimit)
	if err != nil {
		writeError(w, err)
		return
	}
	if len(sourcePosts) == 0 {
		writeError(w, utils.NewNotFoundError("No posts found on Reddit subreddit"))
		return
	}

	systemUser, err := s.Store.EnsureSystemUser(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	imported := make([]*models.Post, 0, len(sourcePosts))
	for _, source := range sourcePosts {
		if source.Title == "" && source.Selftext == "" {
			continue
		}

		content := source.Selftext
		if content == "" {
			content = fmt.Sprintf(
				"Imported from Reddit\n\nOriginal author: u/%s\nOriginal post: https://reddit.com%s",
				source.Author, source.Permalink,
			)
		}

		title := source.Title
		if len([]rune(title)) > models.MaxPostTitleLen {
			title = string([]rune(title)[:models.MaxPostTitleLen])
		}

		post := &models.Post{
			ID:          uuid.New(),
			Title:       title,
			Content:     content,
			ImageURL:    source.ImageURL(),
			AuthorID:    systemUser.ID,
			SubredditID: subreddit.ID,
			// Scaled-down copy of the source tally, floored. Deliberately
			// lossy and non-invertible.
			Votes:     int(math.Floor(float64(source.Ups) / 10)),
			Voters:    []models.VoterEntry{},
			CreatedAt: source.CreatedAt(),
			UpdatedAt: time.Now(),
		}

		if err := s.Store.CreatePost(r.Context(), post); err != nil {
			// Not transactional: earlier posts stay created.
			s.Logger.Error("reddit import aborted", "imported", len(imported), "error", err)
			writeError(w, err)
			return
		}
		imported = append(imported, post)
	}

	if err := s.Store.PopulatePosts(r.Context(), imported); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": fmt.Sprintf("Successfully imported %d posts", len(imported)),
		"count":   len(imported),
		"posts":   imported,
	})
}
