package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/ingStudiosOfficial/supereddit/internal/auth"
	"github.com/ingStudiosOfficial/supereddit/internal/database"
	"github.com/ingStudiosOfficial/supereddit/internal/models"
	"github.com/ingStudiosOfficial/supereddit/internal/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// CreatePostRequest represents a request to create a new post
type CreatePostRequest struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Subreddit string `json:"subreddit"` // Target subreddit name
}

// VoteRequest carries one signed vote.
type VoteRequest struct {
	Vote int `json:"vote"` // 1 for upvote, -1 for downvote
}

// HandleListPosts lists posts, optionally filtered by subreddit name and
// sorted by "new" (default) or "top". A filter naming an unknown subreddit
// is dropped rather than treated as an error.
func (s *Server) HandleListPosts(w http.ResponseWriter, r *http.Request) {
	subredditFilter := uuid.Nil
	if name := r.URL.Query().Get("subreddit"); name != "" {
		subreddit, err := s.Store.GetSubredditByName(r.Context(), strings.ToLower(name))
		switch {
		case err == nil:
			subredditFilter = subreddit.ID
		case utils.IsErrorCode(err, utils.ErrNotFound):
			// Unknown filter: fall through unfiltered.
		default:
			writeError(w, err)
			return
		}
	}

	sort := database.SortNew
	if r.URL.Query().Get("sort") == "top" {
		sort = database.SortTop
	}

	posts, err := s.Store.ListPosts(r.Context(), subredditFilter, sort)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := s.Store.PopulatePosts(r.Context(), posts); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"posts": posts})
}

// HandleGetPost returns a single post with populated references.
func (s *Server) HandleGetPost(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, utils.NewValidationError("Invalid post ID format"))
		return
	}

	post, err := s.Store.GetPost(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := s.Store.PopulatePosts(r.Context(), []*models.Post{post}); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"post": post})
}

// HandleCreatePost creates a post in the named subreddit.
func (s *Server) HandleCreatePost(w http.ResponseWriter, r *http.Request) {
	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, utils.NewValidationError("Invalid request body"))
		return
	}

	if req.Title == "" || req.Content == "" || req.Subreddit == "" {
		writeError(w, utils.NewValidationError("Title, content, and subreddit are required"))
		return
	}
	if len(req.Title) > models.MaxPostTitleLen {
		writeError(w, utils.NewValidationError("Title must be at most 300 characters"))
		return
	}
	if len(req.Content) > models.MaxPostContentLen {
		writeError(w, utils.NewValidationError("Content must be at most 40000 characters"))
		return
	}

	subreddit, err := s.Store.GetSubredditByName(r.Context(), strings.ToLower(req.Subreddit))
	if err != nil {
		writeError(w, err)
		return
	}

	user, _ := auth.UserFromContext(r.Context())
	now := time.Now()
	post := &models.Post{
		ID:          uuid.New(),
		Title:       req.Title,
		Content:     req.Content,
		AuthorID:    user.ID,
		SubredditID: subreddit.ID,
		Voters:      []models.VoterEntry{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.Store.CreatePost(r.Context(), post); err != nil {
		writeError(w, err)
		return
	}

	if err := s.Store.PopulatePosts(r.Context(), []*models.Post{post}); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{"post": post})
}

// HandleVotePost applies the caller's vote to a post and returns the new
// tally.
func (s *Server) HandleVotePost(w http.ResponseWriter, r *http.Request) {
	var req VoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, utils.NewValidationError("Invalid request body"))
		return
	}
	if req.Vote != models.VoteUp && req.Vote != models.VoteDown {
		writeError(w, utils.NewValidationError("Vote must be 1 or -1"))
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, utils.NewValidationError("Invalid post ID format"))
		return
	}

	post, err := s.Store.GetPost(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	user, _ := auth.UserFromContext(r.Context())
	tally, err := models.ApplyVote(post, user.ID, req.Vote)
	if err != nil {
		writeError(w, utils.NewValidationError(err.Error()))
		return
	}

	if err := s.Store.UpdatePostVotes(r.Context(), post.ID, post.Votes, post.Voters); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"votes": tally})
}
