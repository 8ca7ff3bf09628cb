package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/ingStudiosOfficial/supereddit/internal/auth"
	"github.com/ingStudiosOfficial/supereddit/internal/models"
	"github.com/ingStudiosOfficial/supereddit/internal/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// CreateSubredditRequest represents a request to create a new subreddit
type CreateSubredditRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// HandleListSubreddits returns the newest subreddits.
func (s *Server) HandleListSubreddits(w http.ResponseWriter, r *http.Request) {
	subreddits, err := s.Store.ListSubreddits(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	if err := s.Store.PopulateSubreddits(r.Context(), subreddits, false); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"subreddits": subreddits})
}

// HandleGetSubreddit returns one subreddit with its member list populated.
func (s *Server) HandleGetSubreddit(w http.ResponseWriter, r *http.Request) {
	name := strings.ToLower(chi.URLParam(r, "name"))

	subreddit, err := s.Store.GetSubredditByName(r.Context(), name)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := s.Store.PopulateSubreddits(r.Context(), []*models.Subreddit{subreddit}, true); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"subreddit": subreddit})
}

// HandleCreateSubreddit creates a subreddit with the caller as creator and
// first member. Names are lowercased before validation and storage.
func (s *Server) HandleCreateSubreddit(w http.ResponseWriter, r *http.Request) {
	var req CreateSubredditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, utils.NewValidationError("Invalid request body"))
		return
	}

	if req.Name == "" || req.Description == "" {
		writeError(w, utils.NewValidationError("Name and description are required"))
		return
	}

	name := strings.ToLower(strings.TrimSpace(req.Name))
	if !models.ValidSubredditName(name) {
		writeError(w, utils.NewValidationError("Subreddit name must be 3-21 lowercase letters, numbers, or underscores"))
		return
	}
	if len(req.Description) > models.MaxSubredditDescriptionLen {
		writeError(w, utils.NewValidationError("Description must be at most 500 characters"))
		return
	}

	user, _ := auth.UserFromContext(r.Context())
	now := time.Now()
	subreddit := &models.Subreddit{
		ID:          uuid.New(),
		Name:        name,
		Description: req.Description,
		CreatorID:   user.ID,
		MemberIDs:   []uuid.UUID{user.ID},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.Store.CreateSubreddit(r.Context(), subreddit); err != nil {
		writeError(w, err)
		return
	}

	if err := s.Store.PopulateSubreddits(r.Context(), []*models.Subreddit{subreddit}, false); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{"subreddit": subreddit})
}

// HandleJoinSubreddit adds the caller to the member list. Joining twice is a
// conflict.
func (s *Server) HandleJoinSubreddit(w http.ResponseWriter, r *http.Request) {
	name := strings.ToLower(chi.URLParam(r, "name"))

	subreddit, err := s.Store.GetSubredditByName(r.Context(), name)
	if err != nil {
		writeError(w, err)
		return
	}

	user, _ := auth.UserFromContext(r.Context())
	if subreddit.HasMember(user.ID) {
		writeError(w, utils.NewDuplicateError("Already a member"))
		return
	}

	if err := s.Store.AddSubredditMember(r.Context(), subreddit.ID, user.ID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Joined subreddit successfully"})
}

// HandleLeaveSubreddit removes the caller from the member list. Leaving a
// subreddit the caller never joined succeeds without change.
func (s *Server) HandleLeaveSubreddit(w http.ResponseWriter, r *http.Request) {
	name := strings.ToLower(chi.URLParam(r, "name"))

	subreddit, err := s.Store.GetSubredditByName(r.Context(), name)
	if err != nil {
		writeError(w, err)
		return
	}

	user, _ := auth.UserFromContext(r.Context())
	if err := s.Store.RemoveSubredditMember(r.Context(), subreddit.ID, user.ID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Left subreddit successfully"})
}
