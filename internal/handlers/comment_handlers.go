package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ingStudiosOfficial/supereddit/internal/auth"
	"github.com/ingStudiosOfficial/supereddit/internal/models"
	"github.com/ingStudiosOfficial/supereddit/internal/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// CreateCommentRequest represents a request to comment on a post
type CreateCommentRequest struct {
	Content       string `json:"content"`
	ParentComment string `json:"parentComment"` // Optional parent for threading
}

// HandleListComments returns all comments on a post, newest first.
func (s *Server) HandleListComments(w http.ResponseWriter, r *http.Request) {
	postID, err := uuid.Parse(chi.URLParam(r, "postId"))
	if err != nil {
		writeError(w, utils.NewValidationError("Invalid post ID format"))
		return
	}

	comments, err := s.Store.ListPostComments(r.Context(), postID)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := s.Store.PopulateComments(r.Context(), comments, false); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"comments": comments})
}

// HandleCreateComment creates a comment on a post, optionally threaded under
// a parent comment. The parent must exist at write time; deeper structural
// checks are not performed.
func (s *Server) HandleCreateComment(w http.ResponseWriter, r *http.Request) {
	var req CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, utils.NewValidationError("Invalid request body"))
		return
	}

	if req.Content == "" {
		writeError(w, utils.NewValidationError("Content is required"))
		return
	}
	if len(req.Content) > models.MaxCommentContentLen {
		writeError(w, utils.NewValidationError("Content must be at most 10000 characters"))
		return
	}

	postID, err := uuid.Parse(chi.URLParam(r, "postId"))
	if err != nil {
		writeError(w, utils.NewValidationError("Invalid post ID format"))
		return
	}
	if _, err := s.Store.GetPost(r.Context(), postID); err != nil {
		writeError(w, err)
		return
	}

	var parentID *uuid.UUID
	if req.ParentComment != "" {
		parsed, err := uuid.Parse(req.ParentComment)
		if err != nil {
			writeError(w, utils.NewValidationError("Invalid parent comment ID format"))
			return
		}
		if _, err := s.Store.GetComment(r.Context(), parsed); err != nil {
			writeError(w, err)
			return
		}
		parentID = &parsed
	}

	user, _ := auth.UserFromContext(r.Context())
	now := time.Now()
	comment := &models.Comment{
		ID:        uuid.New(),
		Content:   req.Content,
		AuthorID:  user.ID,
		PostID:    postID,
		ParentID:  parentID,
		Voters:    []models.VoterEntry{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.Store.CreateComment(r.Context(), comment); err != nil {
		writeError(w, err)
		return
	}

	if err := s.Store.PopulateComments(r.Context(), []*models.Comment{comment}, false); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{"comment": comment})
}

// HandleVoteComment applies the caller's vote to a comment and returns the
// new tally.
func (s *Server) HandleVoteComment(w http.ResponseWriter, r *http.Request) {
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
		writeError(w, utils.NewValidationError("Invalid comment ID format"))
		return
	}

	comment, err := s.Store.GetComment(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	user, _ := auth.UserFromContext(r.Context())
	tally, err := models.ApplyVote(comment, user.ID, req.Vote)
	if err != nil {
		writeError(w, utils.NewValidationError(err.Error()))
		return
	}

	if err := s.Store.UpdateCommentVotes(r.Context(), comment.ID, comment.Votes, comment.Voters); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"votes": tally})
}
