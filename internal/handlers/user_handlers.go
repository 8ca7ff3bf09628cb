package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// UserProfile is the public view of a user: the Discord identity id itself
// is not exposed.
type UserProfile struct {
	ID            uuid.UUID `json:"id"`
	Username      string    `json:"username"`
	Discriminator string    `json:"discriminator"`
	Avatar        string    `json:"avatar"`
	CreatedAt     time.Time `json:"createdAt"`
	LoginCount    int       `json:"loginCount"`
	LastLogin     time.Time `json:"lastLogin"`
}

// HandleUserProfile returns a user's public profile along with their newest
// posts and comments.
func (s *Server) HandleUserProfile(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	user, err := s.Store.GetUserByUsername(r.Context(), username)
	if err != nil {
		writeError(w, err)
		return
	}

	posts, err := s.Store.ListPostsByAuthor(r.Context(), user.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.Store.PopulatePosts(r.Context(), posts); err != nil {
		writeError(w, err)
		return
	}

	comments, err := s.Store.ListCommentsByAuthor(r.Context(), user.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.Store.PopulateComments(r.Context(), comments, true); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"user": UserProfile{
			ID:            user.ID,
			Username:      user.Username,
			Discriminator: user.Discriminator,
			Avatar:        user.Avatar,
			CreatedAt:     user.CreatedAt,
			LoginCount:    user.LoginCount,
			LastLogin:     user.LastLogin,
		},
		"posts":    posts,
		"comments": comments,
	})
}
