package handlers

import (
	"net/http"
	"time"

	"github.com/ingStudiosOfficial/supereddit/internal/auth"
	"github.com/ingStudiosOfficial/supereddit/internal/models"
	"github.com/ingStudiosOfficial/supereddit/internal/utils"

	"github.com/google/uuid"
)

const stateCookie = "supereddit_oauth_state"

// HandleDiscordLogin starts the OAuth flow: a random state is parked in a
// short-lived cookie and the browser is sent to Discord.
func (s *Server) HandleDiscordLogin(w http.ResponseWriter, r *http.Request) {
	state := uuid.NewString()

	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    state,
		Path:     "/",
		MaxAge:   600,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, s.Discord.AuthURL(state), http.StatusFound)
}

// HandleDiscordCallback completes the OAuth handshake. The local user is
// created on first login and refreshed from the provider afterwards; the
// session record is confirmed in storage before the redirect goes out.
func (s *Server) HandleDiscordCallback(w http.ResponseWriter, r *http.Request) {
	failure := s.FrontendURL + "/?error=auth_failed"

	cookie, err := r.Cookie(stateCookie)
	if err != nil || cookie.Value == "" || cookie.Value != r.URL.Query().Get("state") {
		http.Redirect(w, r, failure, http.StatusFound)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		http.Redirect(w, r, failure, http.StatusFound)
		return
	}

	profile, err := s.Discord.Exchange(r.Context(), code)
	if err != nil {
		s.Logger.Error("discord exchange failed", "error", err)
		http.Redirect(w, r, failure, http.StatusFound)
		return
	}

	user, err := s.upsertUser(r, profile)
	if err != nil {
		s.Logger.Error("failed to persist user", "error", err)
		http.Redirect(w, r, failure, http.StatusFound)
		return
	}

	// The session must exist before the browser follows the redirect.
	if err := s.Sessions.Issue(r.Context(), w, user.ID); err != nil {
		s.Logger.Error("failed to create session", "error", err)
		http.Redirect(w, r, failure, http.StatusFound)
		return
	}

	http.Redirect(w, r, s.FrontendURL+"/?auth=success", http.StatusFound)
}

func (s *Server) upsertUser(r *http.Request, profile *auth.Profile) (*models.User, error) {
	ctx := r.Context()
	now := time.Now()

	user, err := s.Store.GetUserByDiscordID(ctx, profile.ID)
	switch {
	case err == nil:
		// Returning user: refresh provider fields and track the login.
		user.Username = profile.Username
		user.Discriminator = profile.Discriminator
		user.Avatar = profile.Avatar
		user.LastLogin = now
		user.LoginCount++

	case utils.IsErrorCode(err, utils.ErrNotFound):
		user = &models.User{
			ID:            uuid.New(),
			DiscordID:     profile.ID,
			Username:      profile.Username,
			Discriminator: profile.Discriminator,
			Avatar:        profile.Avatar,
			LastLogin:     now,
			LoginCount:    1,
			CreatedAt:     now,
		}
		s.Logger.Info("new user created", "username", user.Username)

	default:
		return nil, err
	}

	if err := s.Store.SaveUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// HandleCurrentUser returns the logged-in user, or null when anonymous.
func (s *Server) HandleCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusOK, map[string]interface{}{"user": nil})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

// HandleLogout invalidates the session record and expires the cookie. Both
// must succeed for a 200.
func (s *Server) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.Sessions.Clear(r.Context(), w, r); err != nil {
		writeError(w, utils.NewDatabaseError("Logout failed", err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}
