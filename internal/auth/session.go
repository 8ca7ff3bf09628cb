// internal/auth/session.go
package auth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"strings"
	"time"

	"github.com/ingStudiosOfficial/supereddit/internal/database"
	"github.com/ingStudiosOfficial/supereddit/internal/models"
	"github.com/ingStudiosOfficial/supereddit/internal/utils"

	"github.com/google/uuid"
)

const (
	// SessionCookie is the browser cookie referencing the server-side
	// session record.
	SessionCookie = "supereddit_sid"

	// SessionTTL matches the cookie Max-Age; the TTL index on the sessions
	// collection uses the same horizon.
	SessionTTL = 7 * 24 * time.Hour
)

// Sessions issues and resolves login sessions. The durable record lives in
// the sessions collection; the cookie carries "id.signature" where the
// signature is an HMAC-SHA256 of the id under the session secret, so a
// fabricated cookie is rejected before any database lookup.
type Sessions struct {
	store  database.Store
	secret []byte
	secure bool
}

func NewSessions(store database.Store, secret string, secure bool) *Sessions {
	return &Sessions{
		store:  store,
		secret: []byte(secret),
		secure: secure,
	}
}

func (s *Sessions) sign(id string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(id))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// Verify checks a raw cookie value and returns the embedded session id.
func (s *Sessions) Verify(value string) (string, bool) {
	id, sig, found := strings.Cut(value, ".")
	if !found || id == "" {
		return "", false
	}
	if !hmac.Equal([]byte(sig), []byte(s.sign(id))) {
		return "", false
	}
	return id, true
}

// Issue creates a session for the user and sets the cookie. The session
// record is written and confirmed before the cookie goes out; callers must
// call Issue before redirecting the browser.
func (s *Sessions) Issue(ctx context.Context, w http.ResponseWriter, userID uuid.UUID) error {
	now := time.Now()
	session := &models.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(SessionTTL),
	}

	if err := s.store.CreateSession(ctx, session); err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    session.ID + "." + s.sign(session.ID),
		Path:     "/",
		MaxAge:   int(SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Resolve turns a request into the logged-in user, or nil if the request is
// anonymous. Unknown or expired sessions resolve to nil rather than an
// error; only storage faults propagate.
func (s *Sessions) Resolve(ctx context.Context, r *http.Request) (*models.User, error) {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		return nil, nil
	}

	id, ok := s.Verify(cookie.Value)
	if !ok {
		return nil, nil
	}

	session, err := s.store.GetSession(ctx, id)
	if err != nil {
		if utils.IsErrorCode(err, utils.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if session.Expired(time.Now()) {
		return nil, nil
	}

	user, err := s.store.GetUser(ctx, session.UserID)
	if err != nil {
		if utils.IsErrorCode(err, utils.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// Clear deletes the session record and expires the cookie. Both parts must
// succeed; a storage fault is reported to the caller.
func (s *Sessions) Clear(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		if id, ok := s.Verify(cookie.Value); ok {
			if err := s.store.DeleteSession(ctx, id); err != nil {
				return err
			}
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
