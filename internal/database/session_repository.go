// internal/database/session_repository.go
package database

import (
	"context"
	"time"

	"github.com/ingStudiosOfficial/supereddit/internal/models"
	"github.com/ingStudiosOfficial/supereddit/internal/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// SessionDocument represents the MongoDB schema for a login session. The TTL
// index on expiresat reaps stale rows.
type SessionDocument struct {
	ID        string    `bson:"_id"` // Opaque session id; the cookie carries its signed form
	UserID    string    `bson:"userid"`
	CreatedAt time.Time `bson:"createdat"`
	ExpiresAt time.Time `bson:"expiresat"`
}

// CreateSession persists a session record. The insert is confirmed before
// the caller sets the cookie and redirects, so the browser can never present
// a cookie for a session that does not exist yet.
func (m *MongoDB) CreateSession(ctx context.Context, session *models.Session) error {
	doc := SessionDocument{
		ID:        session.ID,
		UserID:    session.UserID.String(),
		CreatedAt: session.CreatedAt,
		ExpiresAt: session.ExpiresAt,
	}

	_, err := m.Sessions.InsertOne(ctx, doc)
	if err != nil {
		return utils.NewDatabaseError("failed to create session", err)
	}
	return nil
}

// GetSession retrieves a session by its opaque id.
func (m *MongoDB) GetSession(ctx context.Context, id string) (*models.Session, error) {
	var doc SessionDocument

	err := m.Sessions.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewNotFoundError("Session not found")
	}
	if err != nil {
		return nil, utils.NewDatabaseError("failed to get session", err)
	}

	userID, err := uuid.Parse(doc.UserID)
	if err != nil {
		return nil, utils.NewDatabaseError("invalid user ID in session", err)
	}

	return &models.Session{
		ID:        doc.ID,
		UserID:    userID,
		CreatedAt: doc.CreatedAt,
		ExpiresAt: doc.ExpiresAt,
	}, nil
}

// DeleteSession removes a session record. Deleting an absent session is not
// an error; logout must succeed exactly once.
func (m *MongoDB) DeleteSession(ctx context.Context, id string) error {
	_, err := m.Sessions.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return utils.NewDatabaseError("failed to delete session", err)
	}
	return nil
}
