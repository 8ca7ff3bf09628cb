// internal/database/user_repository.go
package database

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/ingStudiosOfficial/supereddit/internal/models"
	"github.com/ingStudiosOfficial/supereddit/internal/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserDocument represents the MongoDB schema for a user
type UserDocument struct {
	ID            string    `bson:"_id"`           // MongoDB primary key
	DiscordID     string    `bson:"discordid"`     // External Discord identity
	Username      string    `bson:"username"`      // Display name from Discord
	Discriminator string    `bson:"discriminator"` // Discord tag
	Avatar        string    `bson:"avatar"`        // Avatar reference
	LastLogin     time.Time `bson:"lastlogin"`     // Last successful OAuth login
	LoginCount    int       `bson:"logincount"`    // Number of logins
	CreatedAt     time.Time `bson:"createdat"`
	UpdatedAt     time.Time `bson:"updatedat"`
}

func userToDocument(user *models.User) *UserDocument {
	return &UserDocument{
		ID:            user.ID.String(),
		DiscordID:     user.DiscordID,
		Username:      user.Username,
		Discriminator: user.Discriminator,
		Avatar:        user.Avatar,
		LastLogin:     user.LastLogin,
		LoginCount:    user.LoginCount,
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
	}
}

func documentToUser(doc *UserDocument) (*models.User, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID in database: %v", err)
	}

	return &models.User{
		ID:            id,
		DiscordID:     doc.DiscordID,
		Username:      doc.Username,
		Discriminator: doc.Discriminator,
		Avatar:        doc.Avatar,
		LastLogin:     doc.LastLogin,
		LoginCount:    doc.LoginCount,
		CreatedAt:     doc.CreatedAt,
		UpdatedAt:     doc.UpdatedAt,
	}, nil
}

// SaveUser creates or updates a user in MongoDB
func (m *MongoDB) SaveUser(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now()
	doc := userToDocument(user)

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"_id": user.ID.String()}
	update := bson.M{"$set": doc}

	_, err := m.Users.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return utils.NewDatabaseError("failed to save user", err)
	}
	return nil
}

// GetUser retrieves a user from MongoDB by their ID
func (m *MongoDB) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var doc UserDocument

	err := m.Users.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewNotFoundError("User not found")
	}
	if err != nil {
		return nil, utils.NewDatabaseError("failed to get user", err)
	}

	return documentToUser(&doc)
}

// GetUserByDiscordID retrieves a user by their external Discord identity
func (m *MongoDB) GetUserByDiscordID(ctx context.Context, discordID string) (*models.User, error) {
	var doc UserDocument

	err := m.Users.FindOne(ctx, bson.M{"discordid": discordID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewNotFoundError("User not found")
	}
	if err != nil {
		return nil, utils.NewDatabaseError("failed to get user", err)
	}

	return documentToUser(&doc)
}

// GetUserByUsername retrieves a user by display name, case-insensitively.
func (m *MongoDB) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var doc UserDocument

	filter := bson.M{"username": primitive.Regex{
		Pattern: "^" + regexp.QuoteMeta(username) + "$",
		Options: "i",
	}}
	err := m.Users.FindOne(ctx, filter).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewNotFoundError("User not found")
	}
	if err != nil {
		return nil, utils.NewDatabaseError("failed to get user", err)
	}

	return documentToUser(&doc)
}

// EnsureSystemUser returns the synthetic importer user, creating it if it
// does not exist yet. The upsert keys on the unique discordid index, so
// concurrent imports converge on a single record.
func (m *MongoDB) EnsureSystemUser(ctx context.Context) (*models.User, error) {
	candidate := userToDocument(models.NewSystemImporter())

	filter := bson.M{"discordid": models.SystemImporterDiscordID}
	update := bson.M{"$setOnInsert": candidate}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc UserDocument
	if err := m.Users.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
		return nil, utils.NewDatabaseError("failed to ensure system user", err)
	}

	return documentToUser(&doc)
}
