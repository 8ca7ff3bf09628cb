// internal/database/subreddit_repository.go
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

// SubredditDocument represents the MongoDB schema for a subreddit
type SubredditDocument struct {
	ID          string    `bson:"_id"`
	Name        string    `bson:"name"` // Always lowercase; unique index
	Description string    `bson:"description"`
	CreatorID   string    `bson:"creatorid"`
	Members     []string  `bson:"members"`
	CreatedAt   time.Time `bson:"createdat"`
	UpdatedAt   time.Time `bson:"updatedat"`
}

func subredditToDocument(sub *models.Subreddit) *SubredditDocument {
	doc := &SubredditDocument{
		ID:          sub.ID.String(),
		Name:        sub.Name,
		Description: sub.Description,
		CreatorID:   sub.CreatorID.String(),
		Members:     make([]string, len(sub.MemberIDs)),
		CreatedAt:   sub.CreatedAt,
		UpdatedAt:   sub.UpdatedAt,
	}
	for i, memberID := range sub.MemberIDs {
		doc.Members[i] = memberID.String()
	}
	return doc
}

func documentToSubreddit(doc *SubredditDocument) (*models.Subreddit, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid subreddit ID in database: %v", err)
	}

	creatorID, err := uuid.Parse(doc.CreatorID)
	if err != nil {
		return nil, fmt.Errorf("invalid creator ID in database: %v", err)
	}

	members := make([]uuid.UUID, len(doc.Members))
	for i, memberStr := range doc.Members {
		memberID, err := uuid.Parse(memberStr)
		if err != nil {
			return nil, fmt.Errorf("invalid member ID in database: %v", err)
		}
		members[i] = memberID
	}

	return &models.Subreddit{
		ID:          id,
		Name:        doc.Name,
		Description: doc.Description,
		CreatorID:   creatorID,
		MemberIDs:   members,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}, nil
}

// CreateSubreddit inserts a new subreddit. The unique name index turns a
// duplicate name into a DUPLICATE error.
func (m *MongoDB) CreateSubreddit(ctx context.Context, sub *models.Subreddit) error {
	_, err := m.Subreddits.InsertOne(ctx, subredditToDocument(sub))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return utils.NewDuplicateError("Subreddit already exists")
		}
		return utils.NewDatabaseError("failed to create subreddit", err)
	}
	return nil
}

// GetSubredditByName retrieves a subreddit by its (lowercase) name
func (m *MongoDB) GetSubredditByName(ctx context.Context, name string) (*models.Subreddit, error) {
	var doc SubredditDocument
	err := m.Subreddits.FindOne(ctx, bson.M{"name": name}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewNotFoundError("Subreddit not found")
	}
	if err != nil {
		return nil, utils.NewDatabaseError("failed to get subreddit", err)
	}

	return documentToSubreddit(&doc)
}

// ListSubreddits retrieves the newest subreddits
func (m *MongoDB) ListSubreddits(ctx context.Context) ([]*models.Subreddit, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdat", Value: -1}}).
		SetLimit(MaxListedSubreddits)

	cursor, err := m.Subreddits.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, utils.NewDatabaseError("failed to list subreddits", err)
	}
	defer cursor.Close(ctx)

	return decodeSubreddits(ctx, cursor)
}

// AddSubredditMember adds a user to the member list. $addToSet keeps the
// list duplicate-free even under concurrent joins; the handler rejects
// already-member requests beforehand.
func (m *MongoDB) AddSubredditMember(ctx context.Context, subredditID, userID uuid.UUID) error {
	return m.updateMembers(ctx, subredditID, bson.M{"$addToSet": bson.M{"members": userID.String()}})
}

// RemoveSubredditMember removes a user from the member list. Removing a
// non-member is silently successful.
func (m *MongoDB) RemoveSubredditMember(ctx context.Context, subredditID, userID uuid.UUID) error {
	return m.updateMembers(ctx, subredditID, bson.M{"$pull": bson.M{"members": userID.String()}})
}

func (m *MongoDB) updateMembers(ctx context.Context, subredditID uuid.UUID, update bson.M) error {
	update["$set"] = bson.M{"updatedat": time.Now()}

	result, err := m.Subreddits.UpdateOne(ctx, bson.M{"_id": subredditID.String()}, update)
	if err != nil {
		return utils.NewDatabaseError("failed to update members", err)
	}
	if result.MatchedCount == 0 {
		return utils.NewNotFoundError("Subreddit not found")
	}
	return nil
}

// SearchSubreddits matches the query case-insensitively against name and
// description.
func (m *MongoDB) SearchSubreddits(ctx context.Context, query string) ([]*models.Subreddit, error) {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	filter := bson.M{"$or": []bson.M{
		{"name": pattern},
		{"description": pattern},
	}}

	cursor, err := m.Subreddits.Find(ctx, filter, options.Find().SetLimit(MaxSearchSubreddits))
	if err != nil {
		return nil, utils.NewDatabaseError("failed to search subreddits", err)
	}
	defer cursor.Close(ctx)

	return decodeSubreddits(ctx, cursor)
}

func decodeSubreddits(ctx context.Context, cursor *mongo.Cursor) ([]*models.Subreddit, error) {
	subreddits := make([]*models.Subreddit, 0)
	for cursor.Next(ctx) {
		var doc SubredditDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, utils.NewDatabaseError("failed to decode subreddit", err)
		}

		sub, err := documentToSubreddit(&doc)
		if err != nil {
			return nil, err
		}
		subreddits = append(subreddits, sub)
	}
	if err := cursor.Err(); err != nil {
		return nil, utils.NewDatabaseError("cursor error", err)
	}

	return subreddits, nil
}
