// internal/database/comment_repository.go
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/ingStudiosOfficial/supereddit/internal/models"
	"github.com/ingStudiosOfficial/supereddit/internal/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CommentDocument represents the MongoDB schema for a comment.
type CommentDocument struct {
	ID        string          `bson:"_id"`
	Content   string          `bson:"content"`
	AuthorID  string          `bson:"authorid"`
	PostID    string          `bson:"postid"`
	ParentID  *string         `bson:"parentid,omitempty"` // Nil for top-level comments
	Votes     int             `bson:"votes"`
	Voters    []VoterDocument `bson:"voters"`
	CreatedAt time.Time       `bson:"createdat"`
	UpdatedAt time.Time       `bson:"updatedat"`
}

func commentToDocument(comment *models.Comment) *CommentDocument {
	doc := &CommentDocument{
		ID:        comment.ID.String(),
		Content:   comment.Content,
		AuthorID:  comment.AuthorID.String(),
		PostID:    comment.PostID.String(),
		Votes:     comment.Votes,
		Voters:    votersToDocuments(comment.Voters),
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}
	if comment.ParentID != nil {
		parent := comment.ParentID.String()
		doc.ParentID = &parent
	}
	return doc
}

func documentToComment(doc *CommentDocument) (*models.Comment, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid comment ID in database: %v", err)
	}

	authorID, err := uuid.Parse(doc.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("invalid author ID in database: %v", err)
	}

	postID, err := uuid.Parse(doc.PostID)
	if err != nil {
		return nil, fmt.Errorf("invalid post ID in database: %v", err)
	}

	var parentID *uuid.UUID
	if doc.ParentID != nil {
		parsed, err := uuid.Parse(*doc.ParentID)
		if err != nil {
			return nil, fmt.Errorf("invalid parent comment ID in database: %v", err)
		}
		parentID = &parsed
	}

	voters, err := documentsToVoters(doc.Voters)
	if err != nil {
		return nil, err
	}

	return &models.Comment{
		ID:        id,
		Content:   doc.Content,
		AuthorID:  authorID,
		PostID:    postID,
		ParentID:  parentID,
		Votes:     doc.Votes,
		Voters:    voters,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}, nil
}

// CreateComment inserts a new comment.
func (m *MongoDB) CreateComment(ctx context.Context, comment *models.Comment) error {
	_, err := m.Comments.InsertOne(ctx, commentToDocument(comment))
	if err != nil {
		return utils.NewDatabaseError("failed to create comment", err)
	}
	return nil
}

// GetComment retrieves a comment by its ID.
func (m *MongoDB) GetComment(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	var doc CommentDocument

	err := m.Comments.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewNotFoundError("Comment not found")
	}
	if err != nil {
		return nil, utils.NewDatabaseError("failed to get comment", err)
	}

	return documentToComment(&doc)
}

// ListPostComments retrieves all comments on a post, newest first. Threading
// is reconstructed client-side from parentComment references.
func (m *MongoDB) ListPostComments(ctx context.Context, postID uuid.UUID) ([]*models.Comment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdat", Value: -1}})

	cursor, err := m.Comments.Find(ctx, bson.M{"postid": postID.String()}, opts)
	if err != nil {
		return nil, utils.NewDatabaseError("failed to list comments", err)
	}
	defer cursor.Close(ctx)

	return decodeComments(ctx, cursor)
}

// ListCommentsByAuthor retrieves a user's newest comments for their profile.
func (m *MongoDB) ListCommentsByAuthor(ctx context.Context, authorID uuid.UUID) ([]*models.Comment, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdat", Value: -1}}).
		SetLimit(MaxProfileItems)

	cursor, err := m.Comments.Find(ctx, bson.M{"authorid": authorID.String()}, opts)
	if err != nil {
		return nil, utils.NewDatabaseError("failed to list comments", err)
	}
	defer cursor.Close(ctx)

	return decodeComments(ctx, cursor)
}

// UpdateCommentVotes persists a new tally and voter list produced by the
// vote algorithm.
func (m *MongoDB) UpdateCommentVotes(ctx context.Context, id uuid.UUID, votes int, voters []models.VoterEntry) error {
	update := bson.M{"$set": bson.M{
		"votes":     votes,
		"voters":    votersToDocuments(voters),
		"updatedat": time.Now(),
	}}

	result, err := m.Comments.UpdateOne(ctx, bson.M{"_id": id.String()}, update)
	if err != nil {
		return utils.NewDatabaseError("failed to update comment votes", err)
	}
	if result.MatchedCount == 0 {
		return utils.NewNotFoundError("Comment not found")
	}
	return nil
}

func decodeComments(ctx context.Context, cursor *mongo.Cursor) ([]*models.Comment, error) {
	comments := make([]*models.Comment, 0)
	for cursor.Next(ctx) {
		var doc CommentDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, utils.NewDatabaseError("failed to decode comment", err)
		}

		comment, err := documentToComment(&doc)
		if err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}
	if err := cursor.Err(); err != nil {
		return nil, utils.NewDatabaseError("cursor error", err)
	}

	return comments, nil
}
