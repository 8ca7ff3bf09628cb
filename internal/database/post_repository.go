// internal/database/post_repository.go
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

// VoterDocument is one recorded vote inside a post or comment document.
type VoterDocument struct {
	UserID string `bson:"user"`
	Vote   int    `bson:"vote"`
}

// PostDocument represents the MongoDB schema for a post.
type PostDocument struct {
	ID          string          `bson:"_id"`
	Title       string          `bson:"title"`
	Content     string          `bson:"content"`
	ImageURL    string          `bson:"imageurl,omitempty"`
	AuthorID    string          `bson:"authorid"`
	SubredditID string          `bson:"subredditid"`
	Votes       int             `bson:"votes"`
	Voters      []VoterDocument `bson:"voters"`
	CreatedAt   time.Time       `bson:"createdat"`
	UpdatedAt   time.Time       `bson:"updatedat"`
}

func votersToDocuments(voters []models.VoterEntry) []VoterDocument {
	docs := make([]VoterDocument, len(voters))
	for i, v := range voters {
		docs[i] = VoterDocument{UserID: v.UserID.String(), Vote: v.Vote}
	}
	return docs
}

func documentsToVoters(docs []VoterDocument) ([]models.VoterEntry, error) {
	voters := make([]models.VoterEntry, len(docs))
	for i, d := range docs {
		userID, err := uuid.Parse(d.UserID)
		if err != nil {
			return nil, fmt.Errorf("invalid voter ID in database: %v", err)
		}
		voters[i] = models.VoterEntry{UserID: userID, Vote: d.Vote}
	}
	return voters, nil
}

func postToDocument(post *models.Post) *PostDocument {
	return &PostDocument{
		ID:          post.ID.String(),
		Title:       post.Title,
		Content:     post.Content,
		ImageURL:    post.ImageURL,
		AuthorID:    post.AuthorID.String(),
		SubredditID: post.SubredditID.String(),
		Votes:       post.Votes,
		Voters:      votersToDocuments(post.Voters),
		CreatedAt:   post.CreatedAt,
		UpdatedAt:   post.UpdatedAt,
	}
}

func documentToPost(doc *PostDocument) (*models.Post, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid post ID in database: %v", err)
	}

	authorID, err := uuid.Parse(doc.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("invalid author ID in database: %v", err)
	}

	subredditID, err := uuid.Parse(doc.SubredditID)
	if err != nil {
		return nil, fmt.Errorf("invalid subreddit ID in database: %v", err)
	}

	voters, err := documentsToVoters(doc.Voters)
	if err != nil {
		return nil, err
	}

	return &models.Post{
		ID:          id,
		Title:       doc.Title,
		Content:     doc.Content,
		ImageURL:    doc.ImageURL,
		AuthorID:    authorID,
		SubredditID: subredditID,
		Votes:       doc.Votes,
		Voters:      voters,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}, nil
}

// CreatePost inserts a new post.
func (m *MongoDB) CreatePost(ctx context.Context, post *models.Post) error {
	_, err := m.Posts.InsertOne(ctx, postToDocument(post))
	if err != nil {
		return utils.NewDatabaseError("failed to create post", err)
	}
	return nil
}

// GetPost retrieves a post by its ID.
func (m *MongoDB) GetPost(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	var doc PostDocument

	err := m.Posts.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewNotFoundError("Post not found")
	}
	if err != nil {
		return nil, utils.NewDatabaseError("failed to get post", err)
	}

	return documentToPost(&doc)
}

// ListPosts retrieves posts, optionally filtered to one subreddit. A zero
// subredditID means no filter.
func (m *MongoDB) ListPosts(ctx context.Context, subredditID uuid.UUID, sort PostSort) ([]*models.Post, error) {
	filter := bson.M{}
	if subredditID != uuid.Nil {
		filter["subredditid"] = subredditID.String()
	}

	sortOption := bson.D{{Key: "createdat", Value: -1}}
	if sort == SortTop {
		sortOption = bson.D{{Key: "votes", Value: -1}, {Key: "createdat", Value: -1}}
	}

	opts := options.Find().SetSort(sortOption).SetLimit(MaxListedPosts)
	cursor, err := m.Posts.Find(ctx, filter, opts)
	if err != nil {
		return nil, utils.NewDatabaseError("failed to list posts", err)
	}
	defer cursor.Close(ctx)

	return decodePosts(ctx, cursor)
}

// ListPostsByAuthor retrieves a user's newest posts for their profile.
func (m *MongoDB) ListPostsByAuthor(ctx context.Context, authorID uuid.UUID) ([]*models.Post, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdat", Value: -1}}).
		SetLimit(MaxProfileItems)

	cursor, err := m.Posts.Find(ctx, bson.M{"authorid": authorID.String()}, opts)
	if err != nil {
		return nil, utils.NewDatabaseError("failed to list posts", err)
	}
	defer cursor.Close(ctx)

	return decodePosts(ctx, cursor)
}

// SearchPosts matches the query case-insensitively against title and content.
func (m *MongoDB) SearchPosts(ctx context.Context, query string) ([]*models.Post, error) {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	filter := bson.M{"$or": []bson.M{
		{"title": pattern},
		{"content": pattern},
	}}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdat", Value: -1}}).
		SetLimit(MaxSearchPosts)

	cursor, err := m.Posts.Find(ctx, filter, opts)
	if err != nil {
		return nil, utils.NewDatabaseError("failed to search posts", err)
	}
	defer cursor.Close(ctx)

	return decodePosts(ctx, cursor)
}

// UpdatePostVotes persists a new tally and voter list produced by the vote
// algorithm. The tally and voters live in the same document, so the write is
// atomic at the document level.
func (m *MongoDB) UpdatePostVotes(ctx context.Context, id uuid.UUID, votes int, voters []models.VoterEntry) error {
	update := bson.M{"$set": bson.M{
		"votes":     votes,
		"voters":    votersToDocuments(voters),
		"updatedat": time.Now(),
	}}

	result, err := m.Posts.UpdateOne(ctx, bson.M{"_id": id.String()}, update)
	if err != nil {
		return utils.NewDatabaseError("failed to update post votes", err)
	}
	if result.MatchedCount == 0 {
		return utils.NewNotFoundError("Post not found")
	}
	return nil
}

func decodePosts(ctx context.Context, cursor *mongo.Cursor) ([]*models.Post, error) {
	posts := make([]*models.Post, 0)
	for cursor.Next(ctx) {
		var doc PostDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, utils.NewDatabaseError("failed to decode post", err)
		}

		post, err := documentToPost(&doc)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	if err := cursor.Err(); err != nil {
		return nil, utils.NewDatabaseError("cursor error", err)
	}

	return posts, nil
}
