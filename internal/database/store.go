// internal/database/store.go
package database

import (
	"context"

	"github.com/ingStudiosOfficial/supereddit/internal/models"

	"github.com/google/uuid"
)

// PostSort selects the ordering of post listings.
type PostSort string

const (
	SortNew PostSort = "new" // creation time descending
	SortTop PostSort = "top" // tally descending, then creation time descending
)

// Listing caps. Search categories are capped independently.
const (
	MaxListedPosts      = 50
	MaxListedSubreddits = 50
	MaxProfileItems     = 50
	MaxSearchPosts      = 20
	MaxSearchSubreddits = 10
)

// Store defines the common interface for database operations. Handlers
// depend on this rather than on MongoDB directly, which keeps them testable.
type Store interface {
	Close(ctx context.Context) error

	// User methods
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetUserByDiscordID(ctx context.Context, discordID string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	SaveUser(ctx context.Context, user *models.User) error
	EnsureSystemUser(ctx context.Context) (*models.User, error)

	// Subreddit methods
	CreateSubreddit(ctx context.Context, sub *models.Subreddit) error
	GetSubredditByName(ctx context.Context, name string) (*models.Subreddit, error)
	ListSubreddits(ctx context.Context) ([]*models.Subreddit, error)
	AddSubredditMember(ctx context.Context, subredditID, userID uuid.UUID) error
	RemoveSubredditMember(ctx context.Context, subredditID, userID uuid.UUID) error
	SearchSubreddits(ctx context.Context, query string) ([]*models.Subreddit, error)

	// Post methods
	CreatePost(ctx context.Context, post *models.Post) error
	GetPost(ctx context.Context, id uuid.UUID) (*models.Post, error)
	ListPosts(ctx context.Context, subredditID uuid.UUID, sort PostSort) ([]*models.Post, error)
	ListPostsByAuthor(ctx context.Context, authorID uuid.UUID) ([]*models.Post, error)
	SearchPosts(ctx context.Context, query string) ([]*models.Post, error)
	UpdatePostVotes(ctx context.Context, id uuid.UUID, votes int, voters []models.VoterEntry) error

	// Comment methods
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetComment(ctx context.Context, id uuid.UUID) (*models.Comment, error)
	ListPostComments(ctx context.Context, postID uuid.UUID) ([]*models.Comment, error)
	ListCommentsByAuthor(ctx context.Context, authorID uuid.UUID) ([]*models.Comment, error)
	UpdateCommentVotes(ctx context.Context, id uuid.UUID, votes int, voters []models.VoterEntry) error

	// Session methods
	CreateSession(ctx context.Context, session *models.Session) error
	GetSession(ctx context.Context, id string) (*models.Session, error)
	DeleteSession(ctx context.Context, id string) error

	// Populate helpers expand author/subreddit references into display refs.
	PopulatePosts(ctx context.Context, posts []*models.Post) error
	PopulateComments(ctx context.Context, comments []*models.Comment, withPosts bool) error
	PopulateSubreddits(ctx context.Context, subs []*models.Subreddit, withMembers bool) error
}

var _ Store = (*MongoDB)(nil)
