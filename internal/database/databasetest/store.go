// Package databasetest provides an in-memory Store implementation for
// handler and auth tests. Behavior mirrors the MongoDB repositories: the
// same error codes, the same listing caps and sort orders, and the same
// idempotent member removal.
package databasetest

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/ingStudiosOfficial/supereddit/internal/database"
	"github.com/ingStudiosOfficial/supereddit/internal/models"
	"github.com/ingStudiosOfficial/supereddit/internal/utils"

	"github.com/google/uuid"
)

type MemStore struct {
	mu         sync.Mutex
	users      map[uuid.UUID]*models.User
	subreddits map[uuid.UUID]*models.Subreddit
	posts      map[uuid.UUID]*models.Post
	comments   map[uuid.UUID]*models.Comment
	sessions   map[string]*models.Session
}

var _ database.Store = (*MemStore)(nil)

func NewMemStore() *MemStore {
	return &MemStore{
		users:      make(map[uuid.UUID]*models.User),
		subreddits: make(map[uuid.UUID]*models.Subreddit),
		posts:      make(map[uuid.UUID]*models.Post),
		comments:   make(map[uuid.UUID]*models.Comment),
		sessions:   make(map[string]*models.Session),
	}
}

func (s *MemStore) Close(ctx context.Context) error { return nil }

// User methods

func (s *MemStore) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user, ok := s.users[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, utils.NewNotFoundError("User not found")
}

func (s *MemStore) GetUserByDiscordID(ctx context.Context, discordID string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.DiscordID == discordID {
			copied := *user
			return &copied, nil
		}
	}
	return nil, utils.NewNotFoundError("User not found")
}

func (s *MemStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if strings.EqualFold(user.Username, username) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, utils.NewNotFoundError("User not found")
}

func (s *MemStore) SaveUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *MemStore) EnsureSystemUser(ctx context.Context) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.DiscordID == models.SystemImporterDiscordID {
			copied := *user
			return &copied, nil
		}
	}
	system := models.NewSystemImporter()
	s.users[system.ID] = system
	copied := *system
	return &copied, nil
}

// Subreddit methods

func (s *MemStore) CreateSubreddit(ctx context.Context, sub *models.Subreddit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.subreddits {
		if existing.Name == sub.Name {
			return utils.NewDuplicateError("Subreddit already exists")
		}
	}
	copied := *sub
	copied.MemberIDs = append([]uuid.UUID(nil), sub.MemberIDs...)
	s.subreddits[sub.ID] = &copied
	return nil
}

func (s *MemStore) GetSubredditByName(ctx context.Context, name string) (*models.Subreddit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sub := range s.subreddits {
		if sub.Name == name {
			return copySubreddit(sub), nil
		}
	}
	return nil, utils.NewNotFoundError("Subreddit not found")
}

func (s *MemStore) ListSubreddits(ctx context.Context) ([]*models.Subreddit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	subs := make([]*models.Subreddit, 0, len(s.subreddits))
	for _, sub := range s.subreddits {
		subs = append(subs, copySubreddit(sub))
	}
	sort.Slice(subs, func(i, j int) bool { return subs[i].CreatedAt.After(subs[j].CreatedAt) })
	if len(subs) > database.MaxListedSubreddits {
		subs = subs[:database.MaxListedSubreddits]
	}
	return subs, nil
}

func (s *MemStore) AddSubredditMember(ctx context.Context, subredditID, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub, ok := s.subreddits[subredditID]
	if !ok {
		return utils.NewNotFoundError("Subreddit not found")
	}
	for _, id := range sub.MemberIDs {
		if id == userID {
			return nil
		}
	}
	sub.MemberIDs = append(sub.MemberIDs, userID)
	return nil
}

func (s *MemStore) RemoveSubredditMember(ctx context.Context, subredditID, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub, ok := s.subreddits[subredditID]
	if !ok {
		return utils.NewNotFoundError("Subreddit not found")
	}
	members := sub.MemberIDs[:0]
	for _, id := range sub.MemberIDs {
		if id != userID {
			members = append(members, id)
		}
	}
	sub.MemberIDs = members
	return nil
}

func (s *MemStore) SearchSubreddits(ctx context.Context, query string) ([]*models.Subreddit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q := strings.ToLower(query)
	matches := make([]*models.Subreddit, 0)
	for _, sub := range s.subreddits {
		if strings.Contains(strings.ToLower(sub.Name), q) ||
			strings.Contains(strings.ToLower(sub.Description), q) {
			matches = append(matches, copySubreddit(sub))
		}
	}
	if len(matches) > database.MaxSearchSubreddits {
		matches = matches[:database.MaxSearchSubreddits]
	}
	return matches, nil
}

// Post methods

func (s *MemStore) CreatePost(ctx context.Context, post *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts[post.ID] = copyPost(post)
	return nil
}

func (s *MemStore) GetPost(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if post, ok := s.posts[id]; ok {
		return copyPost(post), nil
	}
	return nil, utils.NewNotFoundError("Post not found")
}

func (s *MemStore) ListPosts(ctx context.Context, subredditID uuid.UUID, sortMode database.PostSort) ([]*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	posts := make([]*models.Post, 0)
	for _, post := range s.posts {
		if subredditID != uuid.Nil && post.SubredditID != subredditID {
			continue
		}
		posts = append(posts, copyPost(post))
	}
	sortPosts(posts, sortMode)
	if len(posts) > database.MaxListedPosts {
		posts = posts[:database.MaxListedPosts]
	}
	return posts, nil
}

func (s *MemStore) ListPostsByAuthor(ctx context.Context, authorID uuid.UUID) ([]*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	posts := make([]*models.Post, 0)
	for _, post := range s.posts {
		if post.AuthorID == authorID {
			posts = append(posts, copyPost(post))
		}
	}
	sortPosts(posts, database.SortNew)
	if len(posts) > database.MaxProfileItems {
		posts = posts[:database.MaxProfileItems]
	}
	return posts, nil
}

func (s *MemStore) SearchPosts(ctx context.Context, query string) ([]*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q := strings.ToLower(query)
	matches := make([]*models.Post, 0)
	for _, post := range s.posts {
		if strings.Contains(strings.ToLower(post.Title), q) ||
			strings.Contains(strings.ToLower(post.Content), q) {
			matches = append(matches, copyPost(post))
		}
	}
	sortPosts(matches, database.SortNew)
	if len(matches) > database.MaxSearchPosts {
		matches = matches[:database.MaxSearchPosts]
	}
	return matches, nil
}

func (s *MemStore) UpdatePostVotes(ctx context.Context, id uuid.UUID, votes int, voters []models.VoterEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	post, ok := s.posts[id]
	if !ok {
		return utils.NewNotFoundError("Post not found")
	}
	post.Votes = votes
	post.Voters = append([]models.VoterEntry(nil), voters...)
	return nil
}

// Comment methods

func (s *MemStore) CreateComment(ctx context.Context, comment *models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.comments[comment.ID] = copyComment(comment)
	return nil
}

func (s *MemStore) GetComment(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if comment, ok := s.comments[id]; ok {
		return copyComment(comment), nil
	}
	return nil, utils.NewNotFoundError("Comment not found")
}

func (s *MemStore) ListPostComments(ctx context.Context, postID uuid.UUID) ([]*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	comments := make([]*models.Comment, 0)
	for _, comment := range s.comments {
		if comment.PostID == postID {
			comments = append(comments, copyComment(comment))
		}
	}
	sort.Slice(comments, func(i, j int) bool { return comments[i].CreatedAt.After(comments[j].CreatedAt) })
	return comments, nil
}

func (s *MemStore) ListCommentsByAuthor(ctx context.Context, authorID uuid.UUID) ([]*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	comments := make([]*models.Comment, 0)
	for _, comment := range s.comments {
		if comment.AuthorID == authorID {
			comments = append(comments, copyComment(comment))
		}
	}
	sort.Slice(comments, func(i, j int) bool { return comments[i].CreatedAt.After(comments[j].CreatedAt) })
	if len(comments) > database.MaxProfileItems {
		comments = comments[:database.MaxProfileItems]
	}
	return comments, nil
}

func (s *MemStore) UpdateCommentVotes(ctx context.Context, id uuid.UUID, votes int, voters []models.VoterEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	comment, ok := s.comments[id]
	if !ok {
		return utils.NewNotFoundError("Comment not found")
	}
	comment.Votes = votes
	comment.Voters = append([]models.VoterEntry(nil), voters...)
	return nil
}

// Session methods

func (s *MemStore) CreateSession(ctx context.Context, session *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *session
	s.sessions[session.ID] = &copied
	return nil
}

func (s *MemStore) GetSession(ctx context.Context, id string) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session, ok := s.sessions[id]; ok {
		copied := *session
		return &copied, nil
	}
	return nil, utils.NewNotFoundError("Session not found")
}

func (s *MemStore) DeleteSession(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// SessionCount reports the number of live session records.
func (s *MemStore) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Populate helpers

func (s *MemStore) PopulatePosts(ctx context.Context, posts []*models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, post := range posts {
		if user, ok := s.users[post.AuthorID]; ok {
			ref := user.Ref()
			post.Author = &ref
		}
		if sub, ok := s.subreddits[post.SubredditID]; ok {
			post.Subreddit = &models.SubredditRef{ID: sub.ID, Name: sub.Name, Description: sub.Description}
		}
	}
	return nil
}

func (s *MemStore) PopulateComments(ctx context.Context, comments []*models.Comment, withPosts bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, comment := range comments {
		if user, ok := s.users[comment.AuthorID]; ok {
			ref := user.Ref()
			comment.Author = &ref
		}
		if withPosts {
			if post, ok := s.posts[comment.PostID]; ok {
				comment.Post = &models.PostRef{ID: post.ID, Title: post.Title}
			}
		}
	}
	return nil
}

func (s *MemStore) PopulateSubreddits(ctx context.Context, subs []*models.Subreddit, withMembers bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sub := range subs {
		if user, ok := s.users[sub.CreatorID]; ok {
			ref := user.Ref()
			sub.Creator = &ref
		}
		if withMembers {
			members := make([]models.UserRef, 0, len(sub.MemberIDs))
			for _, memberID := range sub.MemberIDs {
				if user, ok := s.users[memberID]; ok {
					members = append(members, user.Ref())
				}
			}
			sub.Members = members
		}
	}
	return nil
}

func copySubreddit(sub *models.Subreddit) *models.Subreddit {
	copied := *sub
	copied.MemberIDs = append([]uuid.UUID(nil), sub.MemberIDs...)
	return &copied
}

func copyPost(post *models.Post) *models.Post {
	copied := *post
	copied.Voters = append([]models.VoterEntry(nil), post.Voters...)
	return &copied
}

func copyComment(comment *models.Comment) *models.Comment {
	copied := *comment
	copied.Voters = append([]models.VoterEntry(nil), comment.Voters...)
	return &copied
}

func sortPosts(posts []*models.Post, mode database.PostSort) {
	sort.Slice(posts, func(i, j int) bool {
		if mode == database.SortTop && posts[i].Votes != posts[j].Votes {
			return posts[i].Votes > posts[j].Votes
		}
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
}
