// internal/database/populate.go
package database

import (
	"context"

	"github.com/ingStudiosOfficial/supereddit/internal/models"
	"github.com/ingStudiosOfficial/supereddit/internal/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// The populate helpers stand in for Mongoose's populate(): they batch-fetch
// referenced users and subreddits and attach display subsets to the records.
// References that no longer resolve are left nil rather than failing the
// whole response.

func (m *MongoDB) fetchUserRefs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.UserRef, error) {
	refs := make(map[uuid.UUID]models.UserRef, len(ids))
	if len(ids) == 0 {
		return refs, nil
	}

	idStrings := make([]string, 0, len(ids))
	for _, id := range ids {
		idStrings = append(idStrings, id.String())
	}

	cursor, err := m.Users.Find(ctx, bson.M{"_id": bson.M{"$in": idStrings}})
	if err != nil {
		return nil, utils.NewDatabaseError("failed to fetch user refs", err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var doc UserDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, utils.NewDatabaseError("failed to decode user", err)
		}
		user, err := documentToUser(&doc)
		if err != nil {
			return nil, err
		}
		refs[user.ID] = user.Ref()
	}
	if err := cursor.Err(); err != nil {
		return nil, utils.NewDatabaseError("cursor error", err)
	}

	return refs, nil
}

func (m *MongoDB) fetchSubredditRefs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.SubredditRef, error) {
	refs := make(map[uuid.UUID]models.SubredditRef, len(ids))
	if len(ids) == 0 {
		return refs, nil
	}

	idStrings := make([]string, 0, len(ids))
	for _, id := range ids {
		idStrings = append(idStrings, id.String())
	}

	cursor, err := m.Subreddits.Find(ctx, bson.M{"_id": bson.M{"$in": idStrings}})
	if err != nil {
		return nil, utils.NewDatabaseError("failed to fetch subreddit refs", err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var doc SubredditDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, utils.NewDatabaseError("failed to decode subreddit", err)
		}
		sub, err := documentToSubreddit(&doc)
		if err != nil {
			return nil, err
		}
		refs[sub.ID] = models.SubredditRef{ID: sub.ID, Name: sub.Name, Description: sub.Description}
	}
	if err := cursor.Err(); err != nil {
		return nil, utils.NewDatabaseError("cursor error", err)
	}

	return refs, nil
}

// PopulatePosts attaches author and subreddit display refs to posts.
func (m *MongoDB) PopulatePosts(ctx context.Context, posts []*models.Post) error {
	authorIDs := make([]uuid.UUID, 0, len(posts))
	subredditIDs := make([]uuid.UUID, 0, len(posts))
	for _, post := range posts {
		authorIDs = append(authorIDs, post.AuthorID)
		subredditIDs = append(subredditIDs, post.SubredditID)
	}

	userRefs, err := m.fetchUserRefs(ctx, authorIDs)
	if err != nil {
		return err
	}
	subRefs, err := m.fetchSubredditRefs(ctx, subredditIDs)
	if err != nil {
		return err
	}

	for _, post := range posts {
		if ref, ok := userRefs[post.AuthorID]; ok {
			refCopy := ref
			post.Author = &refCopy
		}
		if ref, ok := subRefs[post.SubredditID]; ok {
			refCopy := ref
			post.Subreddit = &refCopy
		}
	}
	return nil
}

// PopulateComments attaches author refs to comments and, when withPosts is
// set, the title of the post each comment belongs to (used on profiles).
func (m *MongoDB) PopulateComments(ctx context.Context, comments []*models.Comment, withPosts bool) error {
	authorIDs := make([]uuid.UUID, 0, len(comments))
	for _, comment := range comments {
		authorIDs = append(authorIDs, comment.AuthorID)
	}

	userRefs, err := m.fetchUserRefs(ctx, authorIDs)
	if err != nil {
		return err
	}

	var postRefs map[uuid.UUID]models.PostRef
	if withPosts {
		postRefs = make(map[uuid.UUID]models.PostRef)

		postIDs := make([]string, 0, len(comments))
		for _, comment := range comments {
			postIDs = append(postIDs, comment.PostID.String())
		}

		cursor, err := m.Posts.Find(ctx, bson.M{"_id": bson.M{"$in": postIDs}})
		if err != nil {
			return utils.NewDatabaseError("failed to fetch post refs", err)
		}
		defer cursor.Close(ctx)

		for cursor.Next(ctx) {
			var doc PostDocument
			if err := cursor.Decode(&doc); err != nil {
				return utils.NewDatabaseError("failed to decode post", err)
			}
			id, parseErr := uuid.Parse(doc.ID)
			if parseErr != nil {
				continue
			}
			postRefs[id] = models.PostRef{ID: id, Title: doc.Title}
		}
		if err := cursor.Err(); err != nil {
			return utils.NewDatabaseError("cursor error", err)
		}
	}

	for _, comment := range comments {
		if ref, ok := userRefs[comment.AuthorID]; ok {
			refCopy := ref
			comment.Author = &refCopy
		}
		if withPosts {
			if ref, ok := postRefs[comment.PostID]; ok {
				refCopy := ref
				comment.Post = &refCopy
			}
		}
	}
	return nil
}

// PopulateSubreddits attaches creator refs and, when withMembers is set, the
// display refs of every member (used on the subreddit detail page).
func (m *MongoDB) PopulateSubreddits(ctx context.Context, subs []*models.Subreddit, withMembers bool) error {
	ids := make([]uuid.UUID, 0, len(subs))
	for _, sub := range subs {
		ids = append(ids, sub.CreatorID)
		if withMembers {
			ids = append(ids, sub.MemberIDs...)
		}
	}

	userRefs, err := m.fetchUserRefs(ctx, ids)
	if err != nil {
		return err
	}

	for _, sub := range subs {
		if ref, ok := userRefs[sub.CreatorID]; ok {
			refCopy := ref
			sub.Creator = &refCopy
		}
		if withMembers {
			members := make([]models.UserRef, 0, len(sub.MemberIDs))
			for _, memberID := range sub.MemberIDs {
				if ref, ok := userRefs[memberID]; ok {
					members = append(members, ref)
				}
			}
			sub.Members = members
		}
	}
	return nil
}
