package models

import (
	"time"

	"github.com/google/uuid"
)

// Subreddit is a community. Names are stored lowercase and are unique; the
// creator is automatically its first member.
type Subreddit struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	CreatorID   uuid.UUID   `json:"-"`
	MemberIDs   []uuid.UUID `json:"members"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`

	// Populated display fields, filled by the database populate helpers.
	Creator *UserRef  `json:"creator,omitempty"`
	Members []UserRef `json:"memberDetails,omitempty"`
}

// SubredditRef is the display subset of a subreddit attached to posts.
type SubredditRef struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
}

// HasMember reports whether the given user is in the member list.
func (s *Subreddit) HasMember(userID uuid.UUID) bool {
	for _, id := range s.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}
