package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment belongs to a post and may reply to another comment via ParentID.
// Parent references are checked for existence at creation only; acyclicity is
// not enforced.
type Comment struct {
	ID        uuid.UUID    `json:"id"`
	Content   string       `json:"content"`
	AuthorID  uuid.UUID    `json:"-"`
	PostID    uuid.UUID    `json:"postId"`
	ParentID  *uuid.UUID   `json:"parentComment,omitempty"`
	Votes     int          `json:"votes"`
	Voters    []VoterEntry `json:"voters"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`

	// Populated display fields, filled by the database populate helpers.
	Author *UserRef `json:"author,omitempty"`
	Post   *PostRef `json:"post,omitempty"`
}

func (c *Comment) VoteTally() int                 { return c.Votes }
func (c *Comment) SetVoteTally(n int)             { c.Votes = n }
func (c *Comment) VoterList() []VoterEntry        { return c.Voters }
func (c *Comment) SetVoterList(list []VoterEntry) { c.Voters = list }

var _ Votable = (*Comment)(nil)
