package models

import (
	"time"

	"github.com/google/uuid"
)

// Post is a submission in a subreddit. Votes and the voter list live on the
// post document itself, so a vote is a single-document read-modify-write.
type Post struct {
	ID          uuid.UUID    `json:"id"`
	Title       string       `json:"title"`
	Content     string       `json:"content"`
	ImageURL    string       `json:"imageUrl,omitempty"`
	AuthorID    uuid.UUID    `json:"-"`
	SubredditID uuid.UUID    `json:"-"`
	Votes       int          `json:"votes"`
	Voters      []VoterEntry `json:"voters"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`

	// Populated display fields, filled by the database populate helpers.
	Author    *UserRef      `json:"author,omitempty"`
	Subreddit *SubredditRef `json:"subreddit,omitempty"`
}

// PostRef is the display subset of a post attached to profile comments.
type PostRef struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
}

func (p *Post) VoteTally() int                 { return p.Votes }
func (p *Post) SetVoteTally(n int)             { p.Votes = n }
func (p *Post) VoterList() []VoterEntry        { return p.Voters }
func (p *Post) SetVoterList(list []VoterEntry) { p.Voters = list }

var _ Votable = (*Post)(nil)
