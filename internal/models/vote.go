package models

import (
	"errors"

	"github.com/google/uuid"
)

// Vote directions. Anything else is rejected.
const (
	VoteUp   = 1
	VoteDown = -1
)

// ErrInvalidVote is returned when a vote is neither +1 nor -1.
var ErrInvalidVote = errors.New("vote must be 1 or -1")

// VoterEntry records one user's current vote on a votable entity. Each user
// appears at most once in an entity's voter list.
type VoterEntry struct {
	UserID uuid.UUID `json:"user"`
	Vote   int       `json:"vote"`
}

// Votable is anything carrying a vote tally and a voter list. Posts and
// comments share the same voting rules through this interface.
type Votable interface {
	VoteTally() int
	SetVoteTally(int)
	VoterList() []VoterEntry
	SetVoterList([]VoterEntry)
}

// ApplyVote applies one signed vote from userID to v and returns the new
// tally. The rules:
//
//   - no existing entry: the vote is recorded and added to the tally
//   - existing entry with the same sign: the vote is retracted
//   - existing entry with the opposite sign: the vote flips in place
//
// The invariant tally == sum(voter entries) holds before and after. Only the
// tally and the voter list are touched; persisting the change is the
// caller's job.
func ApplyVote(v Votable, userID uuid.UUID, vote int) (int, error) {
	if vote != VoteUp && vote != VoteDown {
		return v.VoteTally(), ErrInvalidVote
	}

	voters := v.VoterList()
	existing := -1
	for i, entry := range voters {
		if entry.UserID == userID {
			existing = i
			break
		}
	}

	switch {
	case existing < 0:
		voters = append(voters, VoterEntry{UserID: userID, Vote: vote})
		v.SetVoteTally(v.VoteTally() + vote)

	case voters[existing].Vote == vote:
		// Same button twice retracts the vote.
		voters = append(voters[:existing], voters[existing+1:]...)
		v.SetVoteTally(v.VoteTally() - vote)

	default:
		v.SetVoteTally(v.VoteTally() - voters[existing].Vote + vote)
		voters[existing].Vote = vote
	}

	v.SetVoterList(voters)
	return v.VoteTally(), nil
}
