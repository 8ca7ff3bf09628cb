package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func voterSum(v Votable) int {
	sum := 0
	for _, entry := range v.VoterList() {
		sum += entry.Vote
	}
	return sum
}

func TestApplyVoteNewVoter(t *testing.T) {
	post := &Post{Voters: []VoterEntry{}}
	alice := uuid.New()

	tally, err := ApplyVote(post, alice, VoteUp)
	require.NoError(t, err)
	assert.Equal(t, 1, tally)
	require.Len(t, post.Voters, 1)
	assert.Equal(t, alice, post.Voters[0].UserID)
	assert.Equal(t, VoteUp, post.Voters[0].Vote)
}

func TestApplyVoteRetraction(t *testing.T) {
	post := &Post{Voters: []VoterEntry{}}
	alice := uuid.New()

	_, err := ApplyVote(post, alice, VoteUp)
	require.NoError(t, err)

	// Pressing the same button again retracts the vote entirely.
	tally, err := ApplyVote(post, alice, VoteUp)
	require.NoError(t, err)
	assert.Equal(t, 0, tally)
	assert.Empty(t, post.Voters)
}

func TestApplyVoteFlip(t *testing.T) {
	comment := &Comment{Voters: []VoterEntry{}}
	bob := uuid.New()

	_, err := ApplyVote(comment, bob, VoteUp)
	require.NoError(t, err)

	// Flipping moves the tally by 2 and keeps a single entry.
	tally, err := ApplyVote(comment, bob, VoteDown)
	require.NoError(t, err)
	assert.Equal(t, -1, tally)
	require.Len(t, comment.Voters, 1)
	assert.Equal(t, VoteDown, comment.Voters[0].Vote)
}

func TestApplyVoteInvalidDirection(t *testing.T) {
	post := &Post{Votes: 3, Voters: []VoterEntry{{UserID: uuid.New(), Vote: VoteUp}}}

	for _, vote := range []int{0, 2, -2, 10} {
		tally, err := ApplyVote(post, uuid.New(), vote)
		assert.ErrorIs(t, err, ErrInvalidVote)
		assert.Equal(t, 3, tally)
		assert.Len(t, post.Voters, 1)
	}
}

func TestApplyVoteTwoUsers(t *testing.T) {
	post := &Post{Voters: []VoterEntry{}}
	alice := uuid.New()
	bob := uuid.New()

	tally, err := ApplyVote(post, alice, VoteUp)
	require.NoError(t, err)
	assert.Equal(t, 1, tally)

	tally, err = ApplyVote(post, alice, VoteUp)
	require.NoError(t, err)
	assert.Equal(t, 0, tally)

	tally, err = ApplyVote(post, bob, VoteDown)
	require.NoError(t, err)
	assert.Equal(t, -1, tally)

	require.Len(t, post.Voters, 1)
	assert.Equal(t, bob, post.Voters[0].UserID)
}

func TestApplyVoteTallyMatchesVoterSum(t *testing.T) {
	post := &Post{Voters: []VoterEntry{}}
	users := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}

	sequence := []struct {
		user int
		vote int
	}{
		{0, VoteUp}, {1, VoteUp}, {2, VoteDown},
		{0, VoteDown}, {1, VoteUp}, {2, VoteDown},
		{0, VoteDown}, {1, VoteDown},
	}

	for _, step := range sequence {
		tally, err := ApplyVote(post, users[step.user], step.vote)
		require.NoError(t, err)
		assert.Equal(t, voterSum(post), tally)

		seen := make(map[uuid.UUID]bool)
		for _, entry := range post.Voters {
			assert.False(t, seen[entry.UserID], "user appears twice in voter list")
			seen[entry.UserID] = true
		}
	}
}

func TestValidSubredditName(t *testing.T) {
	valid := []string{"golang", "ask_anything", "abc", "a1b2c3", "thisis21characterslng"}
	for _, name := range valid {
		assert.True(t, ValidSubredditName(name), "expected %q to be valid", name)
	}

	invalid := []string{"", "ab", "Golang", "has space", "has-dash", "way_too_long_for_a_name", "émoji"}
	for _, name := range invalid {
		assert.False(t, ValidSubredditName(name), "expected %q to be invalid", name)
	}
}

func TestNewSystemImporter(t *testing.T) {
	importer := NewSystemImporter()
	assert.Equal(t, SystemImporterDiscordID, importer.DiscordID)
	assert.Equal(t, "RedditImporter", importer.Username)
	assert.Equal(t, "0000", importer.Discriminator)
	assert.NotEqual(t, uuid.Nil, importer.ID)
}
