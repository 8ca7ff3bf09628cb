package models

import "regexp"

// Field limits, matching the stored schema.
const (
	MaxSubredditDescriptionLen = 500
	MaxPostTitleLen            = 300
	MaxPostContentLen          = 40000
	MaxCommentContentLen       = 10000
)

// Subreddit names are 3-21 lowercase alphanumerics or underscores. Callers
// must lowercase the name before validating.
var SubredditNamePattern = regexp.MustCompile(`^[a-z0-9_]{3,21}$`)

// ValidSubredditName reports whether name (already lowercased) is a legal
// subreddit name.
func ValidSubredditName(name string) bool {
	return SubredditNamePattern.MatchString(name)
}
