package models

import (
	"time"

	"github.com/google/uuid"
)

// SystemImporterDiscordID is the synthetic identity used as the author of
// posts imported from Reddit. It never corresponds to a real Discord account.
const SystemImporterDiscordID = "system_reddit_importer"

// User is a local account backed by a Discord identity. Users are created on
// the first OAuth callback and refreshed from the provider on every login.
type User struct {
	ID            uuid.UUID `json:"id"`
	DiscordID     string    `json:"discordId"`
	Username      string    `json:"username"`
	Discriminator string    `json:"discriminator"`
	Avatar        string    `json:"avatar"`
	LastLogin     time.Time `json:"lastLogin"`
	LoginCount    int       `json:"loginCount"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// UserRef is the display subset of a user attached to populated responses.
type UserRef struct {
	ID            uuid.UUID `json:"id"`
	Username      string    `json:"username"`
	Discriminator string    `json:"discriminator,omitempty"`
	Avatar        string    `json:"avatar"`
}

// Ref returns the display subset of the user.
func (u *User) Ref() UserRef {
	return UserRef{
		ID:            u.ID,
		Username:      u.Username,
		Discriminator: u.Discriminator,
		Avatar:        u.Avatar,
	}
}

// NewSystemImporter builds the synthetic user that owns imported posts.
func NewSystemImporter() *User {
	now := time.Now()
	return &User{
		ID:            uuid.New(),
		DiscordID:     SystemImporterDiscordID,
		Username:      "RedditImporter",
		Discriminator: "0000",
		Avatar:        "default",
		LastLogin:     now,
		LoginCount:    1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}
