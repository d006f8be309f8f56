package repo

import (
	"context"

	"github.com/HackSoc/slack-discord-bridge/internal/biz/domain"
)

// ProfileSource is the remote profile lookup interface
// Responsible for fetching user profiles from the Slack API
type ProfileSource interface {
	// FetchProfile fetches the display identity of a user
	FetchProfile(ctx context.Context, userID string) (*domain.Profile, error)
}

// ProfileCache is the process-wide profile cache interface
// Entries live for the bridge lifetime; there is no eviction
type ProfileCache interface {
	// Get looks up a cached profile; no side effect
	Get(userID string) (domain.Profile, bool)

	// Put stores a profile, unconditionally overwriting any previous entry
	Put(userID string, profile domain.Profile)
}
