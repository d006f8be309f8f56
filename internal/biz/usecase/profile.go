package usecase

import (
	"context"
	"fmt"

	"github.com/HackSoc/slack-discord-bridge/internal/biz/domain"
	"github.com/HackSoc/slack-discord-bridge/internal/biz/repo"
	"github.com/rs/zerolog"
)

// ProfileUsecase resolves Slack user identities through the profile cache
type ProfileUsecase struct {
	cache  repo.ProfileCache
	source repo.ProfileSource
	logger zerolog.Logger
}

// NewProfileUsecase creates a new profile usecase
func NewProfileUsecase(cache repo.ProfileCache, source repo.ProfileSource, logger zerolog.Logger) *ProfileUsecase {
	return &ProfileUsecase{
		cache:  cache,
		source: source,
		logger: logger,
	}
}

// Resolve returns the display identity for a user, fetching and caching it
// on a miss. Two concurrent misses for the same user may both fetch; the
// result is identical, so the duplicate put is harmless.
func (uc *ProfileUsecase) Resolve(ctx context.Context, userID string) (domain.Profile, error) {
	if profile, ok := uc.cache.Get(userID); ok {
		uc.logger.Debug().Str("user_id", userID).Str("username", profile.Username).Msg("profile already in cache")
		return profile, nil
	}

	uc.logger.Debug().Str("user_id", userID).Msg("fetching profile for uncached user")
	fetched, err := uc.source.FetchProfile(ctx, userID)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("fetch profile for user %s: %w", userID, err)
	}

	uc.cache.Put(userID, *fetched)
	uc.logger.Debug().Str("user_id", userID).Str("username", fetched.Username).Msg("profile cached")
	return *fetched, nil
}

// Update overwrites the cached profile for a user. This is the only
// invalidation path; it is driven by Slack user_profile_changed events.
func (uc *ProfileUsecase) Update(userID string, profile domain.Profile) {
	uc.cache.Put(userID, profile)
	uc.logger.Debug().Str("user_id", userID).Str("username", profile.Username).Msg("profile updated from change event")
}
