package biz

import (
	"github.com/HackSoc/slack-discord-bridge/internal/biz/usecase"
	"github.com/HackSoc/slack-discord-bridge/internal/data"
	"github.com/rs/zerolog"
)

// Usecases contains all usecases
type Usecases struct {
	Profiles  *usecase.ProfileUsecase
	Mentions  *usecase.MentionUsecase
	Normalize *usecase.NormalizeUsecase
	Adapt     *usecase.DiscordAdaptUsecase
}

// NewUsecases creates all usecases on top of the repository layer
func NewUsecases(repos *data.Repositories, logger zerolog.Logger) *Usecases {
	profiles := usecase.NewProfileUsecase(repos.ProfileCache, repos.Profiles,
		logger.With().Str("component", "profiles").Logger())
	mentions := usecase.NewMentionUsecase(profiles)

	return &Usecases{
		Profiles:  profiles,
		Mentions:  mentions,
		Normalize: usecase.NewNormalizeUsecase(profiles, mentions, repos.Files,
			logger.With().Str("component", "normalize").Logger()),
		Adapt: usecase.NewDiscordAdaptUsecase(
			logger.With().Str("component", "adapt").Logger()),
	}
}
