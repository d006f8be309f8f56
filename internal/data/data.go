package data

import (
	"github.com/HackSoc/slack-discord-bridge/internal/biz/repo"
	"github.com/HackSoc/slack-discord-bridge/internal/conf"
	"github.com/HackSoc/slack-discord-bridge/internal/infra/discord"
	"github.com/HackSoc/slack-discord-bridge/internal/infra/slack"
)

// Repositories contains all repositories
type Repositories struct {
	Profiles      repo.ProfileSource
	ProfileCache  repo.ProfileCache
	Files         repo.FileRepo
	SlackSender   repo.SlackSender
	DiscordSender repo.DiscordSender
}

// NewRepositories creates all repositories
func NewRepositories(slackClient *slack.Client, discordClient *discord.Client, cfg *conf.Config) *Repositories {
	// File sharing needs the user token; without it shared files are skipped.
	var files repo.FileRepo
	if cfg.Slack.UserToken != "" {
		files = NewSlackFileRepo(slackClient)
	}

	return &Repositories{
		Profiles:      NewSlackProfileSource(slackClient),
		ProfileCache:  NewProfileCache(),
		Files:         files,
		SlackSender:   NewSlackSender(slackClient, cfg.Slack.WebhookURL),
		DiscordSender: NewDiscordSender(discordClient, cfg.Discord.WebhookID, cfg.Discord.WebhookToken),
	}
}
