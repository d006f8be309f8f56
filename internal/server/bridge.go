// Package server wires the two platform clients to the relay pipeline.
//
// Each inbound event is dispatched on its own goroutine by the infra clients,
// so a relay suspended on a remote call never blocks later messages. The
// flip side is that same-author ordering is best-effort: sends are issued as
// soon as normalization completes.
package server

import (
	"context"
	"errors"

	"github.com/HackSoc/slack-discord-bridge/internal/biz/domain"
	"github.com/HackSoc/slack-discord-bridge/internal/biz/repo"
	"github.com/HackSoc/slack-discord-bridge/internal/biz/usecase"
	"github.com/HackSoc/slack-discord-bridge/internal/conf"
	"github.com/HackSoc/slack-discord-bridge/internal/infra/discord"
	"github.com/HackSoc/slack-discord-bridge/internal/infra/slack"
	"github.com/rs/zerolog"
)

// BridgeServer relays messages between the Slack and Discord bridge channels
type BridgeServer struct {
	slackClient   *slack.Client
	discordClient *discord.Client

	profiles   *usecase.ProfileUsecase
	normalizer *usecase.NormalizeUsecase
	adapter    *usecase.DiscordAdaptUsecase

	slackSender   repo.SlackSender
	discordSender repo.DiscordSender

	slackChannelID   string
	discordChannelID string
	discordWebhookID string // Own outbound identity, used for loop prevention

	logger zerolog.Logger
}

// NewBridgeServer creates a new bridge server
func NewBridgeServer(
	slackClient *slack.Client,
	discordClient *discord.Client,
	profiles *usecase.ProfileUsecase,
	normalizer *usecase.NormalizeUsecase,
	adapter *usecase.DiscordAdaptUsecase,
	slackSender repo.SlackSender,
	discordSender repo.DiscordSender,
	cfg *conf.Config,
	logger zerolog.Logger,
) *BridgeServer {
	return &BridgeServer{
		slackClient:      slackClient,
		discordClient:    discordClient,
		profiles:         profiles,
		normalizer:       normalizer,
		adapter:          adapter,
		slackSender:      slackSender,
		discordSender:    discordSender,
		slackChannelID:   cfg.Slack.ChannelID,
		discordChannelID: cfg.Discord.ChannelID,
		discordWebhookID: cfg.Discord.WebhookID,
		logger:           logger,
	}
}

// Start registers the event handlers and connects both clients. Blocks until
// ctx is cancelled.
func (s *BridgeServer) Start(ctx context.Context) error {
	s.slackClient.OnMessage(s.handleSlackMessage)
	s.slackClient.OnProfileChange(s.handleSlackProfileChange)
	s.discordClient.OnMessage(s.handleDiscordMessage)

	if err := s.discordClient.Start(); err != nil {
		return err
	}
	return s.slackClient.Start(ctx)
}

// Stop disconnects both clients
func (s *BridgeServer) Stop() {
	s.slackClient.Stop()
	s.discordClient.Stop()
}

// handleSlackMessage relays a Slack message to Discord. Per-message failures
// are logged and never propagate; one bad message must not stop the bridge.
func (s *BridgeServer) handleSlackMessage(msg *slack.Message) {
	if msg.UserID == "" {
		// No user ID => author is probably a webhook, likely our own.
		s.logger.Debug().Msg("ignoring webhook or system message")
		return
	}
	// file_share still carries user-authored content; every other subtype
	// (edits, deletes, joins) is a system notification.
	if msg.SubType != "" && msg.SubType != slack.SubTypeFileShare {
		s.logger.Debug().Str("subtype", msg.SubType).Msg("ignoring message subtype")
		return
	}
	if msg.ChannelID != s.slackChannelID {
		return
	}

	ctx := context.Background()

	payload, err := s.normalizer.Normalize(ctx, &domain.InboundMessage{
		AuthorID:  msg.UserID,
		Text:      msg.Text,
		FileIDs:   msg.FileIDs,
		ChannelID: msg.ChannelID,
	})
	if errors.Is(err, usecase.ErrEmptyMessage) {
		return
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("error while forwarding to Discord")
		return
	}

	s.logger.Debug().Str("username", payload.Username).Str("text", payload.Text).Msg("forwarding to Discord")
	if err := s.discordSender.SendAsUser(ctx, payload); err != nil {
		s.logger.Error().Err(err).Msg("error when posting to Discord")
	}
}

// handleSlackProfileChange overwrites the cached profile for the user
func (s *BridgeServer) handleSlackProfileChange(userID string, profile slack.UserProfile) {
	s.logger.Debug().Str("user_id", userID).Str("username", profile.Username).Msg("user profile changed")
	s.profiles.Update(userID, domain.Profile{
		Username:  profile.Username,
		AvatarURL: profile.AvatarURL,
	})
}

// handleDiscordMessage relays a Discord message to Slack
func (s *BridgeServer) handleDiscordMessage(msg *discord.Message) {
	if msg.ChannelID != s.discordChannelID {
		return
	}
	if msg.AuthorID == s.discordWebhookID {
		// Our own outbound webhook; forwarding it back would loop.
		return
	}

	ctx := context.Background()

	payload, err := s.adapter.Adapt(&domain.DiscordMessage{
		AuthorID:       msg.AuthorID,
		AuthorUsername: msg.AuthorUsername,
		AvatarURL:      msg.AvatarURL,
		Nickname:       msg.Nickname,
		Text:           msg.Content,
		AttachmentURLs: msg.AttachmentURLs,
		ChannelID:      msg.ChannelID,
	})
	if errors.Is(err, usecase.ErrEmptyMessage) {
		return
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("error while forwarding to Slack")
		return
	}

	s.logger.Debug().Str("username", payload.Username).Str("text", payload.Text).Msg("forwarding to Slack")
	if err := s.slackSender.SendAsUser(ctx, payload); err != nil {
		s.logger.Error().Err(err).Msg("error when posting to Slack")
	}
}
