package data

import (
	"context"

	"github.com/HackSoc/slack-discord-bridge/internal/biz/domain"
	"github.com/HackSoc/slack-discord-bridge/internal/biz/repo"
	"github.com/HackSoc/slack-discord-bridge/internal/infra/slack"
)

// slackProfileSource implements profile lookup against the Slack API
type slackProfileSource struct {
	client *slack.Client
}

// NewSlackProfileSource creates a new Slack profile source
func NewSlackProfileSource(client *slack.Client) repo.ProfileSource {
	return &slackProfileSource{client: client}
}

// FetchProfile fetches a user's display identity
func (r *slackProfileSource) FetchProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	profile, err := r.client.FetchProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &domain.Profile{
		Username:  profile.Username,
		AvatarURL: profile.AvatarURL,
	}, nil
}

// slackFileRepo implements public file sharing against the Slack API
type slackFileRepo struct {
	client *slack.Client
}

// NewSlackFileRepo creates a new Slack file repository
func NewSlackFileRepo(client *slack.Client) repo.FileRepo {
	return &slackFileRepo{client: client}
}

// PublicLink makes the file public and returns its public permalink
func (r *slackFileRepo) PublicLink(ctx context.Context, fileID string) (string, error) {
	return r.client.SharePublicFile(ctx, fileID)
}

// slackSender posts into the Slack bridge channel via an incoming webhook
type slackSender struct {
	client  *slack.Client
	hookURL string
}

// NewSlackSender creates a new Slack webhook sender
func NewSlackSender(client *slack.Client, hookURL string) repo.SlackSender {
	return &slackSender{client: client, hookURL: hookURL}
}

// SendAsUser posts the payload under the original author's identity
func (r *slackSender) SendAsUser(ctx context.Context, msg *domain.OutboundMessage) error {
	return r.client.PostWebhook(ctx, r.hookURL, msg.Text, msg.Username, msg.AvatarURL)
}
