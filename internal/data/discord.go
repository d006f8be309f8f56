package data

import (
	"context"

	"github.com/HackSoc/slack-discord-bridge/internal/biz/domain"
	"github.com/HackSoc/slack-discord-bridge/internal/biz/repo"
	"github.com/HackSoc/slack-discord-bridge/internal/infra/discord"
)

// discordSender posts into the Discord bridge channel via a channel webhook
type discordSender struct {
	client       *discord.Client
	webhookID    string
	webhookToken string
}

// NewDiscordSender creates a new Discord webhook sender
func NewDiscordSender(client *discord.Client, webhookID, webhookToken string) repo.DiscordSender {
	return &discordSender{
		client:       client,
		webhookID:    webhookID,
		webhookToken: webhookToken,
	}
}

// SendAsUser posts the payload under the original author's identity
func (r *discordSender) SendAsUser(ctx context.Context, msg *domain.OutboundMessage) error {
	return r.client.ExecuteWebhook(ctx, r.webhookID, r.webhookToken, msg.Text, msg.Username, msg.AvatarURL)
}
