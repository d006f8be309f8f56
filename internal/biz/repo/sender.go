package repo

import (
	"context"

	"github.com/HackSoc/slack-discord-bridge/internal/biz/domain"
)

// SlackSender posts a message into the Slack bridge channel under the
// original author's identity (incoming webhook)
type SlackSender interface {
	SendAsUser(ctx context.Context, msg *domain.OutboundMessage) error
}

// DiscordSender posts a message into the Discord bridge channel under the
// original author's identity (channel webhook)
type DiscordSender interface {
	SendAsUser(ctx context.Context, msg *domain.OutboundMessage) error
}
