package usecase

import (
	"regexp"
	"strings"

	"github.com/HackSoc/slack-discord-bridge/internal/biz/domain"
	"github.com/rs/zerolog"
)

// Discord serves .webp or .gif variants for animated avatars; Slack webhook
// icons need a static image.
var animatedAvatarRe = regexp.MustCompile(`(?i)\.(webp|gif)(\?.*)?$`)

// DiscordAdaptUsecase turns one inbound Discord message into an outbound
// impersonating payload for Slack. Simpler than the Slack direction: Discord
// delivers mentions already rendered as plain text, so only identity
// extraction and attachment flattening are needed.
type DiscordAdaptUsecase struct {
	logger zerolog.Logger
}

// NewDiscordAdaptUsecase creates a new Discord adapter usecase
func NewDiscordAdaptUsecase(logger zerolog.Logger) *DiscordAdaptUsecase {
	return &DiscordAdaptUsecase{logger: logger}
}

// Adapt extracts the author's display identity and flattens attachments into
// trailing lines. Returns ErrEmptyMessage when there is nothing to forward.
func (uc *DiscordAdaptUsecase) Adapt(msg *domain.DiscordMessage) (*domain.OutboundMessage, error) {
	displayName := msg.AuthorUsername
	if msg.Nickname != "" {
		displayName = msg.Nickname
	}

	avatarURL := animatedAvatarRe.ReplaceAllString(msg.AvatarURL, ".png")

	var sb strings.Builder
	sb.WriteString(msg.Text)
	for _, url := range msg.AttachmentURLs {
		if url == "" {
			continue
		}
		sb.WriteString("\n")
		sb.WriteString(url)
	}

	content := sb.String()
	if content == "" {
		uc.logger.Debug().Str("username", displayName).Msg("no content to forward")
		return nil, ErrEmptyMessage
	}

	uc.logger.Debug().Str("username", displayName).Str("avatar_url", avatarURL).Msg("adapted discord message")

	return &domain.OutboundMessage{
		Text:      content,
		Username:  displayName,
		AvatarURL: avatarURL,
	}, nil
}
