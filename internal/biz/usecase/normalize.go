package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/HackSoc/slack-discord-bridge/internal/biz/domain"
	"github.com/HackSoc/slack-discord-bridge/internal/biz/repo"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// ErrEmptyMessage signals that a message normalized to empty content and
// must be suppressed rather than forwarded. It is not a failure.
var ErrEmptyMessage = errors.New("empty message content")

// NormalizeUsecase turns one inbound Slack message into an outbound
// impersonating payload for Discord
type NormalizeUsecase struct {
	profiles *ProfileUsecase
	mentions *MentionUsecase
	files    repo.FileRepo
	logger   zerolog.Logger
}

// NewNormalizeUsecase creates a new normalize usecase. files may be nil when
// no user token is configured; shared files are then skipped.
func NewNormalizeUsecase(profiles *ProfileUsecase, mentions *MentionUsecase, files repo.FileRepo, logger zerolog.Logger) *NormalizeUsecase {
	return &NormalizeUsecase{
		profiles: profiles,
		mentions: mentions,
		files:    files,
		logger:   logger,
	}
}

// Normalize resolves the author identity, rewrites mention markup and
// flattens attachments into trailing lines. Author resolution, mention
// resolution and file-link resolution are independent and run concurrently;
// the payload is assembled once all three have finished. Returns
// ErrEmptyMessage when there is nothing to forward.
func (uc *NormalizeUsecase) Normalize(ctx context.Context, msg *domain.InboundMessage) (*domain.OutboundMessage, error) {
	var (
		author    domain.Profile
		text      string
		fileLinks = make([]string, len(msg.FileIDs))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		author, err = uc.profiles.Resolve(gctx, msg.AuthorID)
		if err != nil {
			return fmt.Errorf("resolve author: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		text, err = uc.mentions.Resolve(gctx, msg.Text)
		return err
	})
	for i, fileID := range msg.FileIDs {
		g.Go(func() error {
			link, err := uc.publicFileLink(gctx, fileID)
			if err != nil {
				return err
			}
			fileLinks[i] = link
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var sb strings.Builder
	sb.WriteString(text)
	for _, url := range msg.AttachmentURLs {
		sb.WriteString("\n")
		sb.WriteString(url)
	}
	for _, link := range fileLinks {
		if link == "" {
			continue
		}
		sb.WriteString("\n")
		sb.WriteString(link)
	}

	content := sb.String()
	if content == "" {
		uc.logger.Debug().Str("username", author.Username).Msg("no content to forward")
		return nil, ErrEmptyMessage
	}

	return &domain.OutboundMessage{
		Text:      content,
		Username:  author.Username,
		AvatarURL: author.AvatarURL,
	}, nil
}

func (uc *NormalizeUsecase) publicFileLink(ctx context.Context, fileID string) (string, error) {
	if uc.files == nil {
		uc.logger.Debug().Str("file_id", fileID).Msg("no file repo configured, skipping shared file")
		return "", nil
	}
	link, err := uc.files.PublicLink(ctx, fileID)
	if err != nil {
		return "", fmt.Errorf("share file %s: %w", fileID, err)
	}
	return link, nil
}
