package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/sync/errgroup"
)

var (
	// Channel names can't contain [&<>], so the channel rewrite is safe to
	// run before entity unescaping.
	channelMentionRe = regexp.MustCompile(`<#(?:.+?)\|([a-z0-9_-]+)>`)
	userMentionRe    = regexp.MustCompile(`<@(.+?)>`)
)

// MentionUsecase rewrites Slack markup tokens into plain text
type MentionUsecase struct {
	profiles *ProfileUsecase
}

// NewMentionUsecase creates a new mention usecase
func NewMentionUsecase(profiles *ProfileUsecase) *MentionUsecase {
	return &MentionUsecase{profiles: profiles}
}

// Resolve rewrites channel mentions, user mentions and entity escapes in a
// Slack message body. If any user lookup fails the whole message fails;
// partially substituted text is never forwarded.
func (uc *MentionUsecase) Resolve(ctx context.Context, text string) (string, error) {
	clean := channelMentionRe.ReplaceAllString(text, "#$1")

	matches := userMentionRe.FindAllStringSubmatch(clean, -1)

	type replacement struct {
		token    string
		username string
	}
	replacements := make([]replacement, len(matches))

	g, gctx := errgroup.WithContext(ctx)
	for i, match := range matches {
		g.Go(func() error {
			profile, err := uc.profiles.Resolve(gctx, match[1])
			if err != nil {
				return err
			}
			replacements[i] = replacement{token: match[0], username: profile.Username}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", fmt.Errorf("resolve user mention: %w", err)
	}

	// Replace every occurrence of each token: the same user mentioned twice
	// must resolve both times.
	for _, r := range replacements {
		clean = strings.ReplaceAll(clean, r.token, "@"+r.username)
	}

	return unescapeEntities(clean), nil
}

// unescapeEntities unescapes the Slack-reserved HTML entities. The order is
// fixed: unescaping &amp; last keeps "&amp;lt;" from collapsing to "<".
func unescapeEntities(text string) string {
	text = strings.ReplaceAll(text, "&gt;", ">")
	text = strings.ReplaceAll(text, "&lt;", "<")
	return strings.ReplaceAll(text, "&amp;", "&")
}
