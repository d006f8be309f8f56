package repo

import "context"

// FileRepo resolves Slack file IDs to publicly reachable links
type FileRepo interface {
	// PublicLink makes the file public and returns its public permalink
	PublicLink(ctx context.Context, fileID string) (string, error)
}
