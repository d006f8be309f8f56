package domain

// Profile is the resolved display identity of a Slack user.
type Profile struct {
	Username  string // Display name, never empty for a resolved profile
	AvatarURL string // May be empty for users without a custom avatar
}

// InboundMessage is a received Slack message reduced to the fields the
// relay needs. Created fresh per event and discarded after processing.
type InboundMessage struct {
	AuthorID       string
	Text           string
	AttachmentURLs []string // Already-public URLs, appended as trailing lines in order. Slack delivers attachments as FileIDs, not URLs.
	FileIDs        []string // Slack file IDs, resolved to public links
	ChannelID      string
}

// DiscordMessage is a received Discord message reduced to the fields the
// relay needs.
type DiscordMessage struct {
	AuthorID       string
	AuthorUsername string
	AvatarURL      string
	Nickname       string // Guild nickname override, may be empty
	Text           string
	AttachmentURLs []string
	ChannelID      string
}

// OutboundMessage is the impersonating payload forwarded to the opposite
// platform. Constructed once per relay operation.
type OutboundMessage struct {
	Text      string
	Username  string
	AvatarURL string
}
