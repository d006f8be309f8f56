// Package discord wraps a discordgo gateway session behind the small surface
// the bridge needs: an inbound message stream, a ready notification and
// webhook execution.
package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

// Message represents a received Discord message
type Message struct {
	AuthorID       string
	AuthorUsername string
	AvatarURL      string
	Nickname       string // Guild nickname override, may be empty
	ChannelID      string
	Content        string
	AttachmentURLs []string
}

// MessageHandler is the callback for received messages
type MessageHandler func(msg *Message)

// Client is the Discord gateway client
type Client struct {
	session *discordgo.Session
	logger  zerolog.Logger

	onMessage MessageHandler
	onReady   func()
}

// NewClient creates a new Discord client
func NewClient(botToken string, logger zerolog.Logger) (*Client, error) {
	session, err := discordgo.New("Bot " + botToken)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentMessageContent

	return &Client{
		session: session,
		logger:  logger,
	}, nil
}

// OnMessage sets the message handler
func (c *Client) OnMessage(handler MessageHandler) {
	c.onMessage = handler
}

// OnReady sets the callback invoked once the gateway session is ready
func (c *Client) OnReady(handler func()) {
	c.onReady = handler
}

// Start opens the gateway connection and dispatches events until Stop
func (c *Client) Start() error {
	c.session.AddHandler(func(_ *discordgo.Session, _ *discordgo.Ready) {
		c.logger.Info().Msg("logged in OK")
		if c.onReady != nil {
			c.onReady()
		}
	})
	c.session.AddHandler(func(_ *discordgo.Session, m *discordgo.MessageCreate) {
		c.handleMessageCreate(m)
	})

	if err := c.session.Open(); err != nil {
		return fmt.Errorf("open discord gateway: %w", err)
	}
	return nil
}

// Stop closes the gateway connection
func (c *Client) Stop() {
	if err := c.session.Close(); err != nil {
		c.logger.Error().Err(err).Msg("close discord gateway")
	}
}

func (c *Client) handleMessageCreate(m *discordgo.MessageCreate) {
	if c.onMessage == nil || m.Author == nil {
		return
	}

	msg := &Message{
		AuthorID:       m.Author.ID,
		AuthorUsername: m.Author.Username,
		AvatarURL:      m.Author.AvatarURL("256"),
		ChannelID:      m.ChannelID,
		Content:        m.Content,
	}
	if m.Member != nil {
		msg.Nickname = m.Member.Nick
	}
	for _, attachment := range m.Attachments {
		if attachment.URL != "" {
			msg.AttachmentURLs = append(msg.AttachmentURLs, attachment.URL)
		}
	}

	// discordgo already runs handlers on their own goroutines, but the relay
	// may block on Slack API calls, so detach here as well. Ordering across
	// sends is best-effort.
	go c.onMessage(msg)
}

// ExecuteWebhook posts a message through a channel webhook under the given
// identity
func (c *Client) ExecuteWebhook(ctx context.Context, webhookID, webhookToken, content, username, avatarURL string) error {
	_, err := c.session.WebhookExecute(webhookID, webhookToken, false, &discordgo.WebhookParams{
		Content:   content,
		Username:  username,
		AvatarURL: avatarURL,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("execute webhook: %w", err)
	}
	return nil
}
