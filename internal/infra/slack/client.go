// Package slack wraps the slack-go Socket Mode client behind the small
// surface the bridge needs: an inbound message stream, profile-change
// notifications, profile lookup, public file sharing and webhook posting.
package slack

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
	"github.com/slack-go/slack/socketmode"
)

// SubTypeFileShare marks a message that shares one or more files. Unlike the
// edit/delete/join subtypes it still carries user-authored content.
const SubTypeFileShare = "file_share"

// Message represents a received Slack message
type Message struct {
	UserID    string // Empty for webhook/system-authored messages
	Text      string
	ChannelID string
	SubType   string   // Non-empty for edits, deletes, joins etc.
	FileIDs   []string // IDs of files shared with the message
}

// UserProfile is a user's display identity as reported by Slack
type UserProfile struct {
	Username  string
	AvatarURL string
}

// MessageHandler is the callback for received messages
type MessageHandler func(msg *Message)

// ProfileChangeHandler is the callback for user profile changes
type ProfileChangeHandler func(userID string, profile UserProfile)

// Client is the Slack Socket Mode client
type Client struct {
	api     *slack.Client
	userAPI *slack.Client // User-token client, needed for files.sharedPublicURL
	socket  *socketmode.Client
	logger  zerolog.Logger

	onMessage       MessageHandler
	onProfileChange ProfileChangeHandler
	onConnected     func()

	cancel context.CancelFunc
}

// NewClient creates a new Slack client. userToken may be empty; file sharing
// is then unavailable.
func NewClient(botToken, appToken, userToken string, debug bool, logger zerolog.Logger) *Client {
	api := slack.New(
		botToken,
		slack.OptionAppLevelToken(appToken),
	)

	var userAPI *slack.Client
	if userToken != "" {
		userAPI = slack.New(userToken)
	}

	return &Client{
		api:     api,
		userAPI: userAPI,
		socket:  socketmode.New(api, socketmode.OptionDebug(debug)),
		logger:  logger,
	}
}

// OnMessage sets the message handler
func (c *Client) OnMessage(handler MessageHandler) {
	c.onMessage = handler
}

// OnProfileChange sets the profile change handler
func (c *Client) OnProfileChange(handler ProfileChangeHandler) {
	c.onProfileChange = handler
}

// OnConnected sets the callback invoked once the socket is connected
func (c *Client) OnConnected(handler func()) {
	c.onConnected = handler
}

// Start connects to Slack in Socket Mode and dispatches events until Stop is
// called or ctx is cancelled. Blocks.
func (c *Client) Start(ctx context.Context) error {
	ctx, c.cancel = context.WithCancel(ctx)

	go c.handleEvents(ctx)

	if err := c.socket.RunContext(ctx); err != nil && ctx.Err() == nil {
		return fmt.Errorf("slack socket mode: %w", err)
	}
	return nil
}

// Stop disconnects the client
func (c *Client) Stop() {
	if c.cancel != nil {
		c.cancel()
	}
}

func (c *Client) handleEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case evt, ok := <-c.socket.Events:
			if !ok {
				return
			}
			c.handleEvent(evt)
		}
	}
}

func (c *Client) handleEvent(evt socketmode.Event) {
	switch evt.Type {
	case socketmode.EventTypeConnecting:
		c.logger.Debug().Msg("socket mode connecting")

	case socketmode.EventTypeConnected:
		c.logger.Info().Msg("logged in OK")
		if c.onConnected != nil {
			c.onConnected()
		}

	case socketmode.EventTypeConnectionError:
		c.logger.Error().Msg("socket mode connection error")

	case socketmode.EventTypeEventsAPI:
		eventsAPIEvent, ok := evt.Data.(slackevents.EventsAPIEvent)
		if !ok {
			return
		}
		// Ack before processing so Slack does not redeliver while a relay
		// operation is in flight.
		c.socket.Ack(*evt.Request)
		c.handleEventsAPI(eventsAPIEvent, fileIDsFromPayload(evt.Request.Payload))
	}
}

func (c *Client) handleEventsAPI(event slackevents.EventsAPIEvent, fileIDs []string) {
	if event.Type != slackevents.CallbackEvent {
		return
	}

	switch ev := event.InnerEvent.Data.(type) {
	case *slackevents.MessageEvent:
		if c.onMessage == nil {
			return
		}
		msg := &Message{
			UserID:    ev.User,
			Text:      ev.Text,
			ChannelID: ev.Channel,
			SubType:   ev.SubType,
			FileIDs:   fileIDs,
		}
		// Each message gets its own goroutine: a relay suspended on a remote
		// call must not hold up the socket event loop. Ordering across sends
		// is therefore best-effort.
		go c.onMessage(msg)

	case *slackevents.UserProfileChangedEvent:
		if c.onProfileChange == nil || ev.User == nil {
			return
		}
		c.onProfileChange(ev.User.ID, profileFromUser(ev.User))
	}
}

// fileIDsFromPayload extracts shared-file IDs from the raw events API
// payload. The decoded slackevents message structs do not carry the files
// list, so it has to come from the envelope itself.
func fileIDsFromPayload(payload json.RawMessage) []string {
	var envelope struct {
		Event struct {
			Files []struct {
				ID string `json:"id"`
			} `json:"files"`
		} `json:"event"`
	}
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil
	}

	var ids []string
	for _, f := range envelope.Event.Files {
		if f.ID != "" {
			ids = append(ids, f.ID)
		}
	}
	return ids
}

// FetchProfile fetches a user's display identity via users.info
func (c *Client) FetchProfile(ctx context.Context, userID string) (UserProfile, error) {
	user, err := c.api.GetUserInfoContext(ctx, userID)
	if err != nil {
		return UserProfile{}, fmt.Errorf("users.info for %s: %w", userID, err)
	}
	return profileFromUser(user), nil
}

// SharePublicFile makes a file public and returns its public permalink.
// Requires the user token.
func (c *Client) SharePublicFile(ctx context.Context, fileID string) (string, error) {
	if c.userAPI == nil {
		return "", fmt.Errorf("share file %s: no user token configured", fileID)
	}
	file, _, _, err := c.userAPI.ShareFilePublicURLContext(ctx, fileID)
	if err != nil {
		return "", fmt.Errorf("files.sharedPublicURL for %s: %w", fileID, err)
	}
	return file.PermalinkPublic, nil
}

// PostWebhook posts a message to a Slack incoming webhook under the given
// identity
func (c *Client) PostWebhook(ctx context.Context, url, text, username, iconURL string) error {
	return slack.PostWebhookContext(ctx, url, &slack.WebhookMessage{
		Text:     text,
		Username: username,
		IconURL:  iconURL,
	})
}

// profileFromUser maps a Slack user to a display identity. The display name
// falls back to the real name; both are the normalized variants.
func profileFromUser(user *slack.User) UserProfile {
	username := user.Profile.DisplayNameNormalized
	if username == "" {
		username = user.Profile.RealNameNormalized
	}
	return UserProfile{
		Username:  username,
		AvatarURL: user.Profile.Image192,
	}
}
