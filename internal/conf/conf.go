package conf

import "os"

// Config represents application configuration
type Config struct {
	// Slack configuration
	Slack SlackConfig

	// Discord configuration
	Discord DiscordConfig

	// Debug mode
	Debug bool
}

// SlackConfig contains Slack configuration
type SlackConfig struct {
	BotToken   string
	AppToken   string
	UserToken  string // Optional, needed only for public file sharing
	ChannelID  string // Bridge channel on the Slack side
	WebhookURL string // Incoming webhook for impersonating sends into Slack
}

// DiscordConfig contains Discord configuration
type DiscordConfig struct {
	BotToken     string
	ChannelID    string // Bridge channel on the Discord side
	WebhookID    string // Channel webhook for impersonating sends into Discord
	WebhookToken string
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() *Config {
	return &Config{
		Slack: SlackConfig{
			BotToken:   os.Getenv("SLACK_BOT_TOKEN"),
			AppToken:   os.Getenv("SLACK_APP_TOKEN"),
			UserToken:  os.Getenv("SLACK_USER_TOKEN"),
			ChannelID:  os.Getenv("SLACK_CHANNEL_ID"),
			WebhookURL: os.Getenv("SLACK_WEBHOOK_URL"),
		},
		Discord: DiscordConfig{
			BotToken:     os.Getenv("DISCORD_BOT_TOKEN"),
			ChannelID:    os.Getenv("DISCORD_CHANNEL_ID"),
			WebhookID:    os.Getenv("DISCORD_WEBHOOK_ID"),
			WebhookToken: os.Getenv("DISCORD_WEBHOOK_TOKEN"),
		},
		Debug: os.Getenv("DEBUG") == "true",
	}
}

// Validate validates the configuration. A failure here is the only fatal
// condition in the bridge lifecycle.
func (c *Config) Validate() error {
	required := []struct {
		field string
		value string
	}{
		{"SLACK_BOT_TOKEN", c.Slack.BotToken},
		{"SLACK_APP_TOKEN", c.Slack.AppToken},
		{"SLACK_CHANNEL_ID", c.Slack.ChannelID},
		{"SLACK_WEBHOOK_URL", c.Slack.WebhookURL},
		{"DISCORD_BOT_TOKEN", c.Discord.BotToken},
		{"DISCORD_CHANNEL_ID", c.Discord.ChannelID},
		{"DISCORD_WEBHOOK_ID", c.Discord.WebhookID},
		{"DISCORD_WEBHOOK_TOKEN", c.Discord.WebhookToken},
	}
	for _, r := range required {
		if r.value == "" {
			return &ConfigError{Field: r.field, Message: "required"}
		}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
