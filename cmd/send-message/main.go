// Command send-message posts a one-off message to the Slack incoming webhook
// under an arbitrary identity. Useful for verifying webhook configuration
// before starting the bridge.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/slack-go/slack"
)

func main() {
	_ = godotenv.Load()

	hookURL := os.Getenv("SLACK_WEBHOOK_URL")
	if hookURL == "" {
		fmt.Println("Error: SLACK_WEBHOOK_URL must be set")
		os.Exit(1)
	}

	if len(os.Args) < 3 {
		fmt.Println("Usage: send-message <username> <message> [avatar_url]")
		os.Exit(1)
	}

	username := os.Args[1]
	message := os.Args[2]
	avatarURL := ""
	if len(os.Args) > 3 {
		avatarURL = os.Args[3]
	}

	err := slack.PostWebhook(hookURL, &slack.WebhookMessage{
		Text:     message,
		Username: username,
		IconURL:  avatarURL,
	})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Message sent successfully!")
}
