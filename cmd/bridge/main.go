// Command bridge relays human-authored messages between one Slack channel
// and one Discord channel, impersonating the original author on the
// receiving side via webhooks.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/HackSoc/slack-discord-bridge/internal/biz"
	"github.com/HackSoc/slack-discord-bridge/internal/conf"
	"github.com/HackSoc/slack-discord-bridge/internal/data"
	"github.com/HackSoc/slack-discord-bridge/internal/infra/discord"
	"github.com/HackSoc/slack-discord-bridge/internal/infra/slack"
	"github.com/HackSoc/slack-discord-bridge/internal/server"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Configuration errors are the only fatal condition; everything after
// startup is logged and survived.
const exitConfig = 2

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Stamp}).
		With().Timestamp().Logger()

	if err := godotenv.Load(); err != nil {
		logger.Info().Msg("no .env file found, using environment variables")
	}

	cfg := conf.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		logger.Error().Err(err).Msg("invalid config")
		os.Exit(exitConfig)
	}

	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	// Platform clients
	slackClient := slack.NewClient(
		cfg.Slack.BotToken,
		cfg.Slack.AppToken,
		cfg.Slack.UserToken,
		cfg.Debug,
		logger.With().Str("component", "slack").Logger(),
	)
	discordClient, err := discord.NewClient(
		cfg.Discord.BotToken,
		logger.With().Str("component", "discord").Logger(),
	)
	if err != nil {
		logger.Error().Err(err).Msg("invalid Discord configuration")
		os.Exit(exitConfig)
	}

	// Repository and usecase layers
	repos := data.NewRepositories(slackClient, discordClient, cfg)
	usecases := biz.NewUsecases(repos, logger)

	srv := server.NewBridgeServer(
		slackClient,
		discordClient,
		usecases.Profiles,
		usecases.Normalize,
		usecases.Adapt,
		repos.SlackSender,
		repos.DiscordSender,
		cfg,
		logger.With().Str("component", "bridge").Logger(),
	)

	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info().Msg("shutting down...")
		srv.Stop()
		cancel()
	}()

	logger.Info().Msg("starting Slack-Discord bridge")
	if err := srv.Start(ctx); err != nil {
		logger.Error().Err(err).Msg("bridge error")
		os.Exit(1)
	}
}
