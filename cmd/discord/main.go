// cmd/discord/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/keshon/gearcmd/internal/config"
	"github.com/keshon/gearcmd/internal/discord"
	"github.com/keshon/gearcmd/internal/gears"
	"github.com/keshon/gearcmd/internal/middleware"
	"github.com/keshon/gearcmd/internal/storage"
	"github.com/keshon/gearcmd/internal/telemetry"
	"github.com/keshon/gearcmd/pkg/cmd"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	log.Logger = cfg.Logger(os.Stderr)

	if err := cfg.RequireToken(); err != nil {
		log.Fatal().Err(err).Msg("cannot start")
	}
	log.Info().Str("prefix", cfg.Prefix).Msg("starting gearcmd bot")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.OTelEndpoint)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up tracing")
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Warn().Err(err).Msg("failed to flush traces")
		}
	}()

	overrides, err := config.LoadCommandOverrides(cfg.CommandsFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load command overrides")
	}

	store, err := storage.New(cfg.StoragePath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open storage")
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error().Err(err).Msg("failed to save storage")
		}
	}()

	session, err := discord.NewSession(cfg.DiscordToken)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create discord session")
	}
	platform := discord.NewPlatform(session, cfg.LookupRate)

	d := cmd.NewDispatcher(platform,
		cmd.WithPrefix(cfg.Prefix),
		cmd.WithUnknownCommandResponse(cfg.UnknownCommandResponse),
		cmd.WithStrictLookups(cfg.StrictEntityLookup),
		cmd.WithLogger(log.Logger),
		cmd.WithMiddleware(
			middleware.WithTracing(otel.Tracer(telemetry.ServiceName)),
			middleware.WithCommandLogger(store),
		),
	)
	err = gears.Register(ctx, d, gears.Deps{
		History: store,
		Banner:  platform,
		Permissions: func(userID, channelID string) (int64, error) {
			return session.State.UserChannelPermissions(userID, channelID)
		},
		Latency:     platform.Latency,
		DeveloperID: cfg.DeveloperID,
		Overrides:   overrides,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to register gears")
	}

	if err := discord.NewBot(session, d).Run(ctx); err != nil {
		log.Error().Err(err).Msg("discord bot error")
		cancel()
	}

	log.Info().Msg("discord bot exited cleanly")
}
