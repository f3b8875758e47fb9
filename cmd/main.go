package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"ai-interview-service/internal/app"
	"ai-interview-service/internal/config"
)

func main() {
	cfg := config.Load()

	a := app.New(cfg)
	if err := a.Start(); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	sum, err := a.Run(ctx)
	stop()
	a.Shutdown()

	if err != nil {
		log.Error().Err(err).
			Str("sessionId", sum.SessionID).
			Str("closeReason", sum.CloseReason).
			Msg("Interview ended with error")
		os.Exit(1)
	}

	log.Info().
		Str("sessionId", sum.SessionID).
		Str("closeReason", sum.CloseReason).
		Int("turns", len(sum.History)).
		Msg("Interview finished")
}
