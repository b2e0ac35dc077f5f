package main

import (
	"context"
	"os"
	"os/signal"
	"salon/config"
	"salon/di"
	"salon/shared/logger"
	"salon/shared/timezone"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
)

const closeTimeout = 10 * time.Second

func main() {
	cfg := config.Get()

	logger.InitLogger(cfg)

	logger.SetLogLevel(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	worker := di.InitializeWorker()
	worker.Run(ctx, timezone.Now)

	closeCtx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	if err := worker.Close(closeCtx); err != nil {
		log.Error().Err(err).Msg("Failed to close reminder worker")
	}
}
