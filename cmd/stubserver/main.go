package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"
	"time"

	"github.com/gridboard/mobile-core/internal/logger"
	"github.com/gridboard/mobile-core/internal/stubserver"
)

func main() {
	addr := flag.String("a", ":8080", "listen address")
	signKey := flag.String("k", "dev-sign-key", "token signing key")
	tokenTTL := flag.Duration("ttl", 24*time.Hour, "bearer token lifetime")
	flag.Parse()

	log := logger.NewLogger("gridboard-stub")

	srv := stubserver.NewServer(*addr, *signKey, *tokenTTL, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown error")
		}
	}()

	if err := srv.Run(); err != nil {
		log.Fatal().Err(err).Msg("stub backend error")
	}
}
