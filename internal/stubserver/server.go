package stubserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gridboard/mobile-core/internal/logger"
)

// Server wraps the stub handler in an http.Server with a graceful shutdown.
type Server struct {
	httpServer *http.Server
	logger     *logger.Logger
}

func NewServer(addr, signKey string, tokenTTL time.Duration, log *logger.Logger) *Server {
	handler := NewHandler(signKey, tokenTTL, log)

	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           handler.Init(),
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: log,
	}
}

// Run blocks serving requests until Shutdown is called.
func (s *Server) Run() error {
	s.logger.Info().Str("addr", s.httpServer.Addr).Msg("stub backend listening")
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
