package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const readHeaderTimeout = 10 * time.Second

type HTTPServer struct {
	logs   *zap.SugaredLogger
	server *http.Server
}

func NewHTTP(logger *zap.SugaredLogger, handler http.Handler, port string) *HTTPServer {
	return &HTTPServer{
		logs: logger,
		server: &http.Server{
			Addr:              ":" + port,
			Handler:           handler,
			ReadHeaderTimeout: readHeaderTimeout,
		},
	}
}

// Run starts serving in the background. The channel receives the listen
// error, if any, and is closed when the server stops.
func (s *HTTPServer) Run() <-chan error {
	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		s.logs.Infow("http server listening", "addr", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()
	return errCh
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	s.logs.Infow("http server shutting down", "addr", s.server.Addr)
	return s.server.Shutdown(ctx)
}
