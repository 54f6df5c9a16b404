package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/Domenick1991/airadmin/config"
	healthapi "github.com/Domenick1991/airadmin/internal/api/health_service_api"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

const shutdownTimeout = 5 * time.Second

type Servers struct {
	grpcServer *grpc.Server
	httpServer *http.Server
}

// Run starts the HTTP server and, when configured, the gRPC health server.
// It blocks until ctx is canceled or a server fails.
func Run(ctx context.Context, cfg *config.Config, handler http.Handler, checker healthapi.Checker, log *zap.Logger) error {
	s := newServers(cfg, handler, checker)

	errCh := make(chan error, 2)

	if s.grpcServer != nil {
		lis, err := net.Listen("tcp", cfg.GRPC.Address)
		if err != nil {
			return fmt.Errorf("listen gRPC %s: %w", cfg.GRPC.Address, err)
		}
		log.Info("gRPC health server listening", zap.String("addr", lis.Addr().String()))
		go func() { errCh <- s.grpcServer.Serve(lis) }()
	}

	log.Info("HTTP server listening", zap.String("addr", s.httpServer.Addr))
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		s.stop()
		return err
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if s.grpcServer != nil {
			s.grpcServer.GracefulStop()
		}
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func newServers(cfg *config.Config, handler http.Handler, checker healthapi.Checker) *Servers {
	s := &Servers{
		httpServer: &http.Server{
			Addr:              cfg.HTTP.Address(),
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}

	if cfg.GRPC.Address != "" {
		s.grpcServer = grpc.NewServer()
		healthpb.RegisterHealthServer(s.grpcServer, healthapi.NewServer(checker))
	}
	return s
}

func (s *Servers) stop() {
	if s.grpcServer != nil {
		s.grpcServer.Stop()
	}
	_ = s.httpServer.Close()
}
