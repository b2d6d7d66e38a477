package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"google.golang.org/grpc"

	platformgrpc "github.com/louisbranch/taskflow/internal/platform/grpc"
	"github.com/louisbranch/taskflow/internal/platform/timeouts"
	httpapi "github.com/louisbranch/taskflow/internal/services/taskflow/api/http"
	"github.com/louisbranch/taskflow/internal/services/taskflow/auth"
	"github.com/louisbranch/taskflow/internal/services/taskflow/storage/sqlite"
	"github.com/louisbranch/taskflow/internal/services/taskflow/tasks"
	"github.com/louisbranch/taskflow/internal/telemetry"
)

// HealthService is the gRPC health service name reported next to the
// overall process status.
const HealthService = "taskflow.v1.API"

// Config holds everything needed to assemble a Server.
type Config struct {
	HTTPAddr   string
	GRPCAddr   string
	DBPath     string
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int
	StaticDir  string
	CORSOrigin string
}

// Server hosts the TaskFlow HTTP API.
type Server struct {
	httpListener net.Listener
	httpServer   *http.Server
	grpcListener net.Listener
	grpcServer   *grpc.Server
	health       *platformgrpc.HealthServer
	store        *sqlite.Store
}

// New opens storage, wires services and binds listeners.
func New(cfg Config) (*Server, error) {
	issuer, err := auth.NewTokenIssuer(auth.TokenConfig{
		Secret: []byte(cfg.JWTSecret),
		TTL:    cfg.TokenTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("configure tokens: %w", err)
	}

	store, err := openStore(cfg.DBPath)
	if err != nil {
		return nil, err
	}

	handler, err := buildHandler(cfg, store, issuer)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	httpListener, err := net.Listen("tcp", cfg.HTTPAddr)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("listen on http addr %s: %w", cfg.HTTPAddr, err)
	}

	s := &Server{
		httpListener: httpListener,
		httpServer: &http.Server{
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
			ReadTimeout:       timeouts.Read,
			WriteTimeout:      timeouts.Write,
			IdleTimeout:       timeouts.Idle,
		},
		store: store,
	}

	if addr := strings.TrimSpace(cfg.GRPCAddr); addr != "" {
		grpcListener, err := net.Listen("tcp", addr)
		if err != nil {
			_ = httpListener.Close()
			_ = store.Close()
			return nil, fmt.Errorf("listen on grpc addr %s: %w", addr, err)
		}
		s.grpcListener = grpcListener
		s.grpcServer = grpc.NewServer(platformgrpc.DefaultServerOptions()...)
		s.health = platformgrpc.NewHealthServer(s.grpcServer, HealthService)
	}
	return s, nil
}

func buildHandler(cfg Config, store *sqlite.Store, issuer *auth.TokenIssuer) (http.Handler, error) {
	opts := []auth.Option{auth.WithAudit(telemetry.NewEmitter(store))}
	if cfg.BcryptCost > 0 {
		opts = append(opts, auth.WithBcryptCost(cfg.BcryptCost))
	}
	authService, err := auth.NewService(store, issuer, opts...)
	if err != nil {
		return nil, fmt.Errorf("build auth service: %w", err)
	}
	taskService, err := tasks.NewService(store)
	if err != nil {
		return nil, fmt.Errorf("build task service: %w", err)
	}
	handler, err := httpapi.NewHandler(httpapi.Config{
		Auth:       authService,
		Tasks:      taskService,
		StaticDir:  cfg.StaticDir,
		CORSOrigin: cfg.CORSOrigin,
	})
	if err != nil {
		return nil, fmt.Errorf("build http handler: %w", err)
	}
	return handler, nil
}

// Addr returns the HTTP listener address.
func (s *Server) Addr() string {
	if s == nil || s.httpListener == nil {
		return ""
	}
	return s.httpListener.Addr().String()
}

// GRPCAddr returns the gRPC health listener address, or empty when disabled.
func (s *Server) GRPCAddr() string {
	if s == nil || s.grpcListener == nil {
		return ""
	}
	return s.grpcListener.Addr().String()
}

// Run creates and serves a TaskFlow server until the context ends.
func Run(ctx context.Context, cfg Config) error {
	server, err := New(cfg)
	if err != nil {
		return err
	}
	return server.Serve(ctx)
}

// Serve starts the listeners and blocks until they stop or the context ends.
func (s *Server) Serve(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	defer s.closeStore()

	log.Printf("taskflow HTTP server listening at %v", s.httpListener.Addr())
	httpErr := make(chan error, 1)
	go func() {
		httpErr <- s.httpServer.Serve(s.httpListener)
	}()

	grpcErr := make(chan error, 1)
	if s.grpcServer != nil {
		log.Printf("taskflow gRPC health listening at %v", s.grpcListener.Addr())
		go func() {
			grpcErr <- s.grpcServer.Serve(s.grpcListener)
		}()
		s.health.MarkServing()
	}

	shutdownGRPC := func() {
		if s.grpcServer == nil {
			return
		}
		s.health.Shutdown()
		s.grpcServer.GracefulStop()
	}
	shutdownHTTP := func() error {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	}

	select {
	case <-ctx.Done():
		shutdownGRPC()
		if err := shutdownHTTP(); err != nil {
			return fmt.Errorf("shutdown HTTP: %w", err)
		}
		return nil
	case err := <-httpErr:
		shutdownGRPC()
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve HTTP: %w", err)
	case err := <-grpcErr:
		_ = shutdownHTTP()
		if err == nil || errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		return fmt.Errorf("serve gRPC: %w", err)
	}
}

func openStore(path string) (*sqlite.Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = filepath.Join("data", "taskflow.db")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}

	store, err := sqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open taskflow sqlite store: %w", err)
	}
	return store, nil
}

func (s *Server) closeStore() {
	if s == nil || s.store == nil {
		return
	}
	if err := s.store.Close(); err != nil {
		log.Printf("close taskflow store: %v", err)
	}
}
