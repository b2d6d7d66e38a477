// Package grpc hosts the gRPC health endpoint TaskFlow exposes next to its
// HTTP API, and the client helpers used to probe it.
package grpc

import (
	"context"
	"fmt"
	"time"

	gogrpc "google.golang.org/grpc"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

// HealthServer reports serving status for the process and named services.
type HealthServer struct {
	server   *health.Server
	services []string
}

// NewHealthServer registers a health service on grpcServer for the overall
// process and each named service. Everything starts NOT_SERVING.
func NewHealthServer(grpcServer *gogrpc.Server, services ...string) *HealthServer {
	server := health.NewServer()
	if grpcServer != nil {
		grpc_health_v1.RegisterHealthServer(grpcServer, server)
	}
	h := &HealthServer{server: server, services: append([]string{""}, services...)}
	h.set(grpc_health_v1.HealthCheckResponse_NOT_SERVING)
	return h
}

// MarkServing flips every registered service to SERVING.
func (h *HealthServer) MarkServing() {
	h.set(grpc_health_v1.HealthCheckResponse_SERVING)
}

// Shutdown reports NOT_SERVING for everything and ignores later updates.
func (h *HealthServer) Shutdown() {
	if h == nil || h.server == nil {
		return
	}
	h.server.Shutdown()
}

func (h *HealthServer) set(status grpc_health_v1.HealthCheckResponse_ServingStatus) {
	if h == nil || h.server == nil {
		return
	}
	for _, service := range h.services {
		h.server.SetServingStatus(service, status)
	}
}

// WaitForHealth blocks until the gRPC health check reports SERVING or the context ends.
func WaitForHealth(ctx context.Context, conn *gogrpc.ClientConn, service string, logf func(string, ...any)) error {
	if conn == nil {
		return fmt.Errorf("gRPC connection is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	healthClient := grpc_health_v1.NewHealthClient(conn)
	backoff := 200 * time.Millisecond
	for {
		callCtx, cancel := context.WithTimeout(ctx, time.Second)
		response, err := healthClient.Check(callCtx, &grpc_health_v1.HealthCheckRequest{Service: service})
		cancel()
		if err == nil && response.GetStatus() == grpc_health_v1.HealthCheckResponse_SERVING {
			if logf != nil {
				logf("gRPC health check is SERVING")
			}
			return nil
		}
		if logf != nil {
			if err != nil {
				logf("waiting for gRPC health: %v", err)
			} else {
				logf("waiting for gRPC health: status %s", response.GetStatus().String())
			}
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("wait for gRPC health: %w", ctx.Err())
		case <-time.After(backoff):
		}

		if backoff < time.Second {
			backoff *= 2
			if backoff > time.Second {
				backoff = time.Second
			}
		}
	}
}
