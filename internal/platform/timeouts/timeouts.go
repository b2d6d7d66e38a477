// Package timeouts defines shared timeout constants used by TaskFlow servers.
// Centralizing these values keeps the HTTP and gRPC listeners in agreement
// and makes the durations discoverable.
package timeouts

import "time"

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Read caps the time spent reading a full HTTP request, body included.
const Read = 15 * time.Second

// Write caps the time spent writing an HTTP response.
const Write = 15 * time.Second

// Idle bounds how long keep-alive connections stay open between requests.
const Idle = 60 * time.Second

// Shutdown limits how long servers wait for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

// HealthCheck caps a single gRPC health probe.
const HealthCheck = time.Second
