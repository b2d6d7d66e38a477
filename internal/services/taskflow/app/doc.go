// Package server assembles the TaskFlow process: SQLite store, auth and task
// services, the HTTP API and the optional gRPC health endpoint.
package server
