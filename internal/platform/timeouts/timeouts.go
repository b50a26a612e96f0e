// Package timeouts defines shared timeout constants used across processes.
package timeouts

import "time"

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long an HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

// StoreWatch is the default interval between slot version polls.
const StoreWatch = time.Second

// TelemetryShutdown caps how long span export may take on exit.
const TelemetryShutdown = 5 * time.Second
