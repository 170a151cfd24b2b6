// Package lifecycle holds shared constants for application start/stop handling.
package lifecycle

import "time"

// DefaultTimeout bounds startup pings and graceful shutdown of infrastructure
// components (HTTP server, Postgres, Redis).
const DefaultTimeout = 10 * time.Second
