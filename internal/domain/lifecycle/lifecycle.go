// Package lifecycle holds shared timings for start and stop hooks.
package lifecycle

import "time"

// DefaultTimeout bounds start pings and graceful shutdowns.
const DefaultTimeout = 10 * time.Second
