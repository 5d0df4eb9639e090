package constants

// Health endpoints; API routes are defined in internal/router.
const (
	PathHealth = "/health"
	PathReady  = "/ready"
)
