package config

import "errors"

// Sentinel errors for configuration validation.
var (
	ErrInvalidExecutionTime   = errors.New("invalid max execution time: must be non-negative")
	ErrInvalidHTTPTimeout     = errors.New("invalid HTTP timeout: must be non-negative")
	ErrInvalidMaxRedirects    = errors.New("invalid max redirects: must be non-negative")
	ErrInvalidMaxResponseSize = errors.New("invalid max response size: must be non-negative")
	ErrInvalidCacheTTL        = errors.New("invalid cache TTL: must be non-negative")
	ErrInvalidMaxIterations   = errors.New("invalid max iterations: must be non-negative")
	ErrInvalidToolTimeout     = errors.New("invalid tool-call timeout: must be non-negative")
)
