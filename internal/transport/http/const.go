package http

import "time"

const (
	// DefaultTimeout is the default timeout duration for HTTP requests.
	DefaultTimeout = 60 * time.Second

	// DefaultMaxBodyCapture is the default maximum number of request body
	// bytes copied into a captured record.
	DefaultMaxBodyCapture = 64 * 1024 // 64 KB
)
