package relay

import (
	"fmt"
	"net/http"
)

// ValidationError means the request never reached the upstream.
type ValidationError struct {
	Field string
	Rule  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s (%s)", e.Field, e.Rule)
}

// UpstreamError is a reachable upstream answering with a non-2xx status.
type UpstreamError struct {
	StatusCode int
	Body       []byte
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream responded with %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// TransportError covers everything that kept us from getting a complete upstream response.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return "upstream transport: " + e.Err.Error() }

func (e *TransportError) Unwrap() error { return e.Err }
