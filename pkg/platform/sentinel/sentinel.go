package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Loaders and adapters return these
// (wrapped in a coded domain error) so callers can tell a missing resource
// from malformed content:
// - ErrNotFound: a file or external tool does not exist
// - ErrUnavailable: an external capability cannot be reached or started
var (
	ErrNotFound    = errors.New("not found")
	ErrUnavailable = errors.New("unavailable")
)
