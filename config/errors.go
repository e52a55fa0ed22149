package config

import "errors"

// ErrInvalidConfig is wrapped by Validate's error for every rejected
// field, so callers can test with errors.Is regardless of which field
// failed.
var ErrInvalidConfig = errors.New("config: invalid configuration")
