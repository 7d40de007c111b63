package config

import "errors"

// ErrInvalidConfig marks configuration the portal refuses to start with.
var ErrInvalidConfig = errors.New("invalid config")
