package config

import "errors"

var (
	// ErrInvalidConfig wraps every Validate failure.
	ErrInvalidConfig = errors.New("config: invalid setting")

	// ErrLoadConfig wraps failures reading the MOTOPACE_CONFIG file or the environment.
	ErrLoadConfig = errors.New("config: cannot load")
)
