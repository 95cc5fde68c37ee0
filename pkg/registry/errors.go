package registry

import "errors"

var (
	// ErrConfigNotFound is returned by Load when the config file does not exist.
	ErrConfigNotFound = errors.New("registry: config file not found")

	// ErrConfigInvalid is returned by Load when the config file cannot be parsed.
	ErrConfigInvalid = errors.New("registry: invalid config file")
)
