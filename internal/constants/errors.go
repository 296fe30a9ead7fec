package constants

import "errors"

// Configuration errors.
var (
	ErrNoHostConfigured  = errors.New("no TeamCity host configured, use 'tcapi config set host <host>' or --host")
	ErrUnknownConfigKey  = errors.New("unknown configuration key")
	ErrInvalidPort       = errors.New("port must be a number between 1 and 65535")
	ErrInvalidParam      = errors.New("parameters must look like key=value")
	ErrUnsupportedFormat = errors.New("unsupported output format")
)

// Command errors.
var (
	ErrValueRequired = errors.New("a value is required")
	ErrInvalidNumber = errors.New("must be a non-negative number")
)
