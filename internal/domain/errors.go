package domain

import "errors"

var (
	ErrSnapshotNotFound      = errors.New("snapshot not found")
	ErrSecretNotFound        = errors.New("secret not found")
	ErrInvalidBatch          = errors.New("invalid session batch")
	ErrInvalidEvent          = errors.New("invalid event")
	ErrInvalidComm           = errors.New("invalid comm")
	ErrInvalidActivity       = errors.New("invalid activity")
	ErrUpstreamUnavailable   = errors.New("upstream session source unavailable")
	ErrUpstreamNotConfigured = errors.New("upstream session source not configured")
	ErrAgentRequired         = errors.New("agent required")
	ErrUnknownAgent          = errors.New("unknown agent")
)
