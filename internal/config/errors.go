package config

import "errors"

// Configuration validation errors returned by Config.Validate and
// Config.ValidateServer. Callers can match them with errors.Is.
var (
	// ErrNoTarget is returned when no URL to audit is given.
	ErrNoTarget = errors.New("no target specified: provide at least one URL")

	// ErrInvalidTimeout is returned when the timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidMaxBodySize is returned when the max body size is negative.
	// Use 0 for the default limit.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")

	// ErrInvalidMetrics is returned when metrics are enabled with a
	// non-positive timeout or rate.
	ErrInvalidMetrics = errors.New("invalid metrics settings: timeout and rate must be positive")

	// ErrNoListenAddress is returned when the API has no address to listen on.
	ErrNoListenAddress = errors.New("no listen address specified")

	// ErrInvalidRateLimit is returned when the API rate or burst is not positive.
	ErrInvalidRateLimit = errors.New("invalid API rate limit: rate and burst must be positive")

	// ErrNoDBDir is returned when the API has nowhere to store reports.
	ErrNoDBDir = errors.New("no database directory specified")
)
