package address

import "errors"

// Validation errors reported in Result.Error.
var (
	// ErrEmptyURL is returned for blank input.
	ErrEmptyURL = errors.New("URL is required")

	// ErrMalformedURL is returned when the input cannot be parsed as a URL.
	ErrMalformedURL = errors.New("URL is malformed")

	// ErrUnsupportedScheme is returned for schemes other than http and https.
	ErrUnsupportedScheme = errors.New("only http and https URLs are supported")

	// ErrMissingHost is returned when the URL has no hostname.
	ErrMissingHost = errors.New("URL has no hostname")

	// ErrHostTooShort is returned for hostnames shorter than four characters.
	ErrHostTooShort = errors.New("hostname is too short")

	// ErrIPHost is returned when the hostname is an IP literal.
	ErrIPHost = errors.New("IP addresses are not accepted, use a domain name")

	// ErrInvalidHost is returned when the hostname does not look like a domain.
	ErrInvalidHost = errors.New("hostname is not a valid domain name")
)
