package address

import (
	"errors"
	"net"
	"net/url"
	"regexp"
	"strings"
)

// minHostLength is the shortest hostname accepted, e.g. "a.co".
const minHostLength = 4

// hostPattern accepts dot-separated labels ending in an alphabetic TLD of
// at least two characters. Multi-label suffixes such as ".com.br" match
// because every label before the last one is a generic label.
var hostPattern = regexp.MustCompile(`^([a-z0-9]([a-z0-9-]*[a-z0-9])?\.)+[a-z]{2,}$`)

// schemePattern detects an explicit "scheme://" prefix.
var schemePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*://`)

// Result is the outcome of normalizing a user-supplied address.
type Result struct {
	// Valid is true when Normalized holds a usable absolute URL.
	Valid bool `json:"valid"`

	// Normalized is the canonical form of the address. Empty when invalid.
	Normalized string `json:"normalized,omitempty"`

	// Error describes why the address was rejected. Empty when valid.
	Error string `json:"error,omitempty"`
}

// Err returns the rejection reason as an error, or nil for a valid result.
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	return errors.New(r.Error)
}

// Normalize validates a user-supplied address and returns its canonical form.
//
// An address without a scheme defaults to https. Scheme and host are
// lowercased, default ports and fragments are dropped, and path and query
// are preserved. Normalizing an already normalized address returns it
// unchanged.
func Normalize(raw string) Result {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return invalid(ErrEmptyURL)
	}

	if !schemePattern.MatchString(raw) {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return invalid(ErrMalformedURL)
	}

	u.Scheme = strings.ToLower(u.Scheme)
	if u.Scheme != "http" && u.Scheme != "https" {
		return invalid(ErrUnsupportedScheme)
	}

	host := strings.ToLower(u.Hostname())
	port := u.Port()
	if (u.Scheme == "https" && port == "443") || (u.Scheme == "http" && port == "80") {
		port = ""
	}

	if err := validateHost(host); err != nil {
		return invalid(err)
	}

	u.User = nil
	u.Fragment = ""
	u.RawFragment = ""
	if port != "" {
		u.Host = net.JoinHostPort(host, port)
	} else {
		u.Host = host
	}

	return Result{Valid: true, Normalized: u.String()}
}

// validateHost checks the hostname grammar.
func validateHost(host string) error {
	if host == "" {
		return ErrMissingHost
	}
	if len(host) < minHostLength {
		return ErrHostTooShort
	}
	if net.ParseIP(host) != nil {
		return ErrIPHost
	}
	if !hostPattern.MatchString(host) {
		return ErrInvalidHost
	}
	return nil
}

func invalid(err error) Result {
	return Result{Valid: false, Error: err.Error()}
}

// Hostname returns the lowercase hostname of an absolute URL, or "" when
// the URL cannot be parsed.
func Hostname(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}
