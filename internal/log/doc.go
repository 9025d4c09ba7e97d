// Package log provides secure logging functionality with automatic sanitization
// of sensitive information, built on top of the standard slog package.
//
// This package extends slog to provide:
//   - Automatic sanitization of sensitive values (cookies, tokens, API keys)
//   - Masking of secret query parameters in logged URLs and errors
//   - Configurable log levels with verbose mode support
//
// The PageSpeed Insights client sends its API key as a "key" query
// parameter, and net/http errors repeat the full request URL. SecureHandler
// masks that parameter wherever it appears so verbose logs can be shared.
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, true) // verbose=true
//
//	logger.Info("request sent",
//	    "cookie", "session=abc123", // sanitized
//	    "url", "https://www.googleapis.com/pagespeedonline/v5/runPagespeed?url=x&key=AIza...", // key masked
//	)
//
//	slog.SetDefault(logger)
package log
