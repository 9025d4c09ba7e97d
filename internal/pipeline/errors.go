package pipeline

import (
	"context"
	"errors"
	"strings"

	"github.com/nao1215/seoaudit/internal/fetch"
)

// Run-level failures. Only ErrInvalidURL, ErrFetchFailed and ErrEmptyContent
// abort an audit; ErrMetricsUnavailable is logged and downgrades the two
// external categories to placeholders.
var (
	// ErrInvalidURL is returned when the address cannot be normalized.
	ErrInvalidURL = errors.New("invalid URL")

	// ErrFetchFailed is returned when the page could not be retrieved.
	ErrFetchFailed = errors.New("failed to fetch page")

	// ErrEmptyContent is returned when the page has too little content to analyze.
	ErrEmptyContent = errors.New("page content is empty")

	// ErrMetricsUnavailable is returned when no external scorecard could be obtained.
	ErrMetricsUnavailable = errors.New("external metrics unavailable")
)

// ErrorKind classifies a failed audit.
type ErrorKind string

const (
	KindInvalidURL         ErrorKind = "invalid_url"
	KindFetchFailed        ErrorKind = "fetch_failed"
	KindEmptyContent       ErrorKind = "empty_content"
	KindMetricsUnavailable ErrorKind = "metrics_unavailable"
	KindCancelled          ErrorKind = "cancelled"
	KindInternal           ErrorKind = "internal"
)

// User-facing failure messages.
const (
	MsgInvalidURL   = "The URL is invalid. Check the address and try again."
	MsgUnreachable  = "The site could not be reached. Check that it is online and the address is correct."
	MsgForbidden    = "The site refused access to the auditor. Allow our user agent and try again."
	MsgNotFound     = "The page was not found (404). Check the address and try again."
	MsgServerError  = "The site returned a server error. Try again later."
	MsgTimeout      = "The site took too long to respond. Try again later."
	MsgEmptyContent = "The page has too little content to analyze."
	MsgMetrics      = "Performance metrics are temporarily unavailable."
	MsgCancelled    = "The audit was cancelled."
	MsgInternal     = "An unexpected error occurred while auditing the page. Try again later."
)

// ClassifyError returns the kind of a run-level error. Cancellation wins
// over the step that was interrupted.
func ClassifyError(err error) ErrorKind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.Canceled):
		return KindCancelled
	case errors.Is(err, ErrInvalidURL):
		return KindInvalidURL
	case errors.Is(err, ErrFetchFailed):
		return KindFetchFailed
	case errors.Is(err, ErrEmptyContent):
		return KindEmptyContent
	case errors.Is(err, ErrMetricsUnavailable):
		return KindMetricsUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return KindCancelled
	default:
		return KindInternal
	}
}

// rawMessages map fragments of low-level error text to user messages when
// the error chain carries no sentinel.
var rawMessages = []struct {
	fragment string
	message  string
}{
	{"no such host", MsgUnreachable},
	{"connection refused", MsgUnreachable},
	{"connection reset", MsgUnreachable},
	{"certificate", MsgUnreachable},
	{"timeout", MsgTimeout},
	{"deadline exceeded", MsgTimeout},
	{"403", MsgForbidden},
	{"forbidden", MsgForbidden},
	{"404", MsgNotFound},
	{"not found", MsgNotFound},
	{"500", MsgServerError},
	{"502", MsgServerError},
	{"503", MsgServerError},
}

// UserMessage maps err to one of the fixed user-facing sentences. Sentinels
// are checked first, then the raw error text.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.Canceled):
		return MsgCancelled
	case errors.Is(err, ErrInvalidURL):
		return MsgInvalidURL
	case errors.Is(err, ErrEmptyContent):
		return MsgEmptyContent
	case errors.Is(err, fetch.ErrTimeout):
		return MsgTimeout
	case errors.Is(err, fetch.ErrForbidden):
		return MsgForbidden
	case errors.Is(err, fetch.ErrNotFound):
		return MsgNotFound
	case errors.Is(err, fetch.ErrServerError):
		return MsgServerError
	case errors.Is(err, fetch.ErrUnreachable):
		return MsgUnreachable
	case errors.Is(err, ErrMetricsUnavailable):
		return MsgMetrics
	}

	text := strings.ToLower(err.Error())
	for _, m := range rawMessages {
		if strings.Contains(text, m.fragment) {
			return m.message
		}
	}
	if errors.Is(err, ErrFetchFailed) {
		return MsgUnreachable
	}
	return MsgInternal
}
