package fetch

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/andybalholm/brotli"
)

// TestFetch tests fetching plain and encoded bodies.
func TestFetch(t *testing.T) {
	t.Parallel()

	const page = "<html><head><title>Loja</title></head><body><p>Olá</p></body></html>"

	t.Run("plain body", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("User-Agent") != "test-agent" {
				t.Errorf("expected user agent test-agent, got %q", r.Header.Get("User-Agent"))
			}
			if r.Header.Get("X-Test") != "1" {
				t.Errorf("expected custom header, got %q", r.Header.Get("X-Test"))
			}
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte(page))
		}))
		defer srv.Close()

		f := New(WithUserAgent("test-agent"), WithHeaders(map[string]string{"X-Test": "1"}))
		got, err := f.Fetch(context.Background(), srv.URL)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Body != page {
			t.Errorf("expected body %q, got %q", page, got.Body)
		}
		if got.StatusCode != http.StatusOK {
			t.Errorf("expected status 200, got %d", got.StatusCode)
		}
		if !strings.HasPrefix(got.ContentType, "text/html") {
			t.Errorf("unexpected content type %q", got.ContentType)
		}
	})

	t.Run("gzip body", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		gz := gzip.NewWriter(&buf)
		_, _ = gz.Write([]byte(page))
		_ = gz.Close()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Encoding", "gzip")
			_, _ = w.Write(buf.Bytes())
		}))
		defer srv.Close()

		got, err := New().Fetch(context.Background(), srv.URL)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Body != page {
			t.Errorf("expected decoded body, got %q", got.Body)
		}
	})

	t.Run("brotli body", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		br := brotli.NewWriter(&buf)
		_, _ = br.Write([]byte(page))
		_ = br.Close()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Encoding", "br")
			_, _ = w.Write(buf.Bytes())
		}))
		defer srv.Close()

		got, err := New().Fetch(context.Background(), srv.URL)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Body != page {
			t.Errorf("expected decoded body, got %q", got.Body)
		}
	})

	latin1Cases := []struct {
		name        string
		contentType string
		head        string
	}{
		{"latin-1 declared in header", "text/html; charset=ISO-8859-1", ""},
		{"latin-1 declared in meta tag", "text/html", `<meta charset="iso-8859-1">`},
	}
	for _, tc := range latin1Cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			latin1 := "<html><head>" + tc.head + "<title>Manuten\xe7\xe3o de bombas hidr\xe1ulicas</title></head>" +
				"<body><p>Servi\xe7os em S\xe3o Paulo</p></body></html>"
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", tc.contentType)
				_, _ = w.Write([]byte(latin1))
			}))
			defer srv.Close()

			got, err := New().Fetch(context.Background(), srv.URL)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !utf8.ValidString(got.Body) {
				t.Fatalf("expected UTF-8 body, got %q", got.Body)
			}
			for _, want := range []string{"Manutenção de bombas hidráulicas", "Serviços em São Paulo"} {
				if !strings.Contains(got.Body, want) {
					t.Errorf("expected body to contain %q, got %q", want, got.Body)
				}
			}
		})
	}

	t.Run("truncates oversized body", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(strings.Repeat("a", 100)))
		}))
		defer srv.Close()

		got, err := New(WithMaxBodySize(10)).Fetch(context.Background(), srv.URL)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got.Body) != 10 {
			t.Errorf("expected 10 bytes, got %d", len(got.Body))
		}
	})
}

// TestFetchStatusErrors tests the mapping of HTTP statuses to failure kinds.
func TestFetchStatusErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		status int
		want   error
	}{
		{"forbidden", http.StatusForbidden, ErrForbidden},
		{"unauthorized", http.StatusUnauthorized, ErrForbidden},
		{"not found", http.StatusNotFound, ErrNotFound},
		{"gone", http.StatusGone, ErrNotFound},
		{"internal error", http.StatusInternalServerError, ErrServerError},
		{"bad gateway", http.StatusBadGateway, ErrServerError},
		{"teapot", http.StatusTeapot, ErrUnreachable},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
			}))
			defer srv.Close()

			_, err := New().Fetch(context.Background(), srv.URL)
			if !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}

			var statusErr *StatusError
			if !errors.As(err, &statusErr) {
				t.Fatalf("expected *StatusError, got %T", err)
			}
			if statusErr.Code != tc.status {
				t.Errorf("expected code %d, got %d", tc.status, statusErr.Code)
			}
		})
	}
}

// TestFetchTimeout tests that slow servers produce ErrTimeout.
func TestFetchTimeout(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	f := New(WithHTTPClient(&http.Client{Timeout: 50 * time.Millisecond}))
	_, err := f.Fetch(context.Background(), srv.URL)
	if !errors.Is(err, ErrTimeout) {
		t.Errorf("expected ErrTimeout, got %v", err)
	}
}

// TestFetchUnreachable tests that connection failures produce ErrUnreachable.
func TestFetchUnreachable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	addr := srv.URL
	srv.Close()

	_, err := New().Fetch(context.Background(), addr)
	if !errors.Is(err, ErrUnreachable) {
		t.Errorf("expected ErrUnreachable, got %v", err)
	}
}

// TestFetchFallsBackToHTTP tests the https to http retry.
func TestFetchFallsBackToHTTP(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("plain"))
	}))
	defer srv.Close()

	// The test server only speaks plain HTTP, so the TLS handshake fails.
	secure := "https://" + strings.TrimPrefix(srv.URL, "http://")
	got, err := New().Fetch(context.Background(), secure)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Body != "plain" {
		t.Errorf("expected body from http fallback, got %q", got.Body)
	}
	if !strings.HasPrefix(got.URL, "http://") {
		t.Errorf("expected final URL over http, got %q", got.URL)
	}
}
