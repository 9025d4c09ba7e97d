package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nao1215/seoaudit/internal/config"
	"github.com/nao1215/seoaudit/internal/database"
	"github.com/nao1215/seoaudit/internal/pipeline"
	"github.com/nao1215/seoaudit/internal/report"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestNewAuditCmd tests the audit command flags.
func TestNewAuditCmd(t *testing.T) {
	t.Parallel()

	cmd := NewAuditCmd()

	tests := []struct {
		name      string
		shorthand string
		defValue  string
	}{
		{name: "keyword", shorthand: "k", defValue: ""},
		{name: "timeout", shorthand: "t", defValue: config.DefaultTimeout.String()},
		{name: "batch", shorthand: "b", defValue: "4"},
		{name: "config", shorthand: "c", defValue: ""},
		{name: "json", shorthand: "j", defValue: "false"},
		{name: "markdown", shorthand: "m", defValue: "false"},
		{name: "output", shorthand: "o", defValue: ""},
		{name: "no-metrics", defValue: "false"},
		{name: "no-save", defValue: "false"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			flag := cmd.Flags().Lookup(tt.name)
			if flag == nil {
				t.Fatalf("expected %s flag", tt.name)
			}
			if flag.Shorthand != tt.shorthand {
				t.Errorf("expected shorthand %q, got %q", tt.shorthand, flag.Shorthand)
			}
			if flag.DefValue != tt.defValue {
				t.Errorf("expected default %q, got %q", tt.defValue, flag.DefValue)
			}
		})
	}
}

// TestBuildAuditConfig tests that flags and the config file end up in Config.
func TestBuildAuditConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".seoaudit")
	content := `defaults:
  keyword: "bombas"
sites:
  blog.example.com.br:
    keyword: "manutenção"
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cmd := NewAuditCmd()
	args := []string{
		"-c", configPath,
		"-b", "2",
		"-t", "5s",
		"--markdown",
		"--no-metrics",
		"--no-save",
		"--db-dir", dir,
		"-o", filepath.Join(dir, "report.md"),
		"example.com.br", "blog.example.com.br/artigo",
	}
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("failed to parse flags: %v", err)
	}

	cfg, err := buildAuditConfig(cmd, cmd.Flags().Args())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.BatchSize != 2 {
		t.Errorf("expected batch 2, got %d", cfg.BatchSize)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("expected timeout 5s, got %v", cfg.Timeout)
	}
	if !cfg.MarkdownReport || cfg.JSONReport {
		t.Error("expected markdown report only")
	}
	if !cfg.DisableMetrics {
		t.Error("expected metrics to be disabled")
	}
	if cfg.SaveToDB {
		t.Error("expected SaveToDB to be false")
	}
	if len(cfg.Targets) != 2 {
		t.Fatalf("expected 2 targets, got %v", cfg.Targets)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config, got %v", err)
	}

	targets := resolveTargets(cfg)
	if targets[0].Keyword != "bombas" {
		t.Errorf("expected default keyword, got %q", targets[0].Keyword)
	}
	if targets[1].Keyword != "manutenção" {
		t.Errorf("expected site keyword, got %q", targets[1].Keyword)
	}
}

// TestBuildAuditConfigMissingConfigFile tests that an explicit config path must exist.
func TestBuildAuditConfigMissingConfigFile(t *testing.T) {
	t.Parallel()

	cmd := NewAuditCmd()
	if err := cmd.ParseFlags([]string{"-c", filepath.Join(t.TempDir(), "missing.yaml")}); err != nil {
		t.Fatalf("failed to parse flags: %v", err)
	}

	if _, err := buildAuditConfig(cmd, []string{"example.com"}); err == nil {
		t.Error("expected error for missing config file")
	}
}

// TestResolveTargets tests keyword precedence.
func TestResolveTargets(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Targets = []string{"https://www.example.com.br/", "loja.example.com.br"}
	cfg.SiteConfigs = &config.File{
		Sites: map[string]config.SiteConfig{
			"loja.example.com.br": {Keyword: "loja"},
		},
	}

	t.Run("site keyword without flag", func(t *testing.T) {
		t.Parallel()

		targets := resolveTargets(cfg)
		if targets[0].Keyword != "" {
			t.Errorf("expected no keyword, got %q", targets[0].Keyword)
		}
		if targets[1].Keyword != "loja" {
			t.Errorf("expected 'loja', got %q", targets[1].Keyword)
		}
	})

	t.Run("flag wins over site keyword", func(t *testing.T) {
		t.Parallel()

		withFlag := *cfg
		withFlag.Keyword = "bombas"
		for _, target := range resolveTargets(&withFlag) {
			if target.Keyword != "bombas" {
				t.Errorf("expected 'bombas', got %q", target.Keyword)
			}
		}
	})
}

// TestNewReportWriter tests format selection.
func TestNewReportWriter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*config.Config)
		check  func(report.Writer) bool
	}{
		{
			name:   "text by default",
			modify: func(_ *config.Config) {},
			check:  func(w report.Writer) bool { _, ok := w.(*report.SimpleWriter); return ok },
		},
		{
			name:   "json",
			modify: func(c *config.Config) { c.JSONReport = true },
			check:  func(w report.Writer) bool { _, ok := w.(*report.FullJSONWriter); return ok },
		},
		{
			name:   "markdown",
			modify: func(c *config.Config) { c.MarkdownReport = true },
			check:  func(w report.Writer) bool { _, ok := w.(*report.MarkdownWriter); return ok },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.NewConfig()
			tt.modify(cfg)
			if w := newReportWriter(cfg, io.Discard); !tt.check(w) {
				t.Errorf("unexpected writer type %T", w)
			}
		})
	}
}

// TestOpenOutput tests the report destination.
func TestOpenOutput(t *testing.T) {
	t.Parallel()

	t.Run("stdout when no path", func(t *testing.T) {
		t.Parallel()

		var stdout bytes.Buffer
		w, closeFn, err := openOutput("", &stdout)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer closeFn()
		if w != &stdout {
			t.Error("expected stdout writer")
		}
	})

	t.Run("creates nested file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "reports", "2026", "audit.txt")
		w, closeFn, err := openOutput(path, io.Discard)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := io.WriteString(w, "ok"); err != nil {
			t.Fatalf("failed to write: %v", err)
		}
		closeFn()

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read report: %v", err)
		}
		if string(data) != "ok" {
			t.Errorf("expected 'ok', got %q", data)
		}
	})
}

// TestSiteFetcher tests that per-host headers and User-Agent are sent.
func TestSiteFetcher(t *testing.T) {
	t.Parallel()

	headers := make(chan http.Header, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers <- r.Header.Clone()
		w.Header().Set("Content-Type", "text/html")
		_, _ = io.WriteString(w, "<html><body>ok</body></html>")
	}))
	defer srv.Close()

	cfg := config.NewConfig()
	cfg.SiteConfigs = &config.File{
		Sites: map[string]config.SiteConfig{
			"127.0.0.1": {
				UserAgent: "StagingAgent/1.0",
				Headers:   map[string]string{"Authorization": "Basic abc"},
			},
		},
	}

	f := newSiteFetcher(cfg, discardLogger())
	page, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(page.Body, "ok") {
		t.Errorf("expected body, got %q", page.Body)
	}
	got := <-headers
	if gotUA := got.Get("User-Agent"); gotUA != "StagingAgent/1.0" {
		t.Errorf("expected site user agent, got %q", gotUA)
	}
	if gotAuth := got.Get("Authorization"); gotAuth != "Basic abc" {
		t.Errorf("expected Authorization header, got %q", gotAuth)
	}

	if f.forHost("127.0.0.1") != f.forHost("127.0.0.1") {
		t.Error("expected one fetcher per host")
	}
}

// TestRunAuditReportsFailures tests that failed audits are written, saved
// and reported as a command error.
func TestRunAuditReportsFailures(t *testing.T) {
	t.Parallel()

	dbDir := t.TempDir()
	cfg := config.NewConfig()
	cfg.Targets = []string{"ftp://example.com", "mailto:x"}
	cfg.BatchSize = 2
	cfg.DisableMetrics = true
	cfg.SaveToDB = true
	cfg.DBDir = dbDir
	cfg.JSONReport = true

	var stdout, stderr bytes.Buffer
	err := runAudit(context.Background(), cfg, &stdout, &stderr, discardLogger())
	if err == nil {
		t.Fatal("expected error for failed audits")
	}
	if !strings.Contains(err.Error(), "2 of 2 audits failed") {
		t.Errorf("unexpected error: %v", err)
	}

	if !strings.Contains(stdout.String(), string(pipeline.KindInvalidURL)) {
		t.Errorf("expected invalid_url in JSON output, got %s", stdout.String())
	}
	if !strings.Contains(stderr.String(), "[1/2]") && !strings.Contains(stderr.String(), "[2/2]") {
		t.Errorf("expected progress lines, got %q", stderr.String())
	}

	db, err := database.Open(dbDir, database.DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	urls, err := db.ListAuditedURLs(context.Background())
	if err != nil {
		t.Fatalf("failed to list urls: %v", err)
	}
	if len(urls) != 2 {
		t.Errorf("expected 2 saved reports, got %v", urls)
	}
}
