package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"

	"github.com/nao1215/seoaudit/internal/address"
	"github.com/nao1215/seoaudit/internal/config"
	"github.com/nao1215/seoaudit/internal/fetch"
	"github.com/nao1215/seoaudit/internal/log"
	"github.com/nao1215/seoaudit/internal/metrics"
	"github.com/nao1215/seoaudit/internal/pipeline"
	"github.com/spf13/cobra"
)

// siteFetcher downloads pages with the User-Agent and headers configured
// for their host. One fetch.Fetcher is kept per host.
type siteFetcher struct {
	cfg    *config.Config
	logger *slog.Logger

	mu       sync.Mutex
	fetchers map[string]*fetch.Fetcher
}

func newSiteFetcher(cfg *config.Config, logger *slog.Logger) *siteFetcher {
	return &siteFetcher{
		cfg:      cfg,
		logger:   logger,
		fetchers: make(map[string]*fetch.Fetcher),
	}
}

// Fetch implements pipeline.PageFetcher.
func (s *siteFetcher) Fetch(ctx context.Context, pageURL string) (*fetch.Page, error) {
	return s.forHost(address.Hostname(pageURL)).Fetch(ctx, pageURL)
}

func (s *siteFetcher) forHost(host string) *fetch.Fetcher {
	s.mu.Lock()
	defer s.mu.Unlock()

	if f, ok := s.fetchers[host]; ok {
		return f
	}

	var site config.SiteConfig
	if s.cfg.SiteConfigs != nil {
		site = s.cfg.SiteConfigs.GetSiteConfig(host)
	}
	userAgent := s.cfg.UserAgent
	if site.UserAgent != "" {
		userAgent = site.UserAgent
	}

	f := fetch.New(
		fetch.WithHTTPClient(&http.Client{Timeout: s.cfg.Timeout}),
		fetch.WithUserAgent(userAgent),
		fetch.WithMaxBodySize(s.cfg.MaxBodySize),
		fetch.WithHeaders(site.Headers),
		fetch.WithLogger(s.logger),
	)
	s.fetchers[host] = f
	return f
}

// newAuditor wires the fetcher and, unless disabled, the PageSpeed client.
func newAuditor(cfg *config.Config, logger *slog.Logger) *pipeline.Auditor {
	opts := []pipeline.AuditorOption{pipeline.WithAuditLogger(logger)}

	if !cfg.DisableMetrics {
		client := metrics.NewClient(
			metrics.WithHTTPClient(&http.Client{Timeout: cfg.MetricsTimeout}),
			metrics.WithAPIKey(cfg.PageSpeedAPIKey),
			metrics.WithRateLimit(cfg.MetricsRate, 1),
			metrics.WithClientLogger(logger),
		)
		opts = append(opts, pipeline.WithMetricsProvider(client))
	} else {
		logger.Info("external metrics disabled; performance and mobile scores are placeholders")
	}

	return pipeline.NewAuditor(newSiteFetcher(cfg, logger), opts...)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// setupLogger creates the secure logger and makes it the default.
func setupLogger(verbose bool) *slog.Logger {
	logger := log.NewSecureLogger(os.Stderr, verbose)
	slog.SetDefault(logger)
	return logger
}

// loadSiteConfigs loads the .seoaudit file. A missing file is an error
// only when its path was given explicitly.
func loadSiteConfigs(path string) (*config.File, error) {
	found := config.FindConfigFile(path)
	if found == "" {
		if path != "" {
			return nil, fmt.Errorf("configuration file not found: %s", path)
		}
		return &config.File{Sites: make(map[string]config.SiteConfig)}, nil
	}

	cf, err := config.LoadConfigFile(found)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %w", found, err)
	}
	return cf, nil
}

// hostOf returns the hostname of a user-supplied address, or "" when it
// is not a valid address.
func hostOf(raw string) string {
	return address.Hostname(address.Normalize(raw).Normalized)
}
