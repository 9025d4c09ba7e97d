package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultTimeout bounds the download of the audited page.
	DefaultTimeout = 30 * time.Second

	// DefaultMetricsTimeout bounds one PageSpeed Insights request. Lighthouse
	// runs against slow pages routinely take close to a minute.
	DefaultMetricsTimeout = 90 * time.Second

	// DefaultBatchSize is the number of pages audited concurrently from the CLI.
	DefaultBatchSize = 4

	// AppName is the application name used for XDG directory paths.
	AppName = "seoaudit"

	// DefaultUserAgent identifies the auditor in server logs.
	DefaultUserAgent = "SEOAudit/1.0 (+https://github.com/nao1215/seoaudit)"

	// DefaultMaxBodySize limits the page body read by the fetcher.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB

	// DefaultListenAddress is the address of the HTTP API.
	DefaultListenAddress = ":8080"

	// DefaultMetricsRate is the PageSpeed Insights request rate per second.
	// The public API quota is generous per day but throttles bursts.
	DefaultMetricsRate = 1.0

	// DefaultAPIRate is the number of audit requests per second allowed per
	// client IP by the HTTP API.
	DefaultAPIRate = 0.5

	// DefaultAPIBurst is the burst size of the per-IP limiter.
	DefaultAPIBurst = 5
)

// Config holds all configuration options for seoaudit.
// It is populated from defaults, the environment and CLI flags and is
// passed through the application rather than kept in global state.
type Config struct {
	// Timeout is the page download timeout.
	Timeout time.Duration

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// BatchSize is the number of concurrent audits when several URLs are given.
	BatchSize int

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .seoaudit in the current directory
	// and then in the user's home directory.
	ConfigFilePath string

	// SiteConfigs holds site-specific configurations loaded from the config file.
	SiteConfigs *File

	// JSONReport enables JSON report output.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output.
	// Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	ReportFile string

	// Targets is the list of URLs to audit.
	Targets []string

	// Keyword is the focus phrase applied to every target that has no
	// keyword in the config file.
	Keyword string

	// DBDir is the directory path for storing the SQLite database.
	// Defaults to XDG data directory (~/.local/share/seoaudit on Linux).
	DBDir string

	// SaveToDB indicates whether to save audit results to the database.
	SaveToDB bool

	// UserAgent is the User-Agent header sent when fetching pages.
	UserAgent string

	// MaxBodySize is the maximum page size in bytes to read.
	// Larger pages are truncated.
	MaxBodySize int64

	// PageSpeedAPIKey is sent to PageSpeed Insights. Requests without a key
	// share a small anonymous quota.
	PageSpeedAPIKey string

	// DisableMetrics skips PageSpeed Insights entirely. Performance and
	// Mobile Friendliness are then reported as placeholders.
	DisableMetrics bool

	// MetricsTimeout bounds one PageSpeed Insights request.
	MetricsTimeout time.Duration

	// MetricsRate is the maximum PageSpeed Insights requests per second.
	MetricsRate float64

	// ListenAddress is the address the HTTP API listens on.
	ListenAddress string

	// APIRate is the per-IP request rate allowed by the HTTP API.
	APIRate float64

	// APIBurst is the burst size of the per-IP limiter.
	APIBurst int
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Timeout:        DefaultTimeout,
		BatchSize:      DefaultBatchSize,
		UserAgent:      DefaultUserAgent,
		MaxBodySize:    DefaultMaxBodySize,
		MetricsTimeout: DefaultMetricsTimeout,
		MetricsRate:    DefaultMetricsRate,
		ListenAddress:  DefaultListenAddress,
		APIRate:        DefaultAPIRate,
		APIBurst:       DefaultAPIBurst,
		DBDir:          XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for seoaudit.
// On Linux: ~/.local/share/seoaudit
// On macOS: ~/Library/Application Support/seoaudit
// On Windows: %LOCALAPPDATA%\seoaudit
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for seoaudit.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks the configuration of the audit command.
// It returns the first problem found.
func (c *Config) Validate() error {
	if len(c.Targets) == 0 {
		return ErrNoTarget
	}
	if err := c.validateCommon(); err != nil {
		return err
	}
	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	return nil
}

// ValidateServer checks the configuration of the serve command.
func (c *Config) ValidateServer() error {
	if err := c.validateCommon(); err != nil {
		return err
	}
	if c.ListenAddress == "" {
		return ErrNoListenAddress
	}
	if c.APIRate <= 0 || c.APIBurst <= 0 {
		return ErrInvalidRateLimit
	}
	if c.DBDir == "" {
		return ErrNoDBDir
	}
	return nil
}

func (c *Config) validateCommon() error {
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}
	if !c.DisableMetrics && (c.MetricsTimeout <= 0 || c.MetricsRate <= 0) {
		return ErrInvalidMetrics
	}
	return nil
}
