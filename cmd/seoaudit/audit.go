package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/nao1215/seoaudit/internal/config"
	"github.com/nao1215/seoaudit/internal/database"
	"github.com/nao1215/seoaudit/internal/model"
	"github.com/nao1215/seoaudit/internal/pipeline"
	"github.com/nao1215/seoaudit/internal/report"
	"github.com/spf13/cobra"
)

// NewAuditCmd creates the audit command.
func NewAuditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit [url...]",
		Short: "Audit one or more web pages",
		Long: `Audit downloads each page and scores it across the SEO categories:
meta tags, document structure, images, keyword optimization (with --keyword),
content structure, links, technical signals, readability, AI-search
optimization, performance and mobile friendliness.

Performance and mobile scores come from PageSpeed Insights and can take up
to a minute per page. Use --no-metrics to skip them.

Reports are saved to the local database so "seoaudit history" can show
score trends. Use --no-save to skip saving.

Examples:
  # Audit a page
  seoaudit audit www.example.com.br

  # Audit with a focus keyword
  seoaudit audit -k "bombas industriais" https://www.example.com.br/bombas

  # Audit several pages, four at a time, as Markdown
  seoaudit audit -b 4 --markdown -o report.md example.com.br example.com.br/contato

  # Quick structural audit without PageSpeed Insights
  seoaudit audit --no-metrics example.com.br`,
		Args: cobra.ArbitraryArgs,
		RunE: runAuditCmd,
	}

	cmd.Flags().StringP("keyword", "k", "",
		"Focus keyword the pages should rank for (overrides the config file)")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for downloading each page")
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of concurrent audits")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .seoaudit in current or home directory)")
	cmd.Flags().String("user-agent", config.DefaultUserAgent,
		"User-Agent sent when downloading pages")
	cmd.Flags().Int64("max-body", config.DefaultMaxBodySize,
		"Maximum page size in bytes; larger pages are truncated")

	cmd.Flags().Bool("no-metrics", false,
		"Skip PageSpeed Insights (performance and mobile become placeholders)")
	cmd.Flags().String("api-key", "",
		"PageSpeed Insights API key (default: $PAGESPEED_API_KEY)")

	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	cmd.Flags().Bool("no-save", false,
		"Do not save reports to the database")
	cmd.Flags().String("db-dir", config.XDGDataDir(),
		"Directory of the audit database")

	return cmd
}

// runAuditCmd executes the audit command.
func runAuditCmd(cmd *cobra.Command, args []string) error {
	if err := config.LoadEnv(); err != nil {
		return fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg, err := buildAuditConfig(cmd, args)
	if err != nil {
		return err
	}
	cfg.ApplyEnv()

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cfg.Verbose)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runAudit(ctx, cfg, cmd.OutOrStdout(), cmd.ErrOrStderr(), logger)
}

// buildAuditConfig creates a Config from cobra command flags.
func buildAuditConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	flags := cmd.Flags()

	var err error
	if cfg.Keyword, err = flags.GetString("keyword"); err != nil {
		return nil, err
	}
	if cfg.Timeout, err = flags.GetDuration("timeout"); err != nil {
		return nil, err
	}
	if cfg.BatchSize, err = flags.GetInt("batch"); err != nil {
		return nil, err
	}
	if cfg.ConfigFilePath, err = flags.GetString("config"); err != nil {
		return nil, err
	}
	if cfg.UserAgent, err = flags.GetString("user-agent"); err != nil {
		return nil, err
	}
	if cfg.MaxBodySize, err = flags.GetInt64("max-body"); err != nil {
		return nil, err
	}
	if cfg.DisableMetrics, err = flags.GetBool("no-metrics"); err != nil {
		return nil, err
	}
	if cfg.PageSpeedAPIKey, err = flags.GetString("api-key"); err != nil {
		return nil, err
	}
	if cfg.JSONReport, err = flags.GetBool("json"); err != nil {
		return nil, err
	}
	if cfg.MarkdownReport, err = flags.GetBool("markdown"); err != nil {
		return nil, err
	}
	if cfg.ReportFile, err = flags.GetString("output"); err != nil {
		return nil, err
	}
	noSave, err := flags.GetBool("no-save")
	if err != nil {
		return nil, err
	}
	cfg.SaveToDB = !noSave
	if cfg.DBDir, err = flags.GetString("db-dir"); err != nil {
		return nil, err
	}

	cfg.SiteConfigs, err = loadSiteConfigs(cfg.ConfigFilePath)
	if err != nil {
		return nil, err
	}

	cfg.Verbose = getVerboseFlag(cmd)
	cfg.Targets = args

	return cfg, nil
}

// resolveTargets pairs each target with its focus keyword. The --keyword
// flag wins over the keyword configured for the host.
func resolveTargets(cfg *config.Config) []pipeline.Target {
	targets := make([]pipeline.Target, len(cfg.Targets))
	for i, raw := range cfg.Targets {
		kw := cfg.Keyword
		if kw == "" && cfg.SiteConfigs != nil {
			kw = cfg.SiteConfigs.GetSiteConfig(hostOf(raw)).Keyword
		}
		targets[i] = pipeline.Target{URL: raw, Keyword: kw}
	}
	return targets
}

// runAudit audits every target and writes one report per target.
// It fails when any audit failed, after all reports were written.
func runAudit(ctx context.Context, cfg *config.Config, stdout, stderr io.Writer, logger *slog.Logger) error {
	output, closeOutput, err := openOutput(cfg.ReportFile, stdout)
	if err != nil {
		return err
	}
	defer closeOutput()
	writer := newReportWriter(cfg, output)

	var db *database.AuditDB
	if cfg.SaveToDB {
		db, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		logger.Info("database opened", "path", db.Path())
	}

	auditor := newAuditor(cfg, logger)
	targets := resolveTargets(cfg)
	start := time.Now()

	var (
		mu     sync.Mutex
		failed int
	)
	handle := func(r *model.AuditReport, index int) {
		mu.Lock()
		defer mu.Unlock()

		if len(targets) > 1 {
			fmt.Fprintf(stderr, "[%d/%d] %s: %s\n", index+1, len(targets), r.URL, r.Status)
		}
		if r.Status == model.ReportFailed {
			failed++
		}
		if _, err := writer.Write(r); err != nil {
			logger.Error("failed to write report", "url", r.URL, "error", err)
		}
		saveReport(ctx, db, r, logger)
	}

	if len(targets) > 1 && cfg.BatchSize > 1 {
		bp := pipeline.NewBatchProcessor(auditor.Pipeline,
			pipeline.WithConcurrency(cfg.BatchSize),
			pipeline.WithBatchLogger(logger),
		)
		err = bp.ProcessBatchWithCallback(ctx, targets, handle)
	} else {
		for i, t := range targets {
			if ctx.Err() != nil {
				err = ctx.Err()
				break
			}
			handle(auditor.RunAudit(ctx, t.URL, t.Keyword, nil), i)
		}
	}

	logger.Info("audit finished", "targets", len(targets), "failed", failed, "elapsed", time.Since(start).Round(time.Millisecond))

	if err != nil {
		return fmt.Errorf("audit interrupted: %w", err)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d audits failed", failed, len(targets))
	}
	return nil
}

// newReportWriter picks the writer for the configured format.
func newReportWriter(cfg *config.Config, output io.Writer) report.Writer {
	switch {
	case cfg.JSONReport:
		return report.NewFullJSONWriter(output, getVersion(), report.WithPrettyPrint())
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(output)
	default:
		return report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	}
}

// openOutput returns the report destination: path when set, otherwise
// stdout. The returned close function is always safe to call.
func openOutput(path string, stdout io.Writer) (io.Writer, func(), error) {
	if path == "" {
		return stdout, func() {}, nil
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // User-provided output path is intentional
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

// saveReport stores the report when a database is open.
// An interrupted run still saves what it produced.
func saveReport(ctx context.Context, db *database.AuditDB, r *model.AuditReport, logger *slog.Logger) {
	if db == nil {
		return
	}
	if err := db.SaveReport(context.WithoutCancel(ctx), r); err != nil {
		logger.Error("failed to save report", "url", r.URL, "error", err)
		return
	}
	logger.Info("report saved", "url", r.URL, "id", r.ID)
}
