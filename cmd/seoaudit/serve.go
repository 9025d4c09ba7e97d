package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nao1215/seoaudit/internal/config"
	"github.com/nao1215/seoaudit/internal/database"
	"github.com/nao1215/seoaudit/internal/server"
	"github.com/spf13/cobra"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the audit HTTP API",
		Long: `Serve starts an HTTP API that runs audits in the background.

  POST /api/audits          {"url": "...", "keyword": "..."}  -> 202 {"id", "status"}
  GET  /api/audits/:id      poll until status is completed or failed
  GET  /api/audits?url=...  audit history of a page
  GET  /api/health

Reports are stored in the same database the CLI uses. The listen address
can also be set with $SEOAUDIT_ADDR.

Examples:
  seoaudit serve
  seoaudit serve --addr 127.0.0.1:9000 --rate 1 --burst 10`,
		Args: cobra.NoArgs,
		RunE: runServeCmd,
	}

	cmd.Flags().StringP("addr", "a", config.DefaultListenAddress, "Address to listen on")
	cmd.Flags().Float64("rate", config.DefaultAPIRate, "Requests per second allowed per client IP")
	cmd.Flags().Int("burst", config.DefaultAPIBurst, "Burst size of the per-IP rate limit")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout, "Timeout for downloading each page")
	cmd.Flags().Duration("job-timeout", server.DefaultJobTimeout, "Timeout for one background audit")
	cmd.Flags().Bool("no-metrics", false, "Skip PageSpeed Insights")
	cmd.Flags().String("api-key", "", "PageSpeed Insights API key (default: $PAGESPEED_API_KEY)")
	cmd.Flags().StringP("config", "c", "", "Configuration file path (default: .seoaudit in current or home directory)")
	cmd.Flags().String("db-dir", config.XDGDataDir(), "Directory of the audit database")

	return cmd
}

// runServeCmd executes the serve command.
func runServeCmd(cmd *cobra.Command, _ []string) error {
	if err := config.LoadEnv(); err != nil {
		return fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg, err := buildServeConfig(cmd)
	if err != nil {
		return err
	}
	cfg.ApplyEnv()

	if err := cfg.ValidateServer(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	jobTimeout, err := cmd.Flags().GetDuration("job-timeout")
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Verbose)

	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	srv := server.New(db, newAuditor(cfg, logger),
		server.WithLogger(logger),
		server.WithRateLimit(cfg.APIRate, cfg.APIBurst),
		server.WithJobTimeout(jobTimeout),
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.OutOrStdout(), "seoaudit API listening on %s (database: %s)\n", cfg.ListenAddress, db.Path())
	return srv.ListenAndServe(ctx, cfg.ListenAddress)
}

// buildServeConfig creates a Config from the serve command flags.
func buildServeConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	flags := cmd.Flags()

	var err error
	if cfg.ListenAddress, err = flags.GetString("addr"); err != nil {
		return nil, err
	}
	if cfg.APIRate, err = flags.GetFloat64("rate"); err != nil {
		return nil, err
	}
	if cfg.APIBurst, err = flags.GetInt("burst"); err != nil {
		return nil, err
	}
	if cfg.Timeout, err = flags.GetDuration("timeout"); err != nil {
		return nil, err
	}
	if cfg.DisableMetrics, err = flags.GetBool("no-metrics"); err != nil {
		return nil, err
	}
	if cfg.PageSpeedAPIKey, err = flags.GetString("api-key"); err != nil {
		return nil, err
	}
	if cfg.ConfigFilePath, err = flags.GetString("config"); err != nil {
		return nil, err
	}
	if cfg.DBDir, err = flags.GetString("db-dir"); err != nil {
		return nil, err
	}

	cfg.SiteConfigs, err = loadSiteConfigs(cfg.ConfigFilePath)
	if err != nil {
		return nil, err
	}
	cfg.Verbose = getVerboseFlag(cmd)

	return cfg, nil
}
