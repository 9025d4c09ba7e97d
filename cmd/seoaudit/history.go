package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nao1215/seoaudit/internal/address"
	"github.com/nao1215/seoaudit/internal/config"
	"github.com/nao1215/seoaudit/internal/database"
	"github.com/spf13/cobra"
)

// defaultHistoryLimit is the number of past audits shown by default.
const defaultHistoryLimit = 20

// errNoDatabase is returned when no audit was ever saved.
var errNoDatabase = errors.New("no audits recorded yet (run 'seoaudit audit' first)")

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [url]",
		Short: "Show past audits of a page",
		Long: `History lists the saved audits of a page, newest first, so score
changes can be followed over time.

Examples:
  # Score history of a page
  seoaudit history www.example.com.br

  # Every audited page
  seoaudit history --list

  # Full report of a saved audit
  seoaudit history --id 42

  # History as Markdown table
  seoaudit history --markdown www.example.com.br`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	cmd.Flags().BoolP("list", "l", false, "List every audited URL")
	cmd.Flags().Int64("id", 0, "Show the full report with this ID")
	cmd.Flags().IntP("limit", "n", defaultHistoryLimit, "Maximum number of audits to show")
	cmd.Flags().BoolP("json", "j", false, "Output JSON (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false, "Output Markdown (mutually exclusive with --json)")
	cmd.Flags().String("db-dir", config.XDGDataDir(), "Directory of the audit database")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	list, err := flags.GetBool("list")
	if err != nil {
		return err
	}
	id, err := flags.GetInt64("id")
	if err != nil {
		return err
	}
	limit, err := flags.GetInt("limit")
	if err != nil {
		return err
	}
	dbDir, err := flags.GetString("db-dir")
	if err != nil {
		return err
	}
	jsonOut, err := flags.GetBool("json")
	if err != nil {
		return err
	}
	markdownOut, err := flags.GetBool("markdown")
	if err != nil {
		return err
	}

	if jsonOut && markdownOut {
		return config.ErrConflictingReportFormats
	}
	if !list && id == 0 && len(args) == 0 {
		return errors.New("specify a URL, --id or --list")
	}

	setupLogger(getVerboseFlag(cmd))

	if _, err := os.Stat(filepath.Join(dbDir, database.FileName)); errors.Is(err, os.ErrNotExist) {
		return errNoDatabase
	}
	db, err := database.Open(dbDir, database.Options{EnableWAL: true})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	cfg := config.NewConfig()
	cfg.JSONReport = jsonOut
	cfg.MarkdownReport = markdownOut
	writer := newReportWriter(cfg, out)

	switch {
	case list:
		urls, err := db.ListAuditedURLs(ctx)
		if err != nil {
			return err
		}
		if len(urls) == 0 {
			fmt.Fprintln(out, "No audits recorded.")
			return nil
		}
		for _, u := range urls {
			fmt.Fprintln(out, u)
		}
		return nil

	case id > 0:
		r, err := db.GetReport(ctx, id)
		if err != nil {
			return err
		}
		_, err = writer.Write(r)
		return err

	default:
		addr := address.Normalize(args[0])
		if !addr.Valid {
			return fmt.Errorf("invalid URL %q: %s", args[0], addr.Error)
		}
		reports, err := db.GetHistory(ctx, addr.Normalized, limit)
		if err != nil {
			return err
		}
		_, err = writer.WriteHistory(reports)
		return err
	}
}
