package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/nao1215/seoaudit/internal/database"
	"github.com/nao1215/seoaudit/internal/model"
)

// seedHistory stores two completed audits of one page and returns the ID
// of the newest.
func seedHistory(t *testing.T, dir string) int64 {
	t.Helper()

	db, err := database.Open(dir, database.DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	var last int64
	for _, score := range []int{55, 85} {
		r := model.NewAuditReport("https://www.example.com.br", "bombas")
		r.Complete([]model.CategoryResult{
			model.NewCategoryResult(model.CategoryMetaTags, score, []model.Issue{model.Success("Title length is optimal")}),
		})
		if err := db.SaveReport(context.Background(), r); err != nil {
			t.Fatalf("failed to save report: %v", err)
		}
		last = r.ID
	}
	return last
}

func runHistory(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := NewHistoryCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// TestHistoryCmd tests the history command against a seeded database.
func TestHistoryCmd(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	newest := seedHistory(t, dir)

	t.Run("list urls", func(t *testing.T) {
		t.Parallel()

		out, err := runHistory(t, "--db-dir", dir, "--list")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.TrimSpace(out) != "https://www.example.com.br" {
			t.Errorf("expected one url, got %q", out)
		}
	})

	t.Run("history as json newest first", func(t *testing.T) {
		t.Parallel()

		out, err := runHistory(t, "--db-dir", dir, "--json", "www.example.com.br")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var reports []struct {
			ID           int64 `json:"id"`
			OverallScore int   `json:"overall_score"`
		}
		if err := json.Unmarshal([]byte(out), &reports); err != nil {
			t.Fatalf("failed to decode history: %v", err)
		}
		if len(reports) != 2 {
			t.Fatalf("expected 2 reports, got %d", len(reports))
		}
		if reports[0].ID != newest || reports[0].OverallScore != 85 {
			t.Errorf("expected newest report first, got %+v", reports[0])
		}
	})

	t.Run("history limit", func(t *testing.T) {
		t.Parallel()

		out, err := runHistory(t, "--db-dir", dir, "--json", "-n", "1", "www.example.com.br")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Count(out, `"id"`) != 1 {
			t.Errorf("expected one report, got %s", out)
		}
	})

	t.Run("report by id", func(t *testing.T) {
		t.Parallel()

		out, err := runHistory(t, "--db-dir", dir, "--id", strconv.FormatInt(newest, 10))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "SEO AUDIT REPORT") {
			t.Errorf("expected text report, got %q", out)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		t.Parallel()

		_, err := runHistory(t, "--db-dir", dir, "--id", "9999")
		if !errors.Is(err, database.ErrReportNotFound) {
			t.Errorf("expected ErrReportNotFound, got %v", err)
		}
	})

	t.Run("invalid url", func(t *testing.T) {
		t.Parallel()

		if _, err := runHistory(t, "--db-dir", dir, "ftp://example.com"); err == nil {
			t.Error("expected error for invalid url")
		}
	})
}

// TestHistoryCmdErrors tests argument and database errors.
func TestHistoryCmdErrors(t *testing.T) {
	t.Parallel()

	t.Run("no database yet", func(t *testing.T) {
		t.Parallel()

		_, err := runHistory(t, "--db-dir", t.TempDir(), "--list")
		if !errors.Is(err, errNoDatabase) {
			t.Errorf("expected errNoDatabase, got %v", err)
		}
	})

	t.Run("nothing requested", func(t *testing.T) {
		t.Parallel()

		if _, err := runHistory(t, "--db-dir", t.TempDir()); err == nil {
			t.Error("expected error without url, --id or --list")
		}
	})

	t.Run("conflicting formats", func(t *testing.T) {
		t.Parallel()

		if _, err := runHistory(t, "--json", "--markdown", "--list"); err == nil {
			t.Error("expected error for conflicting formats")
		}
	})
}
