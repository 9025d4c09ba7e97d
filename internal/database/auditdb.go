package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/seoaudit/internal/model"
)

// FileName is the name of the database file inside the data directory.
const FileName = "seoaudit.db"

// ErrReportNotFound is returned when no report has the requested ID.
var ErrReportNotFound = errors.New("audit report not found")

// AuditDB provides SQLite-based storage for audit reports.
// Reports are flattened into report, category and issue rows so history
// queries never need to decode the findings.
type AuditDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures AuditDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging so API readers do not block
	// the audit worker.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates an AuditDB in dbDir.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*AuditDB, error) {
	dbPath := filepath.Join(dbDir, FileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// mode=rw refuses to create a missing file, mode=rwc creates it.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	adb := &AuditDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}
	if _, err := db.ExecContext(context.Background(), "PRAGMA foreign_keys=ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := adb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return adb, nil
}

// Close closes the database connection.
func (adb *AuditDB) Close() error {
	return adb.db.Close()
}

// Path returns the database file path.
func (adb *AuditDB) Path() string {
	return adb.dbPath
}

// createTables creates the database schema if it doesn't exist.
func (adb *AuditDB) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS audit_reports (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		url TEXT NOT NULL,
		focus_keyword TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		overall_score INTEGER NOT NULL DEFAULT 0,
		error_kind TEXT NOT NULL DEFAULT '',
		error_message TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		completed_at TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_reports_url ON audit_reports(url);
	CREATE INDEX IF NOT EXISTS idx_reports_created ON audit_reports(created_at);

	CREATE TABLE IF NOT EXISTS audit_categories (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		report_id INTEGER NOT NULL REFERENCES audit_reports(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		category TEXT NOT NULL,
		score INTEGER NOT NULL,
		status TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_categories_report ON audit_categories(report_id);

	CREATE TABLE IF NOT EXISTS audit_issues (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		category_id INTEGER NOT NULL REFERENCES audit_categories(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		type TEXT NOT NULL,
		priority TEXT NOT NULL,
		message TEXT NOT NULL,
		recommendation TEXT NOT NULL DEFAULT '',
		metadata TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_issues_category ON audit_issues(category_id);
	`

	_, err := adb.db.ExecContext(context.Background(), schema)
	return err
}

// CreateReport inserts report as a new row and stores the assigned ID in
// report.ID. Categories are not written; use SaveReport for that.
func (adb *AuditDB) CreateReport(ctx context.Context, report *model.AuditReport) (int64, error) {
	query := `
	INSERT INTO audit_reports (url, focus_keyword, status, overall_score, error_kind, error_message, created_at, completed_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	res, err := adb.db.ExecContext(ctx, query,
		report.URL,
		report.FocusKeyword,
		string(report.Status),
		report.OverallScore,
		report.ErrorKind,
		report.ErrorMessage,
		formatTimestamp(report.CreatedAt),
		formatTimestamp(report.CompletedAt),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create audit report: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read report id: %w", err)
	}
	report.ID = id
	return id, nil
}

// UpdateStatus changes the lifecycle status of a stored report.
func (adb *AuditDB) UpdateStatus(ctx context.Context, id int64, status model.ReportStatus) error {
	res, err := adb.db.ExecContext(ctx, `UPDATE audit_reports SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return fmt.Errorf("failed to update report status: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %d", ErrReportNotFound, id)
	}
	return nil
}

// SaveReport writes the report row and replaces its categories and issues
// in one transaction. A report without an ID is created first.
func (adb *AuditDB) SaveReport(ctx context.Context, report *model.AuditReport) error {
	if report.ID == 0 {
		if _, err := adb.CreateReport(ctx, report); err != nil {
			return err
		}
	}

	tx, err := adb.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }() //nolint:errcheck // no-op after commit

	res, err := tx.ExecContext(ctx, `
	UPDATE audit_reports
	SET url = ?, focus_keyword = ?, status = ?, overall_score = ?, error_kind = ?, error_message = ?, completed_at = ?
	WHERE id = ?
	`,
		report.URL,
		report.FocusKeyword,
		string(report.Status),
		report.OverallScore,
		report.ErrorKind,
		report.ErrorMessage,
		formatTimestamp(report.CompletedAt),
		report.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to save audit report: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %d", ErrReportNotFound, report.ID)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM audit_categories WHERE report_id = ?`, report.ID); err != nil {
		return fmt.Errorf("failed to clear categories: %w", err)
	}

	for i, c := range report.Categories {
		res, err := tx.ExecContext(ctx, `
		INSERT INTO audit_categories (report_id, position, category, score, status)
		VALUES (?, ?, ?, ?, ?)
		`, report.ID, i, string(c.Category), c.Score, string(c.Status))
		if err != nil {
			return fmt.Errorf("failed to save category %s: %w", c.Category, err)
		}
		categoryID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read category id: %w", err)
		}

		for j, issue := range c.Issues {
			var metadata sql.NullString
			if len(issue.Metadata) > 0 {
				data, err := json.Marshal(issue.Metadata)
				if err != nil {
					return fmt.Errorf("failed to serialize issue metadata: %w", err)
				}
				metadata = sql.NullString{String: string(data), Valid: true}
			}

			if _, err := tx.ExecContext(ctx, `
			INSERT INTO audit_issues (category_id, position, type, priority, message, recommendation, metadata)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			`, categoryID, j, string(issue.Type), issue.Priority.String(), issue.Message, issue.Recommendation, metadata); err != nil {
				return fmt.Errorf("failed to save issue: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit audit report: %w", err)
	}
	return nil
}

// GetReport retrieves a report with its categories and issues.
func (adb *AuditDB) GetReport(ctx context.Context, id int64) (*model.AuditReport, error) {
	row := adb.db.QueryRowContext(ctx, `
	SELECT id, url, focus_keyword, status, overall_score, error_kind, error_message, created_at, completed_at
	FROM audit_reports WHERE id = ?
	`, id)

	report, err := scanReport(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrReportNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get audit report: %w", err)
	}

	categories, err := adb.loadCategories(ctx, id)
	if err != nil {
		return nil, err
	}
	report.Categories = categories
	return report, nil
}

// loadCategories reads the categories of a report in report order.
func (adb *AuditDB) loadCategories(ctx context.Context, reportID int64) ([]model.CategoryResult, error) {
	rows, err := adb.db.QueryContext(ctx, `
	SELECT c.id, c.category, c.score, c.status,
	       i.type, i.priority, i.message, i.recommendation, i.metadata
	FROM audit_categories c
	LEFT JOIN audit_issues i ON i.category_id = c.id
	WHERE c.report_id = ?
	ORDER BY c.position, i.position
	`, reportID)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	defer rows.Close()

	categories := make([]model.CategoryResult, 0)
	lastID := int64(-1)
	for rows.Next() {
		var (
			categoryID int64
			c          model.CategoryResult
			issueType  sql.NullString
			priority   sql.NullString
			message    sql.NullString
			rec        sql.NullString
			metadata   sql.NullString
			name       string
			status     string
		)
		if err := rows.Scan(&categoryID, &name, &c.Score, &status,
			&issueType, &priority, &message, &rec, &metadata); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}

		if categoryID != lastID {
			c.Category = model.CategoryName(name)
			c.Status = model.CategoryStatus(status)
			c.Issues = []model.Issue{}
			categories = append(categories, c)
			lastID = categoryID
		}
		if !issueType.Valid {
			continue
		}

		issue := model.Issue{
			Type:           model.IssueType(issueType.String),
			Message:        message.String,
			Recommendation: rec.String,
		}
		if p, err := model.ParsePriority(priority.String); err == nil {
			issue.Priority = p
		}
		if metadata.Valid && metadata.String != "" {
			if err := json.Unmarshal([]byte(metadata.String), &issue.Metadata); err != nil {
				issue.Metadata = nil
			}
		}

		last := &categories[len(categories)-1]
		last.Issues = append(last.Issues, issue)
	}

	return categories, rows.Err()
}

// ListAuditedURLs returns every audited URL in alphabetical order.
func (adb *AuditDB) ListAuditedURLs(ctx context.Context) ([]string, error) {
	rows, err := adb.db.QueryContext(ctx, `SELECT DISTINCT url FROM audit_reports ORDER BY url`)
	if err != nil {
		return nil, fmt.Errorf("failed to list urls: %w", err)
	}
	defer rows.Close()

	urls := make([]string, 0)
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, fmt.Errorf("failed to scan url: %w", err)
		}
		urls = append(urls, u)
	}

	return urls, rows.Err()
}

// GetHistory returns the reports of pageURL, newest first, without their
// categories. limit <= 0 returns every report.
func (adb *AuditDB) GetHistory(ctx context.Context, pageURL string, limit int) ([]*model.AuditReport, error) {
	query := `
	SELECT id, url, focus_keyword, status, overall_score, error_kind, error_message, created_at, completed_at
	FROM audit_reports
	WHERE url = ?
	ORDER BY created_at DESC, id DESC
	`
	args := []any{pageURL}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := adb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get audit history: %w", err)
	}
	defer rows.Close()

	reports := make([]*model.AuditReport, 0)
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		reports = append(reports, report)
	}

	return reports, rows.Err()
}

// rowScanner is implemented by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanReport(row rowScanner) (*model.AuditReport, error) {
	var (
		report      model.AuditReport
		status      string
		createdAt   string
		completedAt string
	)
	if err := row.Scan(&report.ID, &report.URL, &report.FocusKeyword, &status, &report.OverallScore,
		&report.ErrorKind, &report.ErrorMessage, &createdAt, &completedAt); err != nil {
		return nil, err
	}
	report.Status = model.ReportStatus(status)
	report.CreatedAt = parseTimestamp(createdAt)
	report.CompletedAt = parseTimestamp(completedAt)
	report.Categories = []model.CategoryResult{}
	return &report, nil
}

// storedTimeLayout has a fixed width so stored timestamps sort lexically.
const storedTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// formatTimestamp stores times in UTC. The zero time is stored as an
// empty string.
func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(storedTimeLayout)
}

// timestampFormats contains the timestamp formats that may be stored.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
