package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/nao1215/seoaudit/internal/model"
	"golang.org/x/sync/errgroup"
)

// Target is one page to audit in a batch.
type Target struct {
	URL     string
	Keyword string
}

// BatchProcessor audits several pages concurrently.
// It uses errgroup to manage goroutines and respect the concurrency limit.
type BatchProcessor struct {
	// pipelineFactory creates a fresh pipeline for each audit so no
	// state leaks between runs.
	pipelineFactory func() *Pipeline

	// concurrency is the maximum number of concurrent audits.
	concurrency int

	logger *slog.Logger
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent audits.
// Default is 4 if not specified.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a new BatchProcessor.
func NewBatchProcessor(pipelineFactory func() *Pipeline, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		pipelineFactory: pipelineFactory,
		concurrency:     4,
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// ProcessBatchWithCallback audits the targets and calls callback as each
// audit finishes. The callback is invoked from worker goroutines and must
// be safe for concurrent use. A failed audit yields a failed report and
// does not stop the others; the error is non-nil only when ctx is
// cancelled.
func (bp *BatchProcessor) ProcessBatchWithCallback(
	ctx context.Context,
	targets []Target,
	callback func(report *model.AuditReport, index int),
) error {
	bp.logger.Info("starting batch processing",
		"total_targets", len(targets),
		"concurrency", bp.concurrency,
	)
	startTime := time.Now()
	defer func() {
		bp.logger.Info("batch processing complete",
			"total_targets", len(targets),
			"elapsed", time.Since(startTime),
		)
	}()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, target := range targets {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			bp.logger.Info("auditing page",
				"url", target.URL,
				"index", i+1,
				"total", len(targets),
			)

			run := NewRun(target.URL, target.Keyword)
			report := bp.pipelineFactory().Audit(ctx, run)
			if report.Status == model.ReportFailed {
				bp.logger.Warn("audit failed",
					"url", target.URL,
					"kind", report.ErrorKind,
				)
			}

			callback(report, i)
			return nil
		})
	}

	return g.Wait()
}
