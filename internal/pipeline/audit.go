package pipeline

import (
	"context"
	"log/slog"

	"github.com/nao1215/seoaudit/internal/analyzer"
	"github.com/nao1215/seoaudit/internal/metrics"
	"github.com/nao1215/seoaudit/internal/model"
)

// Auditor builds audit pipelines from its collaborators.
type Auditor struct {
	fetcher  PageFetcher
	provider MetricsProvider
	logger   *slog.Logger
}

// AuditorOption configures an Auditor.
type AuditorOption func(*Auditor)

// WithMetricsProvider sets the source of external scorecards. Without one
// the Performance and Mobile Friendliness categories are placeholders
// unless the caller passes scorecards to RunAudit.
func WithMetricsProvider(provider MetricsProvider) AuditorOption {
	return func(a *Auditor) {
		a.provider = provider
	}
}

// WithAuditLogger sets the logger shared by the pipeline and its steps.
func WithAuditLogger(logger *slog.Logger) AuditorOption {
	return func(a *Auditor) {
		a.logger = logger
	}
}

// NewAuditor creates an Auditor that downloads pages with fetcher.
func NewAuditor(fetcher PageFetcher, opts ...AuditorOption) *Auditor {
	a := &Auditor{
		fetcher: fetcher,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Pipeline returns a fresh pipeline with the audit steps in order.
func (a *Auditor) Pipeline() *Pipeline {
	p := New(WithLogger(a.logger))
	p.AddSteps(
		NewNormalizeStep(),
		NewFetchStep(a.fetcher, a.logger),
		NewExtractStep(),
		NewAnalyzeStep(analyzer.NewCoordinator(analyzer.WithLogger(a.logger))),
		NewMetricsStep(a.provider, a.logger),
		NewAggregateStep(),
	)
	return p
}

// RunAudit audits rawURL. ext, when non-nil, is used instead of asking the
// metrics provider. The returned report is either completed or failed.
func (a *Auditor) RunAudit(ctx context.Context, rawURL, focusKeyword string, ext *metrics.External) *model.AuditReport {
	run := NewRun(rawURL, focusKeyword)
	run.External = ext
	return a.Pipeline().Audit(ctx, run)
}

// Analyze audits markup that is already in hand. No network access is
// performed; ext may be nil.
func Analyze(pageURL, markup, focusKeyword string, ext *metrics.External) *model.AuditReport {
	if ext == nil {
		ext = &metrics.External{}
	}
	run := NewRun(pageURL, focusKeyword)
	run.Markup = markup
	run.External = ext

	p := New()
	p.AddSteps(
		NewNormalizeStep(),
		NewExtractStep(),
		NewAnalyzeStep(nil),
		NewMetricsStep(nil, nil),
		NewAggregateStep(),
	)
	return p.Audit(context.Background(), run)
}
