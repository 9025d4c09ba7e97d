package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	"github.com/nao1215/seoaudit/internal/address"
	"github.com/nao1215/seoaudit/internal/analyzer"
	"github.com/nao1215/seoaudit/internal/fetch"
	"github.com/nao1215/seoaudit/internal/keyword"
	"github.com/nao1215/seoaudit/internal/markup"
	"github.com/nao1215/seoaudit/internal/metrics"
	"github.com/nao1215/seoaudit/internal/prompt"
)

// MinContentChars is the minimum number of non-space characters a
// downloaded body must have to be analyzed.
const MinContentChars = 100

// PageFetcher retrieves the markup of a page.
type PageFetcher interface {
	Fetch(ctx context.Context, pageURL string) (*fetch.Page, error)
}

// MetricsProvider retrieves external performance scorecards.
type MetricsProvider interface {
	FetchAll(ctx context.Context, pageURL string) metrics.External
}

// NormalizeStep validates the requested address and stores the normalized
// form on the report.
type NormalizeStep struct{}

// NewNormalizeStep creates a normalize step.
func NewNormalizeStep() *NormalizeStep {
	return &NormalizeStep{}
}

// Name returns the step name.
func (s *NormalizeStep) Name() string {
	return "normalize"
}

// Do executes the normalize step.
func (s *NormalizeStep) Do(_ context.Context, run *Run) error {
	res := address.Normalize(run.RawURL)
	if !res.Valid {
		return fmt.Errorf("%w: %w", ErrInvalidURL, res.Err())
	}
	run.Report.URL = res.Normalized
	run.Report.MarkAnalyzing()
	return nil
}

// FetchStep downloads the page markup unless the run already carries it.
// Downloaded bodies shorter than MinContentChars fail with ErrEmptyContent.
type FetchStep struct {
	fetcher PageFetcher
	logger  *slog.Logger
}

// NewFetchStep creates a fetch step.
func NewFetchStep(fetcher PageFetcher, logger *slog.Logger) *FetchStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &FetchStep{fetcher: fetcher, logger: logger}
}

// Name returns the step name.
func (s *FetchStep) Name() string {
	return "fetch"
}

// Do executes the fetch step.
func (s *FetchStep) Do(ctx context.Context, run *Run) error {
	if run.Markup != "" {
		s.logger.Debug("markup supplied, skipping download", "url", run.Report.URL)
		return nil
	}
	if s.fetcher == nil {
		return fmt.Errorf("%w: no fetcher configured", ErrFetchFailed)
	}

	page, err := s.fetcher.Fetch(ctx, run.Report.URL)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	if n := nonSpaceChars(page.Body); n < MinContentChars {
		return fmt.Errorf("%w: %d characters", ErrEmptyContent, n)
	}
	run.Markup = page.Body
	run.FinalURL = page.URL
	return nil
}

// ExtractStep parses the markup into a document.
type ExtractStep struct{}

// NewExtractStep creates an extract step.
func NewExtractStep() *ExtractStep {
	return &ExtractStep{}
}

// Name returns the step name.
func (s *ExtractStep) Name() string {
	return "extract"
}

// Do executes the extract step.
func (s *ExtractStep) Do(_ context.Context, run *Run) error {
	pageURL := run.FinalURL
	if pageURL == "" {
		pageURL = run.Report.URL
	}
	run.Doc = markup.Extract(run.Markup, pageURL)
	return nil
}

func nonSpaceChars(s string) int {
	n := 0
	for _, r := range s {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}

// AnalyzeStep extracts keywords, classifies the business, synthesizes
// prompts and runs the category analyzers.
type AnalyzeStep struct {
	coordinator *analyzer.Coordinator
}

// NewAnalyzeStep creates an analyze step.
func NewAnalyzeStep(coordinator *analyzer.Coordinator) *AnalyzeStep {
	if coordinator == nil {
		coordinator = analyzer.NewCoordinator()
	}
	return &AnalyzeStep{coordinator: coordinator}
}

// Name returns the step name.
func (s *AnalyzeStep) Name() string {
	return "analyze"
}

// Do executes the analyze step.
func (s *AnalyzeStep) Do(ctx context.Context, run *Run) error {
	doc := run.Doc
	run.Phrases = keyword.Extract(doc.Title, doc.MetaDescription, doc.Text)
	pageText := strings.Join([]string{doc.Title, doc.MetaDescription, doc.Text}, " ")
	run.Context = keyword.Classify(pageText)
	run.ContextScores = keyword.Scores(pageText)
	run.Prompts = prompt.Synthesize(prompt.Input{
		Phrases: run.Phrases,
		Context: run.Context,
		Cues:    analyzer.DetectCues(doc),
		Text:    doc.Text,
		Host:    doc.Host,
		Year:    run.Year,
	})

	results, err := s.coordinator.Run(ctx, &analyzer.Input{
		Doc:           doc,
		Keyword:       run.Keyword,
		Phrases:       run.Phrases,
		Context:       run.Context,
		ContextScores: run.ContextScores,
		Prompts:       run.Prompts,
	})
	if err != nil {
		return err
	}
	run.Categories = append(run.Categories, results...)
	return nil
}

// MetricsStep adapts the external scorecards into the Performance and
// Mobile Friendliness categories. Missing metrics never fail the run.
type MetricsStep struct {
	provider MetricsProvider
	logger   *slog.Logger
}

// NewMetricsStep creates a metrics step. provider may be nil.
func NewMetricsStep(provider MetricsProvider, logger *slog.Logger) *MetricsStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &MetricsStep{provider: provider, logger: logger}
}

// Name returns the step name.
func (s *MetricsStep) Name() string {
	return "metrics"
}

// Do executes the metrics step.
func (s *MetricsStep) Do(ctx context.Context, run *Run) error {
	if run.External == nil && s.provider != nil {
		ext := s.provider.FetchAll(ctx, run.Report.URL)
		run.External = &ext
	}

	var ext metrics.External
	if run.External != nil {
		ext = *run.External
	}
	if ext.Empty() {
		s.logger.Warn("using placeholder scores", "url", run.Report.URL, "error", ErrMetricsUnavailable)
	}

	performance, mobile := metrics.Adapt(ext)
	if run.Doc != nil {
		mobile = metrics.MobileFallback(mobile, ext, run.Doc.MetaViewport)
	}
	run.Categories = append(run.Categories, performance, mobile)
	return nil
}

// AggregateStep computes the overall score and completes the report.
type AggregateStep struct{}

// NewAggregateStep creates an aggregate step.
func NewAggregateStep() *AggregateStep {
	return &AggregateStep{}
}

// Name returns the step name.
func (s *AggregateStep) Name() string {
	return "aggregate"
}

// Do executes the aggregate step.
func (s *AggregateStep) Do(_ context.Context, run *Run) error {
	run.Report.Complete(run.Categories)
	return nil
}
