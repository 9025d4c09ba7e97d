package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nao1215/seoaudit/internal/keyword"
	"github.com/nao1215/seoaudit/internal/markup"
	"github.com/nao1215/seoaudit/internal/model"
)

// Input is everything a category analyzer may inspect.
// Analyzers must not modify it.
type Input struct {
	// Doc is the extracted page.
	Doc *markup.Document

	// Keyword is the optional focus phrase.
	Keyword string

	// Phrases are the ranked keywords extracted from the page.
	Phrases []model.Phrase

	// Context is the page's business category.
	Context keyword.BusinessContext

	// ContextScores holds the indicator hits behind Context.
	ContextScores map[keyword.BusinessContext]int

	// Prompts are the synthesized AI-search prompts.
	Prompts []string
}

// FocusKeyword returns the trimmed, lowercased focus phrase.
func (in *Input) FocusKeyword() string {
	return strings.ToLower(strings.Join(strings.Fields(in.Keyword), " "))
}

// CategoryAnalyzer scores one quality dimension of a page.
// Implementations never fail: missing signals become findings.
type CategoryAnalyzer interface {
	// Name returns the category the analyzer produces.
	Name() model.CategoryName

	// Analyze scores the page.
	Analyze(in *Input) model.CategoryResult
}

// Coordinator runs the registered category analyzers in order.
type Coordinator struct {
	analyzers []CategoryAnalyzer
	logger    *slog.Logger
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithLogger sets the logger used to report analyzer failures.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Coordinator) {
		c.logger = logger
	}
}

// NewCoordinator creates a Coordinator with all built-in analyzers
// registered in report order.
func NewCoordinator(opts ...Option) *Coordinator {
	c := &Coordinator{
		analyzers: make([]CategoryAnalyzer, 0, 9),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.Register(NewMetaTagsAnalyzer())
	c.Register(NewStructureAnalyzer())
	c.Register(NewImagesAnalyzer())
	c.Register(NewKeywordAnalyzer())
	c.Register(NewContentAnalyzer())
	c.Register(NewLinksAnalyzer())
	c.Register(NewTechnicalAnalyzer())
	c.Register(NewReadabilityAnalyzer())
	c.Register(NewAISearchAnalyzer())

	return c
}

// Register appends an analyzer.
func (c *Coordinator) Register(a CategoryAnalyzer) {
	c.analyzers = append(c.analyzers, a)
}

// Run executes every analyzer against in. Keyword Optimization is skipped
// when no focus phrase is supplied. A panicking analyzer yields a
// zero-score result instead of aborting the audit.
func (c *Coordinator) Run(ctx context.Context, in *Input) ([]model.CategoryResult, error) {
	results := make([]model.CategoryResult, 0, len(c.analyzers))
	for _, a := range c.analyzers {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if a.Name() == model.CategoryKeywordOptimization && in.FocusKeyword() == "" {
			continue
		}
		results = append(results, c.runOne(a, in))
	}
	return results, nil
}

func (c *Coordinator) runOne(a CategoryAnalyzer, in *Input) (result model.CategoryResult) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("analyzer panicked", "category", a.Name(), "panic", r)
			result = unableToAnalyze(a.Name(), fmt.Sprint(r))
		}
	}()
	return a.Analyze(in)
}

// unableToAnalyze is the result used when a category cannot be evaluated.
func unableToAnalyze(name model.CategoryName, reason string) model.CategoryResult {
	return model.NewCategoryResult(name, 0, []model.Issue{
		model.Warning(model.PriorityMedium,
			"Unable to analyze "+name.Label(),
			"Check that the page returns valid HTML and try again").
			WithMetadata("reason", reason),
	})
}
