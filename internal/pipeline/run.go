package pipeline

import (
	"time"

	"github.com/nao1215/seoaudit/internal/keyword"
	"github.com/nao1215/seoaudit/internal/markup"
	"github.com/nao1215/seoaudit/internal/metrics"
	"github.com/nao1215/seoaudit/internal/model"
)

// Run carries the state of a single audit through the pipeline steps.
// Each audit owns its Run; steps never share one across goroutines.
type Run struct {
	// RawURL is the address as the caller supplied it.
	RawURL string

	// Keyword is the optional focus phrase.
	Keyword string

	// Report is the result being built. Its URL becomes the normalized
	// address once the normalize step ran.
	Report *model.AuditReport

	// Markup is the page body. When set before execution the fetch step
	// does not download the page.
	Markup string

	// FinalURL is the address the markup was served from after redirects.
	FinalURL string

	Doc           *markup.Document
	Phrases       []model.Phrase
	Context       keyword.BusinessContext
	ContextScores map[keyword.BusinessContext]int
	Prompts       []string
	Categories    []model.CategoryResult

	// External holds the scorecards. When set before execution the metrics
	// step does not call the provider.
	External *metrics.External

	// Year stamps trend prompts.
	Year int

	// Steps lists the steps that completed, in order.
	Steps []string
}

// NewRun creates the state for auditing rawURL.
func NewRun(rawURL, focusKeyword string) *Run {
	return &Run{
		RawURL:     rawURL,
		Keyword:    focusKeyword,
		Report:     model.NewAuditReport(rawURL, focusKeyword),
		Categories: []model.CategoryResult{},
		Year:       time.Now().Year(),
		Steps:      []string{},
	}
}
