package metrics

import (
	"fmt"
	"math"
	"slices"

	"github.com/nao1215/seoaudit/internal/model"
)

// coreWebVitals are the audits surfaced in the Performance category, in
// display order.
var coreWebVitals = []struct {
	id    string
	label string
}{
	{"largest-contentful-paint", "Largest Contentful Paint"},
	{"first-contentful-paint", "First Contentful Paint"},
	{"cumulative-layout-shift", "Cumulative Layout Shift"},
	{"total-blocking-time", "Total Blocking Time"},
	{"speed-index", "Speed Index"},
}

// mobileCategories are averaged into the Mobile Friendliness score.
var mobileCategories = []struct {
	id    string
	label string
}{
	{CategoryPerformance, "Mobile performance"},
	{CategoryAccessibility, "Accessibility"},
	{CategoryBestPractices, "Best practices"},
}

// Mobile audit deductions.
const (
	viewportPenalty   = 15
	tapTargetsPenalty = 10
)

// Adapt converts external scorecards into the Performance and Mobile
// Friendliness categories. Missing data yields zero-score placeholders.
func Adapt(ext External) (performance, mobile model.CategoryResult) {
	return AdaptPerformance(ext), AdaptMobile(ext)
}

// AdaptPerformance scores page speed, preferring the desktop scorecard.
func AdaptPerformance(ext External) model.CategoryResult {
	card := ext.Desktop
	if _, ok := card.CategoryScore(CategoryPerformance); !ok {
		card = ext.Mobile
	}
	raw, ok := card.CategoryScore(CategoryPerformance)
	if !ok {
		return unavailable(model.CategoryPerformance)
	}

	score := toPercent(raw)
	issues := []model.Issue{scoreIssue(fmt.Sprintf("Performance score is %d/100", score), score, 90, 50,
		"Optimize images, reduce JavaScript and enable caching to speed up the page")}

	for _, vital := range coreWebVitals {
		audit, ok := card.Audit(vital.id)
		if !ok || audit.DisplayValue == "" {
			continue
		}
		issues = append(issues, model.Success(fmt.Sprintf("%s: %s", vital.label, audit.DisplayValue)).
			WithMetadata("audit", vital.id).
			WithMetadata("value", audit.DisplayValue))
	}

	return model.NewCategoryResult(model.CategoryPerformance, score, issues)
}

// AdaptMobile scores mobile friendliness from the mobile scorecard as the
// mean of its performance, accessibility and best-practices scores, minus
// viewport and tap target deductions.
func AdaptMobile(ext External) model.CategoryResult {
	card := ext.Mobile
	if card == nil {
		return unavailable(model.CategoryMobileFriendliness)
	}

	var sum float64
	n := 0
	details := make([]model.Issue, 0, len(mobileCategories))
	for _, c := range mobileCategories {
		raw, ok := card.CategoryScore(c.id)
		if !ok {
			continue
		}
		sum += raw
		n++
		details = append(details, model.Success(fmt.Sprintf("%s: %d/100", c.label, toPercent(raw))).
			WithMetadata("category", c.id))
	}
	if n == 0 {
		return unavailable(model.CategoryMobileFriendliness)
	}

	score := toPercent(sum / float64(n))
	issues := make([]model.Issue, 0, len(details)+3)

	if failed(card, "viewport") {
		score -= viewportPenalty
		issues = append(issues, model.Error(model.PriorityHigh,
			"Viewport is not configured for mobile devices",
			`Add <meta name="viewport" content="width=device-width, initial-scale=1">`))
	}
	if failed(card, "tap-targets") {
		score -= tapTargetsPenalty
		issues = append(issues, model.Warning(model.PriorityMedium,
			"Tap targets are too small or too close together",
			"Make buttons and links at least 48x48 pixels with spacing between them"))
	}

	score = model.ClampScore(score)
	issues = append([]model.Issue{scoreIssue(fmt.Sprintf("Mobile friendliness score is %d/100", score), score, 80, 40,
		"Improve mobile performance, accessibility and best practices")}, issues...)
	issues = append(issues, details...)

	return model.NewCategoryResult(model.CategoryMobileFriendliness, score, issues)
}

// MobileFallback adds a finding about the page's own viewport meta tag to
// the Mobile Friendliness placeholder used when no mobile scorecard is
// available. The placeholder score is kept; scored results are returned
// unchanged.
func MobileFallback(mobile model.CategoryResult, ext External, viewport string) model.CategoryResult {
	if hasMobileScores(ext.Mobile) {
		return mobile
	}

	var hint model.Issue
	if viewport == "" {
		hint = model.Warning(model.PriorityMedium,
			"No viewport meta tag found in the markup",
			`Add <meta name="viewport" content="width=device-width, initial-scale=1">`)
	} else {
		hint = model.Success("Viewport meta tag is declared in the markup").
			WithMetadata("viewport", viewport)
	}
	issues := append(slices.Clone(mobile.Issues), hint)
	return model.NewCategoryResult(mobile.Category, mobile.Score, issues)
}

func hasMobileScores(card *Scorecard) bool {
	for _, c := range mobileCategories {
		if _, ok := card.CategoryScore(c.id); ok {
			return true
		}
	}
	return false
}

// failed reports whether the audit is present with a score of zero.
func failed(card *Scorecard, id string) bool {
	audit, ok := card.Audit(id)
	return ok && audit.Score != nil && *audit.Score == 0
}

// scoreIssue classifies an overall score as success, warning or error.
func scoreIssue(message string, score, good, fair int, recommendation string) model.Issue {
	switch {
	case score >= good:
		return model.Success(message)
	case score >= fair:
		return model.Warning(model.PriorityMedium, message, recommendation)
	default:
		return model.Error(model.PriorityHigh, message, recommendation)
	}
}

func unavailable(name model.CategoryName) model.CategoryResult {
	return model.NewCategoryResult(name, 0, []model.Issue{
		model.Error(model.PriorityHigh,
			name.Label()+" data unavailable",
			"The metrics service returned no data for this page. Retry the audit later."),
	})
}

func toPercent(v float64) int {
	return int(math.Round(v * 100))
}
