// Package metrics turns third-party page-speed scorecards into the
// Performance and Mobile Friendliness categories.
//
// Client fetches Lighthouse scorecards from the PageSpeed Insights API for
// the desktop and mobile strategies in parallel. Adapt converts whatever
// arrived into category results; when no data is available both categories
// are reported as critical zero-score placeholders instead of being omitted.
package metrics
