// Package pipeline runs page audits as an ordered sequence of steps.
//
// A single audit normalizes the address, fetches the page, extracts the
// document, runs the keyword extractor, business classifier, prompt
// synthesizer and category analyzers, adapts the external scorecards and
// finally aggregates everything into a report. Each stage is a Step that
// reads and extends the audit's Run state.
//
// Only an invalid address, an unrecoverable fetch failure or an empty page
// abort an audit. Aborted audits still produce a report, marked failed and
// carrying an ErrorKind and a user-facing message.
//
// BatchProcessor audits several pages with bounded concurrency using
// errgroup.
package pipeline
