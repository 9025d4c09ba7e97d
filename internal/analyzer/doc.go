// Package analyzer scores a page across independent SEO quality dimensions.
//
// Each CategoryAnalyzer inspects the read-only markup.Document and returns
// a model.CategoryResult with a score in [0,100] and its findings. Analyzers
// never fail: a missing signal is a finding, not an error. The Coordinator
// runs them in report order:
//
//	meta_tags, structure, images, keyword_optimization (only with a focus
//	keyword), content_structure, links, technical, readability,
//	ai_search_optimization
//
// Most analyzers start from 100 and subtract penalties; Keyword
// Optimization, Technical Signals, Readability and AI Search Optimization
// add weighted points from zero.
package analyzer
