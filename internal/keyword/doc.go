// Package keyword extracts ranked keywords and phrases from page content
// and classifies the page into a coarse business category.
//
// The vocabularies (stop words, commercial terms, catalog patterns and
// category indicators) are tuned for Brazilian Portuguese content.
package keyword
