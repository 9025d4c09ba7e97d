// Package prompt generates the questions users are likely to ask AI
// assistants about a page's subject, from its ranked phrases, business
// category, structural cues, mentioned places and brand.
package prompt
