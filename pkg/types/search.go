// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the contentforge pipeline:
// search results, layered research, quality scores, pipeline events, content
// options and component configuration.
package types

// SearchMode selects the provider endpoint used for a query.
type SearchMode string

const (
	ModeWeb  SearchMode = "web"
	ModeNews SearchMode = "news"
)

// TimeWindow restricts results to a recent period. Empty means no restriction.
type TimeWindow string

const (
	WindowNone  TimeWindow = ""
	WindowDay   TimeWindow = "d"
	WindowWeek  TimeWindow = "w"
	WindowMonth TimeWindow = "m"
	WindowYear  TimeWindow = "y"
)

// Literal source tags for enrichment results that carry no domain.
const (
	SourceKnowledgeGraph = "Knowledge Graph"
	SourceAnswerBox      = "Answer Box"
	SourceRelatedQ       = "İlgili Soru"
)

// SearchResult is one normalized result returned by the search gateway.
type SearchResult struct {
	// Title is the page title, question or knowledge panel heading.
	Title string `json:"title" yaml:"title"`

	// Snippet is the text excerpt shown by the provider.
	Snippet string `json:"snippet" yaml:"snippet"`

	// Link is the result URL. May be empty for answers.
	Link string `json:"link" yaml:"link"`

	// Date is the provider's display date, when present.
	Date string `json:"date,omitempty" yaml:"date,omitempty"`

	// Source is the bare domain of Link (without "www.") or a literal tag
	// such as SourceKnowledgeGraph.
	Source string `json:"source" yaml:"source"`

	IsKG       bool `json:"is_kg,omitempty" yaml:"is_kg,omitempty"`
	IsAnswer   bool `json:"is_answer,omitempty" yaml:"is_answer,omitempty"`
	IsQuestion bool `json:"is_question,omitempty" yaml:"is_question,omitempty"`
}
