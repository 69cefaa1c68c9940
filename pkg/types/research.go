// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// LayerKey identifies a research layer.
type LayerKey string

const (
	LayerGeneral        LayerKey = "general"
	LayerStatistics     LayerKey = "statistics"
	LayerNews           LayerKey = "news"
	LayerExpert         LayerKey = "expert"
	LayerCases          LayerKey = "cases"
	LayerGlobal         LayerKey = "global"
	LayerFAQ            LayerKey = "faq"
	LayerFormatSpecific LayerKey = "format_specific"
)

// ResearchLayer is the display metadata of one research layer.
type ResearchLayer struct {
	Key         LayerKey `json:"key" yaml:"key"`
	Icon        string   `json:"icon" yaml:"icon"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`

	// Priority orders layers in the report, ascending.
	Priority int `json:"priority" yaml:"priority"`
}

// LayerResults holds the bounded results gathered for one layer.
type LayerResults struct {
	Category   ResearchLayer  `json:"category" yaml:"category"`
	Results    []SearchResult `json:"results" yaml:"results"`
	QueryCount int            `json:"query_count" yaml:"query_count"`
}

// AggregatedResearch is the merged output of a layered research run.
// Layers keeps report order; a layer with no results is still present.
type AggregatedResearch struct {
	Topic        string         `json:"topic" yaml:"topic"`
	Format       ContentFormat  `json:"format" yaml:"format"`
	Layers       []LayerResults `json:"layers" yaml:"layers"`
	Statistics   []string       `json:"statistics" yaml:"statistics"`
	Quotes       []string       `json:"quotes" yaml:"quotes"`
	Sources      []string       `json:"sources" yaml:"sources"`
	SourcesCount int            `json:"sources_count" yaml:"sources_count"`
	CompiledText string         `json:"compiled_text" yaml:"compiled_text"`
}

// Layer returns the results stored under key.
func (r *AggregatedResearch) Layer(key LayerKey) (LayerResults, bool) {
	for _, l := range r.Layers {
		if l.Category.Key == key {
			return l, true
		}
	}
	return LayerResults{}, false
}

// LayerKeys returns the layer keys in report order.
func (r *AggregatedResearch) LayerKeys() []LayerKey {
	keys := make([]LayerKey, len(r.Layers))
	for i, l := range r.Layers {
		keys[i] = l.Category.Key
	}
	return keys
}
