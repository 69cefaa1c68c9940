// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package planner expands a topic into the query sets of the research layers.
// Planning is pure: the same topic and format always yield the same plan.
package planner

import (
	"strings"

	"github.com/pdiddy/contentforge/pkg/types"
)

// LayerQueries is the plan for one research layer: the queries to issue and
// how the aggregator should issue and bound them.
type LayerQueries struct {
	Layer   types.ResearchLayer
	Queries []string

	// Language is the result language ("tr" or "en").
	Language   string
	Mode       types.SearchMode
	TimeWindow types.TimeWindow

	// Cap is the maximum number of results kept for the layer.
	Cap int

	// ExtractStatistics and ExtractQuotes select which signals are pulled
	// from the layer's snippets.
	ExtractStatistics bool
	ExtractQuotes     bool
}

// Plan returns the layer plans for topic in report order: the seven base
// layers, then the format-specific layer when format has one.
func Plan(topic string, format types.ContentFormat) []LayerQueries {
	topic = strings.TrimSpace(topic)
	plan := make([]LayerQueries, 0, len(baseLayers)+1)
	for _, s := range baseLayers {
		plan = append(plan, LayerQueries{
			Layer:             s.layer,
			Queries:           expand(s.templates, topic),
			Language:          s.language,
			Mode:              s.mode,
			TimeWindow:        s.window,
			Cap:               s.cap,
			ExtractStatistics: s.statistics,
			ExtractQuotes:     s.quotes,
		})
	}
	if layer, ok := FormatLayer(format); ok {
		plan = append(plan, LayerQueries{
			Layer:    layer,
			Queries:  expand(formatTemplates[format], topic),
			Language: "tr",
			Mode:     types.ModeWeb,
			Cap:      formatLayerCap,
		})
	}
	return plan
}

func expand(templates []string, topic string) []string {
	out := make([]string, len(templates))
	for i, t := range templates {
		out[i] = strings.ReplaceAll(t, topicPlaceholder, topic)
	}
	return out
}
