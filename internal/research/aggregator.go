// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package research runs layered research for a topic: it issues the planned
// queries of every layer against a search gateway, bounds and merges the
// results, extracts statistics and quotations, and compiles a single
// research document for drafting. A research run never fails; missing or
// failing search yields empty layers.
package research

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/contentforge/internal/planner"
	"github.com/pdiddy/contentforge/internal/search"
	"github.com/pdiddy/contentforge/internal/signals"
	"github.com/pdiddy/contentforge/pkg/types"
)

const (
	// MaxStatistics caps the statistics kept for a topic.
	MaxStatistics = 15

	// MaxQuotes caps the quotations kept for a topic.
	MaxQuotes = 8

	defaultResultsPerQuery = 5
)

// Aggregator drives the planner, the search gateway and the signal extractor.
type Aggregator struct {
	gateway         search.Gateway
	resultsPerQuery int
	concurrency     int
	logger          *zap.SugaredLogger
}

// NewAggregator creates an aggregator over gateway. A nil logger is
// replaced by a no-op logger.
func NewAggregator(gateway search.Gateway, cfg types.ResearchConfig, logger *zap.SugaredLogger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	if cfg.ResultsPerQuery <= 0 {
		cfg.ResultsPerQuery = defaultResultsPerQuery
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	return &Aggregator{
		gateway:         gateway,
		resultsPerQuery: cfg.ResultsPerQuery,
		concurrency:     cfg.Concurrency,
		logger:          logger,
	}
}

// Research gathers every layer planned for topic and format, in report order.
func (a *Aggregator) Research(ctx context.Context, topic string, format types.ContentFormat) *types.AggregatedResearch {
	topic = strings.TrimSpace(topic)
	out := &types.AggregatedResearch{
		Topic:      topic,
		Format:     format,
		Statistics: []string{},
		Quotes:     []string{},
		Sources:    []string{},
	}

	var stats, quotes []string
	for _, lq := range planner.Plan(topic, format) {
		results := a.runLayer(ctx, lq)

		for _, r := range results {
			if lq.ExtractStatistics {
				stats = append(stats, signals.ExtractStatistics(r.Snippet)...)
			}
			if lq.ExtractQuotes {
				quotes = append(quotes, signals.ExtractQuotes(r.Snippet)...)
			}
		}

		if len(results) > lq.Cap {
			results = results[:lq.Cap]
		}
		out.Layers = append(out.Layers, types.LayerResults{
			Category:   lq.Layer,
			Results:    results,
			QueryCount: len(lq.Queries),
		})
		a.logger.Debugw("layer gathered", "layer", lq.Layer.Key, "queries", len(lq.Queries), "results", len(results))
	}

	seen := map[string]struct{}{}
	for _, l := range out.Layers {
		out.SourcesCount += len(l.Results)
		for _, r := range l.Results {
			if r.Source == "" {
				continue
			}
			if _, ok := seen[r.Source]; ok {
				continue
			}
			seen[r.Source] = struct{}{}
			out.Sources = append(out.Sources, r.Source)
		}
	}

	out.Statistics = capped(signals.Dedupe(stats), MaxStatistics)
	out.Quotes = capped(signals.Dedupe(quotes), MaxQuotes)
	out.CompiledText = Compile(out)

	a.logger.Infow("research complete",
		"topic", topic,
		"sources", out.SourcesCount,
		"statistics", len(out.Statistics),
		"quotes", len(out.Quotes))
	return out
}

// runLayer issues every query of lq and concatenates the results in query
// order. With concurrency > 1 queries run in parallel, each writing to its
// own slot so the concatenation order is unchanged.
func (a *Aggregator) runLayer(ctx context.Context, lq planner.LayerQueries) []types.SearchResult {
	slots := make([][]types.SearchResult, len(lq.Queries))
	request := func(q string) search.Request {
		return search.Request{
			Query:      q,
			Num:        a.resultsPerQuery,
			Language:   lq.Language,
			Mode:       lq.Mode,
			TimeWindow: lq.TimeWindow,
		}
	}

	if a.concurrency == 1 {
		for i, q := range lq.Queries {
			slots[i] = a.gateway.Search(ctx, request(q))
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(a.concurrency)
		for i, q := range lq.Queries {
			i, q := i, q
			g.Go(func() error {
				slots[i] = a.gateway.Search(gctx, request(q))
				return nil
			})
		}
		_ = g.Wait()
	}

	results := []types.SearchResult{}
	for _, s := range slots {
		results = append(results, s...)
	}
	return results
}

func capped(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
