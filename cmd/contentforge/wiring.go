// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"

	"github.com/cockroachdb/errors"

	"github.com/pdiddy/contentforge/internal/draft"
	"github.com/pdiddy/contentforge/internal/images"
	"github.com/pdiddy/contentforge/internal/llm"
	"github.com/pdiddy/contentforge/internal/pipeline"
	"github.com/pdiddy/contentforge/internal/quality"
	"github.com/pdiddy/contentforge/internal/research"
	"github.com/pdiddy/contentforge/internal/search"
	"github.com/pdiddy/contentforge/internal/store"
	"github.com/pdiddy/contentforge/pkg/types"
)

func newEngine(cfg types.AIConfig) (*llm.GroqClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.WithHint(llm.ErrMissingAPIKey,
			"set ai.api_key in contentforge.yaml, CONTENTFORGE_AI_API_KEY, or .secrets/groq-api-key")
	}
	return llm.NewGroqClient(cfg, logger), nil
}

// newResearcher returns nil when search has no credentials, which makes
// the research stage a no-op.
func newResearcher(cfg types.PipelineConfig) pipeline.Researcher {
	gw := search.NewSerperGateway(cfg.Search, logger)
	if !gw.Enabled() {
		return nil
	}
	return research.NewAggregator(gw, cfg.Research, logger)
}

func newImages(cfg types.ImageConfig) images.Gateway {
	gw := images.NewUnsplashGateway(cfg, logger)
	if !gw.Enabled() {
		return nil
	}
	return gw
}

// newAnalyzer builds the quality analyzer. Fact-checking needs both the
// engine and search; without either it is reported as not computed.
func newAnalyzer(cfg types.PipelineConfig, engine llm.Engine, deep bool) *quality.Analyzer {
	var facts *quality.FactChecker
	gw := search.NewSerperGateway(cfg.Search, logger)
	if deep && engine != nil && gw.Enabled() {
		facts = quality.NewFactChecker(engine, gw, logger)
	}
	return quality.NewAnalyzer(facts, logger)
}

// newOrchestrator wires the full pipeline. A non-nil researcher replaces
// live search.
func newOrchestrator(cfg types.PipelineConfig, researcher pipeline.Researcher) (*pipeline.Orchestrator, error) {
	engine, err := newEngine(cfg.AI)
	if err != nil {
		return nil, err
	}
	if researcher == nil {
		researcher = newResearcher(cfg)
	}
	return pipeline.New(pipeline.Config{
		Researcher: researcher,
		Images:     newImages(cfg.Images),
		Writer:     draft.NewWriter(engine, logger),
		Scorer:     newAnalyzer(cfg, engine, cfg.DeepCheck),
		DeepCheck:  cfg.DeepCheck,
		Logger:     logger,
	})
}

func openStore(cfg types.StoreConfig) (*store.Store, error) {
	return store.Open(cfg, logger)
}

// printEvent writes one progress line for ev.
func printEvent(w io.Writer, ev types.PipelineEvent) {
	switch ev.Type {
	case types.EventAgentStart:
		name := ""
		if ev.Agent != nil {
			name = ev.Agent.Avatar + " " + ev.Agent.Name + ": "
		}
		fmt.Fprintf(w, "[%d/%d] %s%s\n", ev.Step, ev.TotalSteps, name, ev.Message)
	case types.EventAgentComplete:
		fmt.Fprintf(w, "      ✓ %s\n", ev.Message)
	case types.EventError:
		fmt.Fprintf(w, "      ✗ %s\n", ev.Message)
	default:
		fmt.Fprintln(w, ev.Message)
	}
}
