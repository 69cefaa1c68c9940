// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package quality scores finished content on four independent heuristics
// (readability, SEO structure, factual-claim verification and originality)
// and combines them into an overall grade. All scorers except fact-checking
// are pure functions of the content.
package quality

import (
	"context"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/pdiddy/contentforge/pkg/types"
)

// Analyzer runs every scorer over one piece of content.
type Analyzer struct {
	facts  *FactChecker
	logger *zap.SugaredLogger
}

// NewAnalyzer creates an analyzer. facts may be nil, in which case
// fact-checking is always reported as not computed.
func NewAnalyzer(facts *FactChecker, logger *zap.SugaredLogger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Analyzer{facts: facts, logger: logger}
}

// Analyze scores content for topic. Fact-checking runs only when deep is
// set and a fact checker is configured; its claim-extraction failure is the
// only error Analyze returns.
func (a *Analyzer) Analyze(ctx context.Context, content, topic string, deep bool) (types.QualityReport, error) {
	report := types.QualityReport{
		Readability: Readability(content),
		SEO:         SEO(content, topic),
		Originality: Originality(content),
	}

	if deep && a.facts != nil {
		fc, err := a.facts.Score(ctx, content)
		if err != nil {
			return types.QualityReport{}, errors.Wrap(err, "fact-checking content")
		}
		report.FactCheck = fc
	} else {
		report.FactCheck = NotComputed("Devre dışı")
	}

	report.Overall = Combine(SubScores{
		Readability: report.Readability.Score,
		SEO:         report.SEO.Score,
		Originality: report.Originality.Score,
		FactCheck:   factCheckInput(report.FactCheck),
	})
	a.logger.Infow("content scored",
		"overall", report.Overall.Score,
		"readability", report.Readability.Score,
		"seo", report.SEO.Score,
		"originality", report.Originality.Score,
		"fact_check", report.FactCheck.Score)
	return report, nil
}
