// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package quality

import "github.com/pdiddy/contentforge/pkg/types"

// Weights of the sub-scores in the overall score.
const (
	WeightReadability = 0.25
	WeightSEO         = 0.30
	WeightOriginality = 0.25
	WeightFactCheck   = 0.20
)

// FactCheckDefault replaces a fact-check score that was not computed.
const FactCheckDefault = 75

// SubScores are the four inputs of Combine. All must be present.
type SubScores struct {
	Readability int
	SEO         int
	Originality int
	FactCheck   int
}

// Combine returns the weighted mean of s, rounded, with its letter grade.
func Combine(s SubScores) types.OverallQuality {
	raw := WeightReadability*float64(s.Readability) +
		WeightSEO*float64(s.SEO) +
		WeightOriginality*float64(s.Originality) +
		WeightFactCheck*float64(s.FactCheck)
	score := clampScore(raw)
	return types.OverallQuality{Score: score, Grade: letterGrade(score)}
}

// factCheckInput is the fact-check value fed to Combine: the computed score,
// or FactCheckDefault when there is none.
func factCheckInput(fc types.FactCheckScore) int {
	if fc.Score > 0 {
		return fc.Score
	}
	return FactCheckDefault
}
