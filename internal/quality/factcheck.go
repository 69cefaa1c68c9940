// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package quality

import (
	"context"
	"math"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/pdiddy/contentforge/internal/llm"
	"github.com/pdiddy/contentforge/internal/search"
	"github.com/pdiddy/contentforge/pkg/types"
)

const claimSystemPrompt = `İçerikten DOĞRULANABİLİR iddiaları çıkar. Sadece:
- İstatistikler ve rakamlar
- Tarihsel olaylar
- Şirket/kişi hakkında somut bilgiler
- Araştırma sonuçları

Her satıra bir iddia yaz. Maksimum 5 iddia.
Genel görüşleri veya öznel ifadeleri ALMA.`

const (
	maxClaims          = 5
	claimContentRunes  = 3000
	claimTemperature   = 0.2
	claimMinRunes      = 10
	claimDisplayRunes  = 100
	verifyResultsCount = 3

	// NoClaimsScore is the fact-check score when content has no checkable claim.
	NoClaimsScore = 85

	noClaimsNote = "Doğrulanabilir somut iddia bulunamadı"
)

// FactChecker extracts verifiable claims with the generation engine and
// checks each one against web search results.
type FactChecker struct {
	engine  llm.Engine
	gateway search.Gateway
	logger  *zap.SugaredLogger
}

// NewFactChecker creates a fact checker. A nil logger is replaced by a
// no-op logger.
func NewFactChecker(engine llm.Engine, gateway search.Gateway, logger *zap.SugaredLogger) *FactChecker {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &FactChecker{engine: engine, gateway: gateway, logger: logger}
}

// ExtractClaims asks the engine for at most five verifiable claims in content.
// An empty answer means no claims.
func (f *FactChecker) ExtractClaims(ctx context.Context, content string) ([]string, error) {
	user := "İçerik:\n" + truncateRunes(content, claimContentRunes)
	text, err := f.engine.Complete(ctx, claimSystemPrompt, user, claimTemperature)
	if errors.Is(err, llm.ErrEmptyCompletion) {
		f.logger.Debugw("engine returned no claims")
		return []string{}, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "extracting claims")
	}
	return parseClaims(text), nil
}

// parseClaims keeps non-trivial lines of an engine answer, without list dashes.
func parseClaims(text string) []string {
	claims := []string{}
	for _, line := range strings.Split(text, "\n") {
		if runeLen(strings.TrimSpace(line)) <= claimMinRunes {
			continue
		}
		claims = append(claims, strings.TrimSpace(strings.Trim(line, "- ")))
		if len(claims) == maxClaims {
			break
		}
	}
	return claims
}

// Verify searches for claim and rates it by the best word overlap between
// the claim and an organic result snippet: above 0.5 is verified, above 0.3
// uncertain, otherwise unverified. No results means uncertain.
func (f *FactChecker) Verify(ctx context.Context, claim string) types.ClaimResult {
	results := f.gateway.Search(ctx, search.Request{
		Query:    claim,
		Num:      verifyResultsCount,
		Language: "tr",
		Mode:     types.ModeWeb,
	})

	var organic []types.SearchResult
	for _, r := range results {
		if r.IsKG || r.IsAnswer || r.IsQuestion {
			continue
		}
		organic = append(organic, r)
	}

	display := truncateRunes(claim, claimDisplayRunes)
	if len(organic) == 0 {
		return types.ClaimResult{Claim: display, Status: types.ClaimUncertain}
	}

	claimWords := wordSet(claim)
	best, source := 0.0, ""
	for _, r := range organic {
		if ratio := overlap(claimWords, wordSet(r.Snippet)); ratio > best {
			best, source = ratio, r.Link
		}
	}

	res := types.ClaimResult{Claim: display, Confidence: int(math.Round(best * 100))}
	switch {
	case best > 0.5:
		res.Status, res.Source = types.ClaimVerified, source
	case best > 0.3:
		res.Status, res.Source = types.ClaimUncertain, source
	default:
		res.Status = types.ClaimUnverified
	}
	return res
}

// Score extracts claims from content and verifies each. An extraction
// failure is returned; a claim whose search fails counts as uncertain.
func (f *FactChecker) Score(ctx context.Context, content string) (types.FactCheckScore, error) {
	claims, err := f.ExtractClaims(ctx, content)
	if err != nil {
		return types.FactCheckScore{}, err
	}
	results := make([]types.ClaimResult, 0, len(claims))
	for _, c := range claims {
		results = append(results, f.Verify(ctx, c))
	}
	f.logger.Debugw("claims verified", "claims", len(results))
	return ScoreClaims(results), nil
}

// ScoreClaims aggregates claim results: verified counts 100, uncertain 60
// and unverified 20, averaged over all claims. With no claims the score is
// NoClaimsScore.
func ScoreClaims(results []types.ClaimResult) types.FactCheckScore {
	out := types.FactCheckScore{
		QualityScore: types.QualityScore{Issues: []string{}, Suggestions: []string{}},
		Computed:     true,
		Claims:       results,
	}
	if len(results) == 0 {
		out.Score = NoClaimsScore
		out.Grade = types.GradeB
		out.Claims = []types.ClaimResult{}
		out.Note = noClaimsNote
		return out
	}

	for _, r := range results {
		switch r.Status {
		case types.ClaimVerified:
			out.Verified++
		case types.ClaimUnverified:
			out.Unverified++
		default:
			out.Uncertain++
		}
	}
	out.ClaimsChecked = len(results)
	raw := float64(out.Verified*100+out.Uncertain*60+out.Unverified*20) / float64(len(results))
	out.Score = clampScore(raw)
	out.Grade = letterGrade(out.Score)
	return out
}

// NotComputed is the fact-check result reported when checking is skipped.
func NotComputed(note string) types.FactCheckScore {
	return types.FactCheckScore{
		QualityScore: types.QualityScore{
			Score:       0,
			Grade:       types.GradeNA,
			Issues:      []string{},
			Suggestions: []string{},
		},
		Claims: []types.ClaimResult{},
		Note:   note,
	}
}

func wordSet(s string) map[string]struct{} {
	words := strings.Fields(strings.ToLower(s))
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// overlap is |claim ∩ snippet| / |claim|.
func overlap(claim, snippet map[string]struct{}) float64 {
	if len(claim) == 0 {
		return 0
	}
	common := 0
	for w := range claim {
		if _, ok := snippet[w]; ok {
			common++
		}
	}
	return float64(common) / float64(len(claim))
}
