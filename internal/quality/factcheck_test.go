// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package quality

import (
	"context"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/contentforge/internal/llm"
	"github.com/pdiddy/contentforge/internal/search"
	"github.com/pdiddy/contentforge/pkg/types"
)

type fakeEngine struct {
	answer string
	err    error

	system, user string
	temperature  float64
}

func (f *fakeEngine) Complete(_ context.Context, system, user string, temperature float64) (string, error) {
	f.system, f.user, f.temperature = system, user, temperature
	return f.answer, f.err
}

// snippetGateway answers every query with the same results.
type snippetGateway struct {
	results  []types.SearchResult
	requests []search.Request
}

func (g *snippetGateway) Search(_ context.Context, req search.Request) []types.SearchResult {
	g.requests = append(g.requests, req)
	return g.results
}

const testClaim = "e-ticaret hacmi 2023 yılında büyük oranda arttı"

func TestParseClaims(t *testing.T) {
	answer := "- e-ticaret hacmi 2023 yılında arttı\n\nkısa\n- Şirket 1998 yılında kuruldu\n" +
		strings.Repeat("- bu satır yeterince uzun bir iddia\n", 6)
	got := parseClaims(answer)

	require.Len(t, got, maxClaims)
	assert.Equal(t, "e-ticaret hacmi 2023 yılında arttı", got[0])
	assert.Equal(t, "Şirket 1998 yılında kuruldu", got[1])
}

func TestExtractClaimsPrompt(t *testing.T) {
	engine := &fakeEngine{answer: testClaim}
	fc := NewFactChecker(engine, &snippetGateway{}, nil)

	claims, err := fc.ExtractClaims(context.Background(), strings.Repeat("ş", 4000))
	require.NoError(t, err)
	assert.Equal(t, []string{testClaim}, claims)
	assert.Equal(t, claimSystemPrompt, engine.system)
	assert.Equal(t, "İçerik:\n"+strings.Repeat("ş", 3000), engine.user)
	assert.Equal(t, 0.2, engine.temperature)
}

func TestVerify(t *testing.T) {
	tests := []struct {
		name       string
		results    []types.SearchResult
		status     types.ClaimStatus
		confidence int
		source     string
	}{
		{
			name:       "full overlap",
			results:    []types.SearchResult{{Snippet: "Rapora göre e-ticaret hacmi 2023 yılında büyük oranda arttı", Link: "https://a.example"}},
			status:     types.ClaimVerified,
			confidence: 100,
			source:     "https://a.example",
		},
		{
			name:       "partial overlap",
			results:    []types.SearchResult{{Snippet: "e-ticaret hacmi 2023 tahminleri", Link: "https://b.example"}},
			status:     types.ClaimUncertain,
			confidence: 43,
			source:     "https://b.example",
		},
		{
			name:       "weak overlap",
			results:    []types.SearchResult{{Snippet: "hava durumu 2023", Link: "https://c.example"}},
			status:     types.ClaimUnverified,
			confidence: 14,
		},
		{
			name:    "best result wins",
			results: []types.SearchResult{{Snippet: "2023", Link: "https://x.example"}, {Snippet: testClaim, Link: "https://y.example"}},
			status:  types.ClaimVerified, confidence: 100, source: "https://y.example",
		},
		{
			name:    "only knowledge panels",
			results: []types.SearchResult{{Snippet: testClaim, IsKG: true}, {Snippet: testClaim, IsAnswer: true}, {Snippet: testClaim, IsQuestion: true}},
			status:  types.ClaimUncertain,
		},
		{
			name:   "no results",
			status: types.ClaimUncertain,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := &snippetGateway{results: tt.results}
			fc := NewFactChecker(&fakeEngine{}, gw, nil)

			got := fc.Verify(context.Background(), testClaim)
			assert.Equal(t, tt.status, got.Status)
			assert.Equal(t, tt.confidence, got.Confidence)
			assert.Equal(t, tt.source, got.Source)
			assert.Equal(t, testClaim, got.Claim)

			require.Len(t, gw.requests, 1)
			assert.Equal(t, search.Request{Query: testClaim, Num: 3, Language: "tr", Mode: types.ModeWeb}, gw.requests[0])
		})
	}
}

func TestVerifyTruncatesClaim(t *testing.T) {
	long := strings.Repeat("ğ", 150)
	got := NewFactChecker(&fakeEngine{}, &snippetGateway{}, nil).Verify(context.Background(), long)
	assert.Equal(t, strings.Repeat("ğ", 100), got.Claim)
}

func TestScoreNoClaims(t *testing.T) {
	fc := NewFactChecker(&fakeEngine{answer: "Yok."}, &snippetGateway{}, nil)
	got, err := fc.Score(context.Background(), "Genel bir görüş yazısı.")
	require.NoError(t, err)

	assert.Equal(t, 85, got.Score)
	assert.Equal(t, types.GradeB, got.Grade)
	assert.Equal(t, 0, got.ClaimsChecked)
	assert.True(t, got.Computed)
	assert.Equal(t, "Doğrulanabilir somut iddia bulunamadı", got.Note)
}

func TestScoreEmptyCompletion(t *testing.T) {
	fc := NewFactChecker(&fakeEngine{err: errors.Wrap(llm.ErrEmptyCompletion, "groq")}, &snippetGateway{}, nil)

	claims, err := fc.ExtractClaims(context.Background(), "içerik")
	require.NoError(t, err)
	assert.Empty(t, claims)

	a := NewAnalyzer(fc, nil)
	report, err := a.Analyze(context.Background(), "Genel bir görüş yazısı.", "görüş", true)
	require.NoError(t, err)
	assert.Equal(t, NoClaimsScore, report.FactCheck.Score)
	assert.Equal(t, 0, report.FactCheck.ClaimsChecked)
	assert.True(t, report.FactCheck.Computed)
}

func TestScoreExtractionFailure(t *testing.T) {
	boom := errors.New("engine down")
	fc := NewFactChecker(&fakeEngine{err: boom}, &snippetGateway{}, nil)

	_, err := fc.Score(context.Background(), "içerik")
	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))

	a := NewAnalyzer(fc, nil)
	_, err = a.Analyze(context.Background(), "içerik", "konu", true)
	assert.True(t, errors.Is(err, boom))
}

func TestScoreClaims(t *testing.T) {
	tests := []struct {
		name     string
		statuses []types.ClaimStatus
		score    int
		grade    types.Grade
	}{
		{"all verified", []types.ClaimStatus{types.ClaimVerified, types.ClaimVerified}, 100, types.GradeA},
		{"mixed", []types.ClaimStatus{types.ClaimVerified, types.ClaimUncertain, types.ClaimUnverified}, 60, types.GradeC},
		{"all unverified", []types.ClaimStatus{types.ClaimUnverified}, 20, types.GradeF},
		{"verified and uncertain", []types.ClaimStatus{types.ClaimVerified, types.ClaimUncertain}, 80, types.GradeA},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var results []types.ClaimResult
			for _, s := range tt.statuses {
				results = append(results, types.ClaimResult{Claim: "c", Status: s})
			}
			got := ScoreClaims(results)
			assert.Equal(t, tt.score, got.Score)
			assert.Equal(t, tt.grade, got.Grade)
			assert.Equal(t, len(results), got.ClaimsChecked)
			assert.Equal(t, len(results), got.Verified+got.Uncertain+got.Unverified)
		})
	}
}

func TestAnalyzeDeep(t *testing.T) {
	engine := &fakeEngine{answer: "- " + testClaim}
	gw := &snippetGateway{results: []types.SearchResult{{Snippet: testClaim, Link: "https://a.example"}}}
	a := NewAnalyzer(NewFactChecker(engine, gw, nil), nil)

	report, err := a.Analyze(context.Background(), "içerik", "konu", true)
	require.NoError(t, err)
	assert.Equal(t, 100, report.FactCheck.Score)
	assert.Equal(t, 1, report.FactCheck.Verified)

	shallow, err := a.Analyze(context.Background(), "içerik", "konu", false)
	require.NoError(t, err)
	assert.False(t, shallow.FactCheck.Computed)
	assert.Len(t, gw.requests, 1, "shallow analysis does not search")
}
