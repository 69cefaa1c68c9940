// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package quality

import (
	"fmt"
	"math"
	"strings"

	"github.com/pdiddy/contentforge/pkg/types"
)

// cliches are stock Turkish phrases penalized by Originality.
var cliches = []string{
	"günümüzde", "modern dünyada", "hızla değişen",
	"önemli bir rol", "büyük bir öneme sahip",
	"son yıllarda", "giderek artan", "vazgeçilmez",
	"kritik öneme sahip", "hayati önem", "dijital çağda",
	"bir adım önde", "fark yaratmak", "başarının anahtarı",
	"sonuç olarak", "özetle", "tüm bunlar gösteriyor ki",
}

const (
	originalityMinSentence = 20
	reportedCliches        = 5
	suggestedCliches       = 3
)

var originalityGradeText = map[types.Grade]string{
	types.GradeA: "Yüksek Özgünlük",
	types.GradeB: "İyi Özgünlük",
	types.GradeC: "Orta Özgünlük",
	types.GradeD: "Düşük Özgünlük",
	types.GradeF: "Çok Düşük",
}

// originalityGrade uses its own five-band scale: A ≥ 85, B ≥ 70, C ≥ 55, D ≥ 40.
func originalityGrade(score int) types.Grade {
	switch {
	case score >= 85:
		return types.GradeA
	case score >= 70:
		return types.GradeB
	case score >= 55:
		return types.GradeC
	case score >= 40:
		return types.GradeD
	default:
		return types.GradeF
	}
}

// Originality scores content by its density of stock phrases per 100 words
// and by how many of its sentences repeat.
func Originality(content string) types.OriginalityScore {
	text := strings.ToLower(plainText(content))

	count := 0
	found := []string{}
	for _, c := range cliches {
		if n := strings.Count(text, c); n > 0 {
			count += n
			found = append(found, c)
		}
	}

	sents := sentences(text, originalityMinSentence)
	uniqueness := 1.0
	if len(sents) > 0 {
		distinct := make(map[string]struct{}, len(sents))
		for _, s := range sents {
			distinct[s] = struct{}{}
		}
		uniqueness = float64(len(distinct)) / float64(len(sents))
	}

	score := 100.0
	issues, suggestions := []string{}, []string{}

	words := len(strings.Fields(text))
	ratio := 0.0
	if words > 0 {
		ratio = float64(count) / (float64(words) / 100)
	}
	switch {
	case ratio > 3:
		score -= math.Min(ratio*5, 30)
		issues = append(issues, fmt.Sprintf("%d klişe ifade bulundu", count))
		suggestions = append(suggestions, "Şu ifadeleri değiştirin: "+strings.Join(found[:min(len(found), suggestedCliches)], ", "))
	case ratio > 1.5:
		score -= 10
		issues = append(issues, fmt.Sprintf("%d klişe ifade var", count))
	}

	if uniqueness < 0.9 {
		score -= (1 - uniqueness) * 50
		issues = append(issues, "Tekrar eden cümleler var")
		suggestions = append(suggestions, "Benzer cümleleri farklı şekilde ifade edin")
	}

	final := clampScore(score)
	grade := originalityGrade(final)
	return types.OriginalityScore{
		QualityScore: types.QualityScore{
			Score:       final,
			Grade:       grade,
			GradeText:   originalityGradeText[grade],
			Issues:      issues,
			Suggestions: suggestions,
		},
		Details: types.OriginalityDetails{
			ClicheCount:         count,
			FoundCliches:        found[:min(len(found), reportedCliches)],
			UniqueSentenceRatio: round1(uniqueness * 100),
		},
	}
}
