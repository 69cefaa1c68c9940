// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package quality

import (
	"fmt"
	"math"
	"strings"

	"github.com/pdiddy/contentforge/pkg/types"
)

const (
	readabilityMinSentence = 10
	paragraphMinRunes      = 20
	complexWordRunes       = 7
)

var readabilityGradeText = map[types.Grade]string{
	types.GradeA: "Çok Kolay",
	types.GradeB: "Kolay",
	types.GradeC: "Orta",
	types.GradeD: "Zor",
	types.GradeF: "Çok Zor",
}

// Readability scores how easy content is to read from mean sentence length,
// mean word length, the share of long words and paragraph length. Content
// without a usable sentence scores 0 with grade N/A.
func Readability(content string) types.ReadabilityScore {
	text := plainText(content)
	sents := sentences(text, readabilityMinSentence)
	words := strings.Fields(text)

	if len(sents) == 0 || len(words) == 0 {
		return types.ReadabilityScore{
			QualityScore: types.QualityScore{
				Score:       0,
				Grade:       types.GradeNA,
				GradeText:   "Yetersiz içerik",
				Issues:      []string{},
				Suggestions: []string{},
			},
		}
	}

	letters, complex := 0, 0
	for _, w := range words {
		n := runeLen(w)
		letters += n
		if n >= complexWordRunes {
			complex++
		}
	}

	paragraphs := 0
	for _, p := range strings.Split(content, "\n\n") {
		if runeLen(strings.TrimSpace(p)) > paragraphMinRunes {
			paragraphs++
		}
	}
	paragraphs = max(paragraphs, 1)

	avgSentence := float64(len(words)) / float64(len(sents))
	avgWord := float64(letters) / float64(len(words))
	complexRatio := float64(complex) / float64(len(words))
	avgParagraph := float64(len(sents)) / float64(paragraphs)

	score := 100.0
	issues, suggestions := []string{}, []string{}

	switch {
	case avgSentence > 25:
		score -= math.Min((avgSentence-25)*2, 20)
		issues = append(issues, fmt.Sprintf("Cümleler çok uzun (ort. %.1f kelime)", avgSentence))
		suggestions = append(suggestions, "Cümleleri 15-20 kelimeye kısaltın")
	case avgSentence < 10:
		score -= math.Min((10-avgSentence)*2, 15)
		issues = append(issues, fmt.Sprintf("Cümleler çok kısa (ort. %.1f kelime)", avgSentence))
		suggestions = append(suggestions, "Cümleleri biraz genişletin")
	}

	if avgWord > 8 {
		score -= math.Min((avgWord-8)*3, 15)
		issues = append(issues, "Çok fazla uzun/teknik kelime")
		suggestions = append(suggestions, "Daha basit kelimeler kullanın")
	}

	if complexRatio > 0.3 {
		score -= math.Min((complexRatio-0.3)*50, 20)
		issues = append(issues, fmt.Sprintf("Karmaşık kelime oranı yüksek (%%%.0f)", complexRatio*100))
		suggestions = append(suggestions, "Daha anlaşılır kelimeler tercih edin")
	}

	if avgParagraph > 6 {
		score -= 10
		issues = append(issues, "Paragraflar çok uzun")
		suggestions = append(suggestions, "Paragrafları 3-5 cümleye bölün")
	}

	final := clampScore(score)
	grade := letterGrade(final)
	return types.ReadabilityScore{
		QualityScore: types.QualityScore{
			Score:       final,
			Grade:       grade,
			GradeText:   readabilityGradeText[grade],
			Issues:      issues,
			Suggestions: suggestions,
		},
		Details: types.ReadabilityDetails{
			TotalWords:        len(words),
			TotalSentences:    len(sents),
			AvgSentenceLength: round1(avgSentence),
			AvgWordLength:     round1(avgWord),
			ComplexWordRatio:  round1(complexRatio * 100),
		},
	}
}
