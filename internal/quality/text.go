// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package quality

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/contentforge/pkg/types"
)

var (
	imageMarkup   = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	bareURL       = regexp.MustCompile(`https?://\S+`)
	markupChars   = regexp.MustCompile("[#*>`\\[\\]()|\\-]")
	whitespace    = regexp.MustCompile(`\s+`)
	sentenceBreak = regexp.MustCompile(`[.!?]+`)
)

// plainText strips images, URLs and markdown punctuation from content and
// collapses whitespace.
func plainText(content string) string {
	text := imageMarkup.ReplaceAllString(content, "")
	text = bareURL.ReplaceAllString(text, "")
	text = markupChars.ReplaceAllString(text, "")
	return strings.TrimSpace(whitespace.ReplaceAllString(text, " "))
}

// sentences splits text on runs of . ! ? and keeps trimmed sentences longer
// than minRunes characters.
func sentences(text string, minRunes int) []string {
	var out []string
	for _, s := range sentenceBreak.Split(text, -1) {
		s = strings.TrimSpace(s)
		if utf8.RuneCountInString(s) > minRunes {
			out = append(out, s)
		}
	}
	return out
}

func runeLen(s string) int { return utf8.RuneCountInString(s) }

func round1(x float64) float64 { return math.Round(x*10) / 10 }

// clampScore rounds x and bounds it to [0, 100].
func clampScore(x float64) int {
	return int(math.Max(0, math.Min(100, math.Round(x))))
}

// letterGrade maps a score onto the A ≥ 80, B ≥ 65, C ≥ 50, D ≥ 35 scale.
func letterGrade(score int) types.Grade {
	switch {
	case score >= 80:
		return types.GradeA
	case score >= 65:
		return types.GradeB
	case score >= 50:
		return types.GradeC
	case score >= 35:
		return types.GradeD
	default:
		return types.GradeF
	}
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
