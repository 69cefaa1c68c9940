// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package quality

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pdiddy/contentforge/pkg/types"
)

var (
	h1Pattern    = regexp.MustCompile(`(?m)^#\s+(.+)$`)
	h2Pattern    = regexp.MustCompile(`(?m)^##\s+`)
	h3Pattern    = regexp.MustCompile(`(?m)^###\s+`)
	metaPattern  = regexp.MustCompile(`aciklama:\s*(.+)`)
	imagePattern = regexp.MustCompile(`!\[([^\]]*)\]\(([^)]+)\)`)
	linkPattern  = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
)

// Topic words of this length or shorter are not treated as keywords.
const minKeywordRunes = 2

// SEO scores the structural search-engine readiness of content for topic.
// Starting from 100, it applies a fixed sequence of penalties: the H1
// heading, the front matter description, subheadings, keyword density,
// images, external links and length.
func SEO(content, topic string) types.SEOScore {
	score := 100
	var checks []types.SEOCheck
	issues, suggestions := []string{}, []string{}
	check := func(status, label, value string) {
		checks = append(checks, types.SEOCheck{Status: status, Label: label, Value: value})
	}

	var keywords []string
	for _, w := range strings.Fields(topic) {
		if runeLen(w) > minKeywordRunes {
			keywords = append(keywords, strings.ToLower(w))
		}
	}
	lower := strings.ToLower(content)

	// H1
	if m := h1Pattern.FindStringSubmatch(content); m != nil {
		title := m[1]
		n := runeLen(title)
		switch {
		case n >= 30 && n <= 60:
			check(types.CheckOK, "Başlık uzunluğu ideal", fmt.Sprintf("%d karakter", n))
		case n < 30:
			score -= 10
			check(types.CheckWarn, "Başlık çok kısa", fmt.Sprintf("%d karakter", n))
			suggestions = append(suggestions, "Başlığı 30-60 karakter arasına getirin")
		default:
			score -= 10
			check(types.CheckWarn, "Başlık çok uzun", fmt.Sprintf("%d karakter", n))
			suggestions = append(suggestions, "Başlığı 60 karakterin altına indirin")
		}

		titleLower := strings.ToLower(title)
		found := false
		for _, kw := range keywords {
			if strings.Contains(titleLower, kw) {
				found = true
				break
			}
		}
		if found {
			check(types.CheckOK, "Anahtar kelime başlıkta var", "")
		} else {
			score -= 15
			check(types.CheckFail, "Anahtar kelime başlıkta yok", "")
			suggestions = append(suggestions, fmt.Sprintf("'%s' ifadesini başlığa ekleyin", topic))
		}
	} else {
		score -= 20
		check(types.CheckFail, "H1 başlık bulunamadı", "")
		issues = append(issues, "Ana başlık (H1) eksik")
	}

	// Meta description from the front matter.
	if m := metaPattern.FindStringSubmatch(content); m != nil {
		n := runeLen(m[1])
		switch {
		case n >= 120 && n <= 160:
			check(types.CheckOK, "Meta açıklama ideal", fmt.Sprintf("%d karakter", n))
		case n < 120:
			score -= 10
			check(types.CheckWarn, "Meta açıklama kısa", fmt.Sprintf("%d karakter", n))
		default:
			score -= 5
			check(types.CheckWarn, "Meta açıklama uzun", fmt.Sprintf("%d karakter", n))
		}
	} else {
		score -= 15
		check(types.CheckFail, "Meta açıklama yok", "")
		suggestions = append(suggestions, "150 karakterlik meta açıklama ekleyin")
	}

	// Heading hierarchy.
	h2 := len(h2Pattern.FindAllStringIndex(content, -1))
	h3 := len(h3Pattern.FindAllStringIndex(content, -1))
	if h2 >= 3 {
		check(types.CheckOK, fmt.Sprintf("%d alt başlık (H2)", h2), "")
	} else {
		score -= 10
		check(types.CheckWarn, fmt.Sprintf("Sadece %d alt başlık", h2), "")
		suggestions = append(suggestions, "En az 3-4 alt başlık ekleyin")
	}
	if h3 >= 2 {
		check(types.CheckOK, fmt.Sprintf("%d alt-alt başlık (H3)", h3), "")
	}

	// Keyword density.
	wordCount := len(strings.Fields(content))
	occurrences := 0
	for _, kw := range keywords {
		occurrences += strings.Count(lower, kw)
	}
	density := 0.0
	if wordCount > 0 {
		density = float64(occurrences) / float64(wordCount) * 100
	}
	densityValue := fmt.Sprintf("%%%.1f", density)
	switch {
	case density >= 1 && density <= 3:
		check(types.CheckOK, "Anahtar kelime yoğunluğu ideal", densityValue)
	case density < 1:
		score -= 10
		check(types.CheckWarn, "Anahtar kelime az kullanılmış", densityValue)
		suggestions = append(suggestions, fmt.Sprintf("'%s' ifadesini daha sık kullanın", topic))
	default:
		score -= 10
		check(types.CheckWarn, "Anahtar kelime fazla kullanılmış", densityValue)
	}

	// Images and alt text.
	images := imagePattern.FindAllStringSubmatch(content, -1)
	if len(images) > 0 {
		check(types.CheckOK, fmt.Sprintf("%d görsel mevcut", len(images)), "")
		withAlt := 0
		for _, img := range images {
			if strings.TrimSpace(img[1]) != "" {
				withAlt++
			}
		}
		if withAlt == len(images) {
			check(types.CheckOK, "Tüm görsellerde alt text var", "")
		} else {
			score -= 5
			check(types.CheckWarn, "Bazı görsellerde alt text yok", "")
		}
	} else {
		score -= 10
		check(types.CheckWarn, "Görsel yok", "")
		suggestions = append(suggestions, "En az 1-2 görsel ekleyin")
	}

	// External links.
	external := 0
	for _, l := range linkPattern.FindAllStringSubmatch(content, -1) {
		if strings.HasPrefix(l[2], "http") {
			external++
		}
	}
	if external > 0 {
		check(types.CheckOK, fmt.Sprintf("%d dış link", external), "")
	} else {
		score -= 5
		check(types.CheckWarn, "Dış link yok", "")
	}

	// Length.
	switch {
	case wordCount >= 1500:
		check(types.CheckOK, "İçerik uzunluğu ideal", fmt.Sprintf("%d kelime", wordCount))
	case wordCount >= 800:
		score -= 5
		check(types.CheckWarn, "İçerik biraz kısa", fmt.Sprintf("%d kelime", wordCount))
	default:
		score -= 15
		check(types.CheckFail, "İçerik çok kısa", fmt.Sprintf("%d kelime", wordCount))
		suggestions = append(suggestions, "En az 1000 kelimelik içerik hedefleyin")
	}

	final := clampScore(float64(score))
	return types.SEOScore{
		QualityScore: types.QualityScore{
			Score:       final,
			Grade:       letterGrade(final),
			Issues:      issues,
			Suggestions: suggestions,
		},
		Checks: checks,
		Details: types.SEODetails{
			WordCount:      wordCount,
			H2Count:        h2,
			H3Count:        h3,
			ImageCount:     len(images),
			LinkCount:      external,
			KeywordDensity: round1(density),
		},
	}
}
