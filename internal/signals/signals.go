// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package signals pulls statistics and quotations out of free text by
// pattern matching. Both extractors are pure and never fail; text with no
// matches yields an empty slice.
package signals

import (
	"regexp"
	"strings"
)

// Glyphs prefixed to findings by category.
const (
	GlyphTrend    = "📈"
	GlyphMoney    = "💰"
	GlyphCalendar = "📅"
	GlyphQuote    = "💬"
)

const (
	// MaxStatistics caps the findings of one ExtractStatistics call.
	MaxStatistics = 10

	// MaxQuotes caps the findings of one ExtractQuotes call.
	MaxQuotes = 5
)

var (
	percentPattern   = regexp.MustCompile(`%\s*\d+(?:[.,]\d+)?|\d+(?:[.,]\d+)?\s*%`)
	magnitudePattern = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*(milyon|milyar|trilyon|million|billion|trillion)`)
	currencyPattern  = regexp.MustCompile(`(?i)[$€₺]\s*\d+(?:[.,]\d+)?\s*(milyon|milyar|bin|K|M|B)?`)
	yearPattern      = regexp.MustCompile(`20\d{2}\s*[-–]\s*20\d{2}|20\d{2}\s+yılında`)

	quotePatterns = []*regexp.Regexp{
		regexp.MustCompile(`"([^"]{20,200})"`),
		regexp.MustCompile(`'([^']{20,200})'`),
		regexp.MustCompile(`«([^»]{20,200})»`),
	}
)

// ExtractStatistics returns percentages, magnitudes and year phrases found in
// text, each prefixed with its category glyph. Duplicates are removed and the
// result holds at most MaxStatistics items.
func ExtractStatistics(text string) []string {
	var found []string
	for _, m := range percentPattern.FindAllString(text, -1) {
		found = append(found, GlyphTrend+" "+strings.TrimSpace(m))
	}
	for _, m := range magnitudePattern.FindAllStringSubmatch(text, -1) {
		found = append(found, GlyphMoney+" "+m[1]+" "+m[2])
	}
	// Currency amounts are recognized but not reported.
	_ = currencyPattern.FindAllString(text, -1)
	for _, m := range yearPattern.FindAllString(text, -1) {
		found = append(found, GlyphCalendar+" "+m)
	}
	return limit(Dedupe(found), MaxStatistics)
}

// ExtractQuotes returns quoted spans of 20 to 200 characters enclosed in
// double quotes, single quotes or guillemets, formatted as
// `💬 "<span>"`. The result holds at most MaxQuotes items.
func ExtractQuotes(text string) []string {
	var found []string
	for _, p := range quotePatterns {
		for _, m := range p.FindAllStringSubmatch(text, -1) {
			found = append(found, GlyphQuote+` "`+m[1]+`"`)
		}
	}
	return limit(found, MaxQuotes)
}

// Dedupe removes repeated strings, keeping the first occurrence.
func Dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, s := range items {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func limit(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
