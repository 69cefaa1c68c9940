// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package research

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/pdiddy/contentforge/pkg/types"
)

const (
	compiledStatistics = 10
	compiledQuotes     = 5
	compiledResults    = 5
)

// Compile renders research as the markdown document handed to the writer:
// a title block, the top statistics, the top quotations, then one section
// per layer with its top results. Layers without results keep their header.
func Compile(r *types.AggregatedResearch) string {
	lines := []string{
		"# 📚 DERİNLEMESİNE ARAŞTIRMA RAPORU\n",
		fmt.Sprintf("**Toplam Kaynak:** %d | **Benzersiz Site:** %d\n", r.SourcesCount, len(r.Sources)),
	}

	if len(r.Statistics) > 0 {
		lines = append(lines, "\n## 📊 BULUNAN İSTATİSTİKLER")
		for _, s := range capped(r.Statistics, compiledStatistics) {
			lines = append(lines, "- "+s)
		}
	}

	if len(r.Quotes) > 0 {
		lines = append(lines, "\n## 💬 UZMAN ALINTILARI")
		for _, q := range capped(r.Quotes, compiledQuotes) {
			lines = append(lines, "- "+q)
		}
	}

	for _, l := range r.Layers {
		lines = append(lines,
			fmt.Sprintf("\n## %s %s", l.Category.Icon, strings.ToUpperSpecial(unicode.TurkishCase, l.Category.Name)),
			fmt.Sprintf("*%s*\n", l.Category.Description),
		)
		shown := l.Results
		if len(shown) > compiledResults {
			shown = shown[:compiledResults]
		}
		for _, res := range shown {
			if res.Title == "" || res.Snippet == "" {
				continue
			}
			lines = append(lines, "**"+res.Title+"**", res.Snippet)
			if res.Date != "" {
				lines = append(lines, "📅 "+res.Date)
			}
			if res.Source != "" {
				lines = append(lines, "🔗 Kaynak: "+res.Source)
			}
			if res.Link != "" {
				lines = append(lines, "📎 "+res.Link)
			}
			lines = append(lines, "")
		}
	}

	return strings.Join(lines, "\n")
}
