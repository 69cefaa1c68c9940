// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package quality

import (
	"fmt"
	"strings"

	"github.com/pdiddy/contentforge/pkg/types"
)

const reportSuggestions = 5

// Report renders q as a markdown summary: the overall score, a table of
// sub-scores and up to five improvement suggestions.
func Report(q types.QualityReport) string {
	var b strings.Builder
	b.WriteString("\n## 📊 İçerik Kalite Raporu\n\n")
	fmt.Fprintf(&b, "### Genel Skor: %d/100 (%s)\n\n", q.Overall.Score, q.Overall.Grade)
	b.WriteString("| Metrik | Skor | Grade |\n")
	b.WriteString("|--------|------|-------|\n")
	fmt.Fprintf(&b, "| 📖 Okunabilirlik | %d | %s |\n", q.Readability.Score, q.Readability.Grade)
	fmt.Fprintf(&b, "| 🔍 SEO | %d | %s |\n", q.SEO.Score, q.SEO.Grade)
	fmt.Fprintf(&b, "| ✨ Özgünlük | %d | %s |\n", q.Originality.Score, q.Originality.Grade)
	fmt.Fprintf(&b, "| ✅ Doğruluk | %d | %s |\n\n", q.FactCheck.Score, q.FactCheck.Grade)

	var all []string
	all = append(all, q.Readability.Suggestions...)
	all = append(all, q.SEO.Suggestions...)
	all = append(all, q.Originality.Suggestions...)
	if len(all) > 0 {
		b.WriteString("### 💡 İyileştirme Önerileri\n")
		for i, s := range all[:min(len(all), reportSuggestions)] {
			fmt.Fprintf(&b, "%d. %s\n", i+1, s)
		}
	}
	return b.String()
}
