// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import "github.com/pdiddy/contentforge/pkg/types"

// Agent IDs, one per stage.
const (
	AgentResearcher     = "researcher"
	AgentVisualCurator  = "visual_curator"
	AgentWriter         = "writer"
	AgentEditor         = "editor"
	AgentQualityAnalyst = "quality_analyst"
)

var agents = []types.Agent{
	{
		ID: AgentResearcher, Name: "Araştırmacı", NameEN: "Deep Researcher",
		Avatar: "🔍", Color: "#3B82F6",
		Description: "7 katmanlı derinlemesine araştırma yapıyor",
		Tasks:       []string{"Çoklu kaynak", "İstatistik toplama", "Global araştırma"},
	},
	{
		ID: AgentVisualCurator, Name: "Görsel Uzmanı", NameEN: "Visual Curator",
		Avatar: "🖼️", Color: "#8B5CF6",
		Description: "En uygun görselleri seçiyor",
		Tasks:       []string{"Görsel arama", "Uygunluk kontrolü", "Lisans kontrolü"},
	},
	{
		ID: AgentWriter, Name: "Yazar", NameEN: "Writer",
		Avatar: "✍️", Color: "#10B981",
		Description: "İçeriği oluşturuyor",
		Tasks:       []string{"Yapı oluşturma", "İçerik yazma", "Örnekler ekleme"},
	},
	{
		ID: AgentEditor, Name: "Editör", NameEN: "Editor",
		Avatar: "✨", Color: "#F59E0B",
		Description: "İçeriği düzenliyor ve iyileştiriyor",
		Tasks:       []string{"Dil kontrolü", "SEO optimizasyonu", "Format düzenleme"},
	},
	{
		ID: AgentQualityAnalyst, Name: "Kalite Analisti", NameEN: "Quality Analyst",
		Avatar: "📊", Color: "#EF4444",
		Description: "Kalite skorlarını hesaplıyor",
		Tasks:       []string{"Okunabilirlik", "SEO skoru", "Özgünlük analizi"},
	},
}

// Agents returns the agent catalog in stage order.
func Agents() []types.Agent {
	out := make([]types.Agent, len(agents))
	for i, a := range agents {
		out[i] = copyAgent(a)
	}
	return out
}

// AgentByID looks up one agent of the catalog.
func AgentByID(id string) (types.Agent, bool) {
	for _, a := range agents {
		if a.ID == id {
			return copyAgent(a), true
		}
	}
	return types.Agent{}, false
}

func copyAgent(a types.Agent) types.Agent {
	a.Tasks = append([]string(nil), a.Tasks...)
	return a
}
