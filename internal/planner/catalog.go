// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package planner

import "github.com/pdiddy/contentforge/pkg/types"

// topicPlaceholder is replaced by the topic in every query template.
const topicPlaceholder = "{topic}"

// layerSpec is one row of the layer catalog.
type layerSpec struct {
	layer      types.ResearchLayer
	templates  []string
	language   string
	mode       types.SearchMode
	window     types.TimeWindow
	cap        int
	statistics bool
	quotes     bool
}

var baseLayers = []layerSpec{
	{
		layer: types.ResearchLayer{
			Key: types.LayerGeneral, Icon: "🌐", Name: "Genel Bilgi",
			Description: "Temel kavramlar ve tanımlar", Priority: 1,
		},
		templates: []string{"{topic} nedir", "{topic} tanımı ve önemi", "{topic} temel kavramlar"},
		language:  "tr",
		mode:      types.ModeWeb,
		cap:       8,
	},
	{
		layer: types.ResearchLayer{
			Key: types.LayerStatistics, Icon: "📊", Name: "İstatistik & Veri",
			Description: "Rakamlar, yüzdeler, pazar verileri", Priority: 2,
		},
		templates: []string{
			"{topic} istatistikleri 2024",
			"{topic} pazar büyüklüğü",
			"{topic} araştırma verileri",
			"{topic} yüzde oran rakamlar",
		},
		language:   "tr",
		mode:       types.ModeWeb,
		cap:        8,
		statistics: true,
	},
	{
		layer: types.ResearchLayer{
			Key: types.LayerNews, Icon: "📰", Name: "Güncel Haberler",
			Description: "Son gelişmeler ve trendler", Priority: 3,
		},
		templates: []string{"{topic} son gelişmeler", "{topic} 2024 haberleri"},
		language:  "tr",
		mode:      types.ModeNews,
		window:    types.WindowMonth,
		cap:       6,
	},
	{
		layer: types.ResearchLayer{
			Key: types.LayerExpert, Icon: "🎓", Name: "Uzman Görüşleri",
			Description: "Akademik ve profesyonel kaynaklar", Priority: 4,
		},
		templates: []string{"{topic} uzman görüşü", "{topic} profesyonel tavsiye", `"{topic}" CEO açıklama`},
		language:  "tr",
		mode:      types.ModeWeb,
		cap:       6,
		quotes:    true,
	},
	{
		layer: types.ResearchLayer{
			Key: types.LayerCases, Icon: "💼", Name: "Vaka Çalışmaları",
			Description: "Gerçek örnekler ve başarı hikayeleri", Priority: 5,
		},
		templates: []string{"{topic} başarı hikayesi", "{topic} örnek şirket", "{topic} vaka çalışması case study"},
		language:  "tr",
		mode:      types.ModeWeb,
		cap:       6,
	},
	{
		// The topic is used as given; no translation step exists.
		layer: types.ResearchLayer{
			Key: types.LayerGlobal, Icon: "🌍", Name: "Global Kaynaklar",
			Description: "Uluslararası araştırma", Priority: 6,
		},
		templates:  []string{"{topic} statistics 2024", "{topic} trends research", "{topic} best practices"},
		language:   "en",
		mode:       types.ModeWeb,
		cap:        6,
		statistics: true,
	},
	{
		layer: types.ResearchLayer{
			Key: types.LayerFAQ, Icon: "❓", Name: "SSS & Sorunlar",
			Description: "Sık sorulan sorular", Priority: 7,
		},
		templates: []string{"{topic} sık sorulan sorular", "{topic} sorunları çözümleri", "{topic} nasıl yapılır"},
		language:  "tr",
		mode:      types.ModeWeb,
		cap:       6,
	},
}

var formatTemplates = map[types.ContentFormat][]string{
	types.FormatListicle:   {"{topic} en iyi yolları", "{topic} ipuçları listesi"},
	types.FormatHowTo:      {"{topic} adım adım rehber", "{topic} başlangıç kılavuzu"},
	types.FormatComparison: {"{topic} karşılaştırma", "{topic} alternatifleri vs"},
	types.FormatCaseStudy:  {"{topic} ROI sonuçlar", "{topic} dönüşüm metrikleri"},
}

var formatTitles = map[types.ContentFormat]string{
	types.FormatListicle:   "Listicle",
	types.FormatHowTo:      "Howto",
	types.FormatComparison: "Comparison",
	types.FormatCaseStudy:  "Casestudy",
}

const formatLayerCap = 6

// Layers returns the seven base research layers in priority order.
func Layers() []types.ResearchLayer {
	out := make([]types.ResearchLayer, len(baseLayers))
	for i, s := range baseLayers {
		out[i] = s.layer
	}
	return out
}

// FormatLayer returns the extra layer added for format, if the format has one.
func FormatLayer(format types.ContentFormat) (types.ResearchLayer, bool) {
	title, ok := formatTitles[format]
	if !ok {
		return types.ResearchLayer{}, false
	}
	return types.ResearchLayer{
		Key:         types.LayerFormatSpecific,
		Icon:        "🎯",
		Name:        title + " Özel",
		Description: "Format bazlı araştırma",
		Priority:    len(baseLayers) + 1,
	}, true
}
