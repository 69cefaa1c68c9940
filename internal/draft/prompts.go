// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package draft

import (
	"strings"
	"text/template"

	"github.com/pdiddy/contentforge/pkg/types"
)

// promptData feeds the writer and editor templates.
type promptData struct {
	Topic         string
	Format        types.ContentFormat
	FormatName    string
	Words         string
	Sections      int
	Items         int
	Tone          string
	AudienceDesc  string
	AudienceStyle string
	Statistics    string
	Quotes        string
	Images        string
	Research      string
	Content       string
}

// writerPrompt is the system/user template pair of one format.
type writerPrompt struct {
	system      *template.Template
	user        *template.Template
	temperature float64

	// researchRunes bounds the compiled research quoted in the user prompt.
	researchRunes int
}

func mustParse(name, text string) *template.Template {
	return template.Must(template.New(name).Parse(text))
}

var writerPrompts = map[types.ContentFormat]writerPrompt{
	types.FormatStandard: {
		system: mustParse("standard-system", `Sen profesyonel bir blog yazarısın. Araştırma verilerini kullanarak kapsamlı blog yazısı yaz.

HEDEF: {{.Words}} kelime, {{.Sections}} bölüm
TON: {{.Tone}}
KİTLE: {{.AudienceDesc}} - {{.AudienceStyle}}

KRİTİK KURALLAR:
1. Aşağıdaki istatistikleri MUTLAKA kullan ve kaynak göster
2. Uzman alıntılarını içeriğe entegre et
3. Her bölümde somut veri olsun
4. Güncel örnekler ve trendleri dahil et
5. SEO için anahtar kelimeleri doğal kullan

KULLANILACAK İSTATİSTİKLER:
{{.Statistics}}

KULLANILACAK ALINTILAR:
{{.Quotes}}

GÖRSELLER:
{{.Images}}

Highlight kutuları, bilgi kutuları ve çağrı kutularını kullan.`),
		user: mustParse("standard-user", `KONU: {{.Topic}}

ARAŞTIRMA VERİLERİ:
{{.Research}}

Bu verileri kullanarak profesyonel, veri destekli blog yazısı yaz. Her iddiayı araştırma verileriyle destekle.`),
		temperature:   0.6,
		researchRunes: 6000,
	},
	types.FormatListicle: {
		system: mustParse("listicle-system", `Sen listicle uzmanısın. "{{.Items}} Yol/Strateji/İpucu" formatında yaz.

HEDEF: {{.Words}} kelime, {{.Items}} madde
TON: {{.Tone}}

HER MADDE İÇİN:
1. Dikkat çekici başlık (emoji ile)
2. 2-3 paragraf açıklama
3. Somut örnek veya istatistik (ZORUNLU)
4. Pro Tip kutusu

KULLANILACAK İSTATİSTİKLER:
{{.Statistics}}

GÖRSELLER: {{.Images}}`),
		user: mustParse("listicle-user", `KONU: {{.Topic}}

ARAŞTIRMA:
{{.Research}}

Her maddede araştırmadan veri kullan.`),
		temperature:   0.7,
		researchRunes: 5000,
	},
	types.FormatHowTo: {
		system: mustParse("howto-system", `Sen teknik rehber yazarısın. Adım adım uygulama rehberi yaz.

HEDEF: {{.Words}} kelime, {{.Items}} adım

HER ADIM İÇİN:
- ⏱️ Tahmini süre
- 📊 Zorluk seviyesi (Kolay/Orta/Zor)
- Detaylı açıklama
- 💡 İpucu kutusu
- ⚠️ Uyarı kutusu (gerekirse)

EKSTRA BÖLÜMLER:
- Gereksinimler listesi (başta)
- Sık yapılan hatalar (sonda)
- Sorun giderme bölümü

GÖRSELLER: {{.Images}}`),
		user: mustParse("howto-user", `KONU: {{.Topic}}

ARAŞTIRMA:
{{.Research}}

Pratik, uygulanabilir rehber yaz.`),
		temperature:   0.5,
		researchRunes: 5000,
	},
	types.FormatComparison: {
		system: mustParse("comparison-system", `Sen karşılaştırma analisti yazarısın. Detaylı X vs Y analizi yaz.

HEDEF: {{.Words}} kelime

YAPI:
1. Hızlı karşılaştırma tablosu (başta)
2. Her kriter için detaylı analiz
3. Yıldız derecelendirmesi (★★★★☆)
4. Artı/Eksi listeleri
5. Her kriterde kazanan belirt
6. Sonuç: Kim neyi seçmeli

KULLANILACAK VERİLER:
{{.Statistics}}

GÖRSELLER: {{.Images}}`),
		user: mustParse("comparison-user", `KONU: {{.Topic}}

ARAŞTIRMA:
{{.Research}}

Objektif, veri destekli karşılaştırma yaz.`),
		temperature:   0.5,
		researchRunes: 5000,
	},
	types.FormatCaseStudy: {
		system: mustParse("casestudy-system", `Sen vaka analisti yazarısın. Detaylı vaka çalışması yaz.

HEDEF: {{.Words}} kelime

YAPI:
1. Özet metrikleri tablosu (Önce/Sonra)
2. Şirket/Kişi profili
3. Problem tanımı
4. Çözüm aşamaları (timeline)
5. Sonuçlar (rakamlarla)
6. Öğrenilen dersler
7. Uygulanabilir adımlar

KULLANILACAK VERİLER:
{{.Statistics}}

KULLANILACAK ALINTILAR:
{{.Quotes}}

GÖRSELLER: {{.Images}}`),
		user: mustParse("casestudy-user", `KONU: {{.Topic}}

ARAŞTIRMA:
{{.Research}}

Gerçekçi, veri destekli vaka çalışması yaz.`),
		temperature:   0.6,
		researchRunes: 5000,
	},
}

const editorTemperature = 0.2

var editorSystem = mustParse("editor-system", `Sen baş editörsün. {{.FormatName}} formatını son kez düzenle.

GÖREVLER:
1. Yazım ve dilbilgisi hatalarını düzelt
2. Cümle akışını iyileştir
3. SEO için başlıkları optimize et
4. Meta description yaz
5. Anahtar kelimeleri belirle

ÇIKTI BAŞINDA:
---
baslik: [SEO uyumlu başlık]
aciklama: [155 karakter meta description]
anahtar_kelimeler: [5-7 anahtar kelime]
okuma_suresi: [X dakika]
format: {{.Format}}
---

Ardından düzenlenmiş içerik.`)

var editorUser = mustParse("editor-user", `KONU: {{.Topic}}

İÇERİK:
{{.Content}}

Final düzenleme yap, SEO optimize et.`)

const (
	promptStatistics = 10
	promptQuotes     = 5
)

func render(t *template.Template, data promptData) (string, error) {
	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

func bulletList(items []string, n int, empty string) string {
	if len(items) == 0 {
		return empty
	}
	items = items[:min(len(items), n)]
	lines := make([]string, len(items))
	for i, s := range items {
		lines[i] = "- " + s
	}
	return strings.Join(lines, "\n")
}

func imageList(images []types.SectionImage) string {
	if len(images) == 0 {
		return "Görsel bulunamadı."
	}
	var lines []string
	for _, si := range images {
		lines = append(lines,
			"- "+si.Section+": !["+si.Image.AltText+"]("+si.Image.URL+")",
			"  Fotoğraf: "+si.Image.Credit)
	}
	return strings.Join(lines, "\n")
}
