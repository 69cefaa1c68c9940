// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package draft

import "github.com/pdiddy/contentforge/pkg/types"

// FormatInfo describes a content format for display.
type FormatInfo struct {
	Format      types.ContentFormat `json:"format" yaml:"format"`
	Name        string              `json:"name" yaml:"name"`
	Description string              `json:"description" yaml:"description"`
	Icon        string              `json:"icon" yaml:"icon"`
}

var formats = []FormatInfo{
	{types.FormatStandard, "Standart Blog", "Klasik blog yazısı", "📝"},
	{types.FormatListicle, "Listicle", `"10 Yol" formatı`, "📋"},
	{types.FormatHowTo, "Nasıl Yapılır", "Adım adım rehber", "🔧"},
	{types.FormatComparison, "Karşılaştırma", "X vs Y analizi", "⚖️"},
	{types.FormatCaseStudy, "Vaka Çalışması", "Detaylı analiz", "🔬"},
}

// Formats returns the supported content formats in display order.
func Formats() []FormatInfo {
	return append([]FormatInfo(nil), formats...)
}

// Format returns the display info of format, falling back to the standard
// format for unknown values.
func Format(format types.ContentFormat) FormatInfo {
	for _, f := range formats {
		if f.Format == format {
			return f
		}
	}
	return formats[0]
}

// LengthTarget is the word range and section count a length asks for.
type LengthTarget struct {
	Words    string
	Sections int

	// Items is the number of list entries or steps in listicle and howto
	// articles.
	Items int
}

var lengths = map[types.Length]LengthTarget{
	types.LengthShort:  {Words: "800-1000", Sections: 4, Items: 5},
	types.LengthMedium: {Words: "1500-1800", Sections: 6, Items: 7},
	types.LengthLong:   {Words: "2500-3000", Sections: 8, Items: 10},
}

// Target returns the length target for l, medium when l is unknown.
func Target(l types.Length) LengthTarget {
	if t, ok := lengths[l]; ok {
		return t
	}
	return lengths[types.LengthMedium]
}

type audienceProfile struct {
	desc  string
	style string
}

var audiences = map[types.Audience]audienceProfile{
	types.AudienceGeneral:      {"Genel okuyucu", "Basit dil, günlük örnekler"},
	types.AudienceProfessional: {"Profesyonel", "Teknik terimler, derinlemesine analiz"},
	types.AudienceEntrepreneur: {"Girişimci", "ROI odaklı, iş değeri vurgula"},
	types.AudienceTechnical:    {"Teknik uzman", "Detaylı metodoloji, teknik derinlik"},
}

var tones = map[types.Tone]string{
	types.ToneFormal:      "Resmi, akademik, profesyonel",
	types.ToneFriendly:    "Samimi, sıcak, sohbet havası",
	types.ToneEducational: "Eğitici, adım adım, öğretici",
	types.TonePersuasive:  "İkna edici, faydaları vurgula",
}
