// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ContentFormat selects the article structure.
type ContentFormat string

const (
	FormatStandard   ContentFormat = "standard"
	FormatListicle   ContentFormat = "listicle"
	FormatHowTo      ContentFormat = "howto"
	FormatComparison ContentFormat = "comparison"
	FormatCaseStudy  ContentFormat = "casestudy"
)

// Audience selects the reader profile the writer targets.
type Audience string

const (
	AudienceGeneral      Audience = "general"
	AudienceProfessional Audience = "professional"
	AudienceEntrepreneur Audience = "entrepreneur"
	AudienceTechnical    Audience = "technical"
)

// Tone selects the writing voice.
type Tone string

const (
	ToneFormal      Tone = "formal"
	ToneFriendly    Tone = "friendly"
	ToneEducational Tone = "educational"
	TonePersuasive  Tone = "persuasive"
)

// Length selects the target article length.
type Length string

const (
	LengthShort  Length = "short"
	LengthMedium Length = "medium"
	LengthLong   Length = "long"
)

// ContentRequest is the input of one pipeline run.
type ContentRequest struct {
	Topic    string        `json:"topic" yaml:"topic"`
	Audience Audience      `json:"audience" yaml:"audience"`
	Tone     Tone          `json:"tone" yaml:"tone"`
	Length   Length        `json:"length" yaml:"length"`
	Format   ContentFormat `json:"format" yaml:"format"`
}

// Normalize replaces unknown option values with the defaults
// (general, friendly, medium, standard).
func (r ContentRequest) Normalize() ContentRequest {
	switch r.Audience {
	case AudienceGeneral, AudienceProfessional, AudienceEntrepreneur, AudienceTechnical:
	default:
		r.Audience = AudienceGeneral
	}
	switch r.Tone {
	case ToneFormal, ToneFriendly, ToneEducational, TonePersuasive:
	default:
		r.Tone = ToneFriendly
	}
	switch r.Length {
	case LengthShort, LengthMedium, LengthLong:
	default:
		r.Length = LengthMedium
	}
	switch r.Format {
	case FormatStandard, FormatListicle, FormatHowTo, FormatComparison, FormatCaseStudy:
	default:
		r.Format = FormatStandard
	}
	return r
}

// Image is one picture returned by the image gateway.
type Image struct {
	URL          string `json:"url" yaml:"url"`
	ThumbnailURL string `json:"thumbnail_url" yaml:"thumbnail_url"`
	AltText      string `json:"alt_text" yaml:"alt_text"`
	Credit       string `json:"credit" yaml:"credit"`
	CreditLink   string `json:"credit_link" yaml:"credit_link"`
}

// SectionImage pairs an image with the article section it illustrates.
// Section "hero" is the article's lead image.
type SectionImage struct {
	Section string `json:"section" yaml:"section"`
	Image   Image  `json:"image" yaml:"image"`
}

// FrontMatter is the YAML header the editor places on top of the article.
type FrontMatter struct {
	Title       string        `json:"title" yaml:"baslik"`
	Description string        `json:"description" yaml:"aciklama"`
	Keywords    []string      `json:"keywords" yaml:"anahtar_kelimeler"`
	ReadingTime string        `json:"reading_time" yaml:"okuma_suresi"`
	Format      ContentFormat `json:"format" yaml:"format"`
}

// Plan is a profile's subscription tier.
type Plan string

const (
	PlanFree Plan = "free"
	PlanPro  Plan = "pro"
)

// ContentRecord is a stored article.
type ContentRecord struct {
	ID        string         `json:"id" yaml:"id"`
	UserID    string         `json:"user_id" yaml:"user_id"`
	Topic     string         `json:"topic" yaml:"topic"`
	Content   string         `json:"content" yaml:"content"`
	Quality   *QualityReport `json:"quality,omitempty" yaml:"quality,omitempty"`
	CreatedAt time.Time      `json:"created_at" yaml:"created_at"`
}
