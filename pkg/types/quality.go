// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Grade is a letter grade derived from a score by fixed thresholds.
type Grade string

const (
	GradeA  Grade = "A"
	GradeB  Grade = "B"
	GradeC  Grade = "C"
	GradeD  Grade = "D"
	GradeF  Grade = "F"
	GradeNA Grade = "N/A"
)

// QualityScore holds the fields common to every quality metric.
type QualityScore struct {
	// Score is an integer in [0, 100].
	Score       int      `json:"score" yaml:"score"`
	Grade       Grade    `json:"grade" yaml:"grade"`
	GradeText   string   `json:"grade_text,omitempty" yaml:"grade_text,omitempty"`
	Issues      []string `json:"issues" yaml:"issues"`
	Suggestions []string `json:"suggestions" yaml:"suggestions"`
}

// ReadabilityDetails are the measurements behind a readability score.
type ReadabilityDetails struct {
	TotalWords        int     `json:"total_words" yaml:"total_words"`
	TotalSentences    int     `json:"total_sentences" yaml:"total_sentences"`
	AvgSentenceLength float64 `json:"avg_sentence_length" yaml:"avg_sentence_length"`
	AvgWordLength     float64 `json:"avg_word_length" yaml:"avg_word_length"`

	// ComplexWordRatio is a percentage.
	ComplexWordRatio float64 `json:"complex_word_ratio" yaml:"complex_word_ratio"`
}

// ReadabilityScore rates how easy the content is to read.
type ReadabilityScore struct {
	QualityScore `yaml:",inline"`
	Details      ReadabilityDetails `json:"details" yaml:"details"`
}

// Check status markers used by SEO checks.
const (
	CheckOK   = "✅"
	CheckWarn = "⚠️"
	CheckFail = "❌"
)

// SEOCheck is one line of the SEO checklist.
type SEOCheck struct {
	Status string `json:"status" yaml:"status"`
	Label  string `json:"label" yaml:"label"`
	Value  string `json:"value" yaml:"value"`
}

// SEODetails are the counts behind an SEO score.
type SEODetails struct {
	WordCount      int     `json:"word_count" yaml:"word_count"`
	H2Count        int     `json:"h2_count" yaml:"h2_count"`
	H3Count        int     `json:"h3_count" yaml:"h3_count"`
	ImageCount     int     `json:"image_count" yaml:"image_count"`
	LinkCount      int     `json:"link_count" yaml:"link_count"`
	KeywordDensity float64 `json:"keyword_density" yaml:"keyword_density"`
}

// SEOScore rates the structural search-engine readiness of the content.
type SEOScore struct {
	QualityScore `yaml:",inline"`
	Checks       []SEOCheck `json:"checks" yaml:"checks"`
	Details      SEODetails `json:"details" yaml:"details"`
}

// ClaimStatus is the verification outcome of one claim.
type ClaimStatus string

const (
	ClaimVerified   ClaimStatus = "verified"
	ClaimUncertain  ClaimStatus = "uncertain"
	ClaimUnverified ClaimStatus = "unverified"
)

// ClaimResult is the verification of one extracted claim.
type ClaimResult struct {
	Claim      string      `json:"claim" yaml:"claim"`
	Status     ClaimStatus `json:"status" yaml:"status"`
	Confidence int         `json:"confidence" yaml:"confidence"`
	Source     string      `json:"source,omitempty" yaml:"source,omitempty"`
}

// FactCheckScore rates how many extracted claims could be matched against search results.
type FactCheckScore struct {
	QualityScore `yaml:",inline"`

	// Computed is false when fact-checking was skipped.
	Computed      bool          `json:"computed" yaml:"computed"`
	ClaimsChecked int           `json:"claims_checked" yaml:"claims_checked"`
	Verified      int           `json:"verified" yaml:"verified"`
	Uncertain     int           `json:"uncertain" yaml:"uncertain"`
	Unverified    int           `json:"unverified" yaml:"unverified"`
	Claims        []ClaimResult `json:"claims" yaml:"claims"`
	Note          string        `json:"note,omitempty" yaml:"note,omitempty"`
}

// OriginalityDetails are the measurements behind an originality score.
type OriginalityDetails struct {
	ClicheCount         int      `json:"cliche_count" yaml:"cliche_count"`
	FoundCliches        []string `json:"found_cliches" yaml:"found_cliches"`
	UniqueSentenceRatio float64  `json:"unique_sentence_ratio" yaml:"unique_sentence_ratio"`
}

// OriginalityScore rates stock phrasing and sentence repetition.
type OriginalityScore struct {
	QualityScore `yaml:",inline"`
	Details      OriginalityDetails `json:"details" yaml:"details"`
}

// OverallQuality is the weighted combination of the four sub-scores.
type OverallQuality struct {
	Score int   `json:"score" yaml:"score"`
	Grade Grade `json:"grade" yaml:"grade"`
}

// QualityReport bundles the overall score with every sub-score.
type QualityReport struct {
	Overall     OverallQuality   `json:"overall" yaml:"overall"`
	Readability ReadabilityScore `json:"readability" yaml:"readability"`
	SEO         SEOScore         `json:"seo" yaml:"seo"`
	Originality OriginalityScore `json:"originality" yaml:"originality"`
	FactCheck   FactCheckScore   `json:"fact_check" yaml:"fact_check"`
}
