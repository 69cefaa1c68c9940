// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make network requests.
type HTTPConfig struct {
	// Timeout bounds every request made by the component.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "contentforge/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for the web search gateway.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// APIKey authenticates against the search provider. Empty disables search.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// RequestsPerSecond paces provider calls. Zero means unlimited.
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second"`
}

// ImageConfig holds settings for the image search gateway.
type ImageConfig struct {
	HTTPConfig `yaml:",inline"`

	// AccessKey authenticates against the image provider. Empty disables image lookup.
	AccessKey string `json:"access_key,omitempty" yaml:"access_key,omitempty"`
}

// AIConfig holds settings for the generation engine.
type AIConfig struct {
	HTTPConfig `yaml:",inline"`

	// Model is the model identifier (e.g. "llama-3.3-70b-versatile").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the generation API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxTokens caps the completion length of every call (default 6000).
	MaxTokens int `json:"max_tokens" yaml:"max_tokens"`
}

// ResearchConfig holds settings for layered research aggregation.
type ResearchConfig struct {
	// ResultsPerQuery is the number of results requested per query (default 5).
	ResultsPerQuery int `json:"results_per_query" yaml:"results_per_query"`

	// Concurrency is the number of queries of one layer run at once.
	// 1 keeps the run fully sequential.
	Concurrency int `json:"concurrency" yaml:"concurrency"`
}

// StoreConfig holds settings for the content store.
type StoreConfig struct {
	// Path is the sqlite database file (e.g. "data/contentforge.db").
	Path string `json:"path" yaml:"path"`

	// FreeMonthlyLimit is the number of contents a free profile may create per month.
	FreeMonthlyLimit int `json:"free_monthly_limit" yaml:"free_monthly_limit"`

	// ProMonthlyLimit is the number of contents a pro profile may create per month.
	ProMonthlyLimit int `json:"pro_monthly_limit" yaml:"pro_monthly_limit"`
}

// ServerConfig holds settings for the HTTP/SSE server.
type ServerConfig struct {
	// Addr is the listen address (e.g. ":8000").
	Addr string `json:"addr" yaml:"addr"`
}

// PipelineConfig groups all component configurations.
type PipelineConfig struct {
	Search   SearchConfig   `json:"search" yaml:"search"`
	Images   ImageConfig    `json:"images" yaml:"images"`
	AI       AIConfig       `json:"ai" yaml:"ai"`
	Research ResearchConfig `json:"research" yaml:"research"`
	Store    StoreConfig    `json:"store" yaml:"store"`
	Server   ServerConfig   `json:"server" yaml:"server"`

	// DeepCheck enables fact-check scoring during the score stage.
	DeepCheck bool `json:"deep_check" yaml:"deep_check"`

	// OutputDir receives generated markdown files (default "outputs").
	OutputDir string `json:"output_dir" yaml:"output_dir"`
}

// DefaultUserAgent identifies contentforge to external providers.
const DefaultUserAgent = "contentforge/0.1"

// DefaultPipelineConfig returns the configuration used when no file or
// environment overrides are present.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		Search: SearchConfig{
			HTTPConfig: HTTPConfig{Timeout: 15 * time.Second, UserAgent: DefaultUserAgent},
		},
		Images: ImageConfig{
			HTTPConfig: HTTPConfig{Timeout: 10 * time.Second, UserAgent: DefaultUserAgent},
		},
		AI: AIConfig{
			HTTPConfig: HTTPConfig{Timeout: 120 * time.Second, UserAgent: DefaultUserAgent},
			Model:      "llama-3.3-70b-versatile",
			MaxTokens:  6000,
		},
		Research: ResearchConfig{
			ResultsPerQuery: 5,
			Concurrency:     1,
		},
		Store: StoreConfig{
			Path:             "data/contentforge.db",
			FreeMonthlyLimit: 3,
			ProMonthlyLimit:  30,
		},
		Server:    ServerConfig{Addr: ":8000"},
		DeepCheck: true,
		OutputDir: "outputs",
	}
}
