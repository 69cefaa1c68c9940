// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/viper"

	"github.com/pdiddy/contentforge/internal/secrets"
	"github.com/pdiddy/contentforge/pkg/types"
)

// loadPipelineConfig overlays the config file and CONTENTFORGE_* environment
// on the defaults. API keys missing from both fall back to .secrets/.
func loadPipelineConfig() types.PipelineConfig {
	cfg := types.DefaultPipelineConfig()

	setString(&cfg.Search.APIKey, "search.api_key")
	setFloat(&cfg.Search.RequestsPerSecond, "search.requests_per_second")
	setDuration(&cfg.Search.HTTPConfig, "search.timeout")

	setString(&cfg.Images.AccessKey, "images.access_key")
	setDuration(&cfg.Images.HTTPConfig, "images.timeout")

	setString(&cfg.AI.APIKey, "ai.api_key")
	setString(&cfg.AI.Model, "ai.model")
	setInt(&cfg.AI.MaxTokens, "ai.max_tokens")
	setDuration(&cfg.AI.HTTPConfig, "ai.timeout")

	setInt(&cfg.Research.ResultsPerQuery, "research.results_per_query")
	setInt(&cfg.Research.Concurrency, "research.concurrency")

	setString(&cfg.Store.Path, "store.path")
	setInt(&cfg.Store.FreeMonthlyLimit, "store.free_monthly_limit")
	setInt(&cfg.Store.ProMonthlyLimit, "store.pro_monthly_limit")

	setString(&cfg.Server.Addr, "server.addr")
	setString(&cfg.OutputDir, "output_dir")
	if viper.IsSet("deep_check") {
		cfg.DeepCheck = viper.GetBool("deep_check")
	}

	cfg.Search.APIKey = secretDefault(secrets.SerperAPIKey, cfg.Search.APIKey)
	cfg.Images.AccessKey = secretDefault(secrets.UnsplashAccessKey, cfg.Images.AccessKey)
	cfg.AI.APIKey = secretDefault(secrets.GroqAPIKey, cfg.AI.APIKey)
	return cfg
}

// secretDefault returns value if it is set, or the secret stored under key.
func secretDefault(key, value string) string {
	if value != "" {
		return value
	}
	return secrets.Lookup(loadedSecrets, key, "")
}

func setString(dst *string, key string) {
	if viper.IsSet(key) {
		*dst = viper.GetString(key)
	}
}

func setInt(dst *int, key string) {
	if viper.IsSet(key) {
		*dst = viper.GetInt(key)
	}
}

func setFloat(dst *float64, key string) {
	if viper.IsSet(key) {
		*dst = viper.GetFloat64(key)
	}
}

func setDuration(dst *types.HTTPConfig, key string) {
	if viper.IsSet(key) {
		dst.Timeout = viper.GetDuration(key)
	}
}
