// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/contentforge/internal/pipeline"
	"github.com/pdiddy/contentforge/pkg/types"
)

func TestPrintAgentsCatalog(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printAgents(&buf, ""))

	out := buf.String()
	assert.Contains(t, out, "1. ")
	assert.Contains(t, out, "5. ")
	assert.Contains(t, out, "Formats:")
	assert.Contains(t, out, "listicle")
}

func TestPrintAgentsByID(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printAgents(&buf, pipeline.AgentEditor))

	assert.Equal(t, "✨ Editör (Editor)\n   İçeriği düzenliyor ve iyileştiriyor\n"+
		"   Dil kontrolü, SEO optimizasyonu, Format düzenleme\n", buf.String())

	buf.Reset()
	assert.Error(t, printAgents(&buf, "nobody"))
	assert.Empty(t, buf.String())
}

func TestPrintLayerResults(t *testing.T) {
	r := &types.AggregatedResearch{
		Layers: []types.LayerResults{
			{
				Category:   types.ResearchLayer{Key: types.LayerGeneral, Icon: "🌐", Name: "Genel Bilgi"},
				QueryCount: 3,
				Results:    []types.SearchResult{{Title: "Kahve nedir", Link: "https://example.com/kahve", Source: "example.com"}},
			},
			{
				Category:   types.ResearchLayer{Key: types.LayerNews, Icon: "📰", Name: "Güncel Haberler"},
				QueryCount: 2,
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, printLayerResults(&buf, r, types.LayerGeneral))
	assert.Contains(t, buf.String(), "🌐 Genel Bilgi (3 queries)")
	assert.Contains(t, buf.String(), "https://example.com/kahve")
	assert.NotContains(t, buf.String(), "Güncel Haberler")

	buf.Reset()
	require.NoError(t, printLayerResults(&buf, r, types.LayerNews))
	assert.Contains(t, buf.String(), "No results found.")

	assert.Error(t, printLayerResults(&buf, r, types.LayerFAQ))
}
