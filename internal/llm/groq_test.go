// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/contentforge/internal/httputil"
	"github.com/pdiddy/contentforge/pkg/types"
)

func testCfg() types.AIConfig {
	return types.AIConfig{
		HTTPConfig: types.HTTPConfig{Timeout: 5 * time.Second},
		APIKey:     "gsk_test",
	}
}

func withServer(t *testing.T, handler http.HandlerFunc) {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	orig := groqChatURL
	groqChatURL = ts.URL
	t.Cleanup(func() { groqChatURL = orig })
}

func TestComplete(t *testing.T) {
	var got chatRequest
	withServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer gsk_test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"choices": [{"message": {"role": "assistant", "content": "  # Başlık\n\nMetin  "}}]}`))
	})

	c := NewGroqClient(testCfg(), nil)
	text, err := c.Complete(context.Background(), "sistem", "kullanıcı", 0.6)
	require.NoError(t, err)

	assert.Equal(t, "# Başlık\n\nMetin", text)
	assert.Equal(t, DefaultModel, got.Model)
	assert.Equal(t, defaultMaxTokens, got.MaxTokens)
	assert.InDelta(t, 0.6, got.Temperature, 1e-9)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, chatMessage{Role: "system", Content: "sistem"}, got.Messages[0])
	assert.Equal(t, chatMessage{Role: "user", Content: "kullanıcı"}, got.Messages[1])
}

func TestCompleteErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		check   func(t *testing.T, err error)
	}{
		{
			name: "non-2xx",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
			check: func(t *testing.T, err error) {
				var se *httputil.StatusError
				require.True(t, errors.As(err, &se))
				assert.Equal(t, http.StatusBadGateway, se.StatusCode)
			},
		},
		{
			name: "no choices",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"choices": []}`))
			},
			check: func(t *testing.T, err error) {
				assert.True(t, errors.Is(err, ErrEmptyCompletion))
			},
		},
		{
			name: "blank content",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"choices": [{"message": {"content": "   "}}]}`))
			},
			check: func(t *testing.T, err error) {
				assert.True(t, errors.Is(err, ErrEmptyCompletion))
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withServer(t, tt.handler)
			_, err := NewGroqClient(testCfg(), nil).Complete(context.Background(), "s", "u", 0.2)
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestCompleteMissingKey(t *testing.T) {
	cfg := testCfg()
	cfg.APIKey = ""
	_, err := NewGroqClient(cfg, nil).Complete(context.Background(), "s", "u", 0.2)
	assert.True(t, errors.Is(err, ErrMissingAPIKey))
	assert.NotEmpty(t, errors.GetAllHints(err))
}
