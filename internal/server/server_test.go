// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pdiddy/contentforge/internal/pipeline"
	"github.com/pdiddy/contentforge/internal/store"
	"github.com/pdiddy/contentforge/pkg/types"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

var fixedNow = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

var testQuality = types.QualityReport{Overall: types.OverallQuality{Score: 77, Grade: types.GradeB}}

type fakePipeline struct {
	content string
	err     error
	runs    int
	last    types.ContentRequest
}

func (f *fakePipeline) Run(_ context.Context, req types.ContentRequest, _ chan<- types.PipelineEvent) (*pipeline.Result, error) {
	f.runs++
	f.last = req
	if f.err != nil {
		return nil, f.err
	}
	return &pipeline.Result{Request: req, Content: f.content, Quality: testQuality}, nil
}

func (f *fakePipeline) Stream(_ context.Context, req types.ContentRequest) <-chan types.PipelineEvent {
	f.runs++
	f.last = req
	ch := make(chan types.PipelineEvent, 3)
	go func() {
		defer close(ch)
		ch <- types.PipelineEvent{Type: types.EventAgentStart, Step: 1, TotalSteps: pipeline.TotalSteps, Message: "başladı"}
		if f.err != nil {
			ch <- types.PipelineEvent{Type: types.EventError, Message: f.err.Error()}
			return
		}
		ch <- types.PipelineEvent{
			Type:    types.EventFinal,
			Message: "Blog tamamlandı!",
			Data:    types.FinalData{Content: f.content, Quality: testQuality, Format: req.Format},
		}
	}()
	return ch
}

func newTestServer(t *testing.T, p Pipeline) (*Server, *store.Store) {
	t.Helper()
	st, err := store.Open(types.StoreConfig{
		Path:             filepath.Join(t.TempDir(), "test.db"),
		FreeMonthlyLimit: 2,
		ProMonthlyLimit:  30,
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	s := New(p, st, nil)
	s.now = func() time.Time { return fixedNow }
	return s, st
}

func do(t *testing.T, s *Server, method, path, user, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if user != "" {
		req.Header.Set(UserHeader, user)
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

type sseEvent struct {
	Type    types.EventType `json:"type"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func readEvents(t *testing.T, body string) []sseEvent {
	t.Helper()
	var events []sseEvent
	sc := bufio.NewScanner(strings.NewReader(body))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}
		require.True(t, strings.HasPrefix(line, "data: "), line)
		var ev sseEvent
		require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &ev))
		events = append(events, ev)
	}
	return events
}

func TestRootAndHealth(t *testing.T) {
	s, _ := newTestServer(t, &fakePipeline{})

	w := do(t, s, http.MethodGet, "/", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	root := decode[map[string]string](t, w)
	assert.Equal(t, "ContentForge API", root["name"])
	assert.Equal(t, "running", root["status"])

	w = do(t, s, http.MethodGet, "/health", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, w.Body.String())
}

func TestAgentsNeedsNoUser(t *testing.T) {
	s, _ := newTestServer(t, &fakePipeline{})

	w := do(t, s, http.MethodGet, "/blog/agents", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[struct {
		Agents []types.Agent `json:"agents"`
	}](t, w)
	assert.Len(t, got.Agents, pipeline.TotalSteps)
}

func TestAuthRequired(t *testing.T) {
	s, _ := newTestServer(t, &fakePipeline{})
	routes := []struct{ method, path string }{
		{http.MethodPost, "/blog/create"},
		{http.MethodPost, "/blog/create-stream"},
		{http.MethodGet, "/blog/history"},
		{http.MethodGet, "/blog/abc"},
		{http.MethodDelete, "/blog/abc"},
		{http.MethodGet, "/user/usage"},
		{http.MethodPatch, "/user/upgrade"},
	}
	for _, r := range routes {
		t.Run(r.method+" "+r.path, func(t *testing.T) {
			w := do(t, s, r.method, r.path, "", "")
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), "detail")
		})
	}
}

func TestCreateLifecycle(t *testing.T) {
	p := &fakePipeline{content: "# Kahve\n\nmetin"}
	s, _ := newTestServer(t, p)

	w := do(t, s, http.MethodPost, "/blog/create", "u1", `{"topic":"kahve","format_type":"listicle","tone":"bogus"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	created := decode[contentResponse](t, w)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "kahve", created.Topic)
	assert.Equal(t, p.content, created.Content)
	require.NotNil(t, created.Quality)
	assert.Equal(t, 77, created.Quality.Overall.Score)

	assert.Equal(t, types.FormatListicle, p.last.Format)
	assert.Equal(t, types.ToneFriendly, p.last.Tone, "unknown tone falls back to the default")

	w = do(t, s, http.MethodGet, "/blog/history", "u1", "")
	require.Equal(t, http.StatusOK, w.Code)
	hist := decode[historyResponse](t, w)
	assert.Equal(t, 1, hist.Total)
	require.Len(t, hist.Blogs, 1)
	assert.Equal(t, created.ID, hist.Blogs[0].ID)

	w = do(t, s, http.MethodGet, "/blog/"+created.ID, "u1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, created.ID, decode[contentResponse](t, w).ID)

	w = do(t, s, http.MethodGet, "/blog/"+created.ID, "u2", "")
	assert.Equal(t, http.StatusNotFound, w.Code, "records are scoped to their owner")

	w = do(t, s, http.MethodDelete, "/blog/"+created.ID, "u1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Blog silindi"}`, w.Body.String())

	w = do(t, s, http.MethodGet, "/blog/"+created.ID, "u1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Blog bulunamadı")

	w = do(t, s, http.MethodDelete, "/blog/"+created.ID, "u1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateRejectsMissingTopic(t *testing.T) {
	p := &fakePipeline{}
	s, _ := newTestServer(t, p)

	w := do(t, s, http.MethodPost, "/blog/create", "u1", `{"audience":"general"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, p.runs)
}

func TestCreatePipelineError(t *testing.T) {
	p := &fakePipeline{err: errors.New("groq down")}
	s, st := newTestServer(t, p)

	w := do(t, s, http.MethodPost, "/blog/create", "u1", `{"topic":"kahve"}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Blog oluşturma hatası: groq down")

	_, total, err := st.ListContents(context.Background(), "u1", 10, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestCreateQuotaExceeded(t *testing.T) {
	p := &fakePipeline{content: "metin"}
	s, _ := newTestServer(t, p)

	for i := 0; i < 2; i++ {
		w := do(t, s, http.MethodPost, "/blog/create", "u1", `{"topic":"kahve"}`)
		require.Equal(t, http.StatusOK, w.Code)
	}
	w := do(t, s, http.MethodPost, "/blog/create", "u1", `{"topic":"kahve"}`)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"detail":"Aylık limit doldu (2/2). Pro plana geçin."}`, w.Body.String())
	assert.Equal(t, 2, p.runs)

	w = do(t, s, http.MethodPost, "/blog/create-stream", "u1", `{"topic":"kahve"}`)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, 2, p.runs)
}

func TestCreateStream(t *testing.T) {
	p := &fakePipeline{content: "# Başlık\n\nmetin"}
	s, st := newTestServer(t, p)

	w := do(t, s, http.MethodPost, "/blog/create-stream", "u1", `{"topic":"kahve"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
	assert.Equal(t, "no-cache", w.Header().Get("Cache-Control"))
	assert.Equal(t, "no", w.Header().Get("X-Accel-Buffering"))

	events := readEvents(t, w.Body.String())
	require.Len(t, events, 3)
	assert.Equal(t, types.EventAgentStart, events[0].Type)
	assert.Equal(t, types.EventFinal, events[1].Type)
	assert.Equal(t, types.EventSaved, events[2].Type)
	assert.Equal(t, "Blog kaydedildi", events[2].Message)

	var saved types.SavedData
	require.NoError(t, json.Unmarshal(events[2].Data, &saved))
	assert.Equal(t, "kahve", saved.Topic)
	assert.Equal(t, p.content, saved.Content)

	rec, err := st.GetContent(context.Background(), "u1", saved.ID)
	require.NoError(t, err)
	assert.Equal(t, p.content, rec.Content)
	require.NotNil(t, rec.Quality)
	assert.Equal(t, types.GradeB, rec.Quality.Overall.Grade)
}

func TestCreateStreamErrorSavesNothing(t *testing.T) {
	p := &fakePipeline{err: errors.New("taslak üretilemedi")}
	s, st := newTestServer(t, p)

	w := do(t, s, http.MethodPost, "/blog/create-stream", "u1", `{"topic":"kahve"}`)
	require.Equal(t, http.StatusOK, w.Code)

	events := readEvents(t, w.Body.String())
	require.Len(t, events, 2)
	assert.Equal(t, types.EventError, events[1].Type)
	assert.Equal(t, "taslak üretilemedi", events[1].Message)

	_, total, err := st.ListContents(context.Background(), "u1", 10, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestHistoryPaging(t *testing.T) {
	s, _ := newTestServer(t, &fakePipeline{content: "metin"})
	require.Equal(t, http.StatusOK, do(t, s, http.MethodPatch, "/user/upgrade", "u1", "").Code)
	for i := 0; i < 3; i++ {
		require.Equal(t, http.StatusOK, do(t, s, http.MethodPost, "/blog/create", "u1", `{"topic":"kahve"}`).Code)
	}

	w := do(t, s, http.MethodGet, "/blog/history?limit=2&offset=0", "u1", "")
	require.Equal(t, http.StatusOK, w.Code)
	first := decode[historyResponse](t, w)
	assert.Equal(t, 3, first.Total)
	assert.Len(t, first.Blogs, 2)

	w = do(t, s, http.MethodGet, "/blog/history?limit=2&offset=2", "u1", "")
	second := decode[historyResponse](t, w)
	assert.Len(t, second.Blogs, 1)

	w = do(t, s, http.MethodGet, "/blog/history", "u2", "")
	empty := decode[historyResponse](t, w)
	assert.Zero(t, empty.Total)
	assert.NotNil(t, empty.Blogs)
}

func TestUsageAndUpgrade(t *testing.T) {
	s, _ := newTestServer(t, &fakePipeline{content: "metin"})
	require.Equal(t, http.StatusOK, do(t, s, http.MethodPost, "/blog/create", "u1", `{"topic":"kahve"}`).Code)

	w := do(t, s, http.MethodGet, "/user/usage", "u1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, usageResponse{
		Plan: types.PlanFree, Used: 1, Limit: 2, Remaining: 1, ResetDate: "2026-04-01",
	}, decode[usageResponse](t, w))

	w = do(t, s, http.MethodPatch, "/user/upgrade", "u1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"plan":"pro"`)

	w = do(t, s, http.MethodGet, "/user/usage", "u1", "")
	u := decode[usageResponse](t, w)
	assert.Equal(t, types.PlanPro, u.Plan)
	assert.Equal(t, 30, u.Limit)
	assert.Equal(t, 29, u.Remaining)
}

func TestUsageAtLimit(t *testing.T) {
	s, _ := newTestServer(t, &fakePipeline{content: "metin"})
	for i := 0; i < 2; i++ {
		require.Equal(t, http.StatusOK, do(t, s, http.MethodPost, "/blog/create", "u1", `{"topic":"kahve"}`).Code)
	}
	w := do(t, s, http.MethodGet, "/user/usage", "u1", "")
	require.Equal(t, http.StatusOK, w.Code)
	u := decode[usageResponse](t, w)
	assert.Equal(t, 2, u.Used)
	assert.Zero(t, u.Remaining)
}

func TestCreateRejectsBlankTopic(t *testing.T) {
	p := &fakePipeline{content: "metin"}
	s, _ := newTestServer(t, p)

	for _, path := range []string{"/blog/create", "/blog/create-stream"} {
		t.Run(path, func(t *testing.T) {
			w := do(t, s, http.MethodPost, path, "u1", `{"topic":"   "}`)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.JSONEq(t, `{"detail":"Konu boş olamaz"}`, w.Body.String())
		})
	}
	assert.Zero(t, p.runs)
}

func TestCreateEmptyTopicFromPipeline(t *testing.T) {
	p := &fakePipeline{err: errors.Wrap(pipeline.ErrEmptyTopic, "run")}
	s, _ := newTestServer(t, p)

	w := do(t, s, http.MethodPost, "/blog/create", "u1", `{"topic":"kahve"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

type failingSaves struct {
	*store.Store
}

func (failingSaves) SaveContent(context.Context, types.ContentRecord) (types.ContentRecord, error) {
	return types.ContentRecord{}, errors.New("disk full")
}

func TestCreateStreamSaveFailure(t *testing.T) {
	s, st := newTestServer(t, &fakePipeline{content: "metin"})
	s.repo = failingSaves{st}

	w := do(t, s, http.MethodPost, "/blog/create-stream", "u1", `{"topic":"kahve"}`)
	require.Equal(t, http.StatusOK, w.Code)

	events := readEvents(t, w.Body.String())
	require.Len(t, events, 3)
	assert.Equal(t, types.EventFinal, events[1].Type)
	assert.Equal(t, types.EventError, events[2].Type)
	assert.Equal(t, "İçerik kaydedilemedi", events[2].Message)
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestRelayLogsWriteFailure(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	s := New(&fakePipeline{}, nil, zap.New(core).Sugar())

	s.relay(brokenWriter{}, types.PipelineEvent{Type: types.EventSaved, Message: "Blog kaydedildi"})

	entries := logs.FilterMessage("writing event failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, string(types.EventSaved), entries[0].ContextMap()["type"])
}

func TestSendWritesEvent(t *testing.T) {
	w := httptest.NewRecorder()
	require.NoError(t, send(w, types.PipelineEvent{Type: types.EventError, Message: "hata"}))
	assert.Equal(t, "data: {\"type\":\"error\",\"message\":\"hata\"}\n\n", w.Body.String())
	assert.True(t, w.Flushed)
}
