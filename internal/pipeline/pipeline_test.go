// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"sync"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/pdiddy/contentforge/internal/draft"
	"github.com/pdiddy/contentforge/pkg/types"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// --- fakes ---

type fakeResearcher struct{ calls int }

func (f *fakeResearcher) Research(_ context.Context, topic string, format types.ContentFormat) *types.AggregatedResearch {
	f.calls++
	return &types.AggregatedResearch{
		Topic:  topic,
		Format: format,
		Layers: []types.LayerResults{
			{Category: types.ResearchLayer{Key: types.LayerGeneral}},
			{Category: types.ResearchLayer{Key: types.LayerStatistics}},
		},
		Statistics:   []string{"📈 %35", "💰 2 milyon"},
		Quotes:       []string{`💬 "uzun bir alıntı metni burada yer alıyor"`},
		SourcesCount: 12,
		CompiledText: "derleme",
	}
}

type fakeImages struct{}

func (fakeImages) SearchImages(_ context.Context, query string, _ int) []types.Image {
	return []types.Image{{URL: "https://img.example/" + query, AltText: query}}
}

type fakeWriter struct {
	mu       sync.Mutex
	draftErr error
	editErr  error
	input    draft.Input
}

func (f *fakeWriter) Draft(_ context.Context, in draft.Input) (string, error) {
	f.mu.Lock()
	f.input = in
	f.mu.Unlock()
	if f.draftErr != nil {
		return "", f.draftErr
	}
	return "bir iki üç dört", nil
}

func (f *fakeWriter) Edit(_ context.Context, content, _ string, _ types.ContentFormat) (string, error) {
	if f.editErr != nil {
		return "", f.editErr
	}
	return "---\nbaslik: x\n---\n" + content, nil
}

type fakeScorer struct {
	deep bool
	err  error
}

func (f *fakeScorer) Analyze(_ context.Context, _, _ string, deep bool) (types.QualityReport, error) {
	f.deep = deep
	if f.err != nil {
		return types.QualityReport{}, f.err
	}
	return types.QualityReport{Overall: types.OverallQuality{Score: 77, Grade: types.GradeB}}, nil
}

func newOrchestrator(t *testing.T, cfg Config) *Orchestrator {
	t.Helper()
	if cfg.Writer == nil {
		cfg.Writer = &fakeWriter{}
	}
	if cfg.Scorer == nil {
		cfg.Scorer = &fakeScorer{}
	}
	o, err := New(cfg)
	require.NoError(t, err)
	return o
}

func collect(t *testing.T, o *Orchestrator, req types.ContentRequest) ([]types.PipelineEvent, *Result, error) {
	t.Helper()
	sink := make(chan types.PipelineEvent, 32)
	res, err := o.Run(context.Background(), req, sink)
	close(sink)
	var events []types.PipelineEvent
	for ev := range sink {
		events = append(events, ev)
	}
	return events, res, err
}

// --- tests ---

func TestRunEventSequence(t *testing.T) {
	scorer := &fakeScorer{}
	o := newOrchestrator(t, Config{
		Researcher: &fakeResearcher{},
		Images:     fakeImages{},
		Scorer:     scorer,
		DeepCheck:  true,
	})

	events, res, err := collect(t, o, types.ContentRequest{Topic: " kahve ", Format: types.FormatListicle})
	require.NoError(t, err)
	require.Len(t, events, 2*TotalSteps+1)

	wantAgents := []string{AgentResearcher, AgentVisualCurator, AgentWriter, AgentEditor, AgentQualityAnalyst}
	for i, id := range wantAgents {
		start, done := events[2*i], events[2*i+1]
		assert.Equal(t, types.EventAgentStart, start.Type)
		assert.Equal(t, types.EventAgentComplete, done.Type)
		for _, ev := range []types.PipelineEvent{start, done} {
			require.NotNil(t, ev.Agent)
			assert.Equal(t, id, ev.Agent.ID)
			assert.Equal(t, i+1, ev.Step)
			assert.Equal(t, TotalSteps, ev.TotalSteps)
		}
	}

	assert.Equal(t, types.ResearchStageData{
		SourcesFound: 12, StatisticsCount: 2, QuotesCount: 1,
		Layers: []types.LayerKey{types.LayerGeneral, types.LayerStatistics},
	}, events[1].Data)
	assert.Equal(t, "12 kaynak, 2 istatistik bulundu", events[1].Message)
	assert.Equal(t, types.ImageStageData{ImagesFound: 2}, events[3].Data, "hero plus the topic section")
	assert.Equal(t, "Listicle formatında veri destekli yazılıyor...", events[4].Message)
	assert.Equal(t, types.DraftStageData{WordCount: 4}, events[5].Data)
	assert.Equal(t, "Kalite skoru: 77/100 (B)", events[9].Message)

	final := events[10]
	assert.Equal(t, types.EventFinal, final.Type)
	assert.Nil(t, final.Agent)
	data, ok := final.Data.(types.FinalData)
	require.True(t, ok)
	assert.Equal(t, "---\nbaslik: x\n---\nbir iki üç dört", data.Content)
	assert.Equal(t, types.FormatListicle, data.Format)
	assert.Equal(t, 8, data.WordCount)
	assert.Equal(t, types.ResearchStats{Sources: 12, Statistics: 2, Quotes: 1}, data.ResearchStats)
	assert.Equal(t, 77, data.Quality.Overall.Score)

	assert.True(t, scorer.deep)
	assert.Equal(t, "kahve", res.Request.Topic)
	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, data.Content, res.Content)
}

func TestRunPassesResearchToWriter(t *testing.T) {
	w := &fakeWriter{}
	o := newOrchestrator(t, Config{Researcher: &fakeResearcher{}, Images: fakeImages{}, Writer: w})

	_, err := o.Run(context.Background(), types.ContentRequest{Topic: "kahve"}, nil)
	require.NoError(t, err)

	assert.Equal(t, "derleme", w.input.Research)
	assert.Equal(t, []string{"📈 %35", "💰 2 milyon"}, w.input.Statistics)
	require.Len(t, w.input.Images, 2)
	assert.Equal(t, "hero", w.input.Images[0].Section)
	assert.Equal(t, types.FormatStandard, w.input.Request.Format, "request is normalized")
}

func TestRunDegradedStages(t *testing.T) {
	w := &fakeWriter{}
	o := newOrchestrator(t, Config{Writer: w})

	events, res, err := collect(t, o, types.ContentRequest{Topic: "kahve"})
	require.NoError(t, err)
	require.Len(t, events, 2*TotalSteps+1)

	assert.Equal(t, "Araştırma atlandı (API key yok)", events[1].Message)
	assert.Equal(t, types.ResearchStageData{}, events[1].Data)
	assert.Equal(t, "Görsel arama atlandı", events[3].Message)
	assert.Equal(t, types.ImageStageData{}, events[3].Data)

	assert.Empty(t, w.input.Research)
	assert.Empty(t, w.input.Images)
	assert.Equal(t, types.ResearchStats{}, res.ResearchStats())
	assert.Equal(t, types.EventFinal, events[len(events)-1].Type)
}

func TestRunFatalStages(t *testing.T) {
	boom := errors.New("engine failed")
	tests := []struct {
		name       string
		writer     *fakeWriter
		scorer     *fakeScorer
		wantEvents int
	}{
		{"draft", &fakeWriter{draftErr: boom}, &fakeScorer{}, 5},
		{"edit", &fakeWriter{editErr: boom}, &fakeScorer{}, 7},
		{"score", &fakeWriter{}, &fakeScorer{err: boom}, 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := newOrchestrator(t, Config{Writer: tt.writer, Scorer: tt.scorer})
			events, res, err := collect(t, o, types.ContentRequest{Topic: "kahve"})

			require.Error(t, err)
			assert.True(t, errors.Is(err, boom))
			assert.Nil(t, res)
			assert.Len(t, events, tt.wantEvents)
			for _, ev := range events {
				assert.NotEqual(t, types.EventFinal, ev.Type)
			}
		})
	}
}

func TestRunEmptyTopic(t *testing.T) {
	o := newOrchestrator(t, Config{})
	_, err := o.Run(context.Background(), types.ContentRequest{Topic: "   "}, nil)
	assert.True(t, errors.Is(err, ErrEmptyTopic))
}

func TestNewRequiresWriterAndScorer(t *testing.T) {
	_, err := New(Config{Scorer: &fakeScorer{}})
	assert.Error(t, err)
	_, err = New(Config{Writer: &fakeWriter{}})
	assert.Error(t, err)
}

func TestStream(t *testing.T) {
	o := newOrchestrator(t, Config{Researcher: &fakeResearcher{}})

	var events []types.PipelineEvent
	for ev := range o.Stream(context.Background(), types.ContentRequest{Topic: "kahve"}) {
		events = append(events, ev)
	}
	require.Len(t, events, 2*TotalSteps+1)
	assert.Equal(t, types.EventFinal, events[len(events)-1].Type)
}

func TestStreamError(t *testing.T) {
	o := newOrchestrator(t, Config{Writer: &fakeWriter{draftErr: errors.New("quota exhausted")}})

	var events []types.PipelineEvent
	for ev := range o.Stream(context.Background(), types.ContentRequest{Topic: "kahve"}) {
		events = append(events, ev)
	}
	require.NotEmpty(t, events)
	last := events[len(events)-1]
	assert.Equal(t, types.EventError, last.Type)
	assert.Contains(t, last.Message, "quota exhausted")
}

func TestStreamConsumerCancels(t *testing.T) {
	o := newOrchestrator(t, Config{Researcher: &fakeResearcher{}})
	ctx, cancel := context.WithCancel(context.Background())

	ch := o.Stream(ctx, types.ContentRequest{Topic: "kahve"})
	first := <-ch
	assert.Equal(t, types.EventAgentStart, first.Type)
	cancel()

	n := 1
	for ev := range ch {
		assert.NotEqual(t, types.EventError, ev.Type, "cancellation is not reported as an error")
		n++
	}
	assert.Less(t, n, 2*TotalSteps+1)
}

func TestAgents(t *testing.T) {
	list := Agents()
	require.Len(t, list, TotalSteps)
	assert.Equal(t, AgentResearcher, list[0].ID)
	assert.Equal(t, "#3B82F6", list[0].Color)

	list[0].Tasks[0] = "changed"
	assert.Equal(t, "Çoklu kaynak", Agents()[0].Tasks[0])

	a, ok := AgentByID(AgentEditor)
	require.True(t, ok)
	assert.Equal(t, "Editör", a.Name)
	_, ok = AgentByID("nobody")
	assert.False(t, ok)
}
