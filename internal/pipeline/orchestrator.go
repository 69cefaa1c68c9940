// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs one content request through the five stages
// research, images, draft, edit and score, reporting progress as
// PipelineEvents on a channel owned by the consumer.
package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pdiddy/contentforge/internal/draft"
	"github.com/pdiddy/contentforge/internal/images"
	"github.com/pdiddy/contentforge/pkg/types"
)

// Stage is one state of the orchestrator.
type Stage string

const (
	StageResearch Stage = "research"
	StageImages   Stage = "images"
	StageDraft    Stage = "draft"
	StageEdit     Stage = "edit"
	StageScore    Stage = "score"
	StageFinal    Stage = "final"
	StageDone     Stage = "done"
)

func (s Stage) String() string { return string(s) }

// TotalSteps is the number of agent stages in a run.
const TotalSteps = 5

var (
	// ErrEmptyTopic is returned by Run for a blank topic.
	ErrEmptyTopic = errors.New("topic is empty")

	errMissingWriter = errors.New("pipeline needs a writer")
	errMissingScorer = errors.New("pipeline needs a scorer")
)

// Researcher produces aggregated research for a topic. It never fails.
type Researcher interface {
	Research(ctx context.Context, topic string, format types.ContentFormat) *types.AggregatedResearch
}

// Writer drafts and edits articles with the generation engine.
type Writer interface {
	Draft(ctx context.Context, in draft.Input) (string, error)
	Edit(ctx context.Context, content, topic string, format types.ContentFormat) (string, error)
}

// Scorer produces the quality report of finished content.
type Scorer interface {
	Analyze(ctx context.Context, content, topic string, deep bool) (types.QualityReport, error)
}

// Config wires the orchestrator's collaborators. Researcher and Images may
// be nil; their stages then complete without doing any work.
type Config struct {
	Researcher Researcher
	Images     images.Gateway
	Writer     Writer
	Scorer     Scorer

	// DeepCheck enables fact-checking in the score stage.
	DeepCheck bool

	Logger *zap.SugaredLogger
}

// Orchestrator runs content requests. It holds no per-run state and may
// serve concurrent runs.
type Orchestrator struct {
	cfg    Config
	logger *zap.SugaredLogger
}

// New validates cfg and creates an orchestrator.
func New(cfg Config) (*Orchestrator, error) {
	if cfg.Writer == nil {
		return nil, errMissingWriter
	}
	if cfg.Scorer == nil {
		return nil, errMissingScorer
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Orchestrator{cfg: cfg, logger: logger}, nil
}

// Result is everything a completed run produced.
type Result struct {
	RunID     string
	Request   types.ContentRequest
	Research  *types.AggregatedResearch
	Images    []types.SectionImage
	Draft     string
	Content   string
	Quality   types.QualityReport
	WordCount int
}

// ResearchStats restates the research volume of r.
func (r *Result) ResearchStats() types.ResearchStats {
	if r.Research == nil {
		return types.ResearchStats{}
	}
	return types.ResearchStats{
		Sources:    r.Research.SourcesCount,
		Statistics: len(r.Research.Statistics),
		Quotes:     len(r.Research.Quotes),
	}
}

// run is the state carried from stage to stage.
type run struct {
	id     string
	req    types.ContentRequest
	sink   chan<- types.PipelineEvent
	result *Result
	logger *zap.SugaredLogger
}

// Run executes req stage by stage, sending one start and one complete event
// per stage and a final event to sink. A nil sink discards events. Draft,
// edit and scoring errors end the run and are returned; no final event is
// sent then. Run also stops when ctx is cancelled.
func (o *Orchestrator) Run(ctx context.Context, req types.ContentRequest, sink chan<- types.PipelineEvent) (*Result, error) {
	req = req.Normalize()
	req.Topic = strings.TrimSpace(req.Topic)
	if req.Topic == "" {
		return nil, ErrEmptyTopic
	}

	r := &run{
		id:     uuid.New().String(),
		req:    req,
		sink:   sink,
		result: &Result{Request: req},
	}
	r.result.RunID = r.id
	r.logger = o.logger.With("run_id", r.id, "topic", req.Topic, "format", req.Format)

	stage := StageResearch
	for stage != StageDone {
		r.logger.Infow("stage starting", "stage", stage)
		var err error
		switch stage {
		case StageResearch:
			err = o.research(ctx, r)
			stage = StageImages
		case StageImages:
			err = o.images(ctx, r)
			stage = StageDraft
		case StageDraft:
			err = o.draft(ctx, r)
			stage = StageEdit
		case StageEdit:
			err = o.edit(ctx, r)
			stage = StageScore
		case StageScore:
			err = o.score(ctx, r)
			stage = StageFinal
		case StageFinal:
			err = o.final(ctx, r)
			stage = StageDone
		}
		if err != nil {
			r.logger.Warnw("run failed", "error", err)
			return nil, err
		}
	}
	r.logger.Infow("run complete", "overall", r.result.Quality.Overall.Score)
	return r.result, nil
}

// Stream runs req in its own goroutine and returns its events. A failed
// run ends with an error event. The channel is closed when the run ends or
// ctx is cancelled; a consumer that stops reading must cancel ctx.
func (o *Orchestrator) Stream(ctx context.Context, req types.ContentRequest) <-chan types.PipelineEvent {
	ch := make(chan types.PipelineEvent)
	go func() {
		defer close(ch)
		if _, err := o.Run(ctx, req, ch); err != nil && ctx.Err() == nil {
			ev := types.PipelineEvent{Type: types.EventError, Message: err.Error()}
			select {
			case ch <- ev:
			case <-ctx.Done():
			}
		}
	}()
	return ch
}

func (o *Orchestrator) research(ctx context.Context, r *run) error {
	step := stepOf(AgentResearcher)
	if err := r.start(ctx, step, "7 katmanlı derin araştırma başlatılıyor..."); err != nil {
		return err
	}
	if o.cfg.Researcher == nil {
		return r.complete(ctx, step, "Araştırma atlandı (API key yok)", types.ResearchStageData{})
	}

	res := o.cfg.Researcher.Research(ctx, r.req.Topic, r.req.Format)
	r.result.Research = res
	return r.complete(ctx, step,
		fmt.Sprintf("%d kaynak, %d istatistik bulundu", res.SourcesCount, len(res.Statistics)),
		types.ResearchStageData{
			SourcesFound:    res.SourcesCount,
			StatisticsCount: len(res.Statistics),
			QuotesCount:     len(res.Quotes),
			Layers:          res.LayerKeys(),
		})
}

func (o *Orchestrator) images(ctx context.Context, r *run) error {
	step := stepOf(AgentVisualCurator)
	if err := r.start(ctx, step, "Görseller aranıyor..."); err != nil {
		return err
	}
	if o.cfg.Images == nil {
		return r.complete(ctx, step, "Görsel arama atlandı", types.ImageStageData{})
	}

	found := images.ForTopic(ctx, o.cfg.Images, r.req.Topic, []string{r.req.Topic})
	r.result.Images = found
	return r.complete(ctx, step, fmt.Sprintf("%d görsel bulundu", len(found)), types.ImageStageData{ImagesFound: len(found)})
}

func (o *Orchestrator) draft(ctx context.Context, r *run) error {
	step := stepOf(AgentWriter)
	if err := r.start(ctx, step, draft.Format(r.req.Format).Name+" formatında veri destekli yazılıyor..."); err != nil {
		return err
	}

	in := draft.Input{Request: r.req, Images: r.result.Images}
	if res := r.result.Research; res != nil {
		in.Research = res.CompiledText
		in.Statistics = res.Statistics
		in.Quotes = res.Quotes
	}
	text, err := o.cfg.Writer.Draft(ctx, in)
	if err != nil {
		return errors.Wrap(err, "draft stage")
	}
	r.result.Draft = text
	words := len(strings.Fields(text))
	return r.complete(ctx, step, fmt.Sprintf("Taslak hazır (%d kelime)", words), types.DraftStageData{WordCount: words})
}

func (o *Orchestrator) edit(ctx context.Context, r *run) error {
	step := stepOf(AgentEditor)
	if err := r.start(ctx, step, "Final düzenleme ve SEO optimizasyonu yapılıyor..."); err != nil {
		return err
	}
	text, err := o.cfg.Writer.Edit(ctx, r.result.Draft, r.req.Topic, r.req.Format)
	if err != nil {
		return errors.Wrap(err, "edit stage")
	}
	r.result.Content = text
	r.result.WordCount = len(strings.Fields(text))
	return r.complete(ctx, step, "Düzenleme tamamlandı", types.EditStageData{})
}

func (o *Orchestrator) score(ctx context.Context, r *run) error {
	step := stepOf(AgentQualityAnalyst)
	if err := r.start(ctx, step, "Kalite analizi yapılıyor..."); err != nil {
		return err
	}
	q, err := o.cfg.Scorer.Analyze(ctx, r.result.Content, r.req.Topic, o.cfg.DeepCheck)
	if err != nil {
		return errors.Wrap(err, "score stage")
	}
	r.result.Quality = q
	return r.complete(ctx, step,
		fmt.Sprintf("Kalite skoru: %d/100 (%s)", q.Overall.Score, q.Overall.Grade),
		types.ScoreStageData{Quality: q})
}

func (o *Orchestrator) final(ctx context.Context, r *run) error {
	return r.emit(ctx, types.PipelineEvent{
		Type:    types.EventFinal,
		Message: "Blog tamamlandı!",
		Data: types.FinalData{
			Content:       r.result.Content,
			Quality:       r.result.Quality,
			Format:        r.req.Format,
			WordCount:     r.result.WordCount,
			ResearchStats: r.result.ResearchStats(),
		},
	})
}

func (r *run) start(ctx context.Context, step int, msg string) error {
	return r.emit(ctx, r.agentEvent(types.EventAgentStart, step, msg, nil))
}

func (r *run) complete(ctx context.Context, step int, msg string, data any) error {
	r.logger.Infow("stage complete", "step", step, "message", msg)
	return r.emit(ctx, r.agentEvent(types.EventAgentComplete, step, msg, data))
}

func (r *run) agentEvent(typ types.EventType, step int, msg string, data any) types.PipelineEvent {
	agent := copyAgent(agents[step-1])
	return types.PipelineEvent{
		Type:       typ,
		Agent:      &agent,
		Step:       step,
		TotalSteps: TotalSteps,
		Message:    msg,
		Data:       data,
	}
}

// emit hands ev to the consumer, giving up when ctx is cancelled.
func (r *run) emit(ctx context.Context, ev types.PipelineEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.sink == nil {
		return nil
	}
	select {
	case r.sink <- ev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// stepOf is the 1-based position of agent id in the catalog.
func stepOf(id string) int {
	for i, a := range agents {
		if a.ID == id {
			return i + 1
		}
	}
	return 0
}
