// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// EventType tags a PipelineEvent. Consumers ignore types they do not know.
type EventType string

const (
	EventAgentStart    EventType = "agent_start"
	EventAgentComplete EventType = "agent_complete"
	EventFinal         EventType = "final"
	EventError         EventType = "error"
	EventSaved         EventType = "saved"
)

// Agent describes the persona that runs one pipeline stage.
type Agent struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	NameEN      string   `json:"name_en" yaml:"name_en"`
	Avatar      string   `json:"avatar" yaml:"avatar"`
	Color       string   `json:"color" yaml:"color"`
	Description string   `json:"description" yaml:"description"`
	Tasks       []string `json:"tasks" yaml:"tasks"`
}

// PipelineEvent is one progress notification emitted during a run.
// Data holds one of the *Data payload types below, or nil.
type PipelineEvent struct {
	Type       EventType `json:"type"`
	Agent      *Agent    `json:"agent,omitempty"`
	Step       int       `json:"step,omitempty"`
	TotalSteps int       `json:"total_steps,omitempty"`
	Message    string    `json:"message"`
	Data       any       `json:"data,omitempty"`
}

// ResearchStageData is the completion payload of the research stage.
type ResearchStageData struct {
	SourcesFound    int        `json:"sources_found"`
	StatisticsCount int        `json:"statistics_count"`
	QuotesCount     int        `json:"quotes_count"`
	Layers          []LayerKey `json:"layers"`
}

// ImageStageData is the completion payload of the image stage.
type ImageStageData struct {
	ImagesFound int `json:"images_found"`
}

// DraftStageData is the completion payload of the draft stage.
type DraftStageData struct {
	WordCount int `json:"word_count"`
}

// EditStageData is the completion payload of the edit stage.
type EditStageData struct{}

// ScoreStageData is the completion payload of the score stage.
type ScoreStageData struct {
	Quality QualityReport `json:"quality"`
}

// ResearchStats restates the research volume in the final event.
type ResearchStats struct {
	Sources    int `json:"sources"`
	Statistics int `json:"statistics"`
	Quotes     int `json:"quotes"`
}

// FinalData is the payload of the final event.
type FinalData struct {
	Content       string        `json:"content"`
	Quality       QualityReport `json:"quality"`
	Format        ContentFormat `json:"format"`
	WordCount     int           `json:"word_count"`
	ResearchStats ResearchStats `json:"research_stats"`
}

// SavedData is the payload of the saved event emitted after persistence.
type SavedData struct {
	ID        string         `json:"id"`
	Topic     string         `json:"topic"`
	Content   string         `json:"content"`
	CreatedAt time.Time      `json:"created_at"`
	Quality   *QualityReport `json:"quality,omitempty"`
}
