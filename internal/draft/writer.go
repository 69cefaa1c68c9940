// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package draft turns aggregated research into an article with the
// generation engine and handles the editor's front matter and the markdown
// files written to disk.
package draft

import (
	"context"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/pdiddy/contentforge/internal/llm"
	"github.com/pdiddy/contentforge/pkg/types"
)

// Input is everything the writer draws on for one article.
type Input struct {
	Request types.ContentRequest

	// Research is the compiled research text; it may be empty.
	Research   string
	Statistics []string
	Quotes     []string
	Images     []types.SectionImage
}

// Writer drafts and edits articles. It holds no state between calls.
type Writer struct {
	engine llm.Engine
	logger *zap.SugaredLogger
}

// NewWriter creates a writer on engine. A nil logger is replaced by a no-op
// logger.
func NewWriter(engine llm.Engine, logger *zap.SugaredLogger) *Writer {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Writer{engine: engine, logger: logger}
}

// Draft writes the first version of the article in the requested format.
func (w *Writer) Draft(ctx context.Context, in Input) (string, error) {
	req := in.Request.Normalize()
	p := writerPrompts[req.Format]
	target := Target(req.Length)
	aud := audiences[req.Audience]

	data := promptData{
		Topic:         req.Topic,
		Format:        req.Format,
		FormatName:    Format(req.Format).Name,
		Words:         target.Words,
		Sections:      target.Sections,
		Items:         target.Items,
		Tone:          tones[req.Tone],
		AudienceDesc:  aud.desc,
		AudienceStyle: aud.style,
		Statistics:    bulletList(in.Statistics, promptStatistics, "İstatistik bulunamadı."),
		Quotes:        bulletList(in.Quotes, promptQuotes, "Alıntı bulunamadı."),
		Images:        imageList(in.Images),
		Research:      truncate(in.Research, p.researchRunes),
	}
	system, err := render(p.system, data)
	if err != nil {
		return "", errors.Wrapf(err, "rendering %s system prompt", req.Format)
	}
	user, err := render(p.user, data)
	if err != nil {
		return "", errors.Wrapf(err, "rendering %s user prompt", req.Format)
	}

	w.logger.Debugw("drafting", "format", req.Format, "system_runes", utf8.RuneCountInString(system), "user_runes", utf8.RuneCountInString(user))
	text, err := w.engine.Complete(ctx, system, user, p.temperature)
	if err != nil {
		return "", errors.Wrap(err, "drafting article")
	}
	return text, nil
}

// Edit runs the final editing pass over content. The result starts with a
// YAML front matter block (see ParseFrontMatter).
func (w *Writer) Edit(ctx context.Context, content, topic string, format types.ContentFormat) (string, error) {
	info := Format(format)
	data := promptData{
		Topic:      topic,
		Format:     info.Format,
		FormatName: info.Name,
		Content:    content,
	}
	system, err := render(editorSystem, data)
	if err != nil {
		return "", errors.Wrap(err, "rendering editor system prompt")
	}
	user, err := render(editorUser, data)
	if err != nil {
		return "", errors.Wrap(err, "rendering editor user prompt")
	}

	text, err := w.engine.Complete(ctx, system, user, editorTemperature)
	if err != nil {
		return "", errors.Wrap(err, "editing article")
	}
	return text, nil
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
