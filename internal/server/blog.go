// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	"github.com/pdiddy/contentforge/internal/pipeline"
	"github.com/pdiddy/contentforge/internal/store"
	"github.com/pdiddy/contentforge/pkg/types"
)

const emptyTopicDetail = "Konu boş olamaz"

// createRequest is the body of both create routes.
type createRequest struct {
	Topic    string `json:"topic" binding:"required"`
	Audience string `json:"audience"`
	Tone     string `json:"tone"`
	Length   string `json:"length"`
	Format   string `json:"format_type"`
}

func (r createRequest) content() types.ContentRequest {
	return types.ContentRequest{
		Topic:    r.Topic,
		Audience: types.Audience(r.Audience),
		Tone:     types.Tone(r.Tone),
		Length:   types.Length(r.Length),
		Format:   types.ContentFormat(r.Format),
	}.Normalize()
}

type contentResponse struct {
	ID        string               `json:"id"`
	Topic     string               `json:"topic"`
	Content   string               `json:"content"`
	CreatedAt time.Time            `json:"created_at"`
	Quality   *types.QualityReport `json:"quality,omitempty"`
}

func newContentResponse(rec types.ContentRecord) contentResponse {
	return contentResponse{ID: rec.ID, Topic: rec.Topic, Content: rec.Content, CreatedAt: rec.CreatedAt, Quality: rec.Quality}
}

type historyResponse struct {
	Blogs []contentResponse `json:"blogs"`
	Total int               `json:"total"`
}

// bindCreate decodes the body and checks the caller's quota, writing the
// error response itself when either fails.
func (s *Server) bindCreate(c *gin.Context) (createRequest, bool) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return req, false
	}
	if strings.TrimSpace(req.Topic) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": emptyTopicDetail})
		return req, false
	}
	u, err := s.repo.CheckQuota(c.Request.Context(), userID(c), s.now())
	if errors.Is(err, store.ErrQuotaExceeded) {
		c.JSON(http.StatusTooManyRequests, gin.H{
			"detail": fmt.Sprintf("Aylık limit doldu (%d/%d). Pro plana geçin.", u.Used, u.Limit),
		})
		return req, false
	}
	if err != nil {
		s.logger.Errorw("quota check failed", "user_id", userID(c), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Kullanım bilgisi alınamadı"})
		return req, false
	}
	return req, true
}

func (s *Server) create(c *gin.Context) {
	req, ok := s.bindCreate(c)
	if !ok {
		return
	}
	res, err := s.pipeline.Run(c.Request.Context(), req.content(), nil)
	if errors.Is(err, pipeline.ErrEmptyTopic) {
		c.JSON(http.StatusBadRequest, gin.H{"detail": emptyTopicDetail})
		return
	}
	if err != nil {
		s.logger.Errorw("pipeline failed", "user_id", userID(c), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Blog oluşturma hatası: " + err.Error()})
		return
	}
	quality := res.Quality
	rec, err := s.repo.SaveContent(c.Request.Context(), types.ContentRecord{
		UserID:    userID(c),
		Topic:     req.Topic,
		Content:   res.Content,
		Quality:   &quality,
		CreatedAt: s.now(),
	})
	if err != nil {
		s.logger.Errorw("saving content failed", "user_id", userID(c), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "İçerik kaydedilemedi"})
		return
	}
	c.JSON(http.StatusOK, newContentResponse(rec))
}

// createStream relays pipeline events as server-sent events. After the
// final event the article is stored and a saved event follows; a failed run
// ends with an error event and stores nothing.
func (s *Server) createStream(c *gin.Context) {
	req, ok := s.bindCreate(c)
	if !ok {
		return
	}

	h := c.Writer.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	ctx := c.Request.Context()
	var final *types.FinalData
	for ev := range s.pipeline.Stream(ctx, req.content()) {
		if data, ok := ev.Data.(types.FinalData); ok && ev.Type == types.EventFinal {
			final = &data
		}
		s.relay(c.Writer, ev)
	}
	if final == nil || ctx.Err() != nil {
		return
	}

	rec, err := s.repo.SaveContent(ctx, types.ContentRecord{
		UserID:    userID(c),
		Topic:     req.Topic,
		Content:   final.Content,
		Quality:   &final.Quality,
		CreatedAt: s.now(),
	})
	if err != nil {
		s.logger.Errorw("saving content failed", "user_id", userID(c), "error", err)
		s.relay(c.Writer, types.PipelineEvent{Type: types.EventError, Message: "İçerik kaydedilemedi"})
		return
	}
	s.relay(c.Writer, types.PipelineEvent{
		Type:    types.EventSaved,
		Message: "Blog kaydedildi",
		Data: types.SavedData{
			ID:        rec.ID,
			Topic:     rec.Topic,
			Content:   rec.Content,
			CreatedAt: rec.CreatedAt,
			Quality:   rec.Quality,
		},
	})
}

// relay sends ev and logs a failed write. The client may already be gone.
func (s *Server) relay(w io.Writer, ev types.PipelineEvent) {
	if err := send(w, ev); err != nil {
		s.logger.Warnw("writing event failed", "type", string(ev.Type), "error", err)
	}
}

// send writes ev as one "data: <json>" event and flushes it.
func send(w io.Writer, ev types.PipelineEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return errors.Wrap(err, "encoding event")
	}
	if _, err := io.WriteString(w, "data: "+string(data)+"\n\n"); err != nil {
		return errors.Wrap(err, "writing event")
	}
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
	return nil
}

func (s *Server) history(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	recs, total, err := s.repo.ListContents(c.Request.Context(), userID(c), limit, offset)
	if err != nil {
		s.logger.Errorw("listing contents failed", "user_id", userID(c), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Geçmiş alınamadı"})
		return
	}
	resp := historyResponse{Blogs: make([]contentResponse, 0, len(recs)), Total: total}
	for _, r := range recs {
		resp.Blogs = append(resp.Blogs, newContentResponse(r))
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) get(c *gin.Context) {
	rec, err := s.repo.GetContent(c.Request.Context(), userID(c), c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Blog bulunamadı"})
		return
	}
	if err != nil {
		s.logger.Errorw("reading content failed", "id", c.Param("id"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Blog alınamadı"})
		return
	}
	c.JSON(http.StatusOK, newContentResponse(rec))
}

func (s *Server) delete(c *gin.Context) {
	err := s.repo.DeleteContent(c.Request.Context(), userID(c), c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Blog bulunamadı"})
		return
	}
	if err != nil {
		s.logger.Errorw("deleting content failed", "id", c.Param("id"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Silme hatası"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Blog silindi"})
}
