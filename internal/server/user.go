// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	"github.com/pdiddy/contentforge/internal/store"
	"github.com/pdiddy/contentforge/pkg/types"
)

type usageResponse struct {
	Plan      types.Plan `json:"plan"`
	Used      int        `json:"used"`
	Limit     int        `json:"limit"`
	Remaining int        `json:"remaining"`
	ResetDate string     `json:"reset_date"`
}

func (s *Server) usage(c *gin.Context) {
	now := s.now().UTC()
	u, err := s.repo.CheckQuota(c.Request.Context(), userID(c), now)
	if err != nil && !errors.Is(err, store.ErrQuotaExceeded) {
		s.logger.Errorw("reading usage failed", "user_id", userID(c), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Kullanım bilgisi alınamadı"})
		return
	}
	reset := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	c.JSON(http.StatusOK, usageResponse{
		Plan:      u.Plan,
		Used:      u.Used,
		Limit:     u.Limit,
		Remaining: max(0, u.Limit-u.Used),
		ResetDate: reset.Format("2006-01-02"),
	})
}

func (s *Server) upgrade(c *gin.Context) {
	if err := s.repo.SetPlan(c.Request.Context(), userID(c), types.PlanPro); err != nil {
		s.logger.Errorw("upgrade failed", "user_id", userID(c), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Yükseltme hatası"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Pro plana yükseltildi", "plan": types.PlanPro})
}
