// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the content pipeline over HTTP. Generation runs
// stream their progress as server-sent events; finished articles are stored
// per user subject to the monthly quota.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pdiddy/contentforge/internal/pipeline"
	"github.com/pdiddy/contentforge/internal/store"
	"github.com/pdiddy/contentforge/pkg/types"
)

// UserHeader carries the caller's user ID. Authentication happens in front
// of this service.
const UserHeader = "X-User-ID"

const (
	userKey         = "user_id"
	shutdownTimeout = 10 * time.Second
)

// Pipeline runs content requests.
type Pipeline interface {
	Run(ctx context.Context, req types.ContentRequest, sink chan<- types.PipelineEvent) (*pipeline.Result, error)
	Stream(ctx context.Context, req types.ContentRequest) <-chan types.PipelineEvent
}

// Repository stores content records and answers quota questions.
type Repository interface {
	CheckQuota(ctx context.Context, userID string, now time.Time) (store.Usage, error)
	SetPlan(ctx context.Context, userID string, plan types.Plan) error
	SaveContent(ctx context.Context, rec types.ContentRecord) (types.ContentRecord, error)
	GetContent(ctx context.Context, userID, id string) (types.ContentRecord, error)
	ListContents(ctx context.Context, userID string, limit, offset int) ([]types.ContentRecord, int, error)
	DeleteContent(ctx context.Context, userID, id string) error
}

// Server holds the HTTP routes.
type Server struct {
	pipeline Pipeline
	repo     Repository
	logger   *zap.SugaredLogger
	now      func() time.Time
	engine   *gin.Engine
}

// New creates a server. A nil logger is replaced by a no-op logger.
func New(p Pipeline, repo Repository, logger *zap.SugaredLogger) *Server {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	s := &Server{pipeline: p, repo: repo, logger: logger, now: time.Now}
	s.engine = s.routes()
	return s
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler { return s.engine }

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.logRequests())

	r.GET("/", s.root)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	blog := r.Group("/blog")
	blog.GET("/agents", s.agents)

	authed := blog.Group("", requireUser)
	authed.POST("/create", s.create)
	authed.POST("/create-stream", s.createStream)
	authed.GET("/history", s.history)
	authed.GET("/:id", s.get)
	authed.DELETE("/:id", s.delete)

	user := r.Group("/user", requireUser)
	user.GET("/usage", s.usage)
	user.PATCH("/upgrade", s.upgrade)
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.engine}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Infow("server listening", "addr", addr)

	select {
	case err := <-errc:
		return errors.Wrap(err, "serving http")
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutting down")
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "serving http")
	}
	return nil
}

func (s *Server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Infow("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}

// requireUser rejects requests without a user ID header.
func requireUser(c *gin.Context) {
	id := c.GetHeader(UserHeader)
	if id == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Kimlik doğrulama başarısız"})
		return
	}
	c.Set(userKey, id)
	c.Next()
}

func userID(c *gin.Context) string { return c.GetString(userKey) }

func (s *Server) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"name": "ContentForge API", "status": "running"})
}

func (s *Server) agents(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"agents": pipeline.Agents()})
}
