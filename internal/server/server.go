// Package server exposes planning and session tracking over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/abhisek/studyplan/internal/app"
	"github.com/abhisek/studyplan/internal/config"
	"github.com/abhisek/studyplan/internal/store"
)

// shutdownTimeout bounds how long Run waits for in-flight requests.
const shutdownTimeout = 10 * time.Second

// Server is the HTTP API.
type Server struct {
	app     *app.App
	store   *store.Store
	log     *zap.Logger
	metrics *Metrics
	cfg     config.ServerConfig
	engine  *gin.Engine
}

// New builds the router. A nil logger logs nothing.
func New(a *app.App, st *store.Store, cfg config.ServerConfig, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		app:     a,
		store:   st,
		log:     log,
		metrics: NewMetrics(),
		cfg:     cfg,
	}
	s.engine = s.routes()
	return s
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestID())
	r.Use(requestLogger(s.log))
	r.Use(observe(s.metrics))

	r.GET("/health", s.health)
	r.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	v1 := r.Group("/api/v1")
	v1.POST("/schedules", s.createSchedule)

	students := v1.Group("/students/:id")
	students.GET("/schedule", s.getSchedule)
	students.GET("/schedule/export", s.exportSchedule)
	students.GET("/progress", s.getProgress)

	sessions := v1.Group("/sessions/:id")
	sessions.POST("/start", s.startSession)
	sessions.POST("/complete", s.completeSession)
	sessions.POST("/miss", s.missSession)
	sessions.POST("/reschedule", s.rescheduleSession)

	return r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
