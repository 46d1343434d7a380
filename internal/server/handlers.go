package server

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/studyplan/internal/catalog"
	"github.com/abhisek/studyplan/internal/export"
	"github.com/abhisek/studyplan/internal/planner"
	"github.com/abhisek/studyplan/internal/store"
)

// maxPlanBytes bounds the plan document accepted by createSchedule.
const maxPlanBytes = 1 << 20

func (s *Server) health(c *gin.Context) {
	if err := s.store.DB().PingContext(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) createSchedule(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxPlanBytes))
	if err != nil {
		respondError(c, invalid(fmt.Errorf("read body: %w", err)))
		return
	}
	pf, err := catalog.Parse(body, catalog.FormatJSON)
	if err != nil {
		respondError(c, invalid(err))
		return
	}
	student, err := pf.Profile()
	if err != nil {
		respondError(c, invalid(err))
		return
	}

	var start time.Time
	if raw := c.Query("start"); raw != "" {
		start, err = time.ParseInLocation(catalog.DateLayout, raw, time.Local)
		if err != nil {
			respondError(c, invalid(fmt.Errorf("parse start: %w", err)))
			return
		}
	}
	dryRun := c.Query("dry_run") == "true"

	res, report, err := s.app.Generate(c.Request.Context(), student, pf.PlannerSubjects(), start, dryRun)
	if err != nil {
		if len(report.Errors) > 0 {
			err = invalid(err)
		}
		respondError(c, err)
		return
	}
	s.metrics.ObserveSchedule(res)

	status := http.StatusCreated
	if dryRun {
		status = http.StatusOK
	}
	respond(c, status, toPlanDTO(res, report, dryRun))
}

func (s *Server) getSchedule(c *gin.Context) {
	p, err := s.app.Load(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if p.Schedule == nil {
		respondError(c, store.ErrNotFound)
		return
	}
	respond(c, http.StatusOK, toScheduleDTO(p.Schedule))
}

func (s *Server) getProgress(c *gin.Context) {
	d, err := s.app.Dashboard(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	dto := progressDTO{
		StudentID: d.Plan.Student.ID,
		Summary:   d.Summary,
		Week:      d.Week,
		Today:     toSessionDTOs(d.Today),
		Upcoming:  toSessionDTOs(d.Upcoming),
	}
	if d.Recommendation != nil {
		rec := toSessionDTO(*d.Recommendation)
		dto.Recommendation = &rec
	}
	respond(c, http.StatusOK, dto)
}

func (s *Server) exportSchedule(c *gin.Context) {
	format := export.Format(c.DefaultQuery("format", string(export.FormatCSV)))
	if format != export.FormatCSV && format != export.FormatPDF {
		respondError(c, invalid(fmt.Errorf("unsupported export format %q", format)))
		return
	}
	p, err := s.app.Load(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if p.Schedule == nil {
		respondError(c, store.ErrNotFound)
		return
	}

	title := fmt.Sprintf("Study schedule: %s", p.Student.Name)
	data, err := export.Render(format, export.ScheduleDataset(p.Schedule, p.Subjects), title)
	if err != nil {
		respondError(c, err)
		return
	}
	filename := fmt.Sprintf("schedule-%s-v%d.%s", p.Student.ID, p.Schedule.Version, format)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, format.ContentType(), data)
}

func (s *Server) startSession(c *gin.Context) {
	s.transition(c, store.ActionStart, func() (planner.StudySession, error) {
		return s.app.StartSession(c.Request.Context(), c.Param("id"))
	})
}

func (s *Server) completeSession(c *gin.Context) {
	var req completeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, invalid(err))
		return
	}
	s.transition(c, store.ActionComplete, func() (planner.StudySession, error) {
		return s.app.CompleteSession(c.Request.Context(), c.Param("id"), planner.Feedback(req.Feedback), req.Notes)
	})
}

func (s *Server) missSession(c *gin.Context) {
	s.transition(c, store.ActionMiss, func() (planner.StudySession, error) {
		return s.app.MissSession(c.Request.Context(), c.Param("id"))
	})
}

func (s *Server) rescheduleSession(c *gin.Context) {
	var req rescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, invalid(err))
		return
	}
	date, err := time.ParseInLocation(catalog.DateLayout, req.Date, time.Local)
	if err != nil {
		respondError(c, invalid(err))
		return
	}
	s.transition(c, store.ActionReschedule, func() (planner.StudySession, error) {
		return s.app.RescheduleSession(c.Request.Context(), c.Param("id"), date, req.StartTime)
	})
}

func (s *Server) transition(c *gin.Context, action string, fn func() (planner.StudySession, error)) {
	sess, err := fn()
	if err != nil {
		respondError(c, err)
		return
	}
	s.metrics.ObserveTransition(action)
	respond(c, http.StatusOK, toSessionDTO(sess))
}
