package server

import (
	"time"

	"github.com/abhisek/studyplan/internal/catalog"
	"github.com/abhisek/studyplan/internal/planner"
	"github.com/abhisek/studyplan/internal/progress"
)

type sessionDTO struct {
	ID            string     `json:"id"`
	TopicID       string     `json:"topic_id"`
	SubjectID     string     `json:"subject_id"`
	Date          string     `json:"date"`
	StartTime     string     `json:"start_time"`
	Minutes       int        `json:"duration_minutes"`
	Type          string     `json:"type"`
	CognitiveLoad string     `json:"cognitive_load"`
	Status        string     `json:"status"`
	ActualStart   *time.Time `json:"actual_start,omitempty"`
	ActualEnd     *time.Time `json:"actual_end,omitempty"`
	Feedback      string     `json:"feedback,omitempty"`
	Notes         string     `json:"notes,omitempty"`
}

type scheduleDTO struct {
	ID          string       `json:"id"`
	StudentID   string       `json:"student_id"`
	Version     int          `json:"version"`
	GeneratedAt time.Time    `json:"generated_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	Sessions    []sessionDTO `json:"sessions"`
}

type brokenEdgeDTO struct {
	TopicID        string `json:"topic_id"`
	PrerequisiteID string `json:"prerequisite_id"`
}

type planDTO struct {
	Schedule       scheduleDTO             `json:"schedule"`
	DryRun         bool                    `json:"dry_run"`
	AvailableHours float64                 `json:"available_hours"`
	StopReason     string                  `json:"stop_reason"`
	Coverage       progress.CoverageReport `json:"coverage"`
	BrokenEdges    []brokenEdgeDTO         `json:"broken_edges,omitempty"`
	Warnings       []string                `json:"warnings,omitempty"`
}

type progressDTO struct {
	StudentID      string             `json:"student_id"`
	Summary        progress.Summary   `json:"summary"`
	Week           progress.WeekStats `json:"week"`
	Today          []sessionDTO       `json:"today"`
	Recommendation *sessionDTO        `json:"recommendation,omitempty"`
	Upcoming       []sessionDTO       `json:"upcoming"`
}

type completeRequest struct {
	Feedback string `json:"feedback" binding:"required,oneof=easy medium hard"`
	Notes    string `json:"notes" binding:"max=2000"`
}

type rescheduleRequest struct {
	Date      string `json:"date" binding:"required,datetime=2006-01-02"`
	StartTime string `json:"start_time" binding:"required"`
}

func toSessionDTO(s planner.StudySession) sessionDTO {
	return sessionDTO{
		ID:            s.ID,
		TopicID:       s.TopicID,
		SubjectID:     s.SubjectID,
		Date:          s.Date.Format(catalog.DateLayout),
		StartTime:     s.StartTime,
		Minutes:       int(s.Duration.Minutes()),
		Type:          string(s.Type),
		CognitiveLoad: string(s.CognitiveLoad),
		Status:        string(s.Status),
		ActualStart:   s.ActualStart,
		ActualEnd:     s.ActualEnd,
		Feedback:      string(s.Feedback),
		Notes:         s.Notes,
	}
}

func toSessionDTOs(sessions []planner.StudySession) []sessionDTO {
	out := make([]sessionDTO, len(sessions))
	for i, s := range sessions {
		out[i] = toSessionDTO(s)
	}
	return out
}

func toScheduleDTO(s *planner.Schedule) scheduleDTO {
	return scheduleDTO{
		ID:          s.ID,
		StudentID:   s.StudentID,
		Version:     s.Version,
		GeneratedAt: s.GeneratedAt,
		UpdatedAt:   s.UpdatedAt,
		Sessions:    toSessionDTOs(s.Sessions),
	}
}

func toPlanDTO(res *planner.Result, report catalog.Report, dryRun bool) planDTO {
	dto := planDTO{
		Schedule:       toScheduleDTO(res.Schedule),
		DryRun:         dryRun,
		AvailableHours: res.TotalHours,
		StopReason:     string(res.Pack.Stop),
		Coverage:       progress.Coverage(res.Allocations, res.Schedule.Sessions),
		Warnings:       report.Warnings,
	}
	for _, e := range res.Ordering.BrokenEdges {
		dto.BrokenEdges = append(dto.BrokenEdges, brokenEdgeDTO{TopicID: e.TopicID, PrerequisiteID: e.PrerequisiteID})
	}
	return dto
}
