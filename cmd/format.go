package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/abhisek/studyplan/internal/catalog"
	"github.com/abhisek/studyplan/internal/planner"
	"github.com/abhisek/studyplan/internal/ui/components"
	"github.com/abhisek/studyplan/internal/ui/theme"
)

// nameIndex resolves subject and topic ids to display names.
type nameIndex struct {
	subjects map[string]string
	topics   map[string]string
}

func newNameIndex(subjects []planner.Subject) nameIndex {
	idx := nameIndex{subjects: make(map[string]string), topics: make(map[string]string)}
	for _, s := range subjects {
		idx.subjects[s.ID] = s.Name
		for _, t := range s.Topics {
			idx.topics[t.ID] = t.Name
		}
	}
	return idx
}

func (n nameIndex) subject(id string) string {
	if name := n.subjects[id]; name != "" {
		return name
	}
	return id
}

func (n nameIndex) topic(id string) string {
	if name := n.topics[id]; name != "" {
		return name
	}
	return id
}

// sessionTable lists sessions with ids so they can be passed to `session`.
func sessionTable(sessions []planner.StudySession, names nameIndex) string {
	tbl := components.NewTable("Date", "Time", "Min", "Subject", "Topic", "Load", "Status", "ID")
	for _, s := range sessions {
		tbl.Add(
			s.Date.Format("Mon 2006-01-02"),
			s.StartTime,
			strconv.Itoa(int(s.Minutes())),
			truncate(names.subject(s.SubjectID), 24),
			truncate(names.topic(s.TopicID), 32),
			string(s.CognitiveLoad),
			theme.Status(s.Status),
			theme.Hint.Render(s.ID),
		)
	}
	return tbl.View()
}

func hours(h float64) string {
	return fmt.Sprintf("%.1fh", h)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// parseDate reads a YYYY-MM-DD flag value as local midnight.
func parseDate(flag, raw string) (time.Time, error) {
	t, err := time.ParseInLocation(catalog.DateLayout, raw, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("--%s: want YYYY-MM-DD, got %q", flag, raw)
	}
	return t, nil
}
