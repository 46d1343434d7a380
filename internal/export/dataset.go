// Package export renders a schedule as CSV or PDF.
package export

import (
	"fmt"
	"strconv"

	"github.com/abhisek/studyplan/internal/planner"
)

// Dataset defines tabular export content.
type Dataset struct {
	Headers []string
	Rows    []map[string]string
}

// Schedule columns.
const (
	ColDate     = "Date"
	ColStart    = "Start"
	ColMinutes  = "Minutes"
	ColSubject  = "Subject"
	ColTopic    = "Topic"
	ColLoad     = "Load"
	ColStatus   = "Status"
	ColFeedback = "Feedback"
)

var scheduleHeaders = []string{
	ColDate, ColStart, ColMinutes, ColSubject, ColTopic, ColLoad, ColStatus, ColFeedback,
}

// ScheduleDataset lays out the sessions of sched one per row, naming
// subjects and topics from the catalog. Ids missing from the catalog are
// written as is.
func ScheduleDataset(sched *planner.Schedule, subjects []planner.Subject) Dataset {
	subjectNames := make(map[string]string)
	topicNames := make(map[string]string)
	for _, s := range subjects {
		subjectNames[s.ID] = s.Name
		for _, t := range s.Topics {
			topicNames[t.ID] = t.Name
		}
	}
	name := func(m map[string]string, id string) string {
		if n, ok := m[id]; ok && n != "" {
			return n
		}
		return id
	}

	ds := Dataset{Headers: scheduleHeaders}
	for _, s := range sched.Sessions {
		ds.Rows = append(ds.Rows, map[string]string{
			ColDate:     s.Date.Format("2006-01-02"),
			ColStart:    s.StartTime,
			ColMinutes:  strconv.Itoa(int(s.Minutes())),
			ColSubject:  name(subjectNames, s.SubjectID),
			ColTopic:    name(topicNames, s.TopicID),
			ColLoad:     string(s.CognitiveLoad),
			ColStatus:   string(s.Status),
			ColFeedback: string(s.Feedback),
		})
	}
	return ds
}

// Format is an export file format.
type Format string

const (
	FormatCSV Format = "csv"
	FormatPDF Format = "pdf"
)

// Render encodes ds in the given format. title is used by PDF only.
func Render(format Format, ds Dataset, title string) ([]byte, error) {
	switch format {
	case FormatCSV:
		return NewCSVExporter().Render(ds)
	case FormatPDF:
		return NewPDFExporter().Render(ds, title)
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
}

// ContentType returns the MIME type of a format.
func (f Format) ContentType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	default:
		return "text/csv"
	}
}
