package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/studyplan/internal/planner"
)

func testSchedule(n int) (*planner.Schedule, []planner.Subject) {
	subjects := []planner.Subject{{
		ID: "math", Name: "Mathematics",
		Topics: []planner.Topic{{ID: "calc", Name: "Calculus"}},
	}}
	sched := &planner.Schedule{ID: "s", StudentID: "stu"}
	for i := range n {
		topic := "calc"
		if i%2 == 1 {
			topic = "orphan"
		}
		sched.Sessions = append(sched.Sessions, planner.StudySession{
			ID:            fmt.Sprintf("sess-%d", i),
			TopicID:       topic,
			SubjectID:     "math",
			Date:          time.Date(2024, time.January, 1+i/3, 0, 0, 0, 0, time.UTC),
			StartTime:     "21:00",
			Duration:      45 * time.Minute,
			CognitiveLoad: planner.LoadHigh,
			Status:        planner.StatusScheduled,
		})
	}
	return sched, subjects
}

func TestScheduleDataset(t *testing.T) {
	sched, subjects := testSchedule(2)
	ds := ScheduleDataset(sched, subjects)

	require.Len(t, ds.Rows, 2)
	assert.Equal(t, "2024-01-01", ds.Rows[0][ColDate])
	assert.Equal(t, "45", ds.Rows[0][ColMinutes])
	assert.Equal(t, "Mathematics", ds.Rows[0][ColSubject])
	assert.Equal(t, "Calculus", ds.Rows[0][ColTopic])
	assert.Equal(t, "orphan", ds.Rows[1][ColTopic], "unknown ids are written as is")
}

func TestCSVRender(t *testing.T) {
	sched, subjects := testSchedule(3)
	out, err := Render(FormatCSV, ScheduleDataset(sched, subjects), "")
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, scheduleHeaders, records[0])
	assert.Equal(t, []string{"2024-01-01", "21:00", "45", "Mathematics", "Calculus", "high", "scheduled", ""}, records[1])
}

func TestPDFRender(t *testing.T) {
	sched, subjects := testSchedule(60)
	out, err := Render(FormatPDF, ScheduleDataset(sched, subjects), "Study plan")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestRenderErrors(t *testing.T) {
	_, err := Render(FormatCSV, Dataset{}, "")
	assert.Error(t, err)

	_, err = Render(FormatPDF, Dataset{}, "")
	assert.Error(t, err)

	_, err = Render("xlsx", Dataset{Headers: []string{"a"}}, "")
	assert.ErrorContains(t, err, "unsupported")
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "application/pdf", FormatPDF.ContentType())
	assert.Equal(t, "text/csv", FormatCSV.ContentType())
}
