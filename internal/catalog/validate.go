package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/studyplan/internal/planner"
)

// Report lists the problems found in planner input. Errors make the input
// unusable; warnings describe input the planner tolerates but handles in a
// way the student may not expect.
type Report struct {
	Errors   []string
	Warnings []string
}

// Err returns the errors combined into one, or nil.
func (r Report) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	return errors.New("subject validation failed:\n  " + strings.Join(r.Errors, "\n  "))
}

// Check runs the structural checks on a subject list.
func Check(subjects []planner.Subject) Report {
	var r Report

	subjectSet := make(map[string]bool, len(subjects))
	topicSet := make(map[string]bool)
	var topics []planner.Topic
	totalCredits := 0

	// Duplicate IDs and value ranges
	for _, s := range subjects {
		if s.ID == "" {
			r.Errors = append(r.Errors, fmt.Sprintf("subject %q has no ID", s.Name))
		}
		if subjectSet[s.ID] {
			r.Errors = append(r.Errors, fmt.Sprintf("duplicate subject ID: %q", s.ID))
		}
		subjectSet[s.ID] = true
		totalCredits += s.Credits

		if len(s.Topics) == 0 {
			r.Warnings = append(r.Warnings, fmt.Sprintf("subject %q has no topics", s.ID))
		}
		for _, t := range s.Topics {
			if t.ID == "" {
				r.Errors = append(r.Errors, fmt.Sprintf("topic %q in subject %q has no ID", t.Name, s.ID))
			}
			if topicSet[t.ID] {
				r.Errors = append(r.Errors, fmt.Sprintf("duplicate topic ID: %q", t.ID))
			}
			topicSet[t.ID] = true
			if t.Confidence < 1 || t.Confidence > 5 {
				r.Errors = append(r.Errors, fmt.Sprintf("topic %q: confidence must be in [1, 5], got %d", t.ID, t.Confidence))
			}
			if t.SubjectID != "" && t.SubjectID != s.ID {
				r.Warnings = append(r.Warnings, fmt.Sprintf("topic %q listed under %q but owned by %q", t.ID, s.ID, t.SubjectID))
			}
			topics = append(topics, t)
		}
	}

	if len(subjects) > 0 && totalCredits == 0 {
		r.Warnings = append(r.Warnings, "no subject has credits; hours are split equally between subjects")
	}

	// Dangling prerequisites
	for _, t := range topics {
		for _, prereqID := range t.Prerequisites {
			if !topicSet[prereqID] {
				r.Warnings = append(r.Warnings, fmt.Sprintf("topic %q references nonexistent prerequisite %q (ignored)", t.ID, prereqID))
			}
		}
	}

	if cyc := cycleTopics(topics, topicSet); len(cyc) > 0 {
		r.Warnings = append(r.Warnings, fmt.Sprintf("cycle detected involving topics: %s", strings.Join(cyc, ", ")))
	}
	return r
}

// cycleTopics returns the topics left with unresolved prerequisites after
// Kahn's algorithm, in input order. Dangling prerequisites are skipped.
func cycleTopics(topics []planner.Topic, known map[string]bool) []string {
	inDegree := make(map[string]int, len(topics))
	dependents := make(map[string][]string)
	for _, t := range topics {
		if _, dup := inDegree[t.ID]; dup {
			continue
		}
		inDegree[t.ID] = 0
		for _, prereqID := range t.Prerequisites {
			if !known[prereqID] {
				continue
			}
			inDegree[t.ID]++
			dependents[prereqID] = append(dependents[prereqID], t.ID)
		}
	}

	var queue []string
	for _, t := range topics {
		if inDegree[t.ID] == 0 {
			queue = append(queue, t.ID)
		}
	}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, depID := range dependents[id] {
			inDegree[depID]--
			if inDegree[depID] == 0 {
				queue = append(queue, depID)
			}
		}
	}

	var stuck []string
	seen := make(map[string]bool)
	for _, t := range topics {
		if inDegree[t.ID] > 0 && !seen[t.ID] {
			stuck = append(stuck, t.ID)
			seen[t.ID] = true
		}
	}
	return stuck
}
