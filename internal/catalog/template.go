// Package catalog supplies the subjects and topics the planner schedules:
// built-in branch templates, plan files written by the student, and a
// small demo data set.
package catalog

import (
	_ "embed"
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/studyplan/internal/planner"
)

// OtherBranch is the branch used when a requested branch is unknown.
const OtherBranch = "other"

//go:embed templates.yaml
var templatesYAML []byte

// TopicTemplate is a topic inside a subject template. Prerequisites
// name other topics of the same subject.
type TopicTemplate struct {
	Name          string                `yaml:"name"`
	Load          planner.CognitiveLoad `yaml:"load"`
	Prerequisites []string              `yaml:"prerequisites"`
}

// SubjectTemplate is a subject suggested for a branch.
type SubjectTemplate struct {
	Name              string             `yaml:"name"`
	Credits           int                `yaml:"credits"`
	DefaultConfidence int                `yaml:"default_confidence"`
	Importance        planner.Importance `yaml:"importance"`
	Topics            []TopicTemplate    `yaml:"topics"`
}

// Branch is an engineering branch with its subject templates.
type Branch struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	Subjects []SubjectTemplate `yaml:"subjects"`
}

type templateFile struct {
	Branches []Branch `yaml:"branches"`
}

// templates holds the parsed branch templates, set by init().
var templates struct {
	branches []Branch
	byID     map[string]int
}

func init() {
	branches, err := parseTemplates(templatesYAML)
	if err != nil {
		panic(fmt.Sprintf("catalog: %v", err))
	}
	templates.branches = branches
	templates.byID = make(map[string]int, len(branches))
	for i, b := range branches {
		templates.byID[b.ID] = i
	}
}

func parseTemplates(data []byte) ([]Branch, error) {
	var f templateFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	if err := validateTemplates(f.Branches); err != nil {
		return nil, err
	}
	return f.Branches, nil
}

// validateTemplates checks the embedded templates and reports every
// problem found in one error.
func validateTemplates(branches []Branch) error {
	var errs []string

	seen := make(map[string]bool, len(branches))
	for _, b := range branches {
		if seen[b.ID] {
			errs = append(errs, fmt.Sprintf("duplicate branch ID: %q", b.ID))
		}
		seen[b.ID] = true

		for _, s := range b.Subjects {
			prefix := fmt.Sprintf("branch %q subject %q", b.ID, s.Name)
			if len(s.Topics) == 0 {
				errs = append(errs, prefix+": no topics")
			}
			if s.DefaultConfidence < 1 || s.DefaultConfidence > 5 {
				errs = append(errs, fmt.Sprintf("%s: default confidence must be in [1, 5], got %d", prefix, s.DefaultConfidence))
			}
			if !validImportance(s.Importance) {
				errs = append(errs, fmt.Sprintf("%s: unknown importance %q", prefix, s.Importance))
			}
			names := make(map[string]bool, len(s.Topics))
			for _, t := range s.Topics {
				names[t.Name] = true
			}
			for _, t := range s.Topics {
				if !validLoad(t.Load) {
					errs = append(errs, fmt.Sprintf("%s topic %q: unknown load %q", prefix, t.Name, t.Load))
				}
				for _, p := range t.Prerequisites {
					if !names[p] {
						errs = append(errs, fmt.Sprintf("%s topic %q references nonexistent prerequisite %q", prefix, t.Name, p))
					}
				}
			}
		}
	}
	if !seen[OtherBranch] {
		errs = append(errs, fmt.Sprintf("fallback branch %q missing", OtherBranch))
	}

	if len(errs) > 0 {
		return fmt.Errorf("template validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

// Branches returns every branch in template order.
func Branches() []Branch {
	return slices.Clone(templates.branches)
}

// GetBranch returns the branch with the given id. Unknown ids fall back
// to the "other" branch; ok reports whether the id was found.
func GetBranch(id string) (b Branch, ok bool) {
	if i, found := templates.byID[strings.ToLower(id)]; found {
		return templates.branches[i], true
	}
	return templates.branches[templates.byID[OtherBranch]], false
}

// ExpandBranch turns every subject template of a branch into planner
// subjects with derived ids.
func ExpandBranch(id string) []planner.Subject {
	b, _ := GetBranch(id)
	out := make([]planner.Subject, 0, len(b.Subjects))
	for _, st := range b.Subjects {
		out = append(out, st.Expand(""))
	}
	return out
}

// Expand builds a planner subject from the template. Topics start at the
// template's default confidence and are weak when that is 2 or below.
// An empty subjectID is derived from the subject name.
func (st SubjectTemplate) Expand(subjectID string) planner.Subject {
	if subjectID == "" {
		subjectID = Slug(st.Name)
	}

	ids := make(map[string]string, len(st.Topics))
	for _, t := range st.Topics {
		ids[t.Name] = TopicID(subjectID, t.Name)
	}

	topics := make([]planner.Topic, 0, len(st.Topics))
	for _, t := range st.Topics {
		prereqs := make([]string, 0, len(t.Prerequisites))
		for _, p := range t.Prerequisites {
			if id, ok := ids[p]; ok {
				prereqs = append(prereqs, id)
			}
		}
		topics = append(topics, planner.Topic{
			ID:            ids[t.Name],
			SubjectID:     subjectID,
			Name:          t.Name,
			CognitiveLoad: t.Load,
			Prerequisites: prereqs,
			Confidence:    st.DefaultConfidence,
			IsWeak:        IsWeakConfidence(st.DefaultConfidence),
		})
	}

	return planner.Subject{
		ID:         subjectID,
		Name:       st.Name,
		Credits:    st.Credits,
		Importance: st.Importance,
		Topics:     topics,
	}
}

// IsWeakConfidence reports whether a confidence level marks a weak topic.
func IsWeakConfidence(level int) bool {
	return level <= 2
}

// TopicID derives a topic id from its subject id and name.
func TopicID(subjectID, name string) string {
	return subjectID + "-" + Slug(name)
}

// Slug lowercases s and joins its alphanumeric runs with hyphens.
func Slug(s string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}
	return b.String()
}

func validImportance(i planner.Importance) bool {
	switch i {
	case planner.ImportanceLow, planner.ImportanceMedium, planner.ImportanceHigh, planner.ImportanceCritical:
		return true
	}
	return false
}

func validLoad(l planner.CognitiveLoad) bool {
	switch l {
	case planner.LoadLow, planner.LoadMedium, planner.LoadHigh:
		return true
	}
	return false
}
