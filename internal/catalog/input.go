package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/studyplan/internal/planner"
)

// DateLayout is the calendar date format used in plan files.
const DateLayout = "2006-01-02"

// Format identifies a plan file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// PlanFile is the document a student writes to describe what to study.
// When Subjects is empty the student's branch templates are used.
type PlanFile struct {
	Student  StudentInput   `yaml:"student" json:"student" validate:"required"`
	Subjects []SubjectInput `yaml:"subjects,omitempty" json:"subjects,omitempty" validate:"dive"`
}

// StudentInput is the student section of a plan file.
type StudentInput struct {
	ID            string  `yaml:"id,omitempty" json:"id,omitempty"`
	Name          string  `yaml:"name" json:"name" validate:"required"`
	Email         string  `yaml:"email,omitempty" json:"email,omitempty" validate:"omitempty,email"`
	Branch        string  `yaml:"branch,omitempty" json:"branch,omitempty"`
	WeekdayHours  float64 `yaml:"weekday_hours" json:"weekday_hours" validate:"gte=0,lte=24"`
	WeekendHours  float64 `yaml:"weekend_hours" json:"weekend_hours" validate:"gte=0,lte=24"`
	PreferredTime string  `yaml:"preferred_time,omitempty" json:"preferred_time,omitempty" validate:"omitempty,oneof=morning afternoon evening night"`
	TargetDate    string  `yaml:"target_date" json:"target_date" validate:"required,datetime=2006-01-02"`
}

// SubjectInput is one subject of a plan file.
type SubjectInput struct {
	ID         string       `yaml:"id,omitempty" json:"id,omitempty"`
	Name       string       `yaml:"name" json:"name" validate:"required"`
	Credits    int          `yaml:"credits" json:"credits" validate:"gte=0"`
	Importance string       `yaml:"importance,omitempty" json:"importance,omitempty" validate:"omitempty,oneof=low medium high critical"`
	Confidence int          `yaml:"confidence,omitempty" json:"confidence,omitempty" validate:"omitempty,min=1,max=5"`
	Topics     []TopicInput `yaml:"topics" json:"topics" validate:"required,min=1,dive"`
}

// TopicInput is one topic of a plan file. Confidence falls back to the
// subject's, and Weak defaults to a confidence of 2 or below.
type TopicInput struct {
	ID            string   `yaml:"id,omitempty" json:"id,omitempty"`
	Name          string   `yaml:"name" json:"name" validate:"required"`
	Load          string   `yaml:"load,omitempty" json:"load,omitempty" validate:"omitempty,oneof=low medium high"`
	Confidence    int      `yaml:"confidence,omitempty" json:"confidence,omitempty" validate:"omitempty,min=1,max=5"`
	Weak          *bool    `yaml:"weak,omitempty" json:"weak,omitempty"`
	Prerequisites []string `yaml:"prerequisites,omitempty" json:"prerequisites,omitempty"`
}

const defaultConfidence = 3

var validate = validator.New(validator.WithRequiredStructEnabled())

// LoadFile reads and validates a plan file. The format follows the file
// extension; anything other than .json is read as YAML.
func LoadFile(path string) (*PlanFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read plan file: %w", err)
	}
	format := FormatYAML
	if strings.EqualFold(filepath.Ext(path), ".json") {
		format = FormatJSON
	}
	return Parse(data, format)
}

// Parse decodes a plan file, rejecting unknown fields, and validates it
// against the plan schema and the struct rules.
func Parse(data []byte, format Format) (*PlanFile, error) {
	var pf PlanFile
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&pf); err != nil {
			return nil, fmt.Errorf("decode plan: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&pf); err != nil {
			return nil, fmt.Errorf("decode plan: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported plan format %q", format)
	}

	if err := pf.Validate(); err != nil {
		return nil, err
	}
	return &pf, nil
}

// Validate checks the plan against the embedded JSON schema and the
// struct validation rules.
func (pf *PlanFile) Validate() error {
	if err := validateSchema(pf); err != nil {
		return err
	}
	if err := validate.Struct(pf); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("plan validation failed:\n  %s", strings.Join(msgs, "\n  "))
		}
		return fmt.Errorf("validate plan: %w", err)
	}
	if len(pf.Subjects) == 0 && pf.Student.Branch == "" {
		return errors.New("plan validation failed: no subjects and no branch to take templates from")
	}
	return nil
}

// Profile converts the student section into a planner profile.
// The target date is midnight local time.
func (pf *PlanFile) Profile() (planner.StudentProfile, error) {
	in := pf.Student
	target, err := time.ParseInLocation(DateLayout, in.TargetDate, time.Local)
	if err != nil {
		return planner.StudentProfile{}, fmt.Errorf("parse target date: %w", err)
	}
	id := in.ID
	if id == "" {
		id = Slug(in.Name)
	}
	pref := planner.TimePreference(in.PreferredTime)
	if pref == "" {
		pref = planner.TimeMorning
	}
	return planner.StudentProfile{
		ID:     id,
		Name:   in.Name,
		Email:  in.Email,
		Branch: in.Branch,
		Availability: planner.Availability{
			WeekdayHours: in.WeekdayHours,
			WeekendHours: in.WeekendHours,
		},
		PreferredTime: pref,
		TargetDate:    target,
	}, nil
}

// PlannerSubjects converts the subjects into planner input. Missing ids
// are derived from names. A prerequisite may name a topic id anywhere in
// the plan or a topic name in the same subject; anything else is kept
// verbatim and ignored by the planner.
func (pf *PlanFile) PlannerSubjects() []planner.Subject {
	if len(pf.Subjects) == 0 {
		return ExpandBranch(pf.Student.Branch)
	}

	subjectIDs := make([]string, len(pf.Subjects))
	topicIDs := make(map[string]bool)
	for i, s := range pf.Subjects {
		subjectIDs[i] = s.ID
		if subjectIDs[i] == "" {
			subjectIDs[i] = Slug(s.Name)
		}
		for _, t := range s.Topics {
			topicIDs[inputTopicID(subjectIDs[i], t)] = true
		}
	}

	out := make([]planner.Subject, 0, len(pf.Subjects))
	for i, s := range pf.Subjects {
		sid := subjectIDs[i]
		byName := make(map[string]string, len(s.Topics))
		for _, t := range s.Topics {
			byName[strings.ToLower(t.Name)] = inputTopicID(sid, t)
		}

		subjectConf := s.Confidence
		if subjectConf == 0 {
			subjectConf = defaultConfidence
		}

		topics := make([]planner.Topic, 0, len(s.Topics))
		for _, t := range s.Topics {
			conf := t.Confidence
			if conf == 0 {
				conf = subjectConf
			}
			weak := IsWeakConfidence(conf)
			if t.Weak != nil {
				weak = *t.Weak
			}
			load := planner.CognitiveLoad(t.Load)
			if load == "" {
				load = planner.LoadMedium
			}

			var prereqs []string
			for _, p := range t.Prerequisites {
				switch {
				case topicIDs[p]:
					prereqs = append(prereqs, p)
				case byName[strings.ToLower(p)] != "":
					prereqs = append(prereqs, byName[strings.ToLower(p)])
				default:
					prereqs = append(prereqs, p)
				}
			}

			topics = append(topics, planner.Topic{
				ID:            inputTopicID(sid, t),
				SubjectID:     sid,
				Name:          t.Name,
				CognitiveLoad: load,
				Prerequisites: prereqs,
				Confidence:    conf,
				IsWeak:        weak,
			})
		}

		importance := planner.Importance(s.Importance)
		if importance == "" {
			importance = planner.ImportanceMedium
		}
		out = append(out, planner.Subject{
			ID:         sid,
			Name:       s.Name,
			Credits:    s.Credits,
			Importance: importance,
			Topics:     topics,
		})
	}
	return out
}

func inputTopicID(subjectID string, t TopicInput) string {
	if t.ID != "" {
		return t.ID
	}
	return TopicID(subjectID, t.Name)
}

// FromPlanner builds a plan file from planner input, the inverse of
// Profile and PlannerSubjects.
func FromPlanner(student planner.StudentProfile, subjects []planner.Subject) *PlanFile {
	pf := &PlanFile{
		Student: StudentInput{
			ID:            student.ID,
			Name:          student.Name,
			Email:         student.Email,
			Branch:        student.Branch,
			WeekdayHours:  student.Availability.WeekdayHours,
			WeekendHours:  student.Availability.WeekendHours,
			PreferredTime: string(student.PreferredTime),
			TargetDate:    student.TargetDate.Format(DateLayout),
		},
	}
	for _, s := range subjects {
		si := SubjectInput{
			ID:         s.ID,
			Name:       s.Name,
			Credits:    s.Credits,
			Importance: string(s.Importance),
		}
		for _, t := range s.Topics {
			weak := t.IsWeak
			si.Topics = append(si.Topics, TopicInput{
				ID:            t.ID,
				Name:          t.Name,
				Load:          string(t.CognitiveLoad),
				Confidence:    t.Confidence,
				Weak:          &weak,
				Prerequisites: t.Prerequisites,
			})
		}
		pf.Subjects = append(pf.Subjects, si)
	}
	return pf
}
