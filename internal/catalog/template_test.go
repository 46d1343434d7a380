package catalog

import (
	"strings"
	"testing"

	"github.com/abhisek/studyplan/internal/planner"
)

func TestBranches_Count(t *testing.T) {
	want := map[string]int{
		"cse":        12,
		"ece":        9,
		"mechanical": 10,
		"civil":      10,
		"electrical": 10,
		"other":      15,
	}
	all := Branches()
	if len(all) != len(want) {
		t.Fatalf("got %d branches, want %d", len(all), len(want))
	}
	for _, b := range all {
		if got := len(b.Subjects); got != want[b.ID] {
			t.Errorf("branch %q: got %d subjects, want %d", b.ID, got, want[b.ID])
		}
	}
}

func TestGetBranch_FallsBackToOther(t *testing.T) {
	b, ok := GetBranch("aerospace")
	if ok {
		t.Error("expected ok=false for unknown branch")
	}
	if b.ID != OtherBranch {
		t.Errorf("got branch %q, want %q", b.ID, OtherBranch)
	}

	b, ok = GetBranch("CSE")
	if !ok || b.ID != "cse" {
		t.Errorf("GetBranch(CSE) = %q, %v; want cse, true", b.ID, ok)
	}
}

func TestExpandBranch_ResolvesPrerequisites(t *testing.T) {
	subjects := ExpandBranch("cse")
	if len(subjects) != 12 {
		t.Fatalf("got %d subjects, want 12", len(subjects))
	}

	dsa := subjects[0]
	if dsa.ID != "data-structures-algorithms" {
		t.Errorf("subject id = %q", dsa.ID)
	}
	if dsa.Importance != planner.ImportanceCritical || dsa.Credits != 4 {
		t.Errorf("subject = %+v", dsa)
	}

	var linked planner.Topic
	for _, topic := range dsa.Topics {
		if topic.Name == "Linked Lists" {
			linked = topic
		}
	}
	if linked.ID != "data-structures-algorithms-linked-lists" {
		t.Fatalf("linked lists id = %q", linked.ID)
	}
	if len(linked.Prerequisites) != 1 || linked.Prerequisites[0] != "data-structures-algorithms-arrays-and-strings" {
		t.Errorf("prerequisites = %v", linked.Prerequisites)
	}
	if !linked.IsWeak || linked.Confidence != 2 {
		t.Errorf("confidence %d weak %v; want 2 true", linked.Confidence, linked.IsWeak)
	}
}

func TestExpandBranch_AllBranchesPassCheck(t *testing.T) {
	for _, b := range Branches() {
		r := Check(ExpandBranch(b.ID))
		if err := r.Err(); err != nil {
			t.Errorf("branch %q: %v", b.ID, err)
		}
		for _, w := range r.Warnings {
			if strings.Contains(w, "nonexistent") {
				t.Errorf("branch %q: %s", b.ID, w)
			}
		}
	}
}

func TestValidateTemplates_ReportsEveryProblem(t *testing.T) {
	branches := []Branch{
		{ID: "x", Subjects: []SubjectTemplate{{
			Name: "S", DefaultConfidence: 9, Importance: "huge",
			Topics: []TopicTemplate{{Name: "A", Load: "heavy", Prerequisites: []string{"B"}}},
		}}},
		{ID: "x"},
	}
	err := validateTemplates(branches)
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"duplicate branch", "default confidence", "importance", "load", "nonexistent prerequisite", "fallback branch"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error missing %q:\n%v", want, err)
		}
	}
}

func TestSlug(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Data Structures & Algorithms", "data-structures-algorithms"},
		{"  C++ / OOP  ", "c-oop"},
		{"Trees and BST", "trees-and-bst"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Slug(tt.in); got != tt.want {
			t.Errorf("Slug(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
