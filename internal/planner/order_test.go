package planner

import (
	"testing"
)

func positions(topics []Topic) map[string]int {
	pos := make(map[string]int, len(topics))
	for i, t := range topics {
		pos[t.ID] = i
	}
	return pos
}

func TestOrderTopics_PrerequisiteFirst(t *testing.T) {
	subjects := []Subject{{
		ID: "math",
		Topics: []Topic{
			{ID: "b", Prerequisites: []string{"a"}, Confidence: 1, IsWeak: true, CognitiveLoad: LoadHigh},
			{ID: "a", Confidence: 5, CognitiveLoad: LoadLow},
		},
	}}

	ord := OrderTopics(subjects)
	pos := positions(ord.Topics)
	if pos["a"] >= pos["b"] {
		t.Errorf("a at %d, b at %d; want a before b", pos["a"], pos["b"])
	}
	if len(ord.BrokenEdges) != 0 {
		t.Errorf("got %d broken edges, want 0", len(ord.BrokenEdges))
	}
}

func TestOrderTopics_AcrossSubjects(t *testing.T) {
	subjects := []Subject{
		{ID: "s2", Topics: []Topic{{ID: "z", Prerequisites: []string{"x", "y"}}}},
		{ID: "s1", Topics: []Topic{{ID: "x"}, {ID: "y", Prerequisites: []string{"x"}}}},
	}

	ord := OrderTopics(subjects)
	if len(ord.Topics) != 3 {
		t.Fatalf("got %d topics, want 3", len(ord.Topics))
	}
	pos := positions(ord.Topics)
	for _, topic := range ord.Topics {
		for _, p := range topic.Prerequisites {
			if pos[p] >= pos[topic.ID] {
				t.Errorf("prerequisite %q at %d not before %q at %d", p, pos[p], topic.ID, pos[topic.ID])
			}
		}
	}
}

func TestOrderTopics_MissingPrerequisiteIgnored(t *testing.T) {
	subjects := []Subject{{ID: "s", Topics: []Topic{
		{ID: "a", Prerequisites: []string{"ghost"}},
		{ID: "b"},
	}}}

	ord := OrderTopics(subjects)
	if len(ord.Topics) != 2 {
		t.Fatalf("got %d topics, want 2", len(ord.Topics))
	}
	if ord.Topics[0].ID != "a" || ord.Topics[1].ID != "b" {
		t.Errorf("got order %s,%s; want a,b", ord.Topics[0].ID, ord.Topics[1].ID)
	}
}

func TestOrderTopics_CycleTerminates(t *testing.T) {
	subjects := []Subject{{ID: "s", Topics: []Topic{
		{ID: "a", Prerequisites: []string{"b"}},
		{ID: "b", Prerequisites: []string{"a"}},
		{ID: "c", Prerequisites: []string{"c"}},
	}}}

	ord := OrderTopics(subjects)
	if len(ord.Topics) != 3 {
		t.Fatalf("got %d topics, want 3 (each exactly once)", len(ord.Topics))
	}
	if ord.Topics[0].ID != "b" || ord.Topics[1].ID != "a" {
		t.Errorf("got order %s,%s; want b,a", ord.Topics[0].ID, ord.Topics[1].ID)
	}

	want := []BrokenEdge{
		{TopicID: "b", PrerequisiteID: "a"},
		{TopicID: "c", PrerequisiteID: "c"},
	}
	if len(ord.BrokenEdges) != len(want) {
		t.Fatalf("got %d broken edges, want %d", len(ord.BrokenEdges), len(want))
	}
	for i, e := range want {
		if ord.BrokenEdges[i] != e {
			t.Errorf("broken edge %d: got %+v, want %+v", i, ord.BrokenEdges[i], e)
		}
	}
}

func TestOrderTopics_InheritsSubjectID(t *testing.T) {
	subjects := []Subject{{ID: "phy", Topics: []Topic{{ID: "t1"}}}}

	ord := OrderTopics(subjects)
	if ord.Topics[0].SubjectID != "phy" {
		t.Errorf("got subject %q, want phy", ord.Topics[0].SubjectID)
	}
	if subjects[0].Topics[0].SubjectID != "" {
		t.Error("input topic was mutated")
	}
}
