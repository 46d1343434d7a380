package planner

// BrokenEdge is a prerequisite reference skipped because following it
// would close a cycle.
type BrokenEdge struct {
	TopicID        string
	PrerequisiteID string
}

// Ordering is the output of OrderTopics.
type Ordering struct {
	Topics      []Topic
	BrokenEdges []BrokenEdge
}

const (
	unvisited = iota
	visiting
	visited
)

// OrderTopics flattens the topics of all subjects and reorders them so that
// every resolvable prerequisite appears before the topics that need it.
//
// The walk is a depth-first visit in input order. Prerequisite ids that do
// not match any topic are ignored. A prerequisite that is still being
// visited (a back-edge) is skipped and reported in BrokenEdges, so cycles
// are broken in favour of whichever topic the walk reached first.
func OrderTopics(subjects []Subject) Ordering {
	all := flattenTopics(subjects)

	index := make(map[string]int, len(all))
	for i := range all {
		if _, dup := index[all[i].ID]; !dup {
			index[all[i].ID] = i
		}
	}

	state := make([]int, len(all))
	ord := Ordering{Topics: make([]Topic, 0, len(all))}

	var visit func(i int)
	visit = func(i int) {
		state[i] = visiting
		t := all[i]
		for _, prereqID := range t.Prerequisites {
			j, ok := index[prereqID]
			if !ok {
				continue
			}
			switch state[j] {
			case unvisited:
				visit(j)
			case visiting:
				ord.BrokenEdges = append(ord.BrokenEdges, BrokenEdge{TopicID: t.ID, PrerequisiteID: prereqID})
			}
		}
		state[i] = visited
		ord.Topics = append(ord.Topics, t)
	}

	for i := range all {
		if state[i] == unvisited {
			visit(i)
		}
	}
	return ord
}

// flattenTopics copies every topic in subject order. A topic without a
// subject id inherits the id of the subject that lists it.
func flattenTopics(subjects []Subject) []Topic {
	n := 0
	for _, s := range subjects {
		n += len(s.Topics)
	}
	all := make([]Topic, 0, n)
	for _, s := range subjects {
		for _, t := range s.Topics {
			if t.SubjectID == "" {
				t.SubjectID = s.ID
			}
			all = append(all, t)
		}
	}
	return all
}
