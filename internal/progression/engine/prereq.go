package engine

import (
	"fmt"
	"sort"
)

// PrereqGraph resolves AND-of-prerequisite conditions over definition IDs.
// Definitions register their prerequisite lists once at content-load time;
// Evaluate then answers per-profile availability questions.
type PrereqGraph struct {
	requires map[string][]string
}

// NewPrereqGraph builds a graph from definition ID to its prerequisite IDs.
func NewPrereqGraph(requires map[string][]string) *PrereqGraph {
	copied := make(map[string][]string, len(requires))
	for id, prereqs := range requires {
		copied[id] = append([]string(nil), prereqs...)
	}
	return &PrereqGraph{requires: copied}
}

// Unmet returns the prerequisite IDs of id not present in the satisfied set,
// sorted for stable output. An unknown id has no prerequisites.
func (g *PrereqGraph) Unmet(id string, satisfied map[string]bool) []string {
	var missing []string
	for _, prereq := range g.requires[id] {
		if !satisfied[prereq] {
			missing = append(missing, prereq)
		}
	}
	sort.Strings(missing)
	return missing
}

// Met reports whether every prerequisite of id is satisfied.
func (g *PrereqGraph) Met(id string, satisfied map[string]bool) bool {
	return len(g.Unmet(id, satisfied)) == 0
}

// CheckAcyclic verifies the prerequisite graph has no cycles, returning the
// first cycle found as an error. Dangling references (prerequisites with no
// definition) are allowed here and caught by content validation.
func (g *PrereqGraph) CheckAcyclic() error {
	const (
		white = 0 // unvisited
		gray  = 1 // on the current DFS path
		black = 2 // fully explored
	)
	color := make(map[string]int, len(g.requires))

	ids := make([]string, 0, len(g.requires))
	for id := range g.requires {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var visit func(id string, path []string) error
	visit = func(id string, path []string) error {
		color[id] = gray
		path = append(path, id)
		for _, prereq := range g.requires[id] {
			switch color[prereq] {
			case gray:
				return fmt.Errorf("prerequisite cycle: %v -> %s", path, prereq)
			case white:
				if err := visit(prereq, path); err != nil {
					return err
				}
			}
		}
		color[id] = black
		return nil
	}

	for _, id := range ids {
		if color[id] == white {
			if err := visit(id, nil); err != nil {
				return err
			}
		}
	}
	return nil
}
