package harness

import (
	"fmt"
	"sort"

	"github.com/roach88/stagehand/internal/scene"
)

// Verify checks every scenario assertion against the run result.
func Verify(s *Scenario, res *Result) error {
	for i, a := range s.Assertions {
		if err := checkAssertion(a, res); err != nil {
			return fmt.Errorf("harness: scenario %s: assertion %d (%s): %w", s.Name, i, a.Type, err)
		}
	}
	return nil
}

func checkAssertion(a Assertion, res *Result) error {
	g := res.Graph
	switch a.Type {
	case "root_order":
		got := make([]string, 0, len(g.Roots()))
		for _, r := range g.Roots() {
			got = append(got, string(r.ID))
		}
		if !equalStrings(got, a.IDs) {
			return fmt.Errorf("root order %v, want %v", got, a.IDs)
		}

	case "node_parent":
		n := g.Node(scene.NodeID(a.Node))
		if n == nil {
			return fmt.Errorf("node %q not reachable", a.Node)
		}
		parent, index := g.Owner(n)
		gotParent := ""
		if parent != nil {
			gotParent = string(parent.ID)
		}
		if gotParent != a.Parent {
			return fmt.Errorf("node %q parent %q, want %q", a.Node, gotParent, a.Parent)
		}
		if a.Index != nil && index != *a.Index {
			return fmt.Errorf("node %q index %d, want %d", a.Node, index, *a.Index)
		}

	case "node_absent":
		if g.Node(scene.NodeID(a.Node)) != nil {
			return fmt.Errorf("node %q should not be reachable", a.Node)
		}

	case "group_members":
		got := make([]string, 0)
		for _, n := range g.GroupMembers(a.Group) {
			got = append(got, string(n.ID))
		}
		sort.Strings(got)
		want := append([]string(nil), a.IDs...)
		sort.Strings(want)
		if !equalStrings(got, want) {
			return fmt.Errorf("group %q members %v, want %v", a.Group, got, want)
		}

	case "selection":
		sel := res.UI.Selection()
		got := make([]string, 0, len(sel.NodeIDs))
		for _, id := range sel.NodeIDs {
			got = append(got, string(id))
		}
		if !equalStrings(got, a.IDs) {
			return fmt.Errorf("selection %v, want %v", got, a.IDs)
		}
		if a.Primary != "" && string(sel.Primary) != a.Primary {
			return fmt.Errorf("primary %q, want %q", sel.Primary, a.Primary)
		}

	case "file_exists":
		if _, ok := res.Files.File(a.Path); !ok {
			return fmt.Errorf("no file written at %q", a.Path)
		}

	case "no_mutation":
		if res.LastMutated {
			return fmt.Errorf("final step mutated the scene")
		}

	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
	return nil
}

func equalStrings(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
