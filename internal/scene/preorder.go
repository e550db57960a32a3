package scene

import "sort"

// Document-order helpers for multi-node operations. Duplicate and group both
// need a stable, deterministic ordering of a selection so that clones and
// grouped children keep the relative order of their sources.

// TopLevel filters nodes down to those with no ancestor also in the set.
// Order of survivors follows the input order. Duplicating a folder and one of
// its children must duplicate the folder once, not twice.
func TopLevel(nodes []*Node) []*Node {
	inSet := make(map[*Node]struct{}, len(nodes))
	for _, n := range nodes {
		inSet[n] = struct{}{}
	}
	out := make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		covered := false
		for p := n.parent; p != nil; p = p.parent {
			if _, ok := inSet[p]; ok {
				covered = true
				break
			}
		}
		if !covered {
			out = append(out, n)
		}
	}
	return out
}

// SortPreorder sorts nodes in place by depth-first pre-order position within
// the graph. Nodes not reachable from the graph's roots sort last.
func (g *Graph) SortPreorder(nodes []*Node) {
	paths := make(map[*Node][]int, len(nodes))
	for _, n := range nodes {
		paths[n] = g.treePath(n)
	}
	sort.SliceStable(nodes, func(i, j int) bool {
		return lessPath(paths[nodes[i]], paths[nodes[j]])
	})
}

// treePath returns the index path from the root sequence down to n, or nil
// for nodes the graph does not own.
func (g *Graph) treePath(n *Node) []int {
	var path []int
	for cur := n; cur != nil; {
		if cur.parent == nil {
			i := g.RootIndex(cur)
			if i < 0 {
				return nil
			}
			path = append(path, i)
			break
		}
		path = append(path, cur.Index())
		cur = cur.parent
	}
	// Reverse: collected leaf-first.
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func lessPath(a, b []int) bool {
	if a == nil {
		return false
	}
	if b == nil {
		return true
	}
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}
