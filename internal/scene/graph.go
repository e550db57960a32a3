package scene

import "fmt"

// Graph is the single authority for tree shape and the two derived indexes.
//
// INVARIANTS:
//   - byID's key set is exactly the set of nodes reachable from roots.
//   - byGroup[tag] is exactly the set of reachable nodes tagged with tag.
//   - every reachable non-root node appears in exactly one parent's children
//     sequence; every root appears exactly once in the root sequence.
//
// Every primitive updates the tree and both indexes together; other code
// (selection, group broadcast) reads only the indexes and must never observe
// a stale map.
type Graph struct {
	roots   []*Node
	byID    map[NodeID]*Node
	byGroup map[string]map[NodeID]*Node
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		byID:    make(map[NodeID]*Node),
		byGroup: make(map[string]map[NodeID]*Node),
	}
}

// Roots returns the ordered root sequence. Read-only for callers.
func (g *Graph) Roots() []*Node { return g.roots }

// Node resolves an ID through the identifier index, or nil if unreachable.
func (g *Graph) Node(id NodeID) *Node { return g.byID[id] }

// Len returns the number of reachable nodes.
func (g *Graph) Len() int { return len(g.byID) }

// GroupMembers returns the reachable nodes carrying the given tag.
// Order is unspecified; callers that need determinism sort the result.
func (g *Graph) GroupMembers(tag string) []*Node {
	members := g.byGroup[tag]
	if len(members) == 0 {
		return nil
	}
	out := make([]*Node, 0, len(members))
	for _, n := range members {
		out = append(out, n)
	}
	return out
}

// GroupTags returns every tag with at least one reachable member.
func (g *Graph) GroupTags() []string {
	tags := make([]string, 0, len(g.byGroup))
	for tag := range g.byGroup {
		tags = append(tags, tag)
	}
	return tags
}

// RootIndex returns n's position in the root sequence, or -1.
func (g *Graph) RootIndex(n *Node) int {
	for i, r := range g.roots {
		if r == n {
			return i
		}
	}
	return -1
}

// Owner returns n's current owner: (parent, index) for parented nodes,
// (nil, rootIndex) for roots, and (nil, -1) for nodes this graph does not own.
func (g *Graph) Owner(n *Node) (*Node, int) {
	if n.parent != nil {
		return n.parent, n.Index()
	}
	return nil, g.RootIndex(n)
}

// Insert attaches node under parent at a clamped index, or into the root
// sequence when parent is nil. A node that currently has an owner is first
// detached from it. The newly attached subtree is then walked and every
// contained node entered into the identifier and group indexes.
//
// The walk runs even when the subtree was previously known: after an undo
// that restores a deep clone, descendants are not otherwise guaranteed to be
// indexed.
func (g *Graph) Insert(node *Node, parent *Node, index int) {
	g.detachOwned(node)
	if parent == nil {
		index = clampIndex(index, len(g.roots))
		g.roots = append(g.roots, nil)
		copy(g.roots[index+1:], g.roots[index:])
		g.roots[index] = node
		node.parent = nil
	} else {
		parent.spliceChild(node, index)
	}
	g.indexSubtree(node)
}

// Remove detaches node from its owner and walks the subtree removing every
// contained node from both indexes. The node's own child links are preserved
// so the exact subtree can be reinserted later (undo support).
func (g *Graph) Remove(node *Node) {
	g.detachOwned(node)
	g.unindexSubtree(node)
}

// Reparent moves node under newParent (nil for the root sequence) at a
// clamped index. Returns false without mutating anything when the move is a
// no-op: newParent is the node itself, or a descendant of it (the move would
// create a cycle).
//
// When preserveWorld is set, the node's local transform is recomputed after
// attachment so its world pose is unchanged by the move.
func (g *Graph) Reparent(node *Node, newParent *Node, index int, preserveWorld bool) bool {
	if newParent == node {
		return false
	}
	if newParent != nil && node.IsAncestorOf(newParent) {
		return false
	}
	var world Transform
	if preserveWorld {
		world = WorldTransform(node)
	}
	g.Remove(node)
	g.Insert(node, newParent, index)
	if preserveWorld {
		SetWorldTransform(node, world)
	}
	return true
}

// Tag adds a group tag to an owned node and updates the group index.
func (g *Graph) Tag(node *Node, tag string) {
	node.addGroup(tag)
	if g.byID[node.ID] == node {
		g.groupAdd(tag, node)
	}
}

// Untag removes a group tag from an owned node and updates the group index.
func (g *Graph) Untag(node *Node, tag string) {
	node.removeGroup(tag)
	if g.byID[node.ID] == node {
		g.groupRemove(tag, node)
	}
}

// KnownIDs returns every node and component ID reachable from the roots, as
// a reservation set for identifier generation.
func (g *Graph) KnownIDs() map[string]struct{} {
	reserved := make(map[string]struct{}, len(g.byID)*2)
	for id, n := range g.byID {
		reserved[string(id)] = struct{}{}
		for _, c := range n.Components {
			reserved[string(c.ID)] = struct{}{}
		}
	}
	return reserved
}

// Check verifies the graph invariants. Used by tests and the validate
// command; a healthy graph always returns nil.
func (g *Graph) Check() error {
	reachable := make(map[NodeID]*Node)
	for i, r := range g.roots {
		if r.parent != nil {
			return fmt.Errorf("root %q at %d has a parent pointer", r.ID, i)
		}
		var walkErr error
		r.Walk(func(n *Node) bool {
			if prev, dup := reachable[n.ID]; dup {
				walkErr = fmt.Errorf("duplicate ID %q (nodes %p and %p)", n.ID, prev, n)
				return false
			}
			reachable[n.ID] = n
			for _, c := range n.children {
				if c.parent != n {
					walkErr = fmt.Errorf("child %q of %q has wrong parent pointer", c.ID, n.ID)
					return false
				}
			}
			return true
		})
		if walkErr != nil {
			return walkErr
		}
	}
	if len(reachable) != len(g.byID) {
		return fmt.Errorf("identifier index has %d entries, %d nodes reachable", len(g.byID), len(reachable))
	}
	for id, n := range reachable {
		if g.byID[id] != n {
			return fmt.Errorf("identifier index entry %q does not match reachable node", id)
		}
		for _, tag := range n.Groups() {
			if g.byGroup[tag][n.ID] != n {
				return fmt.Errorf("node %q missing from group index %q", n.ID, tag)
			}
		}
	}
	for tag, members := range g.byGroup {
		for id, n := range members {
			if reachable[id] != n || !n.InGroup(tag) {
				return fmt.Errorf("group index %q has stale member %q", tag, id)
			}
		}
	}
	return nil
}

// detachOwned removes node from whichever owner this graph knows about:
// its parent's children sequence or the root sequence.
func (g *Graph) detachOwned(node *Node) {
	if node.parent != nil {
		node.detach()
		return
	}
	if i := g.RootIndex(node); i >= 0 {
		g.roots = append(g.roots[:i], g.roots[i+1:]...)
	}
}

func (g *Graph) indexSubtree(root *Node) {
	root.Walk(func(n *Node) bool {
		g.byID[n.ID] = n
		for tag := range n.groups {
			g.groupAdd(tag, n)
		}
		return true
	})
}

func (g *Graph) unindexSubtree(root *Node) {
	root.Walk(func(n *Node) bool {
		delete(g.byID, n.ID)
		for tag := range n.groups {
			g.groupRemove(tag, n)
		}
		return true
	})
}

func (g *Graph) groupAdd(tag string, n *Node) {
	members := g.byGroup[tag]
	if members == nil {
		members = make(map[NodeID]*Node)
		g.byGroup[tag] = members
	}
	members[n.ID] = n
}

func (g *Graph) groupRemove(tag string, n *Node) {
	members := g.byGroup[tag]
	delete(members, n.ID)
	if len(members) == 0 {
		delete(g.byGroup, tag)
	}
}
