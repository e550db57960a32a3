package scene

import "sort"

// Node is a tree element with identity, a transform, ordered children, group
// tags and attached components.
//
// OWNERSHIP: a node is owned either by exactly one parent's children sequence
// or by exactly one Graph's root sequence, never both. The parent pointer is
// a non-owning back-reference used for upward traversal (cycle checks, world
// transform composition).
//
// The children slice and parent pointer are unexported so that owned trees
// can only be spliced through Graph primitives; detached subtrees (loading,
// materialization) are assembled with AppendChild before insertion.
type Node struct {
	ID         NodeID
	Name       string
	Kind       NodeKind
	Transform  Transform
	Components []*Component
	Meta       map[string]string

	groups   map[string]struct{}
	children []*Node
	parent   *Node
}

// NewNode creates a detached node with an identity transform and no owner.
func NewNode(id NodeID, name string, kind NodeKind) *Node {
	return &Node{
		ID:        id,
		Name:      name,
		Kind:      kind,
		Transform: IdentityTransform(),
	}
}

// Parent returns the owning parent, or nil for roots and detached nodes.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the ordered children sequence. The returned slice is the
// node's own storage and must not be spliced by callers; all owned-tree
// mutation goes through Graph primitives.
func (n *Node) Children() []*Node { return n.children }

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int { return len(n.children) }

// Index returns the node's position in its parent's children sequence, or -1
// if the node has no parent (root or detached).
func (n *Node) Index() int {
	if n.parent == nil {
		return -1
	}
	for i, c := range n.parent.children {
		if c == n {
			return i
		}
	}
	return -1
}

// IsAncestorOf reports whether n is a strict ancestor of other.
// Walks parent links upward from other; this is the cycle check used by
// reparenting.
func (n *Node) IsAncestorOf(other *Node) bool {
	for p := other.parent; p != nil; p = p.parent {
		if p == n {
			return true
		}
	}
	return false
}

// Walk visits n and every descendant in depth-first pre-order.
// Returning false from fn stops the walk.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, c := range n.children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}

// AppendChild attaches c as the last child of n and sets c's parent pointer.
// Only for assembling detached subtrees (scene loading, materialization);
// nodes owned by a Graph must be moved with Graph.Insert/Reparent so the
// derived indexes stay consistent.
func (n *Node) AppendChild(c *Node) {
	c.parent = n
	n.children = append(n.children, c)
}

// Groups returns the node's group tags in sorted order.
func (n *Node) Groups() []string {
	if len(n.groups) == 0 {
		return nil
	}
	tags := make([]string, 0, len(n.groups))
	for g := range n.groups {
		tags = append(tags, g)
	}
	sort.Strings(tags)
	return tags
}

// InGroup reports whether the node carries the given group tag.
func (n *Node) InGroup(tag string) bool {
	_, ok := n.groups[tag]
	return ok
}

// addGroup adds a group tag to the node's own set. Owned nodes are tagged
// through Graph.Tag, which keeps the group index in step.
func (n *Node) addGroup(tag string) {
	if n.groups == nil {
		n.groups = make(map[string]struct{})
	}
	n.groups[tag] = struct{}{}
}

// removeGroup drops a group tag from the node's own set.
func (n *Node) removeGroup(tag string) {
	delete(n.groups, tag)
}

// SetGroups replaces the node's tag set. Only for detached assembly.
func (n *Node) SetGroups(tags []string) {
	n.groups = nil
	for _, t := range tags {
		n.addGroup(t)
	}
}

// SetMeta sets a metadata key, allocating the map on first use.
func (n *Node) SetMeta(key, value string) {
	if n.Meta == nil {
		n.Meta = make(map[string]string)
	}
	n.Meta[key] = value
}

// detach removes n from its parent's children sequence and clears the parent
// pointer. No-op for roots and detached nodes. Root-sequence detachment is
// handled by Graph.
func (n *Node) detach() {
	p := n.parent
	if p == nil {
		return
	}
	for i, c := range p.children {
		if c == n {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	n.parent = nil
}

// spliceChild inserts c into n's children at a clamped index and sets c's
// parent pointer. Caller guarantees c is detached.
func (n *Node) spliceChild(c *Node, index int) {
	index = clampIndex(index, len(n.children))
	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = c
	c.parent = n
}

// clampIndex clamps an insertion index to [0, length].
func clampIndex(index, length int) int {
	if index < 0 {
		return 0
	}
	if index > length {
		return length
	}
	return index
}
