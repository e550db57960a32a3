// Package uistate is the boundary to the reactive UI state store.
//
// The core treats the store as write-only: after a successful mutation it
// pushes the updated root list, a scene-dirty flag and the selection, and
// never reads derived UI state back to make decisions.
package uistate

import (
	"sync"

	"github.com/roach88/stagehand/internal/scene"
)

// Selection is the set of selected nodes plus the primary node.
type Selection struct {
	NodeIDs []scene.NodeID
	Primary scene.NodeID
}

// Single returns a selection of exactly one node.
func Single(id scene.NodeID) Selection {
	return Selection{NodeIDs: []scene.NodeID{id}, Primary: id}
}

// Store receives UI-facing state pushes from the core.
type Store interface {
	SetRoots(roots []*scene.Node)
	MarkDirty()
	SetSelection(sel Selection)
}

// Memory records the latest pushed state. It backs tests and the CLI, and
// stands in for the host editor's reactive store.
type Memory struct {
	mu        sync.Mutex
	roots     []*scene.Node
	dirty     bool
	selection Selection
}

// NewMemory creates an empty recording store.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) SetRoots(roots []*scene.Node) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.roots = roots
}

func (m *Memory) MarkDirty() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dirty = true
}

func (m *Memory) SetSelection(sel Selection) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.selection = sel
}

// Roots returns the last pushed root list.
func (m *Memory) Roots() []*scene.Node {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.roots
}

// Dirty reports whether any mutation marked the scene dirty.
func (m *Memory) Dirty() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dirty
}

// Selection returns the last pushed selection.
func (m *Memory) Selection() Selection {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.selection
}
