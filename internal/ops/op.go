// Package ops defines the Operation contract and the structural edit
// operations: create, remove, reparent, duplicate, group and extract.
//
// Operations are plain-data payloads. Perform validates, mutates the graph
// through its primitives only, pushes UI state, and returns a Result whose
// Commit carries the undo/redo closure pair. All validation and lookups
// happen before the first structural edit, so a Perform that errors leaves
// the graph untouched.
package ops

import (
	"context"

	"github.com/roach88/stagehand/internal/ident"
	"github.com/roach88/stagehand/internal/scene"
	"github.com/roach88/stagehand/internal/sceneio"
	"github.com/roach88/stagehand/internal/uistate"
)

// Env carries the collaborators an operation mutates or notifies.
type Env struct {
	Graph *scene.Graph
	IDs   ident.Generator
	Files sceneio.FileWriter
	UI    uistate.Store
}

// Commit is the undo/redo closure pair recorded for a mutating operation.
// Undo immediately followed by Redo leaves graph, indexes and selection
// indistinguishable from the pre-undo state.
type Commit struct {
	Label string
	Undo  func(ctx context.Context) error
	Redo  func(ctx context.Context) error
}

// Result reports whether an operation mutated the graph. Validation no-ops
// and precondition failures return DidMutate=false with no commit, and never
// pollute history.
type Result struct {
	DidMutate bool
	Commit    *Commit
}

// noop is the shared non-mutating result.
var noop = Result{}

// Operation is a named, parameterized unit of work.
type Operation interface {
	Name() string
	Perform(ctx context.Context, env *Env) (Result, error)
}

// publish pushes the post-mutation state to the UI store: current roots
// reference, dirty flag, and selection.
func publish(env *Env, sel uistate.Selection) {
	if env.UI == nil {
		return
	}
	env.UI.SetRoots(env.Graph.Roots())
	env.UI.MarkDirty()
	env.UI.SetSelection(sel)
}

// selectionOf builds the selection covering the given nodes, primary first.
func selectionOf(nodes []*scene.Node) uistate.Selection {
	if len(nodes) == 0 {
		return uistate.Selection{}
	}
	sel := uistate.Selection{Primary: nodes[0].ID}
	for _, n := range nodes {
		sel.NodeIDs = append(sel.NodeIDs, n.ID)
	}
	return sel
}

// resolveSelection de-duplicates the requested IDs (preserving order),
// resolves them through the identifier index, filters to top-level and sorts
// by pre-order. The shared front half of every multi-node operation.
func resolveSelection(g *scene.Graph, ids []scene.NodeID) []*scene.Node {
	seen := make(map[scene.NodeID]struct{}, len(ids))
	var nodes []*scene.Node
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if n := g.Node(id); n != nil {
			nodes = append(nodes, n)
		}
	}
	nodes = scene.TopLevel(nodes)
	g.SortPreorder(nodes)
	return nodes
}
