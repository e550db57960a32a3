package ops

import (
	"context"

	"github.com/roach88/stagehand/internal/scene"
	"github.com/roach88/stagehand/internal/uistate"
)

// Reparent moves one node under a new parent (or to the root sequence) at an
// insertion index, preserving the node's world pose.
type Reparent struct {
	NodeID      scene.NodeID `json:"node_id"`
	NewParentID scene.NodeID `json:"new_parent_id,omitempty"` // empty = root sequence
	Index       int          `json:"index"`
}

func (Reparent) Name() string { return "reparent" }

// Perform resolves both IDs, records the node's current owner for undo and
// replays scene.Graph.Reparent. No-ops: missing node, missing parent,
// reparent onto self, reparent under own descendant. The insertion index is
// re-validated (clamped) on every apply against the destination's current
// size; it may have drifted since the operation was recorded.
func (op Reparent) Perform(ctx context.Context, env *Env) (Result, error) {
	g := env.Graph
	node := g.Node(op.NodeID)
	if node == nil {
		return noop, nil
	}
	var newParent *scene.Node
	if op.NewParentID != "" {
		if newParent = g.Node(op.NewParentID); newParent == nil {
			return noop, nil
		}
		if !newParent.Kind.SupportsChildren() {
			return noop, nil
		}
	}
	oldParent, oldIndex := g.Owner(node)

	if !g.Reparent(node, newParent, op.Index, true) {
		return noop, nil
	}
	publish(env, uistate.Single(node.ID))

	return Result{
		DidMutate: true,
		Commit: &Commit{
			Label: "Reparent " + node.Name,
			Undo: func(ctx context.Context) error {
				g.Reparent(node, oldParent, oldIndex, true)
				publish(env, uistate.Single(node.ID))
				return nil
			},
			Redo: func(ctx context.Context) error {
				g.Reparent(node, newParent, op.Index, true)
				publish(env, uistate.Single(node.ID))
				return nil
			},
		},
	}, nil
}
