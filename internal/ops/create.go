package ops

import (
	"context"

	"github.com/roach88/stagehand/internal/scene"
	"github.com/roach88/stagehand/internal/uistate"
)

// Create adds a fresh empty node under a parent (or to the root sequence).
type Create struct {
	ParentID scene.NodeID   `json:"parent_id,omitempty"` // empty = root sequence
	Index    int            `json:"index"`
	Kind     scene.NodeKind `json:"kind"`
	NodeName string         `json:"name,omitempty"`
}

func (Create) Name() string { return "create" }

// Perform generates an ID, creates the node and inserts it. No-ops: parent
// missing, or parent kind does not support children. Undo removes the node;
// redo reinserts the same instance.
func (op Create) Perform(ctx context.Context, env *Env) (Result, error) {
	g := env.Graph
	var parent *scene.Node
	if op.ParentID != "" {
		if parent = g.Node(op.ParentID); parent == nil {
			return noop, nil
		}
		if !parent.Kind.SupportsChildren() {
			return noop, nil
		}
	}
	id, err := env.IDs.NextID("node", g.KnownIDs())
	if err != nil {
		return noop, newIdentError(err)
	}
	name := op.NodeName
	if name == "" {
		name = "Node"
	}
	node := scene.NewNode(scene.NodeID(id), name, op.Kind)

	g.Insert(node, parent, op.Index)
	publish(env, uistate.Single(node.ID))

	return Result{
		DidMutate: true,
		Commit: &Commit{
			Label: "Create " + name,
			Undo: func(ctx context.Context) error {
				g.Remove(node)
				publish(env, uistate.Selection{})
				return nil
			},
			Redo: func(ctx context.Context) error {
				g.Insert(node, parent, op.Index)
				publish(env, uistate.Single(node.ID))
				return nil
			},
		},
	}, nil
}
