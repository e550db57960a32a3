package ops

import (
	"context"
	"fmt"

	"github.com/roach88/stagehand/internal/scene"
	"github.com/roach88/stagehand/internal/sceneio"
	"github.com/roach88/stagehand/internal/uistate"
)

// Extract persists a subtree as a reusable unit at Path and replaces it in
// the graph with an instance node referencing the written file.
//
// The file write is a side effect that undo does not reverse: undo restores
// the original subtree (the same node instances) but the file persists.
type Extract struct {
	NodeID scene.NodeID `json:"node_id"`
	Path   string       `json:"path"`
}

func (Extract) Name() string { return "extract" }

// Perform serializes the subtree, writes the file, then swaps the original
// for a freshly materialized instance node at the exact former (parent,
// index). I/O happens before any structural edit, so a write failure is a
// hard error with the graph untouched.
func (op Extract) Perform(ctx context.Context, env *Env) (Result, error) {
	g := env.Graph
	node := g.Node(op.NodeID)
	if node == nil || op.Path == "" {
		return noop, nil
	}

	text, err := sceneio.Serialize(node)
	if err != nil {
		return noop, fmt.Errorf("extract %q: %w", node.ID, err)
	}
	if err := env.Files.WriteFile(op.Path, []byte(text)); err != nil {
		return noop, newPersistenceError(op.Path, err)
	}

	id, err := env.IDs.NextID("node", g.KnownIDs())
	if err != nil {
		return noop, newIdentError(err)
	}
	instText, err := sceneio.InstanceDefinition(scene.NodeID(id), node.Name, op.Path)
	if err != nil {
		return noop, fmt.Errorf("extract %q: %w", node.ID, err)
	}
	instance, err := sceneio.Materialize(instText)
	if err != nil {
		return noop, fmt.Errorf("extract %q: %w", node.ID, err)
	}
	instance.Transform = node.Transform

	parent, index := g.Owner(node)
	g.Remove(node)
	g.Insert(instance, parent, index)
	publish(env, uistate.Single(instance.ID))

	return Result{
		DidMutate: true,
		Commit: &Commit{
			Label: "Extract " + node.Name,
			Undo: func(ctx context.Context) error {
				g.Remove(instance)
				g.Insert(node, parent, index)
				publish(env, uistate.Single(node.ID))
				return nil
			},
			Redo: func(ctx context.Context) error {
				g.Remove(node)
				g.Insert(instance, parent, index)
				publish(env, uistate.Single(instance.ID))
				return nil
			},
		},
	}, nil
}
