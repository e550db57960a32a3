package ops

import (
	"context"
	"fmt"

	"github.com/roach88/stagehand/internal/scene"
	"github.com/roach88/stagehand/internal/uistate"
)

// Remove detaches the selected subtrees from the graph. The removed node
// instances are retained by the commit, so undo restores identity-sensitive
// references (group tags, external caches), not reconstructions.
type Remove struct {
	NodeIDs []scene.NodeID `json:"node_ids"`
}

func (Remove) Name() string { return "remove" }

// Perform removes the top-level selection in reverse pre-order, recording
// each node's owner at the moment of its removal. Undo reinserts in forward
// order against those records. Empty top-level selection is a no-op.
func (op Remove) Perform(ctx context.Context, env *Env) (Result, error) {
	g := env.Graph
	nodes := resolveSelection(g, op.NodeIDs)
	if len(nodes) == 0 {
		return noop, nil
	}

	// Reverse pre-order removal keeps earlier siblings' indices stable;
	// the records then read back correctly in forward order on undo.
	records := make([]moveRecord, len(nodes))
	for i := len(nodes) - 1; i >= 0; i-- {
		parent, index := g.Owner(nodes[i])
		records[i] = moveRecord{node: nodes[i], parent: parent, index: index}
		g.Remove(nodes[i])
	}

	prior := selectionOf(nodes)
	publish(env, uistate.Selection{})

	return Result{
		DidMutate: true,
		Commit: &Commit{
			Label: removeLabel(nodes),
			Undo: func(ctx context.Context) error {
				for _, rec := range records {
					g.Insert(rec.node, rec.parent, rec.index)
				}
				publish(env, prior)
				return nil
			},
			Redo: func(ctx context.Context) error {
				for i := len(records) - 1; i >= 0; i-- {
					g.Remove(records[i].node)
				}
				publish(env, uistate.Selection{})
				return nil
			},
		},
	}, nil
}

func removeLabel(nodes []*scene.Node) string {
	if len(nodes) == 1 {
		return "Remove " + nodes[0].Name
	}
	return fmt.Sprintf("Remove %d nodes", len(nodes))
}
