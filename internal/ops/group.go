package ops

import (
	"context"

	"github.com/roach88/stagehand/internal/scene"
	"github.com/roach88/stagehand/internal/uistate"
)

// Group moves the selected nodes into a freshly created container of the
// selection's dimensionality. World poses are preserved, so visually nothing
// moves.
type Group struct {
	NodeIDs       []scene.NodeID `json:"node_ids"`
	ContainerName string         `json:"name,omitempty"` // container display name, default "Group"
}

func (Group) Name() string { return "group" }

// moveRecord captures one node's owner just before it moved into the
// container. Undo restores each node to its individually recorded slot.
type moveRecord struct {
	node   *scene.Node
	parent *scene.Node // nil = root sequence
	index  int
}

// Perform groups the top-level selection, pre-order sorted. The selection
// must be exclusively 2D or exclusively 3D; mixed selections (including any
// instance node) are a no-op. The container lands under the selection's
// common parent, or at the root when parents differ, at the minimum index
// among the selected nodes' current positions.
func (op Group) Perform(ctx context.Context, env *Env) (Result, error) {
	g := env.Graph
	nodes := resolveSelection(g, op.NodeIDs)
	if len(nodes) == 0 {
		return noop, nil
	}

	dim := nodes[0].Kind.Dimensionality()
	if dim == scene.DimNone {
		return noop, nil
	}
	for _, n := range nodes[1:] {
		if n.Kind.Dimensionality() != dim {
			return noop, nil
		}
	}

	// Container placement: common parent when there is one, root otherwise.
	containerParent, _ := g.Owner(nodes[0])
	common := true
	for _, n := range nodes[1:] {
		if p, _ := g.Owner(n); p != containerParent {
			common = false
			break
		}
	}
	if !common {
		containerParent = nil
	}
	containerIndex := -1
	for _, n := range nodes {
		if _, idx := g.Owner(n); containerIndex < 0 || idx < containerIndex {
			containerIndex = idx
		}
	}

	id, err := env.IDs.NextID("node", g.KnownIDs())
	if err != nil {
		return noop, newIdentError(err)
	}
	name := op.ContainerName
	if name == "" {
		name = "Group"
	}
	container := scene.NewNode(scene.NodeID(id), name, scene.ContainerKind(dim))

	g.Insert(container, containerParent, containerIndex)
	records := make([]moveRecord, 0, len(nodes))
	for _, n := range nodes {
		parent, index := g.Owner(n)
		records = append(records, moveRecord{node: n, parent: parent, index: index})
		g.Reparent(n, container, container.ChildCount(), true)
	}

	after := uistate.Single(container.ID)
	prior := uistate.Selection{NodeIDs: op.NodeIDs}
	if len(op.NodeIDs) > 0 {
		prior.Primary = op.NodeIDs[0]
	}
	publish(env, after)

	return Result{
		DidMutate: true,
		Commit: &Commit{
			Label: "Group into " + name,
			Undo: func(ctx context.Context) error {
				// Reverse order restores each recorded index exactly, then
				// the empty container goes away.
				for i := len(records) - 1; i >= 0; i-- {
					rec := records[i]
					g.Reparent(rec.node, rec.parent, rec.index, true)
				}
				g.Remove(container)
				publish(env, prior)
				return nil
			},
			Redo: func(ctx context.Context) error {
				g.Insert(container, containerParent, containerIndex)
				for _, rec := range records {
					g.Reparent(rec.node, container, container.ChildCount(), true)
				}
				publish(env, after)
				return nil
			},
		},
	}, nil
}
