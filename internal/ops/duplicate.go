package ops

import (
	"context"
	"fmt"

	"github.com/roach88/stagehand/internal/scene"
	"github.com/roach88/stagehand/internal/sceneio"
	"github.com/roach88/stagehand/internal/uistate"
)

// CopySuffix is appended to the display name of every duplicated subtree root.
const CopySuffix = " (copy)"

// Duplicate clones the selected subtrees. Each clone gets fresh node and
// component IDs throughout and lands immediately after its source under the
// same owner.
type Duplicate struct {
	NodeIDs []scene.NodeID `json:"node_ids"`
	Primary scene.NodeID   `json:"primary,omitempty"`
}

func (Duplicate) Name() string { return "duplicate" }

// placement records where one clone was inserted, for undo/redo replay.
type placement struct {
	clone  *scene.Node
	parent *scene.Node // nil = root sequence
	index  int
}

// Perform de-duplicates and resolves the selection, filters to top-level,
// sorts by pre-order, then clones each survivor independently: serialize the
// subtree, regenerate every ID in the definition against a reservation set
// seeded with all currently-known IDs, materialize, rename with CopySuffix,
// and insert immediately after the source's current position. An empty
// top-level selection is a no-op.
func (op Duplicate) Perform(ctx context.Context, env *Env) (Result, error) {
	g := env.Graph
	sources := resolveSelection(g, op.NodeIDs)
	if len(sources) == 0 {
		return noop, nil
	}

	// All clones are built and validated before the first insertion, so an
	// ID-generation failure midway leaves the graph untouched.
	reserved := g.KnownIDs()
	clones := make([]*scene.Node, 0, len(sources))
	for _, src := range sources {
		text, err := sceneio.Serialize(src)
		if err != nil {
			return noop, fmt.Errorf("duplicate %q: %w", src.ID, err)
		}
		def, err := sceneio.ParseDefinition(text)
		if err != nil {
			return noop, fmt.Errorf("duplicate %q: %w", src.ID, err)
		}
		if err := sceneio.RewriteIDs(&def, env.IDs, reserved); err != nil {
			return noop, newIdentError(err)
		}
		clone, err := sceneio.BuildSubtree(def)
		if err != nil {
			return noop, fmt.Errorf("duplicate %q: %w", src.ID, err)
		}
		clone.Name = src.Name + CopySuffix
		clones = append(clones, clone)
	}

	// Insert each clone right after its source. The source's index is read
	// live, so it already reflects clones placed earlier in the batch under
	// the same owner.
	records := make([]placement, 0, len(sources))
	for i, src := range sources {
		parent, srcIndex := g.Owner(src)
		index := srcIndex + 1
		g.Insert(clones[i], parent, index)
		records = append(records, placement{clone: clones[i], parent: parent, index: index})
	}

	after := selectionOf(clones)
	prior := uistate.Selection{NodeIDs: op.NodeIDs, Primary: op.Primary}
	if prior.Primary == "" && len(op.NodeIDs) > 0 {
		prior.Primary = op.NodeIDs[0]
	}
	publish(env, after)

	return Result{
		DidMutate: true,
		Commit: &Commit{
			Label: duplicateLabel(sources),
			Undo: func(ctx context.Context) error {
				// Reverse insertion order keeps remaining indices valid.
				for i := len(records) - 1; i >= 0; i-- {
					g.Remove(records[i].clone)
				}
				publish(env, prior)
				return nil
			},
			Redo: func(ctx context.Context) error {
				for _, rec := range records {
					g.Insert(rec.clone, rec.parent, rec.index)
				}
				publish(env, after)
				return nil
			},
		},
	}, nil
}

func duplicateLabel(sources []*scene.Node) string {
	if len(sources) == 1 {
		return "Duplicate " + sources[0].Name
	}
	return fmt.Sprintf("Duplicate %d nodes", len(sources))
}
