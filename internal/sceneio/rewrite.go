package sceneio

import (
	"fmt"

	"github.com/roach88/stagehand/internal/ident"
)

// RewriteIDs regenerates every node and component ID in the definition
// against the reservation set, adding each fresh ID to the set as it goes.
// Used by duplication so a materialized clone never collides with an ID the
// graph already knows.
func RewriteIDs(def *NodeDef, gen ident.Generator, reserved map[string]struct{}) error {
	id, err := gen.NextID("node", reserved)
	if err != nil {
		return fmt.Errorf("sceneio: rewrite node %q: %w", def.ID, err)
	}
	def.ID = id
	reserved[id] = struct{}{}

	for i := range def.Components {
		cid, err := gen.NextID("comp", reserved)
		if err != nil {
			return fmt.Errorf("sceneio: rewrite component %q: %w", def.Components[i].ID, err)
		}
		def.Components[i].ID = cid
		reserved[cid] = struct{}{}
	}
	for i := range def.Children {
		if err := RewriteIDs(&def.Children[i], gen, reserved); err != nil {
			return err
		}
	}
	return nil
}
