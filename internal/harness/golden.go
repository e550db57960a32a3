package harness

import (
	"fmt"
	"strings"

	"github.com/roach88/stagehand/internal/scene"
	"github.com/roach88/stagehand/internal/sceneio"
)

// Snapshot renders the run result as a deterministic text block for golden
// comparison: the root forest in document order, then the selection. Group
// tags render sorted; instance nodes show their source path.
func Snapshot(res *Result) string {
	var b strings.Builder
	for _, root := range res.Graph.Roots() {
		writeNode(&b, root, 0)
	}
	sel := res.UI.Selection()
	b.WriteString("--\n")
	fmt.Fprintf(&b, "selection: %s primary=%s\n", joinIDs(sel.NodeIDs), sel.Primary)
	return b.String()
}

func writeNode(b *strings.Builder, n *scene.Node, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	fmt.Fprintf(b, "%s %s %q", n.ID, sceneio.KindName(n.Kind), n.Name)
	if groups := n.Groups(); len(groups) > 0 {
		fmt.Fprintf(b, " groups=[%s]", strings.Join(groups, ","))
	}
	if src := n.Meta[sceneio.MetaSource]; src != "" {
		fmt.Fprintf(b, " source=%s", src)
	}
	b.WriteByte('\n')
	for _, child := range n.Children() {
		writeNode(b, child, depth+1)
	}
}

func joinIDs(ids []scene.NodeID) string {
	if len(ids) == 0 {
		return "[]"
	}
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, string(id))
	}
	return "[" + strings.Join(parts, ",") + "]"
}
