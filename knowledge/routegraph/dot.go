package routegraph

import "strings"

// Serialize renders the graph as DOT text, one line per node and per edge,
// preserving graph order.
//
// Values are wrapped in literal quote characters with no escaping; a
// pattern or label containing a quote produces malformed DOT. Known edge
// case, pinned by test rather than silently changed.
func Serialize(g *Graph) string {
	var b strings.Builder

	b.WriteString("digraph KnowledgeRoutes {\n")
	for _, node := range g.Nodes {
		b.WriteString("  \"")
		b.WriteString(node)
		b.WriteString("\";\n")
	}
	for _, edge := range g.Edges {
		b.WriteString("  \"")
		b.WriteString(edge.Source)
		b.WriteString("\" -> \"")
		b.WriteString(edge.Target)
		b.WriteString("\" [label=\"")
		b.WriteString(edge.Label)
		b.WriteString("\"];\n")
	}
	b.WriteString("}\n")

	return b.String()
}
