package routegraph

import (
	"github.com/ntutangyun/ai-ran-sim/errors"
	"github.com/ntutangyun/ai-ran-sim/knowledge"
)

// Edge is a labeled directed link between two route patterns.
type Edge struct {
	Source string
	Target string
	Label  string
}

// Graph is the node/edge model derived from a RouteSet. Nodes holds one
// entry per top-level route, in input order, without deduplication. Edge
// targets may reference patterns absent from Nodes; rendering of such
// implicit endpoints is the downstream visualizer's concern.
type Graph struct {
	Nodes []string
	Edges []Edge
}

// Build derives a Graph from the given RouteSet. A nil RouteSet means no
// get_routes response has been received yet; that is a reported error, not
// an empty graph, so callers can distinguish "empty registry" from
// "nothing fetched".
func Build(set *knowledge.RouteSet) (*Graph, error) {
	if set == nil {
		return nil, errors.WrapInvalid(errors.ErrDataUnavailable,
			"Builder", "Build", "derive graph")
	}

	g := &Graph{
		Nodes: make([]string, 0, len(set.ExplainerRoutes)),
	}

	for _, route := range set.ExplainerRoutes {
		g.Nodes = append(g.Nodes, route.Pattern)
		for _, related := range route.Related {
			g.Edges = append(g.Edges, Edge{
				Source: route.Pattern,
				Target: related.Pattern,
				Label:  related.Relationship,
			})
		}
	}

	return g, nil
}
