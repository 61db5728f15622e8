package routegraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ntutangyun/ai-ran-sim/errors"
	"github.com/ntutangyun/ai-ran-sim/knowledge"
)

func TestBuildWithoutRouteSet(t *testing.T) {
	g, err := Build(nil)

	require.Error(t, err)
	assert.Nil(t, g)
	assert.ErrorIs(t, err, errors.ErrDataUnavailable)
	assert.True(t, errors.IsInvalid(err))
}

func TestBuildEmptyRouteSet(t *testing.T) {
	g, err := Build(&knowledge.RouteSet{ExplainerRoutes: []knowledge.Route{}})

	require.NoError(t, err)
	assert.Len(t, g.Nodes, 0)
	assert.Len(t, g.Edges, 0)
}

func TestBuildPreservesOrderAndDuplicates(t *testing.T) {
	set := &knowledge.RouteSet{
		ExplainerRoutes: []knowledge.Route{
			{
				Pattern: "/docs/user_equipments",
				Related: []knowledge.RelatedRoute{
					{Pattern: "/docs/cells", Relationship: "connects_to"},
					{Pattern: "/docs/base_stations", Relationship: "served_by"},
				},
			},
			{Pattern: "/docs/cells"},
			// Duplicate top-level patterns are kept as distinct nodes.
			{
				Pattern: "/docs/user_equipments",
				Related: []knowledge.RelatedRoute{
					{Pattern: "/docs/ric", Relationship: "managed_by"},
				},
			},
		},
	}

	g, err := Build(set)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"/docs/user_equipments",
		"/docs/cells",
		"/docs/user_equipments",
	}, g.Nodes)

	assert.Equal(t, []Edge{
		{Source: "/docs/user_equipments", Target: "/docs/cells", Label: "connects_to"},
		{Source: "/docs/user_equipments", Target: "/docs/base_stations", Label: "served_by"},
		{Source: "/docs/user_equipments", Target: "/docs/ric", Label: "managed_by"},
	}, g.Edges)
}

func TestBuildEdgeTargetsMayBeImplicit(t *testing.T) {
	set := &knowledge.RouteSet{
		ExplainerRoutes: []knowledge.Route{
			{
				Pattern: "/docs/sim_engine",
				Related: []knowledge.RelatedRoute{
					{Pattern: "/sim_engine/steps", Relationship: "documents"},
				},
			},
		},
	}

	g, err := Build(set)
	require.NoError(t, err)

	// Target never appears as a node; the downstream renderer decides how
	// to draw implicit endpoints.
	assert.Equal(t, []string{"/docs/sim_engine"}, g.Nodes)
	require.Len(t, g.Edges, 1)
	assert.Equal(t, "/sim_engine/steps", g.Edges[0].Target)
}

func TestSerializeEmptyGraph(t *testing.T) {
	got := Serialize(&Graph{})
	assert.Equal(t, "digraph KnowledgeRoutes {\n}\n", got)
}

func TestSerializeNodesAndEdges(t *testing.T) {
	g := &Graph{
		Nodes: []string{"/a"},
		Edges: []Edge{{Source: "/a", Target: "/b", Label: "depends_on"}},
	}

	got := Serialize(g)
	want := "digraph KnowledgeRoutes {\n" +
		"  \"/a\";\n" +
		"  \"/a\" -> \"/b\" [label=\"depends_on\"];\n" +
		"}\n"
	assert.Equal(t, want, got)
}

func TestSerializeDoesNotEscapeQuotes(t *testing.T) {
	// Quote characters pass through unescaped, producing malformed DOT.
	// This pins the current behavior deliberately.
	g := &Graph{Nodes: []string{`/a"b`}}

	got := Serialize(g)
	assert.Equal(t, "digraph KnowledgeRoutes {\n  \"/a\"b\";\n}\n", got)
}

func TestBuildThenSerializeRoundTrip(t *testing.T) {
	set := &knowledge.RouteSet{
		ExplainerRoutes: []knowledge.Route{
			{
				Pattern: "/docs/base_stations",
				Related: []knowledge.RelatedRoute{
					{Pattern: "/docs/cells", Relationship: "hosts"},
				},
			},
			{Pattern: "/docs/cells"},
		},
	}

	g, err := Build(set)
	require.NoError(t, err)

	want := "digraph KnowledgeRoutes {\n" +
		"  \"/docs/base_stations\";\n" +
		"  \"/docs/cells\";\n" +
		"  \"/docs/base_stations\" -> \"/docs/cells\" [label=\"hosts\"];\n" +
		"}\n"
	assert.Equal(t, want, Serialize(g))
}
