package knowledge

// Message channel keys for the knowledge layer. The remote registry answers
// on the same (namespace, action) key the request was sent on.
const (
	Namespace            = "knowledge_layer"
	ActionGetRoutes      = "get_routes"
	ActionQueryKnowledge = "query_knowledge"
)

// RelatedRoute is a labeled directed link from an owning route to another
// pattern. The target pattern is not required to exist as a top-level route.
type RelatedRoute struct {
	Pattern      string `json:"pattern"`
	Relationship string `json:"relationship"`
}

// Route is a path-like identifier naming a queryable knowledge key, with
// zero or more declared relationships to other routes. Pattern uniqueness
// across a RouteSet is not guaranteed or enforced.
type Route struct {
	Pattern string         `json:"pattern"`
	Related []RelatedRoute `json:"related"`
}

// RouteSet is the wholesale route listing from a single get_routes
// response. Each response replaces the prior RouteSet entirely.
type RouteSet struct {
	ExplainerRoutes []Route `json:"explainer_routes"`
}

// PendingQuery holds the operator's current query text and the last
// response received for it. Response persists until overwritten by a later
// query_knowledge response or the session ends.
type PendingQuery struct {
	Text        string
	Response    string
	HasResponse bool
}

// DocRoutes lists the documentation entry points of the knowledge registry,
// used as suggested starting queries.
var DocRoutes = []string{
	"/docs/user_equipments",
	"/docs/base_stations",
	"/docs/cells",
	"/docs/ric",
	"/docs/sim_engine",
	"/docs/ai_services",
}
