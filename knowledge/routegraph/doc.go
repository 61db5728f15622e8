// Package routegraph derives a directed-graph model from a knowledge
// RouteSet and serializes it to DOT text for external visualization.
//
// Both transforms are pure and deterministic: node order follows route
// order (duplicates included), edge order follows (route order, related
// order), and the serialization preserves both. The graph is recomputed on
// demand and never cached across RouteSet replacements.
package routegraph
