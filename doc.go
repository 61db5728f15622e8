// Package airansim is the client-side knowledge explorer for the AI-RAN
// simulator. It talks to the simulator's knowledge registry over a
// namespace/action keyed message channel, keeps the latest route listing
// and query answer, renders the route graph as DOT text and exports it to
// the system clipboard.
//
// Packages:
//
//   - channel: the message channel contract (Key, Handler, Adapter) plus
//     a test fake
//   - channel/natschannel: NATS-backed channel adapter
//   - channel/wschannel: websocket-backed channel adapter
//   - knowledge: the explorer session (request/response correlation,
//     route set and pending query state)
//   - knowledge/routegraph: RouteSet to graph transform and DOT
//     serialization
//   - clipboard: two-tier clipboard export
//   - config, errors, metric: configuration, error classification and
//     Prometheus metrics shared across the module
//
// The cmd/knowledge-explorer binary wires these into an interactive
// session.
package airansim
