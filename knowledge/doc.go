// Package knowledge implements the client side of the AI-RAN simulator's
// knowledge layer: an Explorer session that fetches the registry's query
// routes, submits ad hoc key-path queries, and exposes the current route
// set for graph export.
//
// The Explorer owns the registration lifecycle for the two knowledge-layer
// keys on the message channel. Correlation is last-write-wins per key:
// the channel carries no per-call correlation identifier, so the most
// recently delivered response for a key overwrites prior state for that
// key. Concurrent identical-key requests cannot be told apart; this is a
// documented constraint of the channel contract, not solved here.
package knowledge
