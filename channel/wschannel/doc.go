// Package wschannel implements the channel adapter contract over a
// WebSocket connection to the simulator backend. Messages travel in a JSON
// envelope {"type": "namespace.action", "id": ..., "data": ...}; inbound
// envelopes are dispatched to the single handler registered for their key,
// and envelopes for unregistered keys are dropped.
package wschannel
