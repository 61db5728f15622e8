// Package channel defines the message channel contract consumed by the
// knowledge explorer: fire-and-forget sends and a single-callback handler
// table keyed by (namespace, action).
//
// The channel owns connection lifecycle, reconnection and framing; the
// explorer only consumes SendMessage, RegisterMessageHandler and
// DeregisterMessageHandler. There is no per-call correlation identifier:
// a response for a key is delivered to whichever handler is registered for
// that key at delivery time. Two in-flight requests for the same key are
// therefore indistinguishable; single-session usage is assumed.
//
// Implementations live in the natschannel and wschannel subpackages.
package channel
