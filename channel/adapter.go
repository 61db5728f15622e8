package channel

import "context"

// Key identifies a logical remote operation on the message channel.
type Key struct {
	Namespace string
	Action    string
}

// Subject returns the wire subject for the key ("namespace.action").
func (k Key) Subject() string {
	return k.Namespace + "." + k.Action
}

// String returns the subject form, used in logs and error context.
func (k Key) String() string {
	return k.Subject()
}

// Handler receives the payload of an inbound message for a registered key.
type Handler func(payload []byte)

// Adapter is the channel contract consumed by the explorer.
//
// RegisterMessageHandler installs exactly one handler per key; a second
// call with the same key silently replaces the prior handler. Handlers are
// never stacked, so re-registering can never cause double delivery.
//
// DeregisterMessageHandler removes the handler for a key; subsequent
// inbound messages for that key are dropped with no observable effect.
//
// SendMessage is fire-and-forget: the response, if any, arrives later via
// whichever handler is registered for the key at that time. A nil payload
// sends an empty message.
type Adapter interface {
	SendMessage(ctx context.Context, key Key, payload []byte) error
	RegisterMessageHandler(key Key, handler Handler) error
	DeregisterMessageHandler(key Key) error
}
