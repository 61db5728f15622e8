package channel

import (
	"context"
	"sync"
)

// SentMessage records one SendMessage call on a FakeAdapter.
type SentMessage struct {
	Key     Key
	Payload []byte
}

// FakeAdapter is an in-memory Adapter for tests. It records sent messages
// and lets tests deliver inbound payloads through the handler table with
// the same replace/drop semantics as a real channel.
type FakeAdapter struct {
	mu       sync.Mutex
	handlers map[Key]Handler
	sent     []SentMessage

	// SendErr, when set, is returned from every SendMessage call.
	SendErr error
}

// NewFakeAdapter creates an empty fake channel adapter.
func NewFakeAdapter() *FakeAdapter {
	return &FakeAdapter{
		handlers: make(map[Key]Handler),
	}
}

// SendMessage records the message; it never reaches a remote service.
func (f *FakeAdapter) SendMessage(_ context.Context, key Key, payload []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.SendErr != nil {
		return f.SendErr
	}
	f.sent = append(f.sent, SentMessage{Key: key, Payload: payload})
	return nil
}

// RegisterMessageHandler installs the handler, replacing any prior one.
func (f *FakeAdapter) RegisterMessageHandler(key Key, handler Handler) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.handlers[key] = handler
	return nil
}

// DeregisterMessageHandler removes the handler for the key.
func (f *FakeAdapter) DeregisterMessageHandler(key Key) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.handlers, key)
	return nil
}

// Deliver simulates an inbound message. Messages for keys with no
// registered handler are dropped, matching channel semantics. It reports
// whether a handler observed the payload.
func (f *FakeAdapter) Deliver(key Key, payload []byte) bool {
	f.mu.Lock()
	handler, ok := f.handlers[key]
	f.mu.Unlock()

	if !ok {
		return false
	}
	handler(payload)
	return true
}

// Sent returns a copy of all recorded messages.
func (f *FakeAdapter) Sent() []SentMessage {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]SentMessage, len(f.sent))
	copy(out, f.sent)
	return out
}

// Registered reports whether a handler is currently installed for the key.
func (f *FakeAdapter) Registered(key Key) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	_, ok := f.handlers[key]
	return ok
}

var _ Adapter = (*FakeAdapter)(nil)
