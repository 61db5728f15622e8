package channel

import (
	"context"
	"testing"
)

func TestKeySubject(t *testing.T) {
	key := Key{Namespace: "knowledge_layer", Action: "get_routes"}
	if got := key.Subject(); got != "knowledge_layer.get_routes" {
		t.Errorf("expected knowledge_layer.get_routes, got %s", got)
	}
}

func TestFakeAdapterReplaceSemantics(t *testing.T) {
	fake := NewFakeAdapter()
	key := Key{Namespace: "knowledge_layer", Action: "query_knowledge"}

	var firstCalls, secondCalls int
	if err := fake.RegisterMessageHandler(key, func([]byte) { firstCalls++ }); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if err := fake.RegisterMessageHandler(key, func([]byte) { secondCalls++ }); err != nil {
		t.Fatalf("re-register failed: %v", err)
	}

	fake.Deliver(key, []byte("response"))

	if firstCalls != 0 {
		t.Errorf("replaced handler fired %d times, want 0", firstCalls)
	}
	if secondCalls != 1 {
		t.Errorf("latest handler fired %d times, want 1", secondCalls)
	}
}

func TestFakeAdapterDeregisterDropsMessages(t *testing.T) {
	fake := NewFakeAdapter()
	key := Key{Namespace: "knowledge_layer", Action: "get_routes"}

	calls := 0
	_ = fake.RegisterMessageHandler(key, func([]byte) { calls++ })
	_ = fake.DeregisterMessageHandler(key)

	if delivered := fake.Deliver(key, []byte("late response")); delivered {
		t.Error("expected delivery to be dropped after deregistration")
	}
	if calls != 0 {
		t.Errorf("handler fired %d times after deregistration, want 0", calls)
	}
}

func TestFakeAdapterRecordsSent(t *testing.T) {
	fake := NewFakeAdapter()
	key := Key{Namespace: "knowledge_layer", Action: "query_knowledge"}

	if err := fake.SendMessage(context.Background(), key, []byte("/docs/cells")); err != nil {
		t.Fatalf("send failed: %v", err)
	}

	sent := fake.Sent()
	if len(sent) != 1 {
		t.Fatalf("expected 1 sent message, got %d", len(sent))
	}
	if sent[0].Key != key {
		t.Errorf("unexpected key: %v", sent[0].Key)
	}
	if string(sent[0].Payload) != "/docs/cells" {
		t.Errorf("unexpected payload: %s", sent[0].Payload)
	}
}
