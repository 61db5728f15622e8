package natschannel

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ntutangyun/ai-ran-sim/channel"
	"github.com/ntutangyun/ai-ran-sim/errors"
	"github.com/ntutangyun/ai-ran-sim/metric"
)

func TestNewClient(t *testing.T) {
	client, err := NewClient("nats://localhost:4222")
	require.NoError(t, err)

	assert.Equal(t, "nats://localhost:4222", client.URL())
	assert.Equal(t, StatusDisconnected, client.Status())
	assert.False(t, client.IsHealthy())
	assert.Equal(t, int32(0), client.Failures())
}

func TestConnectionStatus_String(t *testing.T) {
	tests := []struct {
		status   ConnectionStatus
		expected string
	}{
		{StatusDisconnected, "disconnected"},
		{StatusConnecting, "connecting"},
		{StatusConnected, "connected"},
		{StatusReconnecting, "reconnecting"},
		{StatusClosed, "closed"},
		{ConnectionStatus(99), "unknown"},
	}

	for _, test := range tests {
		t.Run(test.expected, func(t *testing.T) {
			assert.Equal(t, test.expected, test.status.String())
		})
	}
}

func TestConnectionOptions(t *testing.T) {
	registry := metric.NewMetricsRegistry()

	client, err := NewClient("nats://localhost:4222",
		WithMaxReconnects(3),
		WithReconnectWait(time.Second),
		WithTimeout(2*time.Second),
		WithClientName("explorer-test"),
		WithMetricsRegistry(registry),
	)
	require.NoError(t, err)

	assert.Equal(t, 3, client.maxReconnects)
	assert.Equal(t, time.Second, client.reconnectWait)
	assert.Equal(t, 2*time.Second, client.timeout)
	assert.Equal(t, "explorer-test", client.clientName)
	assert.NotNil(t, client.metrics)
}

func TestOperationsRequireConnection(t *testing.T) {
	client, err := NewClient("nats://localhost:4222")
	require.NoError(t, err)

	key := channel.Key{Namespace: "knowledge_layer", Action: "get_routes"}

	sendErr := client.SendMessage(context.Background(), key, nil)
	require.Error(t, sendErr)
	assert.ErrorIs(t, sendErr, errors.ErrNotConnected)
	assert.True(t, errors.IsTransient(sendErr))

	regErr := client.RegisterMessageHandler(key, func([]byte) {})
	require.Error(t, regErr)
	assert.ErrorIs(t, regErr, errors.ErrNotConnected)

	// Deregistering a key that was never registered is a no-op.
	assert.NoError(t, client.DeregisterMessageHandler(key))
}

func TestCloseIsIdempotent(t *testing.T) {
	client, err := NewClient("nats://localhost:4222")
	require.NoError(t, err)

	require.NoError(t, client.Close(context.Background()))
	assert.Equal(t, StatusClosed, client.Status())
	require.NoError(t, client.Close(context.Background()))
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *clientMetrics
	m.setConnected(true)
	m.recordReconnect()
}
