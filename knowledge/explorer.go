package knowledge

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ntutangyun/ai-ran-sim/channel"
	"github.com/ntutangyun/ai-ran-sim/errors"
	"github.com/ntutangyun/ai-ran-sim/metric"
)

// Dependencies provides the external collaborators an Explorer needs.
type Dependencies struct {
	Adapter channel.Adapter // message channel (can be nil: session degrades)
	Logger  *slog.Logger    // structured logger (can be nil, defaults to slog.Default())
	Metrics *metric.Metrics // core metrics (can be nil)
}

// GetLogger returns the configured logger or a default logger if none is provided
func (d *Dependencies) GetLogger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.Default()
}

// Explorer is one dashboard session against the remote knowledge registry.
// It registers handlers for the get_routes and query_knowledge keys on
// Start and deregisters both on Stop, so no stale handler outlives the
// session. All inbound responses are routed to the latest local state.
type Explorer struct {
	adapter channel.Adapter
	logger  *slog.Logger
	metrics *metric.Metrics

	started atomic.Bool

	mu      sync.RWMutex
	routes  *RouteSet
	pending PendingQuery
}

// Keys owned by one explorer session.
var (
	routesKey = channel.Key{Namespace: Namespace, Action: ActionGetRoutes}
	queryKey  = channel.Key{Namespace: Namespace, Action: ActionQueryKnowledge}
)

// NewExplorer creates an explorer session. A nil adapter is tolerated: the
// session starts degraded and inert, reporting MissingCollaborator instead
// of failing, so the surrounding dashboard keeps rendering.
func NewExplorer(deps Dependencies) *Explorer {
	return &Explorer{
		adapter: deps.Adapter,
		logger:  deps.GetLogger().With("component", "knowledge-explorer"),
		metrics: deps.Metrics,
	}
}

// Initialize prepares the explorer session
func (e *Explorer) Initialize() error {
	return nil
}

// Start registers the session's message handlers. Registration failure is
// reported through the logger; the session proceeds degraded rather than
// aborting, so Start only fails when called twice.
func (e *Explorer) Start(_ context.Context) error {
	if !e.started.CompareAndSwap(false, true) {
		return errors.WrapFatal(errors.ErrAlreadyStarted, "Explorer", "Start",
			"start session")
	}

	if e.adapter == nil {
		e.logger.Error("channel adapter not supplied, session is inert",
			"error", errors.ErrMissingCollaborator)
		return nil
	}

	if err := e.adapter.RegisterMessageHandler(routesKey, e.onRoutesResponse); err != nil {
		e.logger.Error("failed to register get_routes handler", "error", err)
	}
	if err := e.adapter.RegisterMessageHandler(queryKey, e.onQueryResponse); err != nil {
		e.logger.Error("failed to register query_knowledge handler", "error", err)
	}

	e.logger.Debug("knowledge explorer session started",
		"keys", []string{routesKey.String(), queryKey.String()})
	return nil
}

// Stop deregisters both keys. Safe on every exit path: a session that was
// never started, or one without an adapter, only produces a diagnostic.
// Responses arriving after Stop are dropped by the channel, not errors.
func (e *Explorer) Stop(_ time.Duration) error {
	if !e.started.CompareAndSwap(true, false) {
		return nil
	}

	if e.adapter == nil {
		e.logger.Warn("no channel adapter at teardown, nothing to deregister",
			"error", errors.ErrMissingCollaborator)
		return nil
	}

	if err := e.adapter.DeregisterMessageHandler(routesKey); err != nil {
		e.logger.Warn("failed to deregister get_routes handler", "error", err)
	}
	if err := e.adapter.DeregisterMessageHandler(queryKey); err != nil {
		e.logger.Warn("failed to deregister query_knowledge handler", "error", err)
	}

	e.logger.Debug("knowledge explorer session stopped")
	return nil
}

// RequestRoutes asks the registry for its full route listing. The response
// arrives asynchronously and replaces the current RouteSet wholesale.
func (e *Explorer) RequestRoutes(ctx context.Context) error {
	if e.adapter == nil {
		e.logger.Error("cannot request routes without channel adapter")
		return errors.WrapFatal(errors.ErrMissingCollaborator, "Explorer",
			"RequestRoutes", "send request")
	}

	if err := e.adapter.SendMessage(ctx, routesKey, nil); err != nil {
		return errors.WrapTransient(err, "Explorer", "RequestRoutes", "send request")
	}

	if e.metrics != nil {
		e.metrics.MessagesSent.WithLabelValues(ActionGetRoutes).Inc()
	}
	return nil
}

// QueryKnowledge submits a key-path query. Text is trimmed of surrounding
// whitespace; a blank result is rejected without sending anything and
// leaves the pending query untouched. The resolved value arrives
// asynchronously and overwrites any previous response.
func (e *Explorer) QueryKnowledge(ctx context.Context, text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		if e.metrics != nil {
			e.metrics.QueriesRejected.Inc()
		}
		e.logger.Warn("rejecting blank knowledge query")
		return errors.WrapInvalid(errors.ErrEmptyInput, "Explorer",
			"QueryKnowledge", "validate query text")
	}

	if e.adapter == nil {
		e.logger.Error("cannot query knowledge without channel adapter")
		return errors.WrapFatal(errors.ErrMissingCollaborator, "Explorer",
			"QueryKnowledge", "send query")
	}

	payload, err := json.Marshal(trimmed)
	if err != nil {
		return errors.WrapInvalid(err, "Explorer", "QueryKnowledge", "encode query")
	}

	e.mu.Lock()
	e.pending.Text = trimmed
	e.mu.Unlock()

	if err := e.adapter.SendMessage(ctx, queryKey, payload); err != nil {
		return errors.WrapTransient(err, "Explorer", "QueryKnowledge", "send query")
	}

	if e.metrics != nil {
		e.metrics.MessagesSent.WithLabelValues(ActionQueryKnowledge).Inc()
	}
	return nil
}

// Routes returns the current RouteSet, or nil if no get_routes response
// has been received this session. Callers must treat the result as
// read-only.
func (e *Explorer) Routes() *RouteSet {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.routes
}

// Query returns a snapshot of the pending query state.
func (e *Explorer) Query() PendingQuery {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.pending
}

// onRoutesResponse handles an inbound get_routes response. Payloads that
// fail schema validation are dropped with a diagnostic; the current
// RouteSet is never partially replaced.
func (e *Explorer) onRoutesResponse(payload []byte) {
	if err := validateRoutesPayload(payload); err != nil {
		e.dropResponse(ActionGetRoutes, "schema", err)
		return
	}

	var set RouteSet
	if err := json.Unmarshal(payload, &set); err != nil {
		e.dropResponse(ActionGetRoutes, "decode", err)
		return
	}

	e.mu.Lock()
	e.routes = &set
	e.mu.Unlock()

	if e.metrics != nil {
		e.metrics.MessagesReceived.WithLabelValues(ActionGetRoutes).Inc()
		e.metrics.RouteSetSize.Set(float64(len(set.ExplainerRoutes)))
		e.metrics.RouteSetUpdates.Inc()
	}
	e.logger.Debug("route set replaced", "routes", len(set.ExplainerRoutes))
}

// onQueryResponse handles an inbound query_knowledge response. The value
// is opaque and rendered verbatim: a JSON string is unquoted, anything
// else is kept as raw text.
func (e *Explorer) onQueryResponse(payload []byte) {
	var value string
	if err := json.Unmarshal(payload, &value); err != nil {
		value = string(payload)
	}

	e.mu.Lock()
	e.pending.Response = value
	e.pending.HasResponse = true
	e.mu.Unlock()

	if e.metrics != nil {
		e.metrics.MessagesReceived.WithLabelValues(ActionQueryKnowledge).Inc()
	}
	e.logger.Debug("knowledge query answered", "bytes", len(payload))
}

func (e *Explorer) dropResponse(action, reason string, err error) {
	if e.metrics != nil {
		e.metrics.ResponsesDropped.WithLabelValues(action, reason).Inc()
	}
	e.logger.Warn("dropping malformed response",
		"action", action, "reason", reason, "error", err)
}
