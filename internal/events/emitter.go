package events

import (
	"context"
	"log/slog"
	"sync"

	"github.com/phrazzld/neet-pulse/internal/platform/logger"
)

// InMemoryEmitter dispatches events synchronously to registered handlers.
type InMemoryEmitter struct {
	handlers []Handler
	mu       sync.RWMutex
	logger   *slog.Logger
}

var _ Emitter = (*InMemoryEmitter)(nil)

// NewInMemoryEmitter creates an emitter with no handlers.
func NewInMemoryEmitter(log *slog.Logger) *InMemoryEmitter {
	if log == nil {
		log = slog.Default()
	}
	return &InMemoryEmitter{
		logger: log.With("component", "event_emitter"),
	}
}

// RegisterHandler adds a handler that receives every later event.
func (e *InMemoryEmitter) RegisterHandler(handler Handler) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.handlers = append(e.handlers, handler)
	e.logger.Debug("registered event handler", "handler_count", len(e.handlers))
}

// Emit delivers event to every handler. A failing handler does not stop
// delivery to the rest; the first error is returned.
func (e *InMemoryEmitter) Emit(ctx context.Context, event *ChangeEvent) error {
	e.mu.RLock()
	handlers := make([]Handler, len(e.handlers))
	copy(handlers, e.handlers)
	e.mu.RUnlock()

	log := logger.FromContextOrDefault(ctx, e.logger)
	log.DebugContext(ctx, "emitting event",
		"event_id", event.ID,
		"event_type", event.Type,
		"handler_count", len(handlers))

	var firstErr error
	for i, handler := range handlers {
		if err := handler.HandleEvent(ctx, event); err != nil {
			log.ErrorContext(ctx, "handler failed to process event",
				"error", err,
				"handler_index", i,
				"event_id", event.ID,
				"event_type", event.Type)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// NewAuditHandler returns a handler that logs each change at info level.
func NewAuditHandler(log *slog.Logger) Handler {
	if log == nil {
		log = slog.Default()
	}
	log = log.With("component", "audit")
	return HandlerFunc(func(ctx context.Context, event *ChangeEvent) error {
		logger.FromContextOrDefault(ctx, log).InfoContext(ctx, "data changed",
			"event_id", event.ID.String(),
			"event_type", event.Type,
			"payload", string(event.Payload),
			"occurred_at", event.OccurredAt)
		return nil
	})
}
