package tracking

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/rizperdana/share-link-gan/pkg/logging"
	"github.com/rizperdana/share-link-gan/pkg/models"
)

// EventStore persists accepted analytics events
type EventStore interface {
	InsertEvent(ctx context.Context, event models.AnalyticsEvent) error
}

// Writer decouples event acceptance from storage. Accepted events go into
// a bounded buffer consumed by a single goroutine; when the buffer is full
// the event is dropped and counted, so delivery loss is measurable instead
// of silently swallowed. At-most-once, no retries.
type Writer struct {
	store   EventStore
	logger  logging.Logger
	events  chan models.AnalyticsEvent
	dropped prometheus.Counter
	wg      sync.WaitGroup
	once    sync.Once
}

// NewWriter creates a writer with the given buffer size and starts its
// consumer goroutine. Call Close to drain and stop it.
func NewWriter(store EventStore, logger logging.Logger, bufferSize int, dropped prometheus.Counter) *Writer {
	if bufferSize <= 0 {
		bufferSize = 1024
	}

	w := &Writer{
		store:   store,
		logger:  logger,
		events:  make(chan models.AnalyticsEvent, bufferSize),
		dropped: dropped,
	}

	w.wg.Add(1)
	go w.consume()

	return w
}

func (w *Writer) consume() {
	defer w.wg.Done()
	for event := range w.events {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := w.store.InsertEvent(ctx, event); err != nil {
			// Fire-and-forget: log once, never retry
			w.logger.WithError(err).WithFields(logging.Fields{
				"profile_id": event.ProfileID,
				"event_type": event.EventType,
			}).Error("Failed to insert analytics event")
		}
		cancel()
	}
}

// Enqueue hands an event to the consumer. Returns false when the buffer
// is full and the event was dropped.
func (w *Writer) Enqueue(event models.AnalyticsEvent) bool {
	select {
	case w.events <- event:
		return true
	default:
		if w.dropped != nil {
			w.dropped.Inc()
		}
		return false
	}
}

// Close drains buffered events and stops the consumer
func (w *Writer) Close() {
	w.once.Do(func() {
		close(w.events)
	})
	w.wg.Wait()
}
