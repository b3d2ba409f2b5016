package handlers

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/rizperdana/share-link-gan/internal/ratelimit"
	"github.com/rizperdana/share-link-gan/internal/tracking"
	"github.com/rizperdana/share-link-gan/pkg/models"
)

const trackProfileID = "3f2f1a9c-8d3e-4b1f-9a6c-2e7d5b4a1c0f"

type captureStore struct {
	mu     sync.Mutex
	events []models.AnalyticsEvent
}

func (s *captureStore) InsertEvent(_ context.Context, event models.AnalyticsEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func setupTrackRouter(t *testing.T, quota int) (*gin.Engine, *captureStore, *tracking.Writer) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	Init(nil, log)

	limiter := ratelimit.New(quota, time.Minute, time.Hour)
	t.Cleanup(limiter.Stop)

	store := &captureStore{}
	w := tracking.NewWriter(store, log, 16, nil)

	accepted := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "t_accepted", Help: "t"}, []string{"event_type", "device"})
	rejected := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "t_rejected", Help: "t"}, []string{"reason"})
	InitTracking(tracking.NewValidator(limiter, nil), w, accepted, rejected)

	router := gin.New()
	router.POST("/api/track", TrackEvent)
	return router, store, w
}

func TestTrackEvent_Accepted(t *testing.T) {
	router, store, w := setupTrackRouter(t, 60)

	resp := doJSON(router, http.MethodPost, "/api/track", map[string]any{
		"profile_id": trackProfileID,
		"event_type": "page_view",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", resp.Code, resp.Body.String())
	}

	w.Close()
	store.mu.Lock()
	defer store.mu.Unlock()
	if len(store.events) != 1 {
		t.Fatalf("stored %d events, want 1", len(store.events))
	}
	if store.events[0].EventType != tracking.EventPageView {
		t.Errorf("event_type = %q", store.events[0].EventType)
	}
}

func TestTrackEvent_InvalidPayload(t *testing.T) {
	router, _, w := setupTrackRouter(t, 60)
	defer w.Close()

	resp := doJSON(router, http.MethodPost, "/api/track", map[string]any{
		"profile_id": "nope",
		"event_type": "page_view",
	})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.Code)
	}
	body := decodeBody(t, resp)
	if body["error"] != "Invalid event" {
		t.Errorf("error message should stay generic, got %v", body["error"])
	}
}

func TestTrackEvent_UnknownEventType(t *testing.T) {
	router, _, w := setupTrackRouter(t, 60)
	defer w.Close()

	resp := doJSON(router, http.MethodPost, "/api/track", map[string]any{
		"profile_id": trackProfileID,
		"event_type": "mouse_move",
	})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.Code)
	}
}

func TestTrackEvent_RateLimited(t *testing.T) {
	router, _, w := setupTrackRouter(t, 2)
	defer w.Close()

	payload := map[string]any{"profile_id": trackProfileID, "event_type": "page_view"}
	for i := 0; i < 2; i++ {
		if resp := doJSON(router, http.MethodPost, "/api/track", payload); resp.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i+1, resp.Code)
		}
	}
	resp := doJSON(router, http.MethodPost, "/api/track", payload)
	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", resp.Code)
	}
}
