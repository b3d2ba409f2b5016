package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rizperdana/share-link-gan/internal/tracking"
)

// TrackEvent accepts a page view or link click fired from a public profile
// page. Admission is best-effort: the response only promises the event was
// accepted, not that it was stored. Rejections stay generic so the endpoint
// discloses nothing about validation internals.
func TrackEvent(c *gin.Context) {
	var raw tracking.RawEvent
	if err := c.ShouldBindJSON(&raw); err != nil {
		eventsRejected.WithLabelValues("malformed").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event"})
		return
	}

	meta := tracking.RequestMeta{
		UserAgent: c.GetHeader("User-Agent"),
		Referrer:  c.GetHeader("Referer"),
		Country:   c.GetHeader("CF-IPCountry"),
		ClientIP:  c.ClientIP(),
	}

	event, err := validator.Accept(c.ClientIP(), raw, meta, time.Now())
	switch err {
	case nil:
	case tracking.ErrRateLimited:
		eventsRejected.WithLabelValues("rate_limited").Inc()
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
		return
	case tracking.ErrInvalidPayload:
		eventsRejected.WithLabelValues("invalid").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event"})
		return
	default:
		logger.WithError(err).Error("Failed to accept tracking event")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record event"})
		return
	}

	// Full buffer drops the event; the dropped counter owns that signal
	writer.Enqueue(event)
	eventsAccepted.WithLabelValues(event.EventType, event.Device).Inc()

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
