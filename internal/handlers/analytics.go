package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rizperdana/share-link-gan/pkg/auth"
	"github.com/rizperdana/share-link-gan/pkg/models"
)

// GetAnalyticsSummary aggregates the owner's tracking events for the
// dashboard: totals, most-clicked links, device split, daily series and
// distinct referrers. Aggregation runs in SQL, scoped to the owner.
func GetAnalyticsSummary(c *gin.Context) {
	userID := auth.UserID(c)

	var since time.Time
	switch c.DefaultQuery("range", "7d") {
	case "7d":
		since = time.Now().AddDate(0, 0, -7)
	case "30d":
		since = time.Now().AddDate(0, 0, -30)
	case "all":
		// Epoch zero keeps one query shape for every range
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid range"})
		return
	}

	var summary models.AnalyticsSummary
	err := db.QueryRow(`
		SELECT COUNT(*) FILTER (WHERE event_type = 'page_view'),
		       COUNT(*) FILTER (WHERE event_type = 'link_click')
		FROM analytics_events
		WHERE profile_id = $1 AND created_at >= $2
	`, userID, since).Scan(&summary.TotalViews, &summary.TotalClicks)
	if err != nil {
		logger.WithError(err).Error("Failed to get analytics totals")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get analytics"})
		return
	}

	rows, err := db.Query(`
		SELECT l.id, l.title, COUNT(*) AS clicks
		FROM analytics_events e
		JOIN links l ON l.id = e.link_id
		WHERE e.profile_id = $1 AND e.event_type = 'link_click' AND e.created_at >= $2
		GROUP BY l.id, l.title
		ORDER BY clicks DESC
		LIMIT 5
	`, userID, since)
	if err != nil {
		logger.WithError(err).Error("Failed to get top links")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get analytics"})
		return
	}
	summary.TopLinks = []models.LinkClickCount{}
	for rows.Next() {
		var top models.LinkClickCount
		if err := rows.Scan(&top.LinkID, &top.Title, &top.Clicks); err != nil {
			logger.WithError(err).Error("Failed to scan top link")
			continue
		}
		summary.TopLinks = append(summary.TopLinks, top)
	}
	rows.Close()

	rows, err = db.Query(`
		SELECT device, COUNT(*)
		FROM analytics_events
		WHERE profile_id = $1 AND created_at >= $2
		GROUP BY device
	`, userID, since)
	if err != nil {
		logger.WithError(err).Error("Failed to get device breakdown")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get analytics"})
		return
	}
	for rows.Next() {
		var device string
		var count int
		if err := rows.Scan(&device, &count); err != nil {
			continue
		}
		switch device {
		case "mobile":
			summary.DeviceBreakdown.Mobile = count
		case "tablet":
			summary.DeviceBreakdown.Tablet = count
		default:
			summary.DeviceBreakdown.Desktop = count
		}
	}
	rows.Close()

	rows, err = db.Query(`
		SELECT to_char(created_at, 'YYYY-MM-DD') AS day,
		       COUNT(*) FILTER (WHERE event_type = 'page_view'),
		       COUNT(*) FILTER (WHERE event_type = 'link_click')
		FROM analytics_events
		WHERE profile_id = $1 AND created_at >= $2
		GROUP BY day
		ORDER BY day
	`, userID, since)
	if err != nil {
		logger.WithError(err).Error("Failed to get daily series")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get analytics"})
		return
	}
	summary.DailyViews = []models.DailyCount{}
	for rows.Next() {
		var day models.DailyCount
		if err := rows.Scan(&day.Date, &day.Views, &day.Clicks); err != nil {
			continue
		}
		summary.DailyViews = append(summary.DailyViews, day)
	}
	rows.Close()

	rows, err = db.Query(`
		SELECT DISTINCT referrer
		FROM analytics_events
		WHERE profile_id = $1 AND created_at >= $2 AND referrer IS NOT NULL
		ORDER BY referrer
		LIMIT 50
	`, userID, since)
	if err != nil {
		logger.WithError(err).Error("Failed to get referrers")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get analytics"})
		return
	}
	summary.UniqueReferrers = []string{}
	for rows.Next() {
		var referrer string
		if err := rows.Scan(&referrer); err != nil {
			continue
		}
		summary.UniqueReferrers = append(summary.UniqueReferrers, referrer)
	}
	rows.Close()

	c.JSON(http.StatusOK, summary)
}
