package handlers

import (
	"database/sql"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/rizperdana/share-link-gan/pkg/auth"
	"github.com/rizperdana/share-link-gan/pkg/models"
)

// Subscribe captures a visitor email for a profile that has subscriptions
// enabled. Duplicate emails are acknowledged, not errored, so the page
// never leaks whether an address was already on the list.
func Subscribe(c *gin.Context) {
	username := strings.ToLower(c.Param("username"))

	var req models.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email"})
		return
	}

	var profileID string
	var enabled bool
	err := db.QueryRow(`
		SELECT id, enable_subscribers FROM profiles WHERE username = $1
	`, username).Scan(&profileID, &enabled)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	} else if err != nil {
		logger.WithError(err).Error("Failed to look up profile for subscribe")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to subscribe"})
		return
	}
	if !enabled {
		c.JSON(http.StatusForbidden, gin.H{"error": "Subscriptions are not enabled"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	_, err = db.Exec(`
		INSERT INTO subscribers (id, profile_id, email) VALUES ($1, $2, $3)
	`, uuid.New().String(), profileID, email)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			c.JSON(http.StatusOK, gin.H{"success": true, "message": "Already subscribed"})
			return
		}
		logger.WithError(err).Error("Failed to insert subscriber")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to subscribe"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Subscribed"})
}

// GetSubscribers returns the owner's subscriber list
func GetSubscribers(c *gin.Context) {
	userID := auth.UserID(c)

	rows, err := db.Query(`
		SELECT id, profile_id, email, created_at
		FROM subscribers
		WHERE profile_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		logger.WithError(err).Error("Failed to get subscribers")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get subscribers"})
		return
	}
	defer rows.Close()

	subscribers := []models.Subscriber{}
	for rows.Next() {
		var sub models.Subscriber
		if err := rows.Scan(&sub.ID, &sub.ProfileID, &sub.Email, &sub.CreatedAt); err != nil {
			logger.WithError(err).Error("Failed to scan subscriber")
			continue
		}
		subscribers = append(subscribers, sub)
	}

	c.JSON(http.StatusOK, gin.H{"subscribers": subscribers})
}
