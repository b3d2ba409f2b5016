package handlers

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/rizperdana/share-link-gan/internal/visibility"
	"github.com/rizperdana/share-link-gan/pkg/auth"
	"github.com/rizperdana/share-link-gan/pkg/models"
)

// GetLinks returns all of the owner's links, including hidden and
// out-of-schedule ones
func GetLinks(c *gin.Context) {
	userID := auth.UserID(c)

	links, err := loadLinks(userID)
	if err != nil {
		logger.WithError(err).Error("Failed to get links")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get links"})
		return
	}
	if links == nil {
		links = []models.Link{}
	}

	c.JSON(http.StatusOK, gin.H{"links": links})
}

// CreateLink creates a new link at the end of the owner's list
func CreateLink(c *gin.Context) {
	userID := auth.UserID(c)

	var req models.SaveLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WithError(err).Warn("Invalid create link request")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := visibility.ValidateWindow(req.ScheduledStart, req.ScheduledEnd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	var link models.Link
	err := db.QueryRow(`
		INSERT INTO links
		(id, user_id, title, url, icon, image_url, tags, sort_order,
		 is_active, scheduled_start, scheduled_end, is_private, private_pin)
		VALUES ($1, $2, $3, $4, $5, $6, $7,
		        COALESCE((SELECT MAX(sort_order) + 1 FROM links WHERE user_id = $2), 0),
		        $8, $9, $10, $11, $12)
		RETURNING id, user_id, title, url, icon, image_url, tags, sort_order,
		          is_active, scheduled_start, scheduled_end, is_private,
		          private_pin, created_at
	`, uuid.New().String(), userID, req.Title, req.URL, req.Icon, req.ImageURL,
		pq.Array(req.Tags), isActive, req.ScheduledStart, req.ScheduledEnd,
		req.IsPrivate, req.PrivatePIN).Scan(
		&link.ID, &link.UserID, &link.Title, &link.URL, &link.Icon,
		&link.ImageURL, pq.Array(&link.Tags), &link.SortOrder,
		&link.IsActive, &link.ScheduledStart, &link.ScheduledEnd,
		&link.IsPrivate, &link.PrivatePIN, &link.CreatedAt,
	)
	if err != nil {
		logger.WithError(err).Error("Failed to create link")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create link"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"link": link})
}

// UpdateLink replaces the editable fields of one of the owner's links
func UpdateLink(c *gin.Context) {
	userID := auth.UserID(c)
	linkID := c.Param("id")

	var req models.SaveLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WithError(err).Warn("Invalid update link request")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := visibility.ValidateWindow(req.ScheduledStart, req.ScheduledEnd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	var link models.Link
	err := db.QueryRow(`
		UPDATE links SET
			title = $1, url = $2, icon = $3, image_url = $4, tags = $5,
			is_active = $6, scheduled_start = $7, scheduled_end = $8,
			is_private = $9, private_pin = $10
		WHERE id = $11 AND user_id = $12
		RETURNING id, user_id, title, url, icon, image_url, tags, sort_order,
		          is_active, scheduled_start, scheduled_end, is_private,
		          private_pin, created_at
	`, req.Title, req.URL, req.Icon, req.ImageURL, pq.Array(req.Tags),
		isActive, req.ScheduledStart, req.ScheduledEnd, req.IsPrivate,
		req.PrivatePIN, linkID, userID).Scan(
		&link.ID, &link.UserID, &link.Title, &link.URL, &link.Icon,
		&link.ImageURL, pq.Array(&link.Tags), &link.SortOrder,
		&link.IsActive, &link.ScheduledStart, &link.ScheduledEnd,
		&link.IsPrivate, &link.PrivatePIN, &link.CreatedAt,
	)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "Link not found"})
		return
	} else if err != nil {
		logger.WithError(err).Error("Failed to update link")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update link"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"link": link})
}

// DeleteLink removes one of the owner's links
func DeleteLink(c *gin.Context) {
	userID := auth.UserID(c)
	linkID := c.Param("id")

	result, err := db.Exec(`DELETE FROM links WHERE id = $1 AND user_id = $2`, linkID, userID)
	if err != nil {
		logger.WithError(err).Error("Failed to delete link")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete link"})
		return
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Link not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ReorderLinks rewrites sort_order from the given ID sequence. The batch is
// applied in one transaction; IDs not owned by the caller are ignored by
// the ownership predicate.
func ReorderLinks(c *gin.Context) {
	userID := auth.UserID(c)

	var req models.ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WithError(err).Warn("Invalid reorder request")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tx, err := db.Begin()
	if err != nil {
		logger.WithError(err).Error("Failed to begin reorder transaction")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reorder links"})
		return
	}
	defer tx.Rollback()

	for position, linkID := range req.LinkIDs {
		if _, err := tx.Exec(`
			UPDATE links SET sort_order = $1 WHERE id = $2 AND user_id = $3
		`, position, linkID, userID); err != nil {
			logger.WithError(err).Error("Failed to reorder links")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reorder links"})
			return
		}
	}

	if err := tx.Commit(); err != nil {
		logger.WithError(err).Error("Failed to commit reorder")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reorder links"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
