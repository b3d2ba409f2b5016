package handlers

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rizperdana/share-link-gan/internal/visibility"
	"github.com/rizperdana/share-link-gan/pkg/models"
)

type unlockRequest struct {
	PIN string `json:"pin" binding:"required"`
}

// UnlockItem checks a visitor-supplied PIN against a private link or post.
// The response never distinguishes a wrong PIN from a non-private item, and
// nothing is persisted: the next unlock presents the PIN again. There is no
// attempt limit; the page clears the input and the visitor retries.
func UnlockItem(c *gin.Context) {
	itemType := c.Param("type")
	itemID := c.Param("id")

	var req unlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "PIN is required"})
		return
	}

	switch itemType {
	case "link":
		var link models.Link
		err := db.QueryRow(`
			SELECT id, url, is_private, private_pin FROM links WHERE id = $1
		`, itemID).Scan(&link.ID, &link.URL, &link.IsPrivate, &link.PrivatePIN)
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
			return
		} else if err != nil {
			logger.WithError(err).Error("Failed to look up link for unlock")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unlock"})
			return
		}
		if !visibility.Unlock(link, req.PIN) {
			c.JSON(http.StatusOK, gin.H{"success": false})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "url": link.URL})

	case "post":
		var post models.Post
		err := db.QueryRow(`
			SELECT id, body, is_private, private_pin FROM posts WHERE id = $1
		`, itemID).Scan(&post.ID, &post.Body, &post.IsPrivate, &post.PrivatePIN)
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
			return
		} else if err != nil {
			logger.WithError(err).Error("Failed to look up post for unlock")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unlock"})
			return
		}
		if !visibility.Unlock(post, req.PIN) {
			c.JSON(http.StatusOK, gin.H{"success": false})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "body": post.Body})

	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown item type"})
	}
}
