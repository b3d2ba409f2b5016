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

// GetPosts returns all of the owner's posts, drafts included
func GetPosts(c *gin.Context) {
	userID := auth.UserID(c)

	posts, err := loadPosts(userID)
	if err != nil {
		logger.WithError(err).Error("Failed to get posts")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get posts"})
		return
	}
	if posts == nil {
		posts = []models.Post{}
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// CreatePost creates a post, as a draft unless is_published is set
func CreatePost(c *gin.Context) {
	userID := auth.UserID(c)

	var req models.SavePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WithError(err).Warn("Invalid create post request")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := visibility.ValidateWindow(req.ScheduledStart, req.ScheduledEnd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	isPublished := false
	if req.IsPublished != nil {
		isPublished = *req.IsPublished
	}

	var post models.Post
	err := db.QueryRow(`
		INSERT INTO posts
		(id, profile_id, title, body, image_url, link_id, tags, is_published,
		 scheduled_start, scheduled_end, is_private, private_pin)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, profile_id, title, body, image_url, link_id, tags,
		          is_published, scheduled_start, scheduled_end, is_private,
		          private_pin, created_at
	`, uuid.New().String(), userID, req.Title, req.Body, req.ImageURL,
		req.LinkID, pq.Array(req.Tags), isPublished, req.ScheduledStart,
		req.ScheduledEnd, req.IsPrivate, req.PrivatePIN).Scan(
		&post.ID, &post.ProfileID, &post.Title, &post.Body, &post.ImageURL,
		&post.LinkID, pq.Array(&post.Tags), &post.IsPublished,
		&post.ScheduledStart, &post.ScheduledEnd, &post.IsPrivate,
		&post.PrivatePIN, &post.CreatedAt,
	)
	if err != nil {
		logger.WithError(err).Error("Failed to create post")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"post": post})
}

// UpdatePost replaces the editable fields of one of the owner's posts
func UpdatePost(c *gin.Context) {
	userID := auth.UserID(c)
	postID := c.Param("id")

	var req models.SavePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WithError(err).Warn("Invalid update post request")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := visibility.ValidateWindow(req.ScheduledStart, req.ScheduledEnd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	isPublished := false
	if req.IsPublished != nil {
		isPublished = *req.IsPublished
	}

	var post models.Post
	err := db.QueryRow(`
		UPDATE posts SET
			title = $1, body = $2, image_url = $3, link_id = $4, tags = $5,
			is_published = $6, scheduled_start = $7, scheduled_end = $8,
			is_private = $9, private_pin = $10
		WHERE id = $11 AND profile_id = $12
		RETURNING id, profile_id, title, body, image_url, link_id, tags,
		          is_published, scheduled_start, scheduled_end, is_private,
		          private_pin, created_at
	`, req.Title, req.Body, req.ImageURL, req.LinkID, pq.Array(req.Tags),
		isPublished, req.ScheduledStart, req.ScheduledEnd, req.IsPrivate,
		req.PrivatePIN, postID, userID).Scan(
		&post.ID, &post.ProfileID, &post.Title, &post.Body, &post.ImageURL,
		&post.LinkID, pq.Array(&post.Tags), &post.IsPublished,
		&post.ScheduledStart, &post.ScheduledEnd, &post.IsPrivate,
		&post.PrivatePIN, &post.CreatedAt,
	)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	} else if err != nil {
		logger.WithError(err).Error("Failed to update post")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": post})
}

// TogglePostPublished flips a post between draft and published
func TogglePostPublished(c *gin.Context) {
	userID := auth.UserID(c)
	postID := c.Param("id")

	var isPublished bool
	err := db.QueryRow(`
		UPDATE posts SET is_published = NOT is_published
		WHERE id = $1 AND profile_id = $2
		RETURNING is_published
	`, postID, userID).Scan(&isPublished)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	} else if err != nil {
		logger.WithError(err).Error("Failed to toggle post")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "is_published": isPublished})
}

// DeletePost removes one of the owner's posts
func DeletePost(c *gin.Context) {
	userID := auth.UserID(c)
	postID := c.Param("id")

	result, err := db.Exec(`DELETE FROM posts WHERE id = $1 AND profile_id = $2`, postID, userID)
	if err != nil {
		logger.WithError(err).Error("Failed to delete post")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
