package handlers

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rizperdana/share-link-gan/pkg/auth"
	"github.com/rizperdana/share-link-gan/pkg/models"
)

// GetProducts returns all of the owner's products, inactive included
func GetProducts(c *gin.Context) {
	userID := auth.UserID(c)

	products, err := loadProducts(userID)
	if err != nil {
		logger.WithError(err).Error("Failed to get products")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get products"})
		return
	}
	if products == nil {
		products = []models.Product{}
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}

// CreateProduct adds a product at the end of the owner's shop
func CreateProduct(c *gin.Context) {
	userID := auth.UserID(c)

	var req models.SaveProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WithError(err).Warn("Invalid create product request")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	var product models.Product
	err := db.QueryRow(`
		INSERT INTO products
		(id, profile_id, title, description, price, image_url, checkout_link,
		 category, sort_order, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8,
		        COALESCE((SELECT MAX(sort_order) + 1 FROM products WHERE profile_id = $2), 0),
		        $9)
		RETURNING id, profile_id, title, description, price, image_url,
		          checkout_link, category, sort_order, is_active, created_at
	`, uuid.New().String(), userID, req.Title, req.Description, req.Price,
		req.ImageURL, req.CheckoutLink, req.Category, isActive).Scan(
		&product.ID, &product.ProfileID, &product.Title, &product.Description,
		&product.Price, &product.ImageURL, &product.CheckoutLink,
		&product.Category, &product.SortOrder, &product.IsActive,
		&product.CreatedAt,
	)
	if err != nil {
		logger.WithError(err).Error("Failed to create product")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"product": product})
}

// UpdateProduct replaces the editable fields of one of the owner's products
func UpdateProduct(c *gin.Context) {
	userID := auth.UserID(c)
	productID := c.Param("id")

	var req models.SaveProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WithError(err).Warn("Invalid update product request")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	var product models.Product
	err := db.QueryRow(`
		UPDATE products SET
			title = $1, description = $2, price = $3, image_url = $4,
			checkout_link = $5, category = $6, is_active = $7
		WHERE id = $8 AND profile_id = $9
		RETURNING id, profile_id, title, description, price, image_url,
		          checkout_link, category, sort_order, is_active, created_at
	`, req.Title, req.Description, req.Price, req.ImageURL, req.CheckoutLink,
		req.Category, isActive, productID, userID).Scan(
		&product.ID, &product.ProfileID, &product.Title, &product.Description,
		&product.Price, &product.ImageURL, &product.CheckoutLink,
		&product.Category, &product.SortOrder, &product.IsActive,
		&product.CreatedAt,
	)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	} else if err != nil {
		logger.WithError(err).Error("Failed to update product")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

// DeleteProduct removes one of the owner's products
func DeleteProduct(c *gin.Context) {
	userID := auth.UserID(c)
	productID := c.Param("id")

	result, err := db.Exec(`DELETE FROM products WHERE id = $1 AND profile_id = $2`, productID, userID)
	if err != nil {
		logger.WithError(err).Error("Failed to delete product")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
