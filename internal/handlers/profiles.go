package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"

	"github.com/rizperdana/share-link-gan/internal/social"
	"github.com/rizperdana/share-link-gan/internal/visibility"
	"github.com/rizperdana/share-link-gan/pkg/auth"
	"github.com/rizperdana/share-link-gan/pkg/models"
)

// publicLink is a link as rendered on the public page. Locked links keep
// their destination hidden until the visitor presents the PIN.
type publicLink struct {
	models.Link
	Locked bool `json:"locked"`
}

// publicPost hides the body of locked posts the same way
type publicPost struct {
	models.Post
	Locked bool `json:"locked"`
}

// GetPublicProfile returns a profile page: the profile itself plus its
// currently visible links, published posts and active products. Hidden and
// out-of-schedule items are filtered server-side; private items come back
// locked with their gated fields stripped.
func GetPublicProfile(c *gin.Context) {
	username := strings.ToLower(c.Param("username"))
	now := time.Now()

	var profile models.Profile
	var socialLinksJSON []byte
	err := db.QueryRow(`
		SELECT id, username, display_name, bio, avatar_url, theme,
		       is_sensitive, enable_subscribers, social_links,
		       qris_image_url, donation_link, custom_footer_text,
		       custom_footer_url, hide_branding, created_at, updated_at
		FROM profiles
		WHERE username = $1
	`, username).Scan(
		&profile.ID, &profile.Username, &profile.DisplayName, &profile.Bio,
		&profile.AvatarURL, &profile.Theme, &profile.IsSensitive,
		&profile.EnableSubscribers, &socialLinksJSON, &profile.QrisImageURL,
		&profile.DonationLink, &profile.CustomFooterText, &profile.CustomFooterURL,
		&profile.HideBranding, &profile.CreatedAt, &profile.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	} else if err != nil {
		logger.WithError(err).Error("Failed to get profile")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get profile"})
		return
	}

	profile.SocialLinks = normalizeSocialLinks(socialLinksJSON)

	links, err := loadLinks(profile.ID)
	if err != nil {
		logger.WithError(err).Error("Failed to get links")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get profile"})
		return
	}
	posts, err := loadPosts(profile.ID)
	if err != nil {
		logger.WithError(err).Error("Failed to get posts")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get profile"})
		return
	}
	products, err := loadProducts(profile.ID)
	if err != nil {
		logger.WithError(err).Error("Failed to get products")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get profile"})
		return
	}

	visibleLinks := make([]publicLink, 0)
	for _, link := range visibility.FilterVisible(links, now) {
		pl := publicLink{Link: link, Locked: visibility.Locked(link)}
		if pl.Locked {
			pl.URL = ""
		}
		visibleLinks = append(visibleLinks, pl)
	}

	visiblePosts := make([]publicPost, 0)
	for _, post := range visibility.FilterVisible(posts, now) {
		pp := publicPost{Post: post, Locked: visibility.Locked(post)}
		if pp.Locked {
			pp.Body = nil
		}
		visiblePosts = append(visiblePosts, pp)
	}

	c.JSON(http.StatusOK, gin.H{
		"profile":  profile,
		"links":    visibleLinks,
		"posts":    visiblePosts,
		"products": visibility.FilterVisible(products, now),
	})
}

// UpdateProfile applies the owner-editable profile fields. Absent fields
// are left untouched.
func UpdateProfile(c *gin.Context) {
	userID := auth.UserID(c)

	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WithError(err).Warn("Invalid update profile request")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var socialLinksJSON []byte
	if req.SocialLinks != nil {
		var err error
		socialLinksJSON, err = json.Marshal(req.SocialLinks)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid social links"})
			return
		}
	}

	result, err := db.Exec(`
		UPDATE profiles SET
			display_name = COALESCE($1, display_name),
			bio = COALESCE($2, bio),
			avatar_url = COALESCE($3, avatar_url),
			theme = COALESCE($4, theme),
			is_sensitive = COALESCE($5, is_sensitive),
			enable_subscribers = COALESCE($6, enable_subscribers),
			social_links = COALESCE($7, social_links),
			qris_image_url = COALESCE($8, qris_image_url),
			donation_link = COALESCE($9, donation_link),
			custom_footer_text = COALESCE($10, custom_footer_text),
			custom_footer_url = COALESCE($11, custom_footer_url),
			hide_branding = COALESCE($12, hide_branding),
			updated_at = NOW()
		WHERE id = $13
	`, req.DisplayName, req.Bio, req.AvatarURL, req.Theme, req.IsSensitive,
		req.EnableSubscribers, socialLinksJSON, req.QrisImageURL,
		req.DonationLink, req.CustomFooterText, req.CustomFooterURL,
		req.HideBranding, userID)
	if err != nil {
		logger.WithError(err).Error("Failed to update profile")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// normalizeSocialLinks decodes the stored social_links document and runs
// every handle through the platform URL templates
func normalizeSocialLinks(raw []byte) map[string]string {
	links := map[string]string{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &links); err != nil {
			logger.WithError(err).Warn("Malformed social_links document")
			return map[string]string{}
		}
	}
	for platform, value := range links {
		links[platform] = social.Normalize(platform, value)
	}
	return links
}

func loadLinks(userID string) ([]models.Link, error) {
	rows, err := db.Query(`
		SELECT id, user_id, title, url, icon, image_url, tags, sort_order,
		       is_active, scheduled_start, scheduled_end, is_private,
		       private_pin, created_at
		FROM links
		WHERE user_id = $1
		ORDER BY sort_order, created_at
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links []models.Link
	for rows.Next() {
		var link models.Link
		err := rows.Scan(
			&link.ID, &link.UserID, &link.Title, &link.URL, &link.Icon,
			&link.ImageURL, pq.Array(&link.Tags), &link.SortOrder,
			&link.IsActive, &link.ScheduledStart, &link.ScheduledEnd,
			&link.IsPrivate, &link.PrivatePIN, &link.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		links = append(links, link)
	}
	return links, rows.Err()
}

func loadPosts(profileID string) ([]models.Post, error) {
	rows, err := db.Query(`
		SELECT id, profile_id, title, body, image_url, link_id, tags,
		       is_published, scheduled_start, scheduled_end, is_private,
		       private_pin, created_at
		FROM posts
		WHERE profile_id = $1
		ORDER BY created_at DESC
	`, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		var post models.Post
		err := rows.Scan(
			&post.ID, &post.ProfileID, &post.Title, &post.Body, &post.ImageURL,
			&post.LinkID, pq.Array(&post.Tags), &post.IsPublished,
			&post.ScheduledStart, &post.ScheduledEnd, &post.IsPrivate,
			&post.PrivatePIN, &post.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

func loadProducts(profileID string) ([]models.Product, error) {
	rows, err := db.Query(`
		SELECT id, profile_id, title, description, price, image_url,
		       checkout_link, category, sort_order, is_active, created_at
		FROM products
		WHERE profile_id = $1
		ORDER BY sort_order, created_at
	`, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var product models.Product
		err := rows.Scan(
			&product.ID, &product.ProfileID, &product.Title, &product.Description,
			&product.Price, &product.ImageURL, &product.CheckoutLink,
			&product.Category, &product.SortOrder, &product.IsActive,
			&product.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}
