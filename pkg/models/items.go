package models

import "time"

// Link represents one outbound link on a profile page
type Link struct {
	ID             string     `json:"id"`
	UserID         string     `json:"user_id"`
	Title          string     `json:"title"`
	URL            string     `json:"url"`
	Icon           string     `json:"icon"`
	ImageURL       *string    `json:"image_url,omitempty"`
	Tags           []string   `json:"tags"`
	SortOrder      int        `json:"sort_order"`
	IsActive       bool       `json:"is_active"`
	ScheduledStart *time.Time `json:"scheduled_start,omitempty"`
	ScheduledEnd   *time.Time `json:"scheduled_end,omitempty"`
	IsPrivate      bool       `json:"is_private"`
	PrivatePIN     *string    `json:"-"` // Never serialize the PIN
	CreatedAt      time.Time  `json:"created_at"`
}

// Post represents a published update on a profile page
type Post struct {
	ID             string     `json:"id"`
	ProfileID      string     `json:"profile_id"`
	Title          string     `json:"title"`
	Body           *string    `json:"body,omitempty"`
	ImageURL       *string    `json:"image_url,omitempty"`
	LinkID         *string    `json:"link_id,omitempty"`
	Tags           []string   `json:"tags"`
	IsPublished    bool       `json:"is_published"`
	ScheduledStart *time.Time `json:"scheduled_start,omitempty"`
	ScheduledEnd   *time.Time `json:"scheduled_end,omitempty"`
	IsPrivate      bool       `json:"is_private"`
	PrivatePIN     *string    `json:"-"`
	CreatedAt      time.Time  `json:"created_at"`
}

// Product represents one item in a profile's shop
type Product struct {
	ID           string    `json:"id"`
	ProfileID    string    `json:"profile_id"`
	Title        string    `json:"title"`
	Description  *string   `json:"description,omitempty"`
	Price        float64   `json:"price"`
	ImageURL     *string   `json:"image_url,omitempty"`
	CheckoutLink *string   `json:"checkout_link,omitempty"`
	Category     string    `json:"category"`
	SortOrder    int       `json:"sort_order"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

// SaveLinkRequest carries link create/update fields
type SaveLinkRequest struct {
	Title          string     `json:"title" binding:"required,max=120"`
	URL            string     `json:"url" binding:"required"`
	Icon           string     `json:"icon"`
	ImageURL       *string    `json:"image_url"`
	Tags           []string   `json:"tags"`
	IsActive       *bool      `json:"is_active"`
	ScheduledStart *time.Time `json:"scheduled_start"`
	ScheduledEnd   *time.Time `json:"scheduled_end"`
	IsPrivate      bool       `json:"is_private"`
	PrivatePIN     *string    `json:"private_pin"`
}

// SavePostRequest carries post create/update fields
type SavePostRequest struct {
	Title          string     `json:"title" binding:"required,max=200"`
	Body           *string    `json:"body"`
	ImageURL       *string    `json:"image_url"`
	LinkID         *string    `json:"link_id"`
	Tags           []string   `json:"tags"`
	IsPublished    *bool      `json:"is_published"`
	ScheduledStart *time.Time `json:"scheduled_start"`
	ScheduledEnd   *time.Time `json:"scheduled_end"`
	IsPrivate      bool       `json:"is_private"`
	PrivatePIN     *string    `json:"private_pin"`
}

// SaveProductRequest carries product create/update fields
type SaveProductRequest struct {
	Title        string  `json:"title" binding:"required,max=120"`
	Description  *string `json:"description"`
	Price        float64 `json:"price" binding:"gte=0"`
	ImageURL     *string `json:"image_url"`
	CheckoutLink *string `json:"checkout_link"`
	Category     string  `json:"category"`
	IsActive     *bool   `json:"is_active"`
}

// ReorderRequest is a batch sort_order update for the owner's links
type ReorderRequest struct {
	LinkIDs []string `json:"link_ids" binding:"required,min=1"`
}

// Gating accessors. These let the visibility evaluator treat links, posts
// and products uniformly without importing it here.

// Enabled reports whether the owner has the link switched on
func (l Link) Enabled() bool { return l.IsActive }

// Window returns the link's optional scheduling bounds
func (l Link) Window() (*time.Time, *time.Time) { return l.ScheduledStart, l.ScheduledEnd }

// Lock returns the link's private flag and configured PIN
func (l Link) Lock() (bool, string) {
	if l.PrivatePIN == nil {
		return l.IsPrivate, ""
	}
	return l.IsPrivate, *l.PrivatePIN
}

// Enabled reports whether the post is published
func (p Post) Enabled() bool { return p.IsPublished }

// Window returns the post's optional scheduling bounds
func (p Post) Window() (*time.Time, *time.Time) { return p.ScheduledStart, p.ScheduledEnd }

// Lock returns the post's private flag and configured PIN
func (p Post) Lock() (bool, string) {
	if p.PrivatePIN == nil {
		return p.IsPrivate, ""
	}
	return p.IsPrivate, *p.PrivatePIN
}

// Enabled reports whether the product is listed
func (p Product) Enabled() bool { return p.IsActive }

// Window returns no bounds; products are not schedulable
func (p Product) Window() (*time.Time, *time.Time) { return nil, nil }

// Lock returns no gating; products are never PIN-protected
func (p Product) Lock() (bool, string) { return false, "" }
