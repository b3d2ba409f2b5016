package models

import "time"

// Profile represents a creator's public page. The primary key is the auth
// principal's user ID, so Profile.ID doubles as the owner reference on
// links, posts and products.
type Profile struct {
	ID                string            `json:"id"`
	Username          string            `json:"username"`
	DisplayName       *string           `json:"display_name,omitempty"`
	Bio               *string           `json:"bio,omitempty"`
	AvatarURL         *string           `json:"avatar_url,omitempty"`
	Theme             string            `json:"theme"`
	IsSensitive       bool              `json:"is_sensitive"`
	EnableSubscribers bool              `json:"enable_subscribers"`
	SocialLinks       map[string]string `json:"social_links"`
	QrisImageURL      *string           `json:"qris_image_url,omitempty"`
	DonationLink      *string           `json:"donation_link,omitempty"`
	CustomFooterText  *string           `json:"custom_footer_text,omitempty"`
	CustomFooterURL   *string           `json:"custom_footer_url,omitempty"`
	HideBranding      bool              `json:"hide_branding"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

// UpdateProfileRequest carries the owner-editable profile fields
type UpdateProfileRequest struct {
	DisplayName       *string           `json:"display_name"`
	Bio               *string           `json:"bio"`
	AvatarURL         *string           `json:"avatar_url"`
	Theme             *string           `json:"theme"`
	IsSensitive       *bool             `json:"is_sensitive"`
	EnableSubscribers *bool             `json:"enable_subscribers"`
	SocialLinks       map[string]string `json:"social_links"`
	QrisImageURL      *string           `json:"qris_image_url"`
	DonationLink      *string           `json:"donation_link"`
	CustomFooterText  *string           `json:"custom_footer_text"`
	CustomFooterURL   *string           `json:"custom_footer_url"`
	HideBranding      *bool             `json:"hide_branding"`
}

// Subscriber represents an email capture on a profile
type Subscriber struct {
	ID        string    `json:"id"`
	ProfileID string    `json:"profile_id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// SubscribeRequest is the public subscribe payload
type SubscribeRequest struct {
	Email string `json:"email" binding:"required,email"`
}
