package models

import "time"

// AnalyticsEvent represents one accepted page view or link click
type AnalyticsEvent struct {
	ID        string    `json:"id"`
	ProfileID string    `json:"profile_id"`
	LinkID    *string   `json:"link_id,omitempty"`
	EventType string    `json:"event_type"`
	Referrer  *string   `json:"referrer,omitempty"`
	Device    string    `json:"device"`
	Country   *string   `json:"country,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// LinkClickCount pairs a link with its click total for the dashboard
type LinkClickCount struct {
	LinkID string `json:"id"`
	Title  string `json:"title"`
	Clicks int    `json:"clicks"`
}

// DailyCount is one day's page views and link clicks
type DailyCount struct {
	Date   string `json:"date"`
	Views  int    `json:"views"`
	Clicks int    `json:"clicks"`
}

// DeviceBreakdown buckets events by inferred device class
type DeviceBreakdown struct {
	Mobile  int `json:"mobile"`
	Desktop int `json:"desktop"`
	Tablet  int `json:"tablet"`
}

// AnalyticsSummary is the owner dashboard aggregation
type AnalyticsSummary struct {
	TotalViews      int              `json:"total_views"`
	TotalClicks     int              `json:"total_clicks"`
	TopLinks        []LinkClickCount `json:"top_links"`
	DeviceBreakdown DeviceBreakdown  `json:"device_breakdown"`
	DailyViews      []DailyCount     `json:"daily_views"`
	UniqueReferrers []string         `json:"unique_referrers"`
}
