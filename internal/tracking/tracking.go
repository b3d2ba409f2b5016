// Package tracking validates, enriches and records analytics events fired
// from public profile pages. Acceptance is best-effort: events rejected by
// the rate limiter or dropped on a full write buffer are lost by design.
package tracking

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/rizperdana/share-link-gan/internal/ratelimit"
	"github.com/rizperdana/share-link-gan/pkg/geoip"
	"github.com/rizperdana/share-link-gan/pkg/models"
)

// Event types accepted by the tracking endpoint
const (
	EventPageView  = "page_view"
	EventLinkClick = "link_click"
)

// Device classes inferred from the user agent
const (
	DeviceMobile  = "mobile"
	DeviceDesktop = "desktop"
	DeviceTablet  = "tablet"
)

var (
	// ErrInvalidPayload reports a malformed or incomplete event payload.
	// The specific field is logged, not disclosed to the client.
	ErrInvalidPayload = errors.New("invalid event payload")
	// ErrRateLimited reports that the source key exhausted its window quota
	ErrRateLimited = errors.New("rate limited")
)

// uuidRe matches the canonical textual UUID form the store uses for keys
var uuidRe = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// RawEvent is the unvalidated tracking payload as posted by a page
type RawEvent struct {
	ProfileID string `json:"profile_id"`
	LinkID    string `json:"link_id,omitempty"`
	EventType string `json:"event_type"`
}

// RequestMeta carries the ambient request signals used for enrichment
type RequestMeta struct {
	UserAgent string
	Referrer  string
	Country   string
	ClientIP  string
}

// Validator applies rate limiting, shape validation and enrichment to raw
// events. The geo reader is optional; when nil, country enrichment relies
// on the request header alone.
type Validator struct {
	limiter *ratelimit.Limiter
	geo     *geoip.Reader
}

// NewValidator creates a validator with an injected limiter and optional
// geo reader
func NewValidator(limiter *ratelimit.Limiter, geo *geoip.Reader) *Validator {
	return &Validator{limiter: limiter, geo: geo}
}

// Accept runs the full admission pipeline for one event: rate limit by
// source key, validate shape, enrich from request metadata. On success it
// returns the event ready for handoff with CreatedAt set to now.
func (v *Validator) Accept(sourceKey string, raw RawEvent, meta RequestMeta, now time.Time) (models.AnalyticsEvent, error) {
	if allowed, _, _ := v.limiter.Allow(sourceKey, now); !allowed {
		return models.AnalyticsEvent{}, ErrRateLimited
	}

	if err := validate(raw); err != nil {
		return models.AnalyticsEvent{}, err
	}

	event := models.AnalyticsEvent{
		ProfileID: strings.ToLower(raw.ProfileID),
		EventType: raw.EventType,
		Device:    InferDevice(meta.UserAgent),
		CreatedAt: now,
	}
	if raw.LinkID != "" {
		linkID := strings.ToLower(raw.LinkID)
		event.LinkID = &linkID
	}
	if meta.Referrer != "" {
		referrer := meta.Referrer
		event.Referrer = &referrer
	}
	if country := v.country(meta); country != "" {
		event.Country = &country
	}

	return event, nil
}

func validate(raw RawEvent) error {
	if raw.ProfileID == "" || raw.EventType == "" {
		return ErrInvalidPayload
	}
	if !isUUID(raw.ProfileID) {
		return ErrInvalidPayload
	}
	if raw.LinkID != "" && !isUUID(raw.LinkID) {
		return ErrInvalidPayload
	}
	if raw.EventType != EventPageView && raw.EventType != EventLinkClick {
		return ErrInvalidPayload
	}
	return nil
}

func isUUID(s string) bool {
	return uuidRe.MatchString(strings.ToLower(s))
}

// country prefers the edge-provided geo header and falls back to an MMDB
// lookup of the client address
func (v *Validator) country(meta RequestMeta) string {
	if meta.Country != "" {
		return meta.Country
	}
	return v.geo.CountryCode(meta.ClientIP)
}

// InferDevice classifies a user agent. Mobile patterns are checked before
// tablet patterns; the first match wins.
func InferDevice(userAgent string) string {
	ua := strings.ToLower(userAgent)
	switch {
	case strings.Contains(ua, "mobile") || strings.Contains(ua, "android") || strings.Contains(ua, "iphone"):
		return DeviceMobile
	case strings.Contains(ua, "tablet") || strings.Contains(ua, "ipad"):
		return DeviceTablet
	default:
		return DeviceDesktop
	}
}
