// Package visibility decides which items on a profile page a visitor may
// see at a given instant, and whether a PIN unlocks a private item.
//
// Evaluation is pure: the same item list and reference time always produce
// the same result. Ordering is preserved; callers apply sort_order upstream.
package visibility

import (
	"errors"
	"time"
)

// ErrInvalidSchedule reports a schedule whose start falls after its end.
// Schedules are validated when items are written, so the read path never
// has to second-guess stored bounds.
var ErrInvalidSchedule = errors.New("invalid schedule: start is after end")

// Gated is the minimal view the evaluator needs over a link, post or
// product. Concrete item types satisfy it structurally.
type Gated interface {
	// Enabled reports whether the owner has the item switched on
	// (is_active for links and products, is_published for posts).
	Enabled() bool
	// Window returns the optional scheduling bounds. Nil means no
	// constraint on that side.
	Window() (start, end *time.Time)
	// Lock returns the private flag and the configured PIN, empty when
	// no PIN is set.
	Lock() (private bool, pin string)
}

// VisibleAt reports whether a single item is visible at the given instant.
// Both schedule bounds are inclusive: an item whose start and end both
// equal now is visible.
func VisibleAt(item Gated, now time.Time) bool {
	if !item.Enabled() {
		return false
	}
	start, end := item.Window()
	if start != nil && start.After(now) {
		return false
	}
	if end != nil && end.Before(now) {
		return false
	}
	return true
}

// FilterVisible returns the subset of items visible at the given instant,
// preserving input order.
func FilterVisible[T Gated](items []T, now time.Time) []T {
	visible := make([]T, 0, len(items))
	for _, item := range items {
		if VisibleAt(item, now) {
			visible = append(visible, item)
		}
	}
	return visible
}

// Locked reports whether an item must be rendered locked: private with a
// non-empty PIN configured.
func Locked(item Gated) bool {
	private, pin := item.Lock()
	return private && pin != ""
}

// Unlock reports whether the candidate PIN opens a private item. The match
// is exact: case-sensitive, no trimming. There is no lockout or attempt
// counting; the caller clears the input and lets the visitor retry.
// Unlock state is session-transient and never persisted.
func Unlock(item Gated, candidatePIN string) bool {
	private, pin := item.Lock()
	return private && pin != "" && candidatePIN == pin
}

// ValidateWindow checks schedule bounds at write time. A nil bound is no
// constraint; equal bounds are a valid single-instant window.
func ValidateWindow(start, end *time.Time) error {
	if start != nil && end != nil && start.After(*end) {
		return ErrInvalidSchedule
	}
	return nil
}
