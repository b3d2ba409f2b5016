package visibility

import (
	"testing"
	"time"

	"github.com/rizperdana/share-link-gan/pkg/models"
)

var baseTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func tp(t time.Time) *time.Time { return &t }
func sp(s string) *string       { return &s }

func makeLink(active bool, start, end *time.Time) models.Link {
	return models.Link{ID: "link-1", IsActive: active, ScheduledStart: start, ScheduledEnd: end}
}

func TestVisibleAt_NoSchedule(t *testing.T) {
	link := makeLink(true, nil, nil)
	for _, now := range []time.Time{baseTime, baseTime.AddDate(-10, 0, 0), baseTime.AddDate(10, 0, 0)} {
		if !VisibleAt(link, now) {
			t.Fatalf("unscheduled active link should be visible at %v", now)
		}
	}
}

func TestVisibleAt_Inactive(t *testing.T) {
	if VisibleAt(makeLink(false, nil, nil), baseTime) {
		t.Fatal("inactive link must never be visible")
	}
}

func TestVisibleAt_StartBoundary(t *testing.T) {
	start := baseTime.Add(time.Hour)
	link := makeLink(true, &start, nil)

	if VisibleAt(link, baseTime) {
		t.Fatal("link must be hidden before scheduled_start")
	}
	if !VisibleAt(link, start) {
		t.Fatal("link must be visible exactly at scheduled_start (inclusive)")
	}
	if !VisibleAt(link, start.Add(time.Minute)) {
		t.Fatal("link must be visible after scheduled_start")
	}
}

func TestVisibleAt_EndBoundary(t *testing.T) {
	end := baseTime.Add(-time.Hour)
	link := makeLink(true, nil, &end)

	if VisibleAt(link, baseTime) {
		t.Fatal("link must be hidden after scheduled_end")
	}
	if !VisibleAt(link, end) {
		t.Fatal("link must be visible exactly at scheduled_end (inclusive)")
	}
}

func TestVisibleAt_SingleInstantWindow(t *testing.T) {
	link := makeLink(true, tp(baseTime), tp(baseTime))
	if !VisibleAt(link, baseTime) {
		t.Fatal("start == end == now must be visible (inclusive on both ends)")
	}
	if VisibleAt(link, baseTime.Add(time.Second)) {
		t.Fatal("single-instant window must close after the instant")
	}
}

func TestFilterVisible_PreservesOrderAndIsPure(t *testing.T) {
	links := []models.Link{
		{ID: "a", IsActive: true},
		{ID: "b", IsActive: false},
		{ID: "c", IsActive: true, ScheduledStart: tp(baseTime.Add(time.Hour))},
		{ID: "d", IsActive: true, ScheduledEnd: tp(baseTime.Add(time.Hour))},
	}

	first := FilterVisible(links, baseTime)
	second := FilterVisible(links, baseTime)

	if len(first) != 2 || first[0].ID != "a" || first[1].ID != "d" {
		t.Fatalf("unexpected filter result: %+v", first)
	}
	if len(second) != len(first) {
		t.Fatal("repeated evaluation with same inputs must yield identical output")
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatal("repeated evaluation with same inputs must yield identical output")
		}
	}
}

func TestFilterVisible_Posts(t *testing.T) {
	posts := []models.Post{
		{ID: "p1", IsPublished: true},
		{ID: "p2", IsPublished: false},
		{ID: "p3", IsPublished: true, ScheduledEnd: tp(baseTime.Add(-time.Minute))},
	}
	got := FilterVisible(posts, baseTime)
	if len(got) != 1 || got[0].ID != "p1" {
		t.Fatalf("unexpected visible posts: %+v", got)
	}
}

func TestUnlock(t *testing.T) {
	link := models.Link{IsPrivate: true, PrivatePIN: sp("1234")}

	cases := []struct {
		candidate string
		want      bool
	}{
		{"1234", true},
		{"01234", false},
		{"1234 ", false},
		{" 1234", false},
		{"", false},
		{"12345", false},
	}
	for _, tc := range cases {
		if got := Unlock(link, tc.candidate); got != tc.want {
			t.Errorf("Unlock(%q) = %v, want %v", tc.candidate, got, tc.want)
		}
	}
}

func TestUnlock_NotPrivate(t *testing.T) {
	link := models.Link{IsPrivate: false, PrivatePIN: sp("1234")}
	if Unlock(link, "1234") {
		t.Fatal("non-private item must not unlock")
	}
}

func TestUnlock_NoPIN(t *testing.T) {
	link := models.Link{IsPrivate: true}
	if Unlock(link, "") {
		t.Fatal("private item without a PIN must not unlock on empty candidate")
	}
}

func TestLocked(t *testing.T) {
	if !Locked(models.Link{IsPrivate: true, PrivatePIN: sp("9")}) {
		t.Fatal("private link with PIN should render locked")
	}
	if Locked(models.Link{IsPrivate: true}) {
		t.Fatal("private link without PIN is not lockable")
	}
	if Locked(models.Product{}) {
		t.Fatal("products are never locked")
	}
}

func TestValidateWindow(t *testing.T) {
	start := baseTime
	end := baseTime.Add(-time.Hour)
	if err := ValidateWindow(&start, &end); err != ErrInvalidSchedule {
		t.Fatalf("expected ErrInvalidSchedule, got %v", err)
	}
	if err := ValidateWindow(&start, &start); err != nil {
		t.Fatalf("equal bounds are valid, got %v", err)
	}
	if err := ValidateWindow(nil, &end); err != nil {
		t.Fatalf("nil start is unconstrained, got %v", err)
	}
	if err := ValidateWindow(&start, nil); err != nil {
		t.Fatalf("nil end is unconstrained, got %v", err)
	}
}
