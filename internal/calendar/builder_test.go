package calendar

import (
	"testing"
	"time"

	"github.com/wonny/macrosig/internal/contracts"
	"github.com/wonny/macrosig/pkg/logger"
)

func testOptions() Options {
	return Options{
		Currency:    "USD",
		Impacts:     []string{"High", "Medium"},
		EventBuffer: 30 * time.Minute,
	}
}

func event(t time.Time, impact, currency, title string) contracts.CalendarEvent {
	return contracts.CalendarEvent{Time: t, Impact: impact, Currency: currency, Title: title}
}

func TestBuildFiltersAndSorts(t *testing.T) {
	b := NewBuilder(testOptions(), logger.NewNop())
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	fetched := []contracts.CalendarEvent{
		event(now.Add(48*time.Hour), "High", "USD", "NFP"),
		event(now.Add(2*time.Hour), "Medium", "USD", "PMI"),
		event(now.Add(24*time.Hour), "High", "EUR", "ECB Rate"),     // wrong currency
		event(now.Add(24*time.Hour), "Low", "USD", "Crude Stocks"),  // impact too low
		event(now.Add(-2*time.Hour), "High", "USD", "Old Release"),  // expired
		event(now.Add(6*time.Hour), "Moderate", "USD", "Retail"),    // Moderate == Medium
	}

	got := b.Build(now, fetched)

	if len(got) != 3 {
		t.Fatalf("Build() kept %d events, want 3", len(got))
	}

	// Ascending by time
	wantOrder := []string{"PMI", "Retail", "NFP"}
	for i, title := range wantOrder {
		if got[i].Title != title {
			t.Errorf("event[%d] = %s, want %s", i, got[i].Title, title)
		}
	}
}

func TestBuildDeduplicates(t *testing.T) {
	b := NewBuilder(testOptions(), logger.NewNop())
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	when := now.Add(3 * time.Hour)
	fetched := []contracts.CalendarEvent{
		event(when, "High", "USD", "CPI"),
		event(when, "High", "USD", "CPI"), // exact duplicate
		event(when, "Medium", "USD", "CPI"), // same (time, title), different impact
		event(when.Add(time.Hour), "High", "USD", "CPI"), // different time, kept
	}

	got := b.Build(now, fetched)

	if len(got) != 2 {
		t.Fatalf("Build() kept %d events, want 2 after dedupe", len(got))
	}
}

func TestBuildKeepsEventInsideBuffer(t *testing.T) {
	b := NewBuilder(testOptions(), logger.NewNop())
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	fetched := []contracts.CalendarEvent{
		event(now.Add(-29*time.Minute), "High", "USD", "Still Live"),
		event(now.Add(-31*time.Minute), "High", "USD", "Just Expired"),
	}

	got := b.Build(now, fetched)

	if len(got) != 1 || got[0].Title != "Still Live" {
		t.Errorf("Build() = %+v, want only the in-buffer event", got)
	}
}

func TestBuildMergesHolidays(t *testing.T) {
	opts := testOptions()
	opts.MergeHolidays = true
	b := NewBuilder(opts, logger.NewNop())

	// Late December: Christmas of this year and New Year of next year
	// are both ahead.
	now := time.Date(2026, 12, 20, 12, 0, 0, 0, time.UTC)

	got := b.Build(now, nil)

	var titles []string
	for _, e := range got {
		titles = append(titles, e.Title)
		if e.Impact != contracts.ImpactHigh {
			t.Errorf("holiday %q impact = %s, want High", e.Title, e.Impact)
		}
	}

	found := 0
	for _, title := range titles {
		if title == "Christmas Day (Market Holiday)" || title == "New Year's Day (Market Holiday)" {
			found++
		}
	}
	if found < 2 {
		t.Errorf("expected upcoming holidays in %v", titles)
	}
}

func TestBuildEmptyInput(t *testing.T) {
	b := NewBuilder(testOptions(), logger.NewNop())

	got := b.Build(time.Now().UTC(), nil)
	if len(got) != 0 {
		t.Errorf("Build(nil) = %v, want empty", got)
	}
}

func TestHolidayEvents(t *testing.T) {
	events := holidayEvents("USD", 2026, 2026)

	if len(events) != len(usFixedHolidays) {
		t.Fatalf("got %d events, want %d", len(events), len(usFixedHolidays))
	}
	for _, e := range events {
		if e.Currency != "USD" {
			t.Errorf("holiday currency = %s, want USD", e.Currency)
		}
		if e.Time.Hour() != 0 || e.Time.Minute() != 0 {
			t.Errorf("holiday %q not at midnight UTC: %v", e.Title, e.Time)
		}
	}
}
