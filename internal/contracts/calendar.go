package contracts

import (
	"fmt"
	"time"
)

// Impact levels assigned to scheduled economic releases
const (
	ImpactHigh     = "High"
	ImpactMedium   = "Medium"
	ImpactModerate = "Moderate"
	ImpactLow      = "Low"
)

// CalendarEvent represents one scheduled economic release
// ⭐ SSOT: 캘린더 수집 → 임팩트 윈도우 데이터 전달
// Time is always tz-aware UTC; naive feed timestamps are normalized at parse time.
type CalendarEvent struct {
	Time     time.Time `json:"time"`
	Impact   string    `json:"impact"`
	Currency string    `json:"currency"`
	Title    string    `json:"title"`
}

// Key identifies an event for deduplication
func (e CalendarEvent) Key() string {
	return fmt.Sprintf("%s|%s", e.Time.UTC().Format("2006-01-02 15:04"), e.Title)
}

// Expired reports whether the event's live window (start + buffer) has passed
func (e CalendarEvent) Expired(now time.Time, buffer time.Duration) bool {
	return e.Time.Add(buffer).Before(now)
}
