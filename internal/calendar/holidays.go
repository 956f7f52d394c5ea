package calendar

import (
	"time"

	"github.com/wonny/macrosig/internal/contracts"
)

// fixedHoliday is a fixed-date public holiday (month/day, every year)
type fixedHoliday struct {
	Month time.Month
	Day   int
	Title string
}

// 고정일 미국 공휴일만 포함. 이동 휴일(Thanksgiving 등)은 미지원.
var usFixedHolidays = []fixedHoliday{
	{time.January, 1, "New Year's Day (Market Holiday)"},
	{time.June, 19, "Juneteenth (Market Holiday)"},
	{time.July, 4, "Independence Day (Market Holiday)"},
	{time.December, 25, "Christmas Day (Market Holiday)"},
}

// holidayEvents expands the static holiday table into synthetic all-day
// High-impact events for the given year range (inclusive).
func holidayEvents(currency string, fromYear, toYear int) []contracts.CalendarEvent {
	var events []contracts.CalendarEvent

	for year := fromYear; year <= toYear; year++ {
		for _, h := range usFixedHolidays {
			events = append(events, contracts.CalendarEvent{
				Time:     time.Date(year, h.Month, h.Day, 0, 0, 0, 0, time.UTC),
				Impact:   contracts.ImpactHigh,
				Currency: currency,
				Title:    h.Title,
			})
		}
	}

	return events
}
