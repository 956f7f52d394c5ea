package feeds

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/wonny/macrosig/internal/contracts"
)

// parseCalendarHTML scrapes an HTML calendar table (secondary source shape).
// Expected row layout: date, time, currency, impact, title.
// Rows that fail to parse are skipped individually.
func (c *Client) parseCalendarHTML(body []byte) ([]contracts.CalendarEvent, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}

	table := doc.Find("table.calendar")
	if table.Length() == 0 {
		return nil, fmt.Errorf("no calendar table found")
	}

	var events []contracts.CalendarEvent
	skipped := 0

	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 5 {
			return // header or spacer row
		}

		dateText := strings.TrimSpace(cells.Eq(0).Text())
		timeText := strings.TrimSpace(cells.Eq(1).Text())
		currency := strings.TrimSpace(cells.Eq(2).Text())
		impact := strings.TrimSpace(cells.Eq(3).Text())
		title := strings.TrimSpace(cells.Eq(4).Text())

		t, err := c.parseHTMLDateTime(dateText, timeText)
		if err != nil {
			skipped++
			return
		}

		events = append(events, contracts.CalendarEvent{
			Time:     t,
			Impact:   normalizeImpact(impact),
			Currency: currency,
			Title:    title,
		})
	})

	if skipped > 0 {
		c.logger.WithField("skipped", skipped).Warn("Skipped malformed calendar rows")
	}

	return events, nil
}

// parseHTMLDateTime combines table date and time cells into a UTC instant
func (c *Client) parseHTMLDateTime(dateStr, timeStr string) (time.Time, error) {
	day, err := time.ParseInLocation("2006-01-02", dateStr, c.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", dateStr, err)
	}

	if timeStr == "" || strings.EqualFold(timeStr, "all day") {
		return day.UTC(), nil
	}

	clock, err := time.Parse("15:04", timeStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time %q: %w", timeStr, err)
	}

	local := time.Date(day.Year(), day.Month(), day.Day(),
		clock.Hour(), clock.Minute(), 0, 0, c.loc)
	return local.UTC(), nil
}
