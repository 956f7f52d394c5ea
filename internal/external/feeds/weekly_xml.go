package feeds

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/wonny/macrosig/internal/contracts"
)

// weeklyEvents mirrors the ForexFactory-style weekly calendar XML
type weeklyEvents struct {
	XMLName xml.Name      `xml:"weeklyevents"`
	Events  []weeklyEvent `xml:"event"`
}

type weeklyEvent struct {
	Title   string `xml:"title"`
	Country string `xml:"country"` // currency code, e.g. USD
	Date    string `xml:"date"`    // MM-DD-YYYY, feed-local
	Time    string `xml:"time"`    // 8:30am | All Day | Tentative
	Impact  string `xml:"impact"`  // High | Medium | Low
}

// isWeeklyXML sniffs for the weekly feed envelope
func isWeeklyXML(body []byte) bool {
	head := body
	if len(head) > 512 {
		head = head[:512]
	}
	return bytes.Contains(head, []byte("<weeklyevents"))
}

// parseWeeklyXML decodes the XML feed into UTC events.
// ⭐ SSOT: 주간 XML 피드 파싱은 이 함수에서만
// Records with unparsable dates or times are skipped individually.
func (c *Client) parseWeeklyXML(body []byte) ([]contracts.CalendarEvent, error) {
	var feed weeklyEvents
	if err := xml.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("decode weekly XML: %w", err)
	}

	var events []contracts.CalendarEvent
	skipped := 0

	for _, raw := range feed.Events {
		t, err := c.parseLocalDateTime(raw.Date, raw.Time)
		if err != nil {
			skipped++
			continue
		}

		events = append(events, contracts.CalendarEvent{
			Time:     t,
			Impact:   normalizeImpact(raw.Impact),
			Currency: strings.TrimSpace(raw.Country),
			Title:    strings.TrimSpace(raw.Title),
		})
	}

	if skipped > 0 {
		c.logger.WithField("skipped", skipped).Warn("Skipped malformed feed records")
	}

	return events, nil
}

// parseLocalDateTime combines feed-local date and time into a UTC instant.
// "All Day" events resolve to local midnight.
func (c *Client) parseLocalDateTime(dateStr, timeStr string) (time.Time, error) {
	dateStr = strings.TrimSpace(dateStr)
	timeStr = strings.TrimSpace(timeStr)

	day, err := time.ParseInLocation("01-02-2006", dateStr, c.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", dateStr, err)
	}

	switch strings.ToLower(timeStr) {
	case "", "all day":
		return day.UTC(), nil
	case "tentative":
		return time.Time{}, fmt.Errorf("tentative event time")
	}

	clock, err := time.Parse("3:04pm", strings.ToLower(timeStr))
	if err != nil {
		// Some sources emit 24h clock times
		clock, err = time.Parse("15:04", timeStr)
		if err != nil {
			return time.Time{}, fmt.Errorf("parse time %q: %w", timeStr, err)
		}
	}

	local := time.Date(day.Year(), day.Month(), day.Day(),
		clock.Hour(), clock.Minute(), 0, 0, c.loc)
	return local.UTC(), nil
}

// normalizeImpact maps feed impact labels onto the shared set
func normalizeImpact(impact string) string {
	switch strings.ToLower(strings.TrimSpace(impact)) {
	case "high":
		return contracts.ImpactHigh
	case "medium":
		return contracts.ImpactMedium
	case "moderate":
		return contracts.ImpactModerate
	case "low":
		return contracts.ImpactLow
	default:
		return strings.TrimSpace(impact)
	}
}
