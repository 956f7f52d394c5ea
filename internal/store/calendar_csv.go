package store

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/wonny/macrosig/internal/contracts"
	"github.com/wonny/macrosig/pkg/logger"
)

// Timestamp layout of calendar rows (UTC, minute precision)
const calendarTimeLayout = "2006-01-02 15:04"

// CalendarStore persists the shared news calendar file
// ⭐ SSOT: news_calendar.csv 읽기/쓰기는 여기서만
//
// No header. Columns: datetime (UTC), impact, currency, title.
// Every write replaces the full file.
type CalendarStore struct {
	path   string
	logger *logger.Logger
}

// NewCalendarStore creates a calendar store
func NewCalendarStore(path string, log *logger.Logger) *CalendarStore {
	return &CalendarStore{
		path:   path,
		logger: log,
	}
}

// Write replaces the file with the given events
func (s *CalendarStore) Write(events []contracts.CalendarEvent) error {
	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("create %s: %w", s.path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	for _, e := range events {
		row := []string{
			e.Time.UTC().Format(calendarTimeLayout),
			e.Impact,
			e.Currency,
			e.Title,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", s.path, err)
	}

	s.logger.WithFields(map[string]interface{}{
		"path":  s.path,
		"count": len(events),
	}).Info("Wrote news calendar")

	return nil
}

// Read loads all events from disk.
// A missing file is not an error: the consumer degrades to an empty
// calendar. Individually malformed rows are skipped, never fatal.
func (s *CalendarStore) Read() ([]contracts.CalendarEvent, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open %s: %w", s.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // tolerate ragged rows, filtered below

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	var events []contracts.CalendarEvent
	skipped := 0

	for _, row := range records {
		if len(row) < 4 {
			skipped++
			continue
		}

		t, err := time.Parse(calendarTimeLayout, row[0])
		if err != nil {
			skipped++
			continue
		}

		events = append(events, contracts.CalendarEvent{
			Time:     t.UTC(),
			Impact:   row[1],
			Currency: row[2],
			Title:    row[3],
		})
	}

	if skipped > 0 {
		s.logger.WithFields(map[string]interface{}{
			"path":    s.path,
			"skipped": skipped,
		}).Warn("Skipped malformed calendar rows")
	}

	return events, nil
}
