package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wonny/macrosig/internal/calendar"
	"github.com/wonny/macrosig/internal/external/feeds"
	"github.com/wonny/macrosig/internal/store"
	"github.com/wonny/macrosig/pkg/logger"
)

// ErrFetchFailed marks a run where every calendar source was down.
// The existing calendar file stays in place for that cycle.
var ErrFetchFailed = errors.New("calendar fetch failed")

// CalendarUpdate refreshes the economic calendar CSV from the
// configured feed sources.
// ⭐ SSOT: 캘린더 갱신은 이 작업에서만
type CalendarUpdate struct {
	feeds   *feeds.Client
	builder *calendar.Builder
	store   *store.CalendarStore
	logger  *logger.Logger
}

// NewCalendarUpdate creates the calendar refresh job
func NewCalendarUpdate(feedsClient *feeds.Client, builder *calendar.Builder, st *store.CalendarStore, log *logger.Logger) *CalendarUpdate {
	return &CalendarUpdate{
		feeds:   feedsClient,
		builder: builder,
		store:   st,
		logger:  log,
	}
}

// Name returns the job name
func (j *CalendarUpdate) Name() string {
	return "calendar_update"
}

// Schedule runs every hour
func (j *CalendarUpdate) Schedule() string {
	return "@hourly"
}

// Run executes one refresh cycle. Unreachable sources are not an
// error at the job level: the previous file keeps serving until the
// next cycle.
func (j *CalendarUpdate) Run(ctx context.Context) error {
	_, err := j.Execute(ctx, time.Now().UTC())
	if errors.Is(err, ErrFetchFailed) {
		j.logger.WithError(err).Warn("Calendar sources unavailable, keeping existing file")
		return nil
	}
	return err
}

// Execute fetches, filters and writes the calendar, returning the
// number of events written.
func (j *CalendarUpdate) Execute(ctx context.Context, now time.Time) (int, error) {
	events, err := j.feeds.FetchEvents(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	filtered := j.builder.Build(now, events)

	if err := j.store.Write(filtered); err != nil {
		return 0, fmt.Errorf("failed to write calendar: %w", err)
	}

	j.logger.WithFields(map[string]interface{}{
		"fetched": len(events),
		"written": len(filtered),
	}).Info("Calendar updated")

	return len(filtered), nil
}
