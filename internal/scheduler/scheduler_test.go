package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/macrosig/pkg/logger"
)

type fakeJob struct {
	name     string
	schedule string
	runs     int
	err      error
}

func (f *fakeJob) Name() string     { return f.name }
func (f *fakeJob) Schedule() string { return f.schedule }
func (f *fakeJob) Run(ctx context.Context) error {
	f.runs++
	return f.err
}

func newTestScheduler() *Scheduler {
	s := New(logger.NewNop())
	s.maxRetries = 1
	s.retryDelay = 0
	return s
}

func TestAddJobRejectsDuplicates(t *testing.T) {
	s := newTestScheduler()

	require.NoError(t, s.AddJob(&fakeJob{name: "macro_signal", schedule: "@hourly"}))

	err := s.AddJob(&fakeJob{name: "macro_signal", schedule: "@daily"})
	assert.Error(t, err)
}

func TestAddJobRejectsBadSchedule(t *testing.T) {
	s := newTestScheduler()

	err := s.AddJob(&fakeJob{name: "broken", schedule: "not a cron expr"})
	assert.Error(t, err)
}

func TestRunJobRecordsHistory(t *testing.T) {
	s := newTestScheduler()
	job := &fakeJob{name: "calendar_update", schedule: "@hourly"}
	require.NoError(t, s.AddJob(job))

	require.NoError(t, s.RunJob("calendar_update"))
	assert.Equal(t, 1, job.runs)

	history, err := s.GetJobHistory("calendar_update")
	require.NoError(t, err)
	require.Len(t, history.Results, 1)
	assert.True(t, history.Results[0].Success)
}

func TestRunJobRetriesOnFailure(t *testing.T) {
	s := newTestScheduler()
	job := &fakeJob{name: "macro_signal", schedule: "@hourly", err: errors.New("boom")}
	require.NoError(t, s.AddJob(job))

	require.NoError(t, s.RunJob("macro_signal"))

	// initial attempt + one retry
	assert.Equal(t, 2, job.runs)

	stats := s.GetJobStats()["macro_signal"]
	assert.Equal(t, 1, stats.FailureCount)
	assert.Equal(t, "boom", stats.LastError)
}

func TestRunJobUnknown(t *testing.T) {
	s := newTestScheduler()
	assert.Error(t, s.RunJob("nope"))
}

func TestGetAllJobsSorted(t *testing.T) {
	s := newTestScheduler()
	require.NoError(t, s.AddJob(&fakeJob{name: "macro_signal", schedule: "@hourly"}))
	require.NoError(t, s.AddJob(&fakeJob{name: "calendar_update", schedule: "@hourly"}))

	assert.Equal(t, []string{"calendar_update", "macro_signal"}, s.GetAllJobs())
}
