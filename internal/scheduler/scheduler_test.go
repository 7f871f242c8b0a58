package scheduler

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elcap/swingdash/internal/job"
	"github.com/elcap/swingdash/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.NewWriter(io.Discard)
}

type stubJob struct {
	name      string
	schedules []string
	runs      int
	err       error
}

func (j *stubJob) Name() string         { return j.name }
func (j *stubJob) Schedules() []string  { return j.schedules }
func (j *stubJob) Run(context.Context) error {
	j.runs++
	return j.err
}

func TestAddJobRejectsDuplicates(t *testing.T) {
	s := New(testLogger(), time.UTC)

	j := &stubJob{name: "refresh", schedules: []string{"0 0 7 * * *"}}
	require.NoError(t, s.AddJob(j))

	err := s.AddJob(&stubJob{name: "refresh", schedules: []string{"0 0 12 * * *"}})
	assert.Error(t, err)
}

func TestAddJobRejectsBadExpression(t *testing.T) {
	s := New(testLogger(), time.UTC)

	err := s.AddJob(&stubJob{name: "bad", schedules: []string{"not a cron spec"}})
	assert.Error(t, err)
}

func TestAddJobRegistersAllSchedules(t *testing.T) {
	s := New(testLogger(), time.UTC)

	err := s.AddJob(&stubJob{name: "refresh", schedules: refreshSchedules})
	require.NoError(t, err)

	stats := s.GetJobStats()
	require.Contains(t, stats, "refresh")
	assert.Equal(t, refreshSchedules, stats["refresh"].Schedules)
}

func TestRunJobRecordsHistory(t *testing.T) {
	s := New(testLogger(), time.UTC)
	j := &stubJob{name: "refresh", schedules: []string{"0 0 7 * * *"}}
	require.NoError(t, s.AddJob(j))

	s.runJob(j)
	j.err = errors.New("upstream down")
	s.runJob(j)

	history, err := s.GetJobHistory("refresh")
	require.NoError(t, err)
	require.Len(t, history.Results, 2)

	assert.True(t, history.Results[0].Success)
	assert.False(t, history.Results[1].Success)
	assert.Equal(t, "upstream down", history.Results[1].Error)
	assert.Equal(t, 2, j.runs, "failures are not retried within a run")
	assert.InDelta(t, 0.5, history.GetSuccessRate(), 1e-9)
}

func TestRunJobUnknownName(t *testing.T) {
	s := New(testLogger(), time.UTC)
	assert.Error(t, s.RunJob("missing"))
}

func TestJobHistoryBounded(t *testing.T) {
	h := &JobHistory{}
	for i := 0; i < 150; i++ {
		h.AddResult(JobResult{JobName: "refresh", Success: true})
	}
	assert.Len(t, h.Results, 100)
}

type stubTriggerer struct {
	outcome job.Outcome
	err     error
	calls   int
}

func (s *stubTriggerer) Trigger(context.Context) (job.Outcome, error) {
	s.calls++
	return s.outcome, s.err
}

func TestRefreshJobSchedules(t *testing.T) {
	j := NewRefreshJob(&stubTriggerer{}, testLogger())

	assert.Equal(t, "dashboard_refresh", j.Name())
	assert.Equal(t, []string{
		"0 0 7 * * *",
		"0 30 9 * * *",
		"0 0 12 * * *",
		"0 45 14 * * *",
	}, j.Schedules())
}

func TestRefreshJobRun(t *testing.T) {
	tests := []struct {
		name    string
		outcome job.Outcome
		err     error
		wantErr bool
	}{
		{"completed", job.OutcomeCompleted, nil, false},
		{"busy is not a failure", job.OutcomeBusy, nil, false},
		{"failed propagates", job.OutcomeFailed, errors.New("fetch exploded"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trig := &stubTriggerer{outcome: tt.outcome, err: tt.err}
			j := NewRefreshJob(trig, testLogger())

			err := j.Run(context.Background())

			assert.Equal(t, 1, trig.calls)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
