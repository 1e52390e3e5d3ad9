package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/punchcard-hr/attendance-backend-go/internal/domain/punch"
)

type fakePunchRepo struct {
	staleIns   []punch.ClockEvent
	listErr    error
	flagErrFor map[string]error
	flagged    []string
}

func (f *fakePunchRepo) Create(ctx context.Context, event punch.ClockEvent) (punch.ClockEvent, error) {
	return event, nil
}

func (f *fakePunchRepo) ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time, companyID string) ([]punch.ClockEvent, error) {
	return nil, nil
}

func (f *fakePunchRepo) ListMyEvents(ctx context.Context, employeeID string, filter punch.MyEventsFilter, companyID string) ([]punch.ClockEvent, int64, error) {
	return nil, 0, nil
}

func (f *fakePunchRepo) ListStaleOpenIns(ctx context.Context, cutoff time.Time) ([]punch.ClockEvent, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.staleIns, nil
}

func (f *fakePunchRepo) Flag(ctx context.Context, id string, at time.Time) error {
	if err, ok := f.flagErrFor[id]; ok {
		return err
	}
	f.flagged = append(f.flagged, id)
	return nil
}

func TestFlagUnclosedPunches_FlagsEveryStaleIn(t *testing.T) {
	repo := &fakePunchRepo{
		staleIns: []punch.ClockEvent{
			{ID: "ev-1", EmployeeID: "emp-1", Kind: punch.KindIn},
			{ID: "ev-2", EmployeeID: "emp-2", Kind: punch.KindIn},
		},
	}
	jobs := NewPunchJobs(repo, 24)

	err := jobs.FlagUnclosedPunches(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"ev-1", "ev-2"}, repo.flagged)
}

func TestFlagUnclosedPunches_NothingStale(t *testing.T) {
	repo := &fakePunchRepo{}
	jobs := NewPunchJobs(repo, 24)

	err := jobs.FlagUnclosedPunches(context.Background())

	require.NoError(t, err)
	assert.Empty(t, repo.flagged)
}

func TestFlagUnclosedPunches_ListFailure(t *testing.T) {
	repo := &fakePunchRepo{listErr: errors.New("connection reset")}
	jobs := NewPunchJobs(repo, 24)

	err := jobs.FlagUnclosedPunches(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list stale open INs")
}

func TestFlagUnclosedPunches_ContinuesPastFlagFailure(t *testing.T) {
	repo := &fakePunchRepo{
		staleIns: []punch.ClockEvent{
			{ID: "ev-1", EmployeeID: "emp-1", Kind: punch.KindIn},
			{ID: "ev-2", EmployeeID: "emp-2", Kind: punch.KindIn},
		},
		flagErrFor: map[string]error{"ev-1": errors.New("row gone")},
	}
	jobs := NewPunchJobs(repo, 24)

	err := jobs.FlagUnclosedPunches(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"ev-2"}, repo.flagged)
}
