package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/punchcard-hr/attendance-backend-go/internal/domain/punch"
)

// PunchJobs holds housekeeping jobs over raw clock events. Pairing stays a
// read-time concern; these jobs only surface anomalies for admin follow-up.
type PunchJobs struct {
	punchRepo      punch.PunchRepository
	staleOpenHours int
}

func NewPunchJobs(punchRepo punch.PunchRepository, staleOpenHours int) *PunchJobs {
	return &PunchJobs{
		punchRepo:      punchRepo,
		staleOpenHours: staleOpenHours,
	}
}

func (j *PunchJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("flag_unclosed_punches", 1*time.Hour, j.FlagUnclosedPunches)
}

// FlagUnclosedPunches marks IN events older than the configured cutoff with
// no subsequent event of any kind for the same employee. A later IN already
// closes the earlier one at pairing time, so only the truly trailing IN is
// stale. Flagged events still pair normally in timesheets (as open
// segments); the flag only feeds admin review.
func (j *PunchJobs) FlagUnclosedPunches(ctx context.Context) error {
	cutoff := time.Now().UTC().Add(-time.Duration(j.staleOpenHours) * time.Hour)

	staleIns, err := j.punchRepo.ListStaleOpenIns(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to list stale open INs: %w", err)
	}

	if len(staleIns) == 0 {
		slog.Info("Cron: No unclosed punches found")
		return nil
	}

	now := time.Now().UTC()
	flaggedCount := 0
	for _, event := range staleIns {
		if err := j.punchRepo.Flag(ctx, event.ID, now); err != nil {
			slog.Error("Cron: Failed to flag unclosed punch",
				"event_id", event.ID,
				"employee_id", event.EmployeeID,
				"error", err)
			continue
		}
		flaggedCount++
	}

	slog.Info("Cron: Flagged unclosed punches", "count", flaggedCount)
	return nil
}
