package timesheet

import (
	"sort"
	"time"

	"github.com/punchcard-hr/attendance-backend-go/internal/domain/punch"
	"github.com/punchcard-hr/attendance-backend-go/internal/domain/timesheet"
)

// Calculator derives dense per-day summaries from raw clock events. It is a
// pure transformation: the clock, the timezone, and the shift start are all
// explicit inputs, so the same event list always yields the same output.
type Calculator struct{}

func NewCalculator() *Calculator {
	return &Calculator{}
}

// BuildRange produces one DaySummary per calendar day in [start, end]
// (local midnights in loc, inclusive), most recent day first. Every day in
// the range is represented exactly once; days without events come back as
// NO_DATA or WEEKEND_OFF rather than being skipped.
//
// shiftStartMin is minutes past local midnight; now is the instant used to
// measure still-open segments.
func (c *Calculator) BuildRange(events []punch.ClockEvent, start, end time.Time, loc *time.Location, shiftStartMin int, now time.Time) []timesheet.DaySummary {
	buckets := c.groupByLocalDay(events, start, end, loc)

	var days []timesheet.DaySummary
	for day := end; !day.Before(start); day = day.AddDate(0, 0, -1) {
		days = append(days, c.buildDay(day, buckets[day.Format("2006-01-02")], loc, shiftStartMin, now))
	}
	return days
}

// groupByLocalDay partitions events into local-calendar-day buckets keyed by
// YYYY-MM-DD in loc. Bucketing by local date, not UTC date, keeps punches
// near midnight on the day the employee experienced them. Events outside
// [start, end] are dropped. Input order does not matter; each bucket is
// sorted ascending by timestamp.
func (c *Calculator) groupByLocalDay(events []punch.ClockEvent, start, end time.Time, loc *time.Location) map[string][]punch.ClockEvent {
	rangeEnd := end.AddDate(0, 0, 1)
	buckets := make(map[string][]punch.ClockEvent)
	for _, ev := range events {
		local := ev.RecordedAt.In(loc)
		if local.Before(start) || !local.Before(rangeEnd) {
			continue
		}
		key := local.Format("2006-01-02")
		buckets[key] = append(buckets[key], ev)
	}
	for key := range buckets {
		bucket := buckets[key]
		sort.Slice(bucket, func(i, j int) bool {
			return bucket[i].RecordedAt.Before(bucket[j].RecordedAt)
		})
	}
	return buckets
}

func (c *Calculator) buildDay(day time.Time, events []punch.ClockEvent, loc *time.Location, shiftStartMin int, now time.Time) timesheet.DaySummary {
	summary := timesheet.DaySummary{
		Date:      day,
		Arrival:   timesheet.Arrival{Status: timesheet.ArrivalNone},
		LogStatus: timesheet.LogEmpty,
	}

	// Weekend days are reported off regardless of event content; any punches
	// recorded on them are not inspected.
	if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
		summary.Classification = timesheet.ClassificationWeekendOff
		return summary
	}

	if len(events) == 0 {
		summary.Classification = timesheet.ClassificationNoData
		return summary
	}

	// Any event at all marks the day WORKED, even a lone orphaned OUT that
	// produces no segment.
	summary.Classification = timesheet.ClassificationWorked
	summary.Segments, summary.TotalMinutes = c.PairDay(events, now)
	summary.Arrival = c.arrival(events, loc, shiftStartMin)
	summary.LogStatus = logStatus(summary.Segments)
	return summary
}

// PairDay pairs one day's events (sorted ascending) into worked segments in
// a single forward pass and returns them with the total worked minutes.
//
// Malformed sequences degrade instead of failing: a second IN with no
// intervening OUT closes the dangling segment at the new IN with duration 0,
// an OUT with no preceding IN is dropped, and a trailing IN becomes an open
// segment measured against now.
func (c *Calculator) PairDay(events []punch.ClockEvent, now time.Time) ([]timesheet.Segment, int) {
	var segments []timesheet.Segment
	var pendingIn *time.Time
	total := 0

	for _, ev := range events {
		at := ev.RecordedAt
		switch ev.Kind {
		case punch.KindIn:
			if pendingIn != nil {
				// Duplicate IN: preserve the anomaly as a zero-length
				// segment rather than silently dropping the first IN.
				out := at
				segments = append(segments, timesheet.Segment{
					InTime:          *pendingIn,
					OutTime:         &out,
					DurationMinutes: 0,
				})
			}
			in := at
			pendingIn = &in
		case punch.KindOut:
			if pendingIn == nil {
				continue // orphaned OUT
			}
			out := at
			minutes := wholeMinutes(*pendingIn, out)
			segments = append(segments, timesheet.Segment{
				InTime:          *pendingIn,
				OutTime:         &out,
				DurationMinutes: minutes,
			})
			total += minutes
			pendingIn = nil
		}
	}

	if pendingIn != nil {
		// Still clocked in: the open segment counts toward the running
		// total so in-progress time is visible.
		minutes := wholeMinutes(*pendingIn, now)
		segments = append(segments, timesheet.Segment{
			InTime:          *pendingIn,
			DurationMinutes: minutes,
		})
		total += minutes
	}

	return segments, total
}

// arrival takes the earliest IN of the day and compares its local
// time-of-day to the shift start. Lateness is decided at second
// resolution, so 09:00:01 is already LATE; LateMinutes stays floored to
// whole minutes.
func (c *Calculator) arrival(events []punch.ClockEvent, loc *time.Location, shiftStartMin int) timesheet.Arrival {
	for _, ev := range events {
		if ev.Kind != punch.KindIn {
			continue
		}
		firstIn := ev.RecordedAt
		local := firstIn.In(loc)
		secondsIntoDay := local.Hour()*3600 + local.Minute()*60 + local.Second()
		shiftStartSec := shiftStartMin * 60

		arr := timesheet.Arrival{
			Status:      timesheet.ArrivalOnTime,
			FirstInTime: &firstIn,
		}
		if secondsIntoDay > shiftStartSec {
			arr.Status = timesheet.ArrivalLate
			arr.LateMinutes = (secondsIntoDay - shiftStartSec) / 60
		}
		return arr
	}
	return timesheet.Arrival{Status: timesheet.ArrivalNone}
}

func logStatus(segments []timesheet.Segment) timesheet.LogStatus {
	if len(segments) == 0 {
		return timesheet.LogEmpty
	}
	for i := range segments {
		if segments[i].Open() {
			return timesheet.LogOpen
		}
	}
	return timesheet.LogComplete
}

// wholeMinutes is the floored minute count between two instants, never
// negative.
func wholeMinutes(from, to time.Time) int {
	if to.Before(from) {
		return 0
	}
	return int(to.Sub(from).Minutes())
}

// RollingRange returns the local midnights bounding an N-day window ending
// today in loc.
func RollingRange(now time.Time, days int, loc *time.Location) (start, end time.Time) {
	local := now.In(loc)
	end = time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	start = end.AddDate(0, 0, -(days - 1))
	return start, end
}

// MonthRange returns the local midnights bounding a full calendar month.
func MonthRange(year int, month time.Month, loc *time.Location) (start, end time.Time) {
	start = time.Date(year, month, 1, 0, 0, 0, 0, loc)
	end = start.AddDate(0, 1, -1)
	return start, end
}
