// Package projection turns a task set into the day-by-day planned versus
// actual cumulative completion curve (the S-curve).
//
// All functions are pure. The caller captures "now" once and passes it to
// every call so a single computation sees one consistent today.
package projection

import (
	"time"

	"github.com/hugogabrielsalles97-collab/onstructneon-controle-de-obras-sub001/internal/calendar"
	"github.com/hugogabrielsalles97-collab/onstructneon-controle-de-obras-sub001/internal/task"
)

// Planned returns the planned completion of t at the instant `at`, in
// [0, 100]. The planned window runs from the start of StartDate to the end
// of DueDate, so a single-day task spans a full day.
func Planned(t *task.Task, at time.Time) float64 {
	start := calendar.StartOfDay(t.StartDate)
	end := calendar.EndOfDay(t.DueDate)
	return ramp(at, start, end, 100)
}

// Actual returns the realized completion of t at the instant `at`. It is
// only meaningful for instants up to today; the series aggregator never asks
// for later ones.
//
// A completed task with a recorded actual end ramps from 0 to its progress
// across its actual window. Any other started task ramps toward today, so
// the curve never claims more than the physically reported progress.
func Actual(t *task.Task, at, now time.Time) float64 {
	if t.ActualStartDate == nil {
		return 0
	}
	start := calendar.StartOfDay(*t.ActualStartDate)

	end := calendar.EndOfDay(now)
	if t.Status == task.StatusCompleted && t.ActualEndDate != nil {
		end = calendar.EndOfDay(*t.ActualEndDate)
	}
	return ramp(at, start, end, float64(t.Progress))
}

// ramp interpolates linearly from 0 at start to top at end. Windows of zero
// or negative length jump straight to top once start is reached.
func ramp(at, start, end time.Time, top float64) float64 {
	if at.Before(start) {
		return 0
	}
	if !at.Before(end) {
		return top
	}
	span := end.Sub(start)
	if span <= 0 {
		return top
	}
	return float64(at.Sub(start)) / float64(span) * top
}
