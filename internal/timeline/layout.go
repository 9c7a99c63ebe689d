// Package timeline lays tasks out on a fixed-column day grid for Gantt
// rendering, with optional baseline shadow bars and a today marker.
package timeline

import (
	"time"

	"github.com/hugogabrielsalles97-collab/onstructneon-controle-de-obras-sub001/internal/calendar"
	"github.com/hugogabrielsalles97-collab/onstructneon-controle-de-obras-sub001/internal/task"
)

// Padding is the number of empty days kept on each side of the window.
const Padding = 2

// Bar is the placement of one task on the grid. Offsets are in days from
// the layout start. Baseline fields are nil when the task has no match in
// the baseline set.
type Bar struct {
	TaskID                string
	Title                 string
	StartOffsetDays       int
	DurationDays          int
	VisualProgressPercent float64
	DisplayStatus         task.DisplayStatus
	BaselineOffsetDays    *int
	BaselineDurationDays  *int
}

// Layout is a computed timeline. TodayOffsetDays positions the today
// marker; TodayVisible is false when today falls outside the window.
type Layout struct {
	Start           time.Time
	End             time.Time
	TotalDays       int
	TodayOffsetDays int
	TodayVisible    bool
	Bars            []Bar
}

// Window returns the padded grid bounds: the earliest and latest planned or
// actual date of any task, or of the baselines when there are no tasks.
func Window(tasks, baselines []task.Task) (start, end time.Time, ok bool) {
	src := tasks
	if len(src) == 0 {
		src = baselines
	}
	if len(src) == 0 {
		return time.Time{}, time.Time{}, false
	}

	start, end = src[0].StartDate, src[0].DueDate
	for i := range src {
		t := &src[i]
		for _, d := range []*time.Time{&t.StartDate, &t.DueDate, t.ActualStartDate, t.ActualEndDate} {
			if d == nil {
				continue
			}
			start = calendar.Min(start, *d)
			end = calendar.Max(end, *d)
		}
	}
	start = calendar.StartOfDay(start).AddDate(0, 0, -Padding)
	end = calendar.StartOfDay(end).AddDate(0, 0, Padding)
	return start, end, true
}

// Build lays out tasks against now's civil day. Baselines are matched to
// tasks by ID. The returned Bars keep the input order.
//
// Tasks whose effective start falls before the window are left out. The
// window is derived from the same tasks, so this only happens for inputs
// the window was not computed from.
func Build(tasks, baselines []task.Task, now time.Time) Layout {
	start, end, ok := Window(tasks, baselines)
	if !ok {
		return Layout{Bars: []Bar{}}
	}
	today := calendar.StartOfDay(now)

	l := Layout{
		Start:           start,
		End:             end,
		TotalDays:       calendar.DayDiff(start, end) + 1,
		TodayOffsetDays: calendar.DayDiff(start, today),
		Bars:            make([]Bar, 0, len(tasks)),
	}
	l.TodayVisible = l.TodayOffsetDays >= 0 && l.TodayOffsetDays < l.TotalDays

	byID := make(map[string]*task.Task, len(baselines))
	for i := range baselines {
		byID[baselines[i].ID] = &baselines[i]
	}

	for i := range tasks {
		bar, ok := place(&tasks[i], start, today)
		if !ok {
			continue
		}
		if b := byID[tasks[i].ID]; b != nil {
			offset := calendar.DayDiff(start, b.StartDate)
			duration := max(calendar.DayDiff(b.StartDate, b.DueDate)+1, 1)
			bar.BaselineOffsetDays = &offset
			bar.BaselineDurationDays = &duration
		}
		l.Bars = append(l.Bars, bar)
	}
	return l
}

func place(t *task.Task, origin, today time.Time) (Bar, bool) {
	effStart := calendar.StartOfDay(t.EffectiveStart())
	effEnd := calendar.Max(calendar.StartOfDay(t.EffectiveEnd()), effStart)

	offset := calendar.DayDiff(origin, effStart)
	if offset < 0 {
		return Bar{}, false
	}
	duration := calendar.DayDiff(effStart, effEnd) + 1

	return Bar{
		TaskID:                t.ID,
		Title:                 t.Title,
		StartOffsetDays:       offset,
		DurationDays:          duration,
		VisualProgressPercent: VisualProgress(t.Progress, effStart, duration, today),
		DisplayStatus:         Classify(t, today),
	}, true
}

// Classify returns Overdue for an unfinished task past its due date, else
// the task's own status.
func Classify(t *task.Task, today time.Time) task.DisplayStatus {
	if t.Status != task.StatusCompleted && calendar.Before(t.DueDate, today) {
		return task.DisplayOverdue
	}
	return task.DisplayStatus(t.Status)
}

// VisualProgress returns the filled share of a bar. While the bar spans
// today the fill stops at today even if the recorded progress is higher;
// finished windows show the recorded progress and future ones show nothing.
func VisualProgress(progress int, effStart time.Time, durationDays int, today time.Time) float64 {
	elapsed := calendar.DayDiff(effStart, today) + 1
	switch {
	case elapsed <= 0:
		return 0
	case elapsed > durationDays:
		return float64(progress)
	default:
		return min(float64(progress), float64(elapsed)/float64(durationDays)*100)
	}
}
