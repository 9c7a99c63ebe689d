package projection

import (
	"math"
	"time"

	"github.com/hugogabrielsalles97-collab/onstructneon-controle-de-obras-sub001/internal/calendar"
	"github.com/hugogabrielsalles97-collab/onstructneon-controle-de-obras-sub001/internal/task"
)

// DailySample is one point of the S-curve. Actual is nil for days after
// today, which charts draw as a gap rather than a drop to zero.
type DailySample struct {
	Date    time.Time
	Planned int
	Actual  *int
}

// Window returns the first and last day the series covers: the earliest
// planned start through the later of the latest due date and today.
// ok is false for an empty task set.
func Window(tasks []task.Task, now time.Time) (start, end time.Time, ok bool) {
	if len(tasks) == 0 {
		return time.Time{}, time.Time{}, false
	}
	start = tasks[0].StartDate
	end = tasks[0].DueDate
	for i := 1; i < len(tasks); i++ {
		start = calendar.Min(start, tasks[i].StartDate)
		end = calendar.Max(end, tasks[i].DueDate)
	}
	end = calendar.Max(end, calendar.StartOfDay(now))
	return calendar.StartOfDay(start), calendar.StartOfDay(end), true
}

// Series computes the planned and actual cumulative completion for every
// day of the project window. Each day is sampled at its last instant. now
// must already be on the civil axis (see calendar.Civil).
//
// Tasks are read, never modified, and the result depends only on the task
// contents and now, not on their order.
func Series(tasks []task.Task, now time.Time) []DailySample {
	start, end, ok := Window(tasks, now)
	if !ok {
		return []DailySample{}
	}
	today := calendar.StartOfDay(now)

	days := calendar.DayRange(start, end)
	samples := make([]DailySample, 0, len(days))
	for _, d := range days {
		at := calendar.EndOfDay(d)
		s := DailySample{
			Date:    d,
			Planned: mean(tasks, func(t *task.Task) float64 { return Planned(t, at) }),
		}
		if !d.After(today) {
			actual := mean(tasks, func(t *task.Task) float64 { return Actual(t, at, now) })
			s.Actual = &actual
		}
		samples = append(samples, s)
	}
	return samples
}

// At returns the sample for day d, if the series covers it.
func At(samples []DailySample, d time.Time) (DailySample, bool) {
	if len(samples) == 0 {
		return DailySample{}, false
	}
	i := calendar.DayDiff(samples[0].Date, d)
	if i < 0 || i >= len(samples) {
		return DailySample{}, false
	}
	return samples[i], true
}

func mean(tasks []task.Task, contribution func(*task.Task) float64) int {
	if len(tasks) == 0 {
		return 0
	}
	var sum float64
	for i := range tasks {
		sum += contribution(&tasks[i])
	}
	return int(math.Round(sum / float64(len(tasks))))
}
