// Package report condenses a task set and its series into the figures shown
// on the dashboard.
package report

import (
	"time"

	"github.com/hugogabrielsalles97-collab/onstructneon-controle-de-obras-sub001/internal/calendar"
	"github.com/hugogabrielsalles97-collab/onstructneon-controle-de-obras-sub001/internal/projection"
	"github.com/hugogabrielsalles97-collab/onstructneon-controle-de-obras-sub001/internal/task"
	"github.com/hugogabrielsalles97-collab/onstructneon-controle-de-obras-sub001/internal/timeline"
)

// Summary is the day's headline comparison of plan and reality.
type Summary struct {
	Date time.Time
	// TotalTasks counts every task given to Summarize, including any the
	// timeline layout leaves out.
	TotalTasks int
	Planned    int
	Actual     int
	// Deviation is Actual minus Planned; negative means behind plan.
	Deviation int
	ByStatus  map[task.DisplayStatus]int
	Overdue   []string
}

// Summarize reads today's sample from samples and the status mix from
// tasks. Days the series doesn't cover, such as those before the project
// starts, report zero progress.
func Summarize(tasks []task.Task, samples []projection.DailySample, now time.Time) Summary {
	today := calendar.StartOfDay(now)
	s := Summary{
		Date:     today,
		ByStatus: make(map[task.DisplayStatus]int, len(task.DisplayStatuses())),
		Overdue:  []string{},
	}
	for _, st := range task.DisplayStatuses() {
		s.ByStatus[st] = 0
	}

	s.TotalTasks = len(tasks)
	for i := range tasks {
		status := timeline.Classify(&tasks[i], today)
		s.ByStatus[status]++
		if status == task.DisplayOverdue {
			s.Overdue = append(s.Overdue, tasks[i].ID)
		}
	}

	if sample, ok := projection.At(samples, today); ok {
		s.Planned = sample.Planned
		if sample.Actual != nil {
			s.Actual = *sample.Actual
		}
	}
	s.Deviation = s.Actual - s.Planned
	return s
}
