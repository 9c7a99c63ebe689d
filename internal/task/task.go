package task

import (
	"time"

	"github.com/hugogabrielsalles97-collab/onstructneon-controle-de-obras-sub001/internal/calendar"
	obraerrors "github.com/hugogabrielsalles97-collab/onstructneon-controle-de-obras-sub001/internal/errors"
)

// Status represents the recorded state of a task.
type Status string

const (
	StatusToDo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// DisplayStatus is the presentational classification of a task on the
// timeline. It is the task's own status, or Overdue.
type DisplayStatus string

const (
	DisplayToDo       DisplayStatus = DisplayStatus(StatusToDo)
	DisplayInProgress DisplayStatus = DisplayStatus(StatusInProgress)
	DisplayCompleted  DisplayStatus = DisplayStatus(StatusCompleted)
	DisplayOverdue    DisplayStatus = "overdue"
)

// DisplayStatuses lists every display status in rendering order.
func DisplayStatuses() []DisplayStatus {
	return []DisplayStatus{DisplayToDo, DisplayInProgress, DisplayCompleted, DisplayOverdue}
}

// Task is a scheduled unit of site work. Dates are civil dates at UTC
// midnight; ActualStartDate and ActualEndDate are nil until recorded.
type Task struct {
	ID              string
	Title           string
	Status          Status
	Progress        int
	StartDate       time.Time
	DueDate         time.Time
	ActualStartDate *time.Time
	ActualEndDate   *time.Time
	Location        string
	Discipline      string
	Description     string
}

// EffectiveStart is the actual start when recorded, else the planned start.
func (t *Task) EffectiveStart() time.Time {
	if t.ActualStartDate != nil {
		return *t.ActualStartDate
	}
	return t.StartDate
}

// EffectiveEnd is the actual end when recorded, else the due date.
func (t *Task) EffectiveEnd() time.Time {
	if t.ActualEndDate != nil {
		return *t.ActualEndDate
	}
	return t.DueDate
}

// IsValidStatus checks if a status string is valid.
func IsValidStatus(s Status) bool {
	switch s {
	case StatusToDo, StatusInProgress, StatusCompleted:
		return true
	default:
		return false
	}
}

// Validate rejects records the projection and layout engines cannot
// interpret: reversed windows, an actual end without an actual start,
// progress outside 0-100 and unknown statuses.
func Validate(t *Task) error {
	if !IsValidStatus(t.Status) {
		return obraerrors.InvalidStatusError{ID: t.ID, Value: string(t.Status)}
	}
	if t.Progress < 0 || t.Progress > 100 {
		return obraerrors.InvalidProgressError{ID: t.ID, Value: t.Progress}
	}
	if t.DueDate.Before(t.StartDate) {
		return obraerrors.InvalidWindowError{
			ID:    t.ID,
			Kind:  "planned",
			Start: calendar.FormatDate(t.StartDate),
			End:   calendar.FormatDate(t.DueDate),
		}
	}
	if t.ActualEndDate != nil {
		if t.ActualStartDate == nil {
			return obraerrors.InvalidDateError{Field: "actual_start_date", Value: ""}
		}
		if t.ActualEndDate.Before(*t.ActualStartDate) {
			return obraerrors.InvalidWindowError{
				ID:    t.ID,
				Kind:  "actual",
				Start: calendar.FormatDate(*t.ActualStartDate),
				End:   calendar.FormatDate(*t.ActualEndDate),
			}
		}
	}
	return nil
}
