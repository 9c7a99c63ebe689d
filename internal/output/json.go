package output

import (
	"encoding/json"
	"time"

	"github.com/hugogabrielsalles97-collab/onstructneon-controle-de-obras-sub001/internal/calendar"
	"github.com/hugogabrielsalles97-collab/onstructneon-controle-de-obras-sub001/internal/projection"
	"github.com/hugogabrielsalles97-collab/onstructneon-controle-de-obras-sub001/internal/report"
	"github.com/hugogabrielsalles97-collab/onstructneon-controle-de-obras-sub001/internal/storage"
	"github.com/hugogabrielsalles97-collab/onstructneon-controle-de-obras-sub001/internal/task"
	"github.com/hugogabrielsalles97-collab/onstructneon-controle-de-obras-sub001/internal/timeline"
)

// JSONFormatter formats output as JSON.
type JSONFormatter struct{}

// marshalJSON marshals a value to indented JSON with a trailing newline.
func marshalJSON(v any) string {
	data, _ := json.MarshalIndent(v, "", "  ")
	return string(data) + "\n"
}

// NewJSONFormatter creates a new JSONFormatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

type taskJSON struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	Status          string  `json:"status"`
	Progress        int     `json:"progress"`
	StartDate       string  `json:"startDate"`
	DueDate         string  `json:"dueDate"`
	ActualStartDate *string `json:"actualStartDate,omitempty"`
	ActualEndDate   *string `json:"actualEndDate,omitempty"`
	Location        string  `json:"location,omitempty"`
	Discipline      string  `json:"discipline,omitempty"`
	Description     string  `json:"description,omitempty"`
}

func optionalDate(d *time.Time) *string {
	if d == nil {
		return nil
	}
	s := calendar.FormatDate(*d)
	return &s
}

func toTaskJSON(t *task.Task) taskJSON {
	return taskJSON{
		ID:              t.ID,
		Title:           t.Title,
		Status:          string(t.Status),
		Progress:        t.Progress,
		StartDate:       calendar.FormatDate(t.StartDate),
		DueDate:         calendar.FormatDate(t.DueDate),
		ActualStartDate: optionalDate(t.ActualStartDate),
		ActualEndDate:   optionalDate(t.ActualEndDate),
		Location:        t.Location,
		Discipline:      t.Discipline,
		Description:     t.Description,
	}
}

// FormatTask formats a single task as JSON.
func (f *JSONFormatter) FormatTask(t *task.Task) string {
	return marshalJSON(toTaskJSON(t))
}

// FormatTaskList formats a list of tasks as JSON.
func (f *JSONFormatter) FormatTaskList(tasks []task.Task) string {
	out := make([]taskJSON, len(tasks))
	for i := range tasks {
		out[i] = toTaskJSON(&tasks[i])
	}
	return marshalJSON(out)
}

// sampleJSON is the chart-ready shape of a DailySample. actualPercent is
// null for days after today.
type sampleJSON struct {
	Date           string `json:"date"`
	PlannedPercent int    `json:"plannedPercent"`
	ActualPercent  *int   `json:"actualPercent"`
}

// FormatSeries formats the S-curve as JSON.
func (f *JSONFormatter) FormatSeries(samples []projection.DailySample) string {
	out := make([]sampleJSON, len(samples))
	for i, s := range samples {
		out[i] = sampleJSON{
			Date:           calendar.FormatDate(s.Date),
			PlannedPercent: s.Planned,
			ActualPercent:  s.Actual,
		}
	}
	return marshalJSON(out)
}

type barJSON struct {
	TaskID                string  `json:"taskId"`
	Title                 string  `json:"title"`
	StartOffsetDays       int     `json:"startOffsetDays"`
	DurationDays          int     `json:"durationDays"`
	VisualProgressPercent float64 `json:"visualProgressPercent"`
	DisplayStatus         string  `json:"displayStatus"`
	BaselineOffsetDays    *int    `json:"baselineOffsetDays,omitempty"`
	BaselineDurationDays  *int    `json:"baselineDurationDays,omitempty"`
}

type layoutJSON struct {
	Start           string    `json:"start,omitempty"`
	End             string    `json:"end,omitempty"`
	TotalDays       int       `json:"totalDays"`
	TodayOffsetDays int       `json:"todayOffsetDays"`
	TodayVisible    bool      `json:"todayVisible"`
	Bars            []barJSON `json:"bars"`
}

// FormatLayout formats a timeline layout as JSON.
func (f *JSONFormatter) FormatLayout(l timeline.Layout) string {
	out := layoutJSON{
		TotalDays:       l.TotalDays,
		TodayOffsetDays: l.TodayOffsetDays,
		TodayVisible:    l.TodayVisible,
		Bars:            make([]barJSON, len(l.Bars)),
	}
	if l.TotalDays > 0 {
		out.Start = calendar.FormatDate(l.Start)
		out.End = calendar.FormatDate(l.End)
	}
	for i, b := range l.Bars {
		out.Bars[i] = barJSON{
			TaskID:                b.TaskID,
			Title:                 b.Title,
			StartOffsetDays:       b.StartOffsetDays,
			DurationDays:          b.DurationDays,
			VisualProgressPercent: b.VisualProgressPercent,
			DisplayStatus:         string(b.DisplayStatus),
			BaselineOffsetDays:    b.BaselineOffsetDays,
			BaselineDurationDays:  b.BaselineDurationDays,
		}
	}
	return marshalJSON(out)
}

type summaryJSON struct {
	Date           string         `json:"date"`
	TotalTasks     int            `json:"totalTasks"`
	PlannedPercent int            `json:"plannedPercent"`
	ActualPercent  int            `json:"actualPercent"`
	Deviation      int            `json:"deviation"`
	ByStatus       map[string]int `json:"byStatus"`
	Overdue        []string       `json:"overdue"`
}

// FormatSummary formats the dashboard summary as JSON.
func (f *JSONFormatter) FormatSummary(s report.Summary) string {
	byStatus := make(map[string]int, len(s.ByStatus))
	for k, v := range s.ByStatus {
		byStatus[string(k)] = v
	}
	return marshalJSON(summaryJSON{
		Date:           calendar.FormatDate(s.Date),
		TotalTasks:     s.TotalTasks,
		PlannedPercent: s.Planned,
		ActualPercent:  s.Actual,
		Deviation:      s.Deviation,
		ByStatus:       byStatus,
		Overdue:        s.Overdue,
	})
}

type baselineJSON struct {
	ID         string `json:"id"`
	Label      string `json:"label"`
	CapturedAt string `json:"capturedAt"`
	TaskCount  int    `json:"taskCount"`
}

// FormatBaselines formats baseline snapshots as JSON.
func (f *JSONFormatter) FormatBaselines(baselines []storage.Baseline) string {
	out := make([]baselineJSON, len(baselines))
	for i, b := range baselines {
		out[i] = baselineJSON{
			ID:         b.ID,
			Label:      b.Label,
			CapturedAt: b.CapturedAt.Format(time.RFC3339),
			TaskCount:  b.TaskCount,
		}
	}
	return marshalJSON(out)
}

type errorJSON struct {
	Error string `json:"error"`
}

// FormatError formats an error as JSON.
func (f *JSONFormatter) FormatError(err error) string {
	return marshalJSON(errorJSON{Error: err.Error()})
}

type messageJSON struct {
	Message string `json:"message"`
}

// FormatMessage formats a simple message as JSON.
func (f *JSONFormatter) FormatMessage(msg string) string {
	return marshalJSON(messageJSON{Message: msg})
}
