package output

import (
	"fmt"
	"strings"

	"github.com/hugogabrielsalles97-collab/onstructneon-controle-de-obras-sub001/internal/calendar"
	"github.com/hugogabrielsalles97-collab/onstructneon-controle-de-obras-sub001/internal/projection"
	"github.com/hugogabrielsalles97-collab/onstructneon-controle-de-obras-sub001/internal/report"
	"github.com/hugogabrielsalles97-collab/onstructneon-controle-de-obras-sub001/internal/storage"
	"github.com/hugogabrielsalles97-collab/onstructneon-controle-de-obras-sub001/internal/task"
	"github.com/hugogabrielsalles97-collab/onstructneon-controle-de-obras-sub001/internal/timeline"
)

const (
	curveWidth = 40
	titleWidth = 24
)

// HumanFormatter formats output for human-readable terminal display.
type HumanFormatter struct{}

// NewHumanFormatter creates a new HumanFormatter.
func NewHumanFormatter() *HumanFormatter {
	return &HumanFormatter{}
}

// FormatTask formats a single task for display.
func (f *HumanFormatter) FormatTask(t *task.Task) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "[%s] %s\n", t.ID, t.Title)
	fmt.Fprintf(&sb, "  Status:   %s\n", t.Status)
	fmt.Fprintf(&sb, "  Progress: %d%%\n", t.Progress)
	fmt.Fprintf(&sb, "  Planned:  %s → %s\n", calendar.FormatDate(t.StartDate), calendar.FormatDate(t.DueDate))
	if t.ActualStartDate != nil {
		end := "ongoing"
		if t.ActualEndDate != nil {
			end = calendar.FormatDate(*t.ActualEndDate)
		}
		fmt.Fprintf(&sb, "  Actual:   %s → %s\n", calendar.FormatDate(*t.ActualStartDate), end)
	}
	if t.Location != "" {
		fmt.Fprintf(&sb, "  Location: %s\n", t.Location)
	}
	if t.Discipline != "" {
		fmt.Fprintf(&sb, "  Trade:    %s\n", t.Discipline)
	}
	if t.Description != "" {
		sb.WriteString("\n")
		sb.WriteString(t.Description)
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatTaskList formats a list of tasks, one per line.
func (f *HumanFormatter) FormatTaskList(tasks []task.Task) string {
	if len(tasks) == 0 {
		return "No tasks found.\n"
	}

	var sb strings.Builder
	for i := range tasks {
		t := &tasks[i]
		fmt.Fprintf(&sb, "%s %3d%% [%s] %s (%s → %s)\n",
			f.statusIcon(task.DisplayStatus(t.Status)),
			t.Progress,
			t.ID,
			t.Title,
			calendar.FormatDate(t.StartDate),
			calendar.FormatDate(t.DueDate),
		)
	}
	return sb.String()
}

// FormatSeries renders the S-curve as a table with inline bars. Planned is
// drawn with '-', actual with '#'.
func (f *HumanFormatter) FormatSeries(samples []projection.DailySample) string {
	if len(samples) == 0 {
		return "No tasks found.\n"
	}

	var sb strings.Builder
	sb.WriteString("Date        Plan  Real\n")
	for _, s := range samples {
		actual := "   -"
		bar := strings.Repeat("-", s.Planned*curveWidth/100)
		if s.Actual != nil {
			actual = fmt.Sprintf("%3d%%", *s.Actual)
			filled := *s.Actual * curveWidth / 100
			bar = overlay(bar, strings.Repeat("#", filled))
		}
		fmt.Fprintf(&sb, "%s  %3d%%  %s  %s\n", calendar.FormatDate(s.Date), s.Planned, actual, bar)
	}
	return sb.String()
}

// FormatLayout renders an ASCII Gantt chart. Each column is one day; '=' is
// the filled part of a bar, '-' the rest, '~' the baseline and '|' today.
func (f *HumanFormatter) FormatLayout(l timeline.Layout) string {
	if len(l.Bars) == 0 {
		return "No tasks found.\n"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s → %s (%d days)\n", calendar.FormatDate(l.Start), calendar.FormatDate(l.End), l.TotalDays)
	for _, b := range l.Bars {
		row := []rune(strings.Repeat(" ", l.TotalDays))
		filled := int(b.VisualProgressPercent * float64(b.DurationDays) / 100)
		for i := range b.DurationDays {
			col := b.StartOffsetDays + i
			if col >= len(row) {
				break
			}
			if i < filled {
				row[col] = '='
			} else {
				row[col] = '-'
			}
		}
		f.markToday(row, l)
		fmt.Fprintf(&sb, "%s %-*s %s %s\n", f.statusIcon(b.DisplayStatus), titleWidth, truncate(b.Title, titleWidth), string(row), b.TaskID)

		if b.BaselineOffsetDays != nil && b.BaselineDurationDays != nil {
			shadow := []rune(strings.Repeat(" ", l.TotalDays))
			for i := range *b.BaselineDurationDays {
				col := *b.BaselineOffsetDays + i
				if col >= 0 && col < len(shadow) {
					shadow[col] = '~'
				}
			}
			f.markToday(shadow, l)
			fmt.Fprintf(&sb, "    %-*s %s\n", titleWidth, "", string(shadow))
		}
	}
	return sb.String()
}

func (f *HumanFormatter) markToday(row []rune, l timeline.Layout) {
	if l.TodayVisible && row[l.TodayOffsetDays] == ' ' {
		row[l.TodayOffsetDays] = '|'
	}
}

// FormatSummary formats the dashboard summary.
func (f *HumanFormatter) FormatSummary(s report.Summary) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Status as of %s\n", calendar.FormatDate(s.Date))
	fmt.Fprintf(&sb, "  Planned:   %3d%%\n", s.Planned)
	fmt.Fprintf(&sb, "  Actual:    %3d%%\n", s.Actual)
	fmt.Fprintf(&sb, "  Deviation: %+d pts\n", s.Deviation)
	fmt.Fprintf(&sb, "  Tasks:     %d", s.TotalTasks)
	for _, st := range task.DisplayStatuses() {
		fmt.Fprintf(&sb, " | %s %d", st, s.ByStatus[st])
	}
	sb.WriteString("\n")
	if len(s.Overdue) > 0 {
		fmt.Fprintf(&sb, "  Overdue:   %s\n", strings.Join(s.Overdue, ", "))
	}
	return sb.String()
}

// FormatBaselines formats baseline snapshots, most recent first.
func (f *HumanFormatter) FormatBaselines(baselines []storage.Baseline) string {
	if len(baselines) == 0 {
		return "No baselines captured.\n"
	}
	var sb strings.Builder
	for _, b := range baselines {
		fmt.Fprintf(&sb, "[%s] %s (%d tasks, %s)\n", b.ID, b.Label, b.TaskCount, b.CapturedAt.Format("2006-01-02 15:04"))
	}
	return sb.String()
}

func (f *HumanFormatter) statusIcon(s task.DisplayStatus) string {
	switch s {
	case task.DisplayToDo:
		return "[ ]"
	case task.DisplayInProgress:
		return "[*]"
	case task.DisplayCompleted:
		return "[X]"
	case task.DisplayOverdue:
		return "[!]"
	default:
		return "[?]"
	}
}

// FormatError formats an error for display.
func (f *HumanFormatter) FormatError(err error) string {
	return fmt.Sprintf("Error: %s\n", err.Error())
}

// FormatMessage formats a simple message.
func (f *HumanFormatter) FormatMessage(msg string) string {
	return msg + "\n"
}

// overlay writes top over the start of base, extending it when longer.
func overlay(base, top string) string {
	if len(top) >= len(base) {
		return top
	}
	return top + base[len(top):]
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
