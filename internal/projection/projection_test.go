//nolint:testpackage // Tests require internal access for thorough testing
package projection

import (
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugogabrielsalles97-collab/onstructneon-controle-de-obras-sub001/internal/calendar"
	"github.com/hugogabrielsalles97-collab/onstructneon-controle-de-obras-sub001/internal/task"
)

const hour = time.Hour

func day(s string) time.Time {
	d, err := calendar.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func dayPtr(s string) *time.Time {
	d := day(s)
	return &d
}

func makeTask(id, start, due string) task.Task {
	return task.Task{
		ID:        id,
		Title:     "Task " + id,
		Status:    task.StatusToDo,
		StartDate: day(start),
		DueDate:   day(due),
	}
}

func sampleFor(t *testing.T, samples []DailySample, d string) DailySample {
	t.Helper()
	s, ok := At(samples, day(d))
	require.True(t, ok, "no sample for %s", d)
	return s
}

func TestPlannedBoundaries(t *testing.T) {
	tk := makeTask("a", "2024-01-01", "2024-01-11")
	start := calendar.StartOfDay(tk.StartDate)
	end := calendar.EndOfDay(tk.DueDate)

	assert.InDelta(t, 0.0, Planned(&tk, start.Add(-time.Nanosecond)), 0)
	assert.InDelta(t, 0.0, Planned(&tk, start), 0)
	assert.InDelta(t, 100.0, Planned(&tk, end), 0)
	assert.InDelta(t, 100.0, Planned(&tk, end.AddDate(0, 1, 0)), 0)

	// Eleven calendar days, half way is 5.5 days in.
	assert.InDelta(t, 50.0, Planned(&tk, start.Add(5*24*hour+12*hour)), 1e-6)
}

func TestPlannedIsMonotonic(t *testing.T) {
	tk := makeTask("a", "2024-03-10", "2024-03-20")
	prev := -1.0
	for at := day("2024-03-08"); at.Before(day("2024-03-23")); at = at.Add(hour) {
		v := Planned(&tk, at)
		require.GreaterOrEqual(t, v, prev, "decreased at %s", at)
		require.GreaterOrEqual(t, v, 0.0)
		require.LessOrEqual(t, v, 100.0)
		prev = v
	}
	assert.InDelta(t, 100.0, prev, 0)
}

func TestPlannedZeroDuration(t *testing.T) {
	tk := makeTask("a", "2024-01-05", "2024-01-05")
	start := day("2024-01-05")

	assert.InDelta(t, 0.0, Planned(&tk, start.Add(-time.Nanosecond)), 0)
	assert.InDelta(t, 100.0, Planned(&tk, calendar.EndOfDay(start)), 0)
	assert.InDelta(t, 100.0, Planned(&tk, day("2024-02-01")), 0)

	samples := Series([]task.Task{tk}, day("2024-01-03"))
	for _, s := range samples {
		if s.Date.Before(start) {
			assert.Equal(t, 0, s.Planned, s.Date)
		} else {
			assert.Equal(t, 100, s.Planned, s.Date)
		}
	}
}

func TestRampCollapsedWindow(t *testing.T) {
	at := day("2024-01-05")
	v := ramp(at, at, at, 80)
	assert.False(t, math.IsNaN(v))
	assert.InDelta(t, 80.0, v, 0)

	v = ramp(at, at, at.Add(-hour), 80)
	assert.InDelta(t, 80.0, v, 0)
	assert.InDelta(t, 0.0, ramp(at.Add(-hour), at, at, 80), 0)
}

func TestActualNeverStarted(t *testing.T) {
	tk := makeTask("a", "2024-01-01", "2024-01-11")
	tk.Progress = 70
	now := day("2024-01-20")
	assert.InDelta(t, 0.0, Actual(&tk, calendar.EndOfDay(now), now), 0)
}

func TestActualOpenTaskCapsAtProgress(t *testing.T) {
	now := day("2024-01-06").Add(10 * hour)
	for progress := 0; progress <= 100; progress += 5 {
		tk := makeTask("a", "2024-01-01", "2024-01-11")
		tk.Status = task.StatusInProgress
		tk.ActualStartDate = dayPtr("2024-01-01")
		tk.Progress = progress

		got := Actual(&tk, calendar.EndOfDay(now), now)
		assert.LessOrEqual(t, got, float64(progress))
		assert.InDelta(t, float64(progress), got, 0)
	}
}

func TestActualOpenTaskRampsTowardToday(t *testing.T) {
	tk := makeTask("a", "2024-01-01", "2024-01-11")
	tk.Status = task.StatusInProgress
	tk.ActualStartDate = dayPtr("2024-01-01")
	tk.Progress = 50
	now := day("2024-01-06")

	// Five of the six days from the actual start through the end of today.
	got := Actual(&tk, day("2024-01-06"), now)
	assert.InDelta(t, 50.0*5/6, got, 1e-6)
	assert.Less(t, got, 50.0)
}

func TestActualCompletedTask(t *testing.T) {
	tk := makeTask("a", "2024-01-01", "2024-01-11")
	tk.Status = task.StatusCompleted
	tk.Progress = 100
	tk.ActualStartDate = dayPtr("2024-01-01")
	tk.ActualEndDate = dayPtr("2024-01-08")
	now := day("2024-01-20")

	assert.InDelta(t, 0.0, Actual(&tk, day("2024-01-01"), now), 0)
	assert.InDelta(t, 37.5, Actual(&tk, day("2024-01-04"), now), 1e-6)
	assert.InDelta(t, 100.0, Actual(&tk, calendar.EndOfDay(day("2024-01-08")), now), 0)
	assert.InDelta(t, 100.0, Actual(&tk, calendar.EndOfDay(day("2024-01-15")), now), 0)
}

func TestActualCompletedWithoutEndUsesToday(t *testing.T) {
	tk := makeTask("a", "2024-01-01", "2024-01-11")
	tk.Status = task.StatusCompleted
	tk.Progress = 100
	tk.ActualStartDate = dayPtr("2024-01-01")
	now := day("2024-01-10")

	assert.InDelta(t, 50.0, Actual(&tk, day("2024-01-06"), now), 1e-6)
	assert.InDelta(t, 100.0, Actual(&tk, calendar.EndOfDay(now), now), 0)
}

func TestActualPastEndReportsRawProgress(t *testing.T) {
	tk := makeTask("a", "2024-01-01", "2024-01-11")
	tk.Status = task.StatusCompleted
	tk.Progress = 80
	tk.ActualStartDate = dayPtr("2024-01-01")
	tk.ActualEndDate = dayPtr("2024-01-03")
	now := day("2024-01-20")

	assert.InDelta(t, 80.0, Actual(&tk, calendar.EndOfDay(day("2024-01-05")), now), 0)
}

func TestSeriesEmpty(t *testing.T) {
	samples := Series(nil, day("2024-01-01"))
	require.NotNil(t, samples)
	assert.Empty(t, samples)

	samples = Series([]task.Task{}, day("2024-01-01"))
	require.NotNil(t, samples)
	assert.Empty(t, samples)
}

func TestSeriesSingleOpenTask(t *testing.T) {
	tk := makeTask("a", "2024-01-01", "2024-01-11")
	tk.Status = task.StatusInProgress
	tk.ActualStartDate = dayPtr("2024-01-01")
	tk.Progress = 50
	now := day("2024-01-06").Add(9 * hour)

	samples := Series([]task.Task{tk}, now)
	require.Len(t, samples, 11)
	assert.Equal(t, day("2024-01-01"), samples[0].Date)
	assert.Equal(t, day("2024-01-11"), samples[10].Date)

	today := sampleFor(t, samples, "2024-01-06")
	// Sampled at the end of 2024-01-06. Planned only reads 50 at 2024-01-06
	// 12:00, and Actual only reads 25 at the end of 2024-01-03 (the mid
	// sample below), so 55 and 50 are correct here.
	assert.Equal(t, 55, today.Planned)
	require.NotNil(t, today.Actual)
	assert.Equal(t, 50, *today.Actual)

	mid := sampleFor(t, samples, "2024-01-03")
	require.NotNil(t, mid.Actual)
	assert.Equal(t, 25, *mid.Actual)

	assert.Equal(t, 100, samples[10].Planned)
}

func TestSeriesFutureDaysHaveNoActual(t *testing.T) {
	tasks := []task.Task{
		makeTask("a", "2024-01-01", "2024-01-31"),
		makeTask("b", "2024-01-10", "2024-02-15"),
	}
	tasks[0].ActualStartDate = dayPtr("2024-01-02")
	tasks[0].Progress = 30
	now := day("2024-01-20")

	for _, s := range Series(tasks, now) {
		if s.Date.After(now) {
			assert.Nil(t, s.Actual, s.Date)
		} else {
			assert.NotNil(t, s.Actual, s.Date)
		}
	}
}

func TestSeriesExtendsToToday(t *testing.T) {
	tasks := []task.Task{makeTask("a", "2024-01-01", "2024-01-05")}
	samples := Series(tasks, day("2024-01-09"))
	require.Len(t, samples, 9)
	assert.Equal(t, day("2024-01-09"), samples[8].Date)
	require.NotNil(t, samples[8].Actual)
}

func TestSeriesCompletedAndNotStarted(t *testing.T) {
	done := makeTask("done", "2024-01-01", "2024-01-10")
	done.Status = task.StatusCompleted
	done.Progress = 100
	done.ActualStartDate = dayPtr("2024-01-03")
	done.ActualEndDate = dayPtr("2024-01-10")

	idle := makeTask("idle", "2024-01-01", "2024-01-10")

	now := day("2024-01-20")
	both := Series([]task.Task{done, idle}, now)
	single := Series([]task.Task{idle}, now)

	require.Len(t, both, len(single))
	for i := range both {
		assert.Equal(t, single[i].Planned, both[i].Planned, both[i].Date)
	}

	for _, d := range []string{"2024-01-01", "2024-01-02"} {
		s := sampleFor(t, both, d)
		require.NotNil(t, s.Actual)
		assert.Equal(t, 0, *s.Actual, d)
	}
	for _, d := range []string{"2024-01-10", "2024-01-15", "2024-01-20"} {
		s := sampleFor(t, both, d)
		require.NotNil(t, s.Actual)
		assert.Equal(t, 50, *s.Actual, d)
	}
}

func TestSeriesIsIdempotentAndOrderIndependent(t *testing.T) {
	tasks := []task.Task{
		makeTask("a", "2024-01-01", "2024-01-20"),
		makeTask("b", "2024-01-05", "2024-01-12"),
		makeTask("c", "2024-01-08", "2024-02-02"),
	}
	tasks[1].Status = task.StatusCompleted
	tasks[1].Progress = 100
	tasks[1].ActualStartDate = dayPtr("2024-01-06")
	tasks[1].ActualEndDate = dayPtr("2024-01-11")
	tasks[2].ActualStartDate = dayPtr("2024-01-09")
	tasks[2].Progress = 35

	now := day("2024-01-15").Add(14 * hour)
	first := Series(tasks, now)
	second := Series(tasks, now)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("Series not idempotent (-first +second):\n%s", diff)
	}

	reversed := []task.Task{tasks[2], tasks[0], tasks[1]}
	if diff := cmp.Diff(first, Series(reversed, now)); diff != "" {
		t.Errorf("Series depends on input order (-want +got):\n%s", diff)
	}

	for i := 1; i < len(first); i++ {
		assert.True(t, first[i-1].Date.Before(first[i].Date))
	}
}

func TestSeriesDoesNotMutateInput(t *testing.T) {
	tasks := []task.Task{makeTask("a", "2024-01-01", "2024-01-20")}
	tasks[0].ActualStartDate = dayPtr("2024-01-02")
	before := task.Fingerprint(tasks)

	Series(tasks, day("2024-01-10"))
	assert.Equal(t, before, task.Fingerprint(tasks))
}

func TestAt(t *testing.T) {
	samples := Series([]task.Task{makeTask("a", "2024-01-01", "2024-01-03")}, day("2024-01-01"))

	_, ok := At(samples, day("2023-12-31"))
	assert.False(t, ok)
	_, ok = At(samples, day("2024-01-04"))
	assert.False(t, ok)
	s, ok := At(samples, day("2024-01-02"))
	assert.True(t, ok)
	assert.Equal(t, day("2024-01-02"), s.Date)

	_, ok = At(nil, day("2024-01-02"))
	assert.False(t, ok)
}

func TestMemo(t *testing.T) {
	tasks := []task.Task{makeTask("a", "2024-01-01", "2024-01-20")}
	tasks[0].ActualStartDate = dayPtr("2024-01-02")
	tasks[0].Progress = 20
	m := NewMemo()

	now := day("2024-01-10").Add(8 * hour)
	first := m.Series(tasks, now)
	later := m.Series(tasks, now.Add(6*hour))
	assert.Equal(t, 1, m.Hits())
	assert.Equal(t, first, later)

	// A new day invalidates the entry.
	next := m.Series(tasks, day("2024-01-11"))
	assert.Equal(t, 1, m.Hits())
	assert.NotEqual(t, first, next)

	// So does a change in the tasks, even within the same slice.
	tasks[0].Progress = 60
	changed := m.Series(tasks, day("2024-01-11"))
	assert.Equal(t, 1, m.Hits())
	if diff := cmp.Diff(Series(tasks, day("2024-01-11")), changed); diff != "" {
		t.Errorf("stale memo (-want +got):\n%s", diff)
	}

	m.Reset()
	m.Series(tasks, day("2024-01-11"))
	assert.Equal(t, 1, m.Hits())
}
