//nolint:testpackage // Tests require internal access for thorough testing
package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestParseAndFormatDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, d.Location())
	assert.Equal(t, "2024-02-29", FormatDate(d))

	_, err = ParseDate("2024-13-01")
	assert.Error(t, err)
}

func TestEndOfDay(t *testing.T) {
	d := date("2024-01-01")
	end := EndOfDay(d.Add(5 * time.Hour))

	assert.Equal(t, 2024, end.Year())
	assert.Equal(t, 1, end.Day())
	assert.Equal(t, 23, end.Hour())
	assert.Equal(t, date("2024-01-02"), end.Add(time.Nanosecond))
}

func TestDayDiff(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"same day", "2024-01-01", "2024-01-01", 0},
		{"ten days", "2024-01-01", "2024-01-11", 10},
		{"negative", "2024-01-11", "2024-01-01", -10},
		{"across leap day", "2024-02-28", "2024-03-01", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DayDiff(date(tt.a), date(tt.b)))
		})
	}
}

func TestDayDiffIgnoresTimeOfDay(t *testing.T) {
	a := date("2024-01-01").Add(23 * time.Hour)
	b := date("2024-01-02").Add(time.Hour)
	assert.Equal(t, 1, DayDiff(a, b))
}

func TestDayRange(t *testing.T) {
	days := DayRange(date("2024-01-30"), date("2024-02-02"))
	require.Len(t, days, 4)
	assert.Equal(t, "2024-01-30", FormatDate(days[0]))
	assert.Equal(t, "2024-02-02", FormatDate(days[3]))

	assert.Nil(t, DayRange(date("2024-02-02"), date("2024-01-30")))
	assert.Len(t, DayRange(date("2024-02-02"), date("2024-02-02")), 1)
}

func TestCivilAndToday(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	// 01:30 UTC on Jan 6 is still Jan 5 in UTC-3.
	now := time.Date(2024, 1, 6, 1, 30, 0, 0, time.UTC)

	assert.Equal(t, date("2024-01-05"), Today(now, loc))
	assert.Equal(t, date("2024-01-06"), Today(now, time.UTC))
	assert.Equal(t, date("2024-01-05").Add(22*time.Hour+30*time.Minute), Civil(now, loc))
	assert.Equal(t, date("2024-01-06"), Today(now, nil))
}

func TestBeforeMinMax(t *testing.T) {
	a, b := date("2024-01-01"), date("2024-01-02")
	assert.True(t, Before(a, b))
	assert.False(t, Before(b, a))
	assert.False(t, Before(a, a.Add(3*time.Hour)))
	assert.Equal(t, a, Min(a, b))
	assert.Equal(t, b, Max(a, b))
}
