package weekly

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// 2026-10-12 is a Monday.
func day(offset int) time.Time {
	return time.Date(2026, 10, 12+offset, 9, 30, 0, 0, time.Local)
}

func TestScore(t *testing.T) {
	require.Equal(t, 100, Score(0))
	require.Equal(t, 98, Score(1))
	require.Equal(t, 50, Score(25))
	require.Equal(t, 0, Score(50))
	require.Equal(t, 0, Score(500))

	for c := 0; c <= 120; c++ {
		want := int(math.Round(math.Max(0, math.Min(100, 100-float64(c)/50*100))))
		require.Equal(t, want, Score(c), "count %d", c)
	}
}

func TestDayIndex(t *testing.T) {
	want := []int{6, 0, 1, 2, 3, 4, 5}
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		require.Equal(t, want[wd], DayIndex(wd), "weekday %s", wd)
	}
	require.Equal(t, 0, DayIndex(day(0).Weekday()))
}

func TestRecordTodayOverwritesSameDay(t *testing.T) {
	var w Window
	w.RecordToday(10, day(0))
	w.RecordToday(40, day(1))
	p := w.RecordToday(25, day(0))

	require.Equal(t, Point{DayIndex: 0, Value: 50}, p)
	require.Equal(t, []Point{{DayIndex: 1, Value: 20}, {DayIndex: 0, Value: 50}}, w.Points())
}

func TestRecordTodayEvictsOldest(t *testing.T) {
	var w Window
	for i := 0; i < 7; i++ {
		w.RecordToday(i, day(i))
	}
	require.Equal(t, 7, w.Len())

	// next Monday replaces the old Monday point; still 7 entries
	w.RecordToday(50, day(7))
	pts := w.Points()
	require.Len(t, pts, 7)
	require.Equal(t, Point{DayIndex: 0, Value: 0}, pts[6])
	require.Equal(t, 1, pts[0].DayIndex)
}

func TestWindowInvariantsUnderRandomSequence(t *testing.T) {
	var w Window
	for i := 0; i < 200; i++ {
		w.RecordToday((i*7)%60, day((i*5)%11))
		pts := w.Points()
		require.LessOrEqual(t, len(pts), Size)
		seen := map[int]bool{}
		for _, p := range pts {
			require.False(t, seen[p.DayIndex], "duplicate day %d", p.DayIndex)
			seen[p.DayIndex] = true
		}
	}
}

func TestWindowSummaries(t *testing.T) {
	var w Window
	_, ok := w.Best()
	require.False(t, ok)
	require.Equal(t, 0, w.Average())

	w.RecordToday(0, day(0))  // 100
	w.RecordToday(25, day(2)) // 50
	w.RecordToday(40, day(4)) // 20

	require.Equal(t, 57, w.Average())
	best, ok := w.Best()
	require.True(t, ok)
	require.Equal(t, 0, best.DayIndex)
	worst, _ := w.Worst()
	require.Equal(t, 4, worst.DayIndex)

	_, ok = w.Lookup(1)
	require.False(t, ok)
	p, ok := w.Lookup(2)
	require.True(t, ok)
	require.Equal(t, 50, p.Value)
}
