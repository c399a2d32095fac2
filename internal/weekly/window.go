// Package weekly keeps the rolling per-day cleanliness history.
package weekly

import (
	"math"
	"time"
)

const (
	// ReferenceCount is the file count at which the score reaches zero.
	ReferenceCount = 50
	// Size is the maximum number of points kept.
	Size = 7
)

// Point is one cleanliness sample. DayIndex is 0 for Monday, 6 for Sunday.
type Point struct {
	DayIndex int `json:"dayIndex"`
	Value    int `json:"value"`
}

// Window holds at most Size points, one per day index, in insertion order.
type Window struct {
	points []Point
}

// Score maps a desktop file count to a 0..100 cleanliness percentage.
func Score(count int) int {
	if count == 0 {
		return 100
	}
	return int(math.Round(Percent(count)))
}

// Percent is the unrounded score used for display gauges.
func Percent(count int) float64 {
	if count == 0 {
		return 100
	}
	v := 100 - float64(count)/ReferenceCount*100
	return math.Max(0, math.Min(100, v))
}

// DayIndex rotates a Sunday-based weekday so Monday is 0.
func DayIndex(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}

// RecordToday stores the score for count under now's day index.
// An existing point for the same day is replaced and moves to the end.
func (w *Window) RecordToday(count int, now time.Time) Point {
	p := Point{DayIndex: DayIndex(now.Weekday()), Value: Score(count)}
	next := make([]Point, 0, len(w.points)+1)
	for _, old := range w.points {
		if old.DayIndex != p.DayIndex {
			next = append(next, old)
		}
	}
	next = append(next, p)
	if len(next) > Size {
		next = next[len(next)-Size:]
	}
	w.points = next
	return p
}

// Points returns a copy of the points in insertion order.
func (w Window) Points() []Point {
	out := make([]Point, len(w.points))
	copy(out, w.points)
	return out
}

func (w Window) Len() int { return len(w.points) }

// Lookup returns the point for a day index. Days without a scan have no point.
func (w Window) Lookup(dayIndex int) (Point, bool) {
	for _, p := range w.points {
		if p.DayIndex == dayIndex {
			return p, true
		}
	}
	return Point{}, false
}

// Average is the rounded mean value, 0 for an empty window.
func (w Window) Average() int {
	if len(w.points) == 0 {
		return 0
	}
	sum := 0
	for _, p := range w.points {
		sum += p.Value
	}
	return int(math.Round(float64(sum) / float64(len(w.points))))
}

func (w Window) Best() (Point, bool) {
	return w.pick(func(a, b int) bool { return a > b })
}

func (w Window) Worst() (Point, bool) {
	return w.pick(func(a, b int) bool { return a < b })
}

func (w Window) pick(better func(a, b int) bool) (Point, bool) {
	if len(w.points) == 0 {
		return Point{}, false
	}
	out := w.points[0]
	for _, p := range w.points[1:] {
		if better(p.Value, out.Value) {
			out = p
		}
	}
	return out, true
}
