// Package ui renders sizes, bars and gauges for terminal output.
package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/fatih/color"
)

type Theme struct {
	NoColor bool
	NoEmoji bool
}

func (t Theme) Emoji(s string) string {
	if t.NoEmoji {
		return ""
	}
	return s
}

// Bar draws ratio of width cells. Heavier shares are drawn hotter.
func (t Theme) Bar(ratio float64, width int) string {
	ratio = clamp01(ratio)
	count := int(math.Round(ratio * float64(width)))
	if count < 1 && ratio > 0 {
		count = 1
	}
	bar := strings.Repeat("█", count)
	pad := strings.Repeat(" ", width-count)

	if t.NoColor {
		return bar + pad
	}
	switch {
	case ratio >= 0.66:
		return color.New(color.FgRed, color.Bold).Sprint(bar) + pad
	case ratio >= 0.33:
		return color.New(color.FgYellow, color.Bold).Sprint(bar) + pad
	default:
		return color.New(color.FgBlue, color.Bold).Sprint(bar) + pad
	}
}

// Gauge draws a 0..100 cleanliness value; unlike Bar, high is good.
func (t Theme) Gauge(percent float64, width int) string {
	ratio := clamp01(percent / 100)
	count := int(math.Round(ratio * float64(width)))
	bar := strings.Repeat("█", count) + strings.Repeat("░", width-count)
	label := fmt.Sprintf(" %3.0f%%", ratio*100)

	if t.NoColor {
		return bar + label
	}
	c := color.New(color.FgGreen, color.Bold)
	switch {
	case ratio < 0.4:
		c = color.New(color.FgRed, color.Bold)
	case ratio < 0.7:
		c = color.New(color.FgYellow, color.Bold)
	}
	return c.Sprint(bar) + label
}

// Score colors a 0..1 trash score.
func (t Theme) Score(score float64) string {
	s := fmt.Sprintf("%.2f", score)
	if t.NoColor {
		return s
	}
	switch {
	case score >= 0.6:
		return color.RedString(s)
	case score >= 0.3:
		return color.YellowString(s)
	default:
		return color.GreenString(s)
	}
}

// FormatSize prints bytes with binary units up to GB and one decimal.
func FormatSize(n int64) string {
	const unit = 1024
	switch {
	case n < unit:
		return fmt.Sprintf("%d B", n)
	case n < unit*unit:
		return fmt.Sprintf("%.1f KB", float64(n)/unit)
	case n < unit*unit*unit:
		return fmt.Sprintf("%.1f MB", float64(n)/unit/unit)
	default:
		return fmt.Sprintf("%.1f GB", float64(n)/unit/unit/unit)
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
