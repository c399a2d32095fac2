package ui

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestFormatSize(t *testing.T) {
	cases := map[int64]string{
		0:                      "0 B",
		1023:                   "1023 B",
		1024:                   "1.0 KB",
		1536:                   "1.5 KB",
		5 * 1024 * 1024:        "5.0 MB",
		3 * 1024 * 1024 * 1024: "3.0 GB",
		5 << 40:                "5120.0 GB",
	}
	for in, want := range cases {
		if got := FormatSize(in); got != want {
			t.Fatalf("FormatSize(%d)=%q want %q", in, got, want)
		}
	}
}

func TestBarPlain(t *testing.T) {
	th := Theme{NoColor: true}
	if got := th.Bar(0.5, 10); got != strings.Repeat("█", 5)+strings.Repeat(" ", 5) {
		t.Fatalf("unexpected bar %q", got)
	}
	if got := th.Bar(0.01, 10); !strings.HasPrefix(got, "█ ") {
		t.Fatalf("tiny share should still show one cell: %q", got)
	}
	if got := th.Bar(3, 4); got != "████" {
		t.Fatalf("ratio should clamp: %q", got)
	}
}

func TestGaugePlain(t *testing.T) {
	got := Theme{NoColor: true}.Gauge(50, 10)
	if got != "█████░░░░░  50%" {
		t.Fatalf("unexpected gauge %q", got)
	}
	if n := utf8.RuneCountInString(Theme{NoColor: true}.Gauge(-5, 8)); n != 8+5 {
		t.Fatalf("gauge width mismatch: %d", n)
	}
}

func TestEmojiAndScore(t *testing.T) {
	if (Theme{NoEmoji: true}).Emoji("🧹") != "" {
		t.Fatalf("emoji should be hidden")
	}
	if (Theme{NoColor: true}).Score(0.456) != "0.46" {
		t.Fatalf("score format mismatch")
	}
}
