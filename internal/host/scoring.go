package host

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"desktopcleaner/internal/model"
)

var (
	tempExt      = map[string]bool{".tmp": true, ".crdownload": true, ".part": true, ".log": true, ".dmp": true}
	archiveExt   = map[string]bool{".zip": true, ".rar": true, ".7z": true}
	installerExt = map[string]bool{".exe": true, ".msi": true}

	duplicateName = []*regexp.Regexp{
		regexp.MustCompile(`\(\d+\)`),
		regexp.MustCompile(`(?i)\bcopy\b`),
		regexp.MustCompile(`(?i)\bfinal\b`),
		regexp.MustCompile(`(?i)\bnew\b`),
		regexp.MustCompile(`(?i)\bdownload\b`),
	}
)

const largePayload = 500 * 1024 * 1024

// Score rates how likely a desktop file is clutter, 0..1, with the signals
// that contributed. Files the user pinned or kept always score zero.
func Score(f model.FileRecord, rec Record, now time.Time) (float64, []string) {
	if rec.Label != nil && (*rec.Label == model.LabelPinned || *rec.Label == model.LabelKeep) {
		return 0, []string{"user_marked_important"}
	}

	ext := strings.ToLower(f.Ext)
	if tempExt[ext] {
		return 0.95, []string{"temporary_extension:" + ext}
	}

	var (
		score   float64
		reasons []string
	)
	daysMod, hasMod := daysSince(now, f.LastModified)
	daysSeen, hasSeen := daysSince(now, rec.FirstSeenAt)

	switch {
	case hasMod && daysMod > 180:
		score += 0.35
		reasons = append(reasons, fmt.Sprintf("not_modified_%dd", int(daysMod)))
	case hasMod && daysMod > 90:
		score += 0.25
		reasons = append(reasons, fmt.Sprintf("not_modified_%dd", int(daysMod)))
	case hasMod && daysMod > 30:
		score += 0.12
		reasons = append(reasons, fmt.Sprintf("not_modified_%dd", int(daysMod)))
	}

	if hasSeen && daysSeen > 14 {
		score += 0.10
		reasons = append(reasons, fmt.Sprintf("on_desktop_%dd", int(daysSeen)))
	}
	if installerExt[ext] && hasMod && daysMod > 14 {
		score += 0.25
		reasons = append(reasons, "old_installer")
	}
	if archiveExt[ext] && hasMod && daysMod > 30 {
		score += 0.18
		reasons = append(reasons, "old_archive")
	}

	name := strings.ToLower(f.Name)
	for _, re := range duplicateName {
		if re.MatchString(name) {
			score += 0.15
			reasons = append(reasons, "name_looks_like_duplicate")
			break
		}
	}

	if f.SizeBytes > largePayload && (installerExt[ext] || archiveExt[ext]) {
		score += 0.10
		reasons = append(reasons, "very_large_old_payload")
	}

	score = math.Max(0, math.Min(1, score))
	// keep two decimals so sums like 0.35+0.10 stay readable
	score = math.Round(score*100) / 100
	if len(reasons) == 0 {
		reasons = []string{"no_strong_signals"}
	}
	return score, reasons
}

// daysSince parses an RFC 3339 stamp, or a zone-less one read as UTC.
func daysSince(now time.Time, stamp string) (float64, bool) {
	stamp = strings.TrimSpace(stamp)
	if stamp == "" {
		return 0, false
	}
	t, err := time.Parse(time.RFC3339Nano, stamp)
	if err != nil {
		t, err = time.ParseInLocation("2006-01-02T15:04:05.999999999", stamp, time.UTC)
		if err != nil {
			return 0, false
		}
	}
	return now.Sub(t).Hours() / 24, true
}
