// Package model holds the records exchanged between the dashboard and the host.
package model

import (
	"strings"

	"github.com/Laisky/errors/v2"
)

// FileRecord is one file observed on the desktop. Path is unique.
type FileRecord struct {
	Name         string    `json:"name"`
	Path         string    `json:"path"`
	Ext          string    `json:"ext"`
	SizeBytes    int64     `json:"size_bytes"`
	LastModified string    `json:"last_modified"`
	LastAccess   string    `json:"last_access"`
	TrashScore   *float64  `json:"trash_score,omitempty"`
	TrashReasons []string  `json:"trash_reasons,omitempty"`
	FirstSeenAt  string    `json:"first_seen_at,omitempty"`
	LastSeenAt   string    `json:"last_seen_at,omitempty"`
	SeenCount    int       `json:"seen_count,omitempty"`
	UserLabel    *Label    `json:"user_label"`
	UserCategory *Category `json:"user_category"`
}

// FilesPayload is the body of a filesUpdated notification.
type FilesPayload struct {
	Files []FileRecord `json:"files"`
	Error *string      `json:"error,omitempty"`
}

// TotalSize sums the size of every record.
func TotalSize(files []FileRecord) int64 {
	var total int64
	for _, f := range files {
		total += f.SizeBytes
	}
	return total
}

type Label string

const (
	LabelTrash    Label = "trash"
	LabelKeep     Label = "keep"
	LabelPinned   Label = "pinned"
	LabelOrganize Label = "organize"
)

var Labels = []Label{LabelTrash, LabelKeep, LabelPinned, LabelOrganize}

type Category string

const (
	CategoryStudy    Category = "study"
	CategoryWork     Category = "work"
	CategoryPersonal Category = "personal"
	CategoryGames    Category = "games"
)

var Categories = []Category{CategoryStudy, CategoryWork, CategoryPersonal, CategoryGames}

// ParseLabel accepts one of Labels, or "none"/"" for no label.
func ParseLabel(s string) (*Label, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "none" {
		return nil, nil
	}
	for _, l := range Labels {
		if string(l) == s {
			out := l
			return &out, nil
		}
	}
	return nil, errors.Errorf("unknown label %q", s)
}

// ParseCategory accepts one of Categories, or "none"/"" for no category.
func ParseCategory(s string) (*Category, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "none" {
		return nil, nil
	}
	for _, c := range Categories {
		if string(c) == s {
			out := c
			return &out, nil
		}
	}
	return nil, errors.Errorf("unknown category %q", s)
}

// Short is the display form of an optional label.
func (l *Label) Short() string {
	if l == nil || *l == "" {
		return "-"
	}
	s := string(*l)
	return strings.ToUpper(s[:1]) + s[1:]
}

// Short is the display form of an optional category.
func (c *Category) Short() string {
	if c == nil || *c == "" {
		return "-"
	}
	s := string(*c)
	return strings.ToUpper(s[:1]) + s[1:]
}
