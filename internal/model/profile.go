package model

import "sort"

// NoneKey stands for a missing label or category in histograms.
const NoneKey = "none"

// ProfileSummary aggregates labels and categories.
type ProfileSummary struct {
	Version            int            `json:"version,omitempty"`
	TotalRecords       int            `json:"total_records"`
	LabeledRecords     int            `json:"labeled_records"`
	CategorizedRecords int            `json:"categorized_records"`
	Labels             map[string]int `json:"labels"`
	Categories         map[string]int `json:"categories"`
	TopLabel           *string        `json:"top_label"`
	TopCategory        *string        `json:"top_category"`
	Error              string         `json:"error,omitempty"`
}

// SummarizeFiles builds a summary from the given records only. Missing
// labels and categories are counted under NoneKey and may be the top key.
func SummarizeFiles(files []FileRecord) ProfileSummary {
	labels := map[string]int{}
	categories := map[string]int{}
	for _, f := range files {
		labels[labelKey(f.UserLabel)]++
		categories[categoryKey(f.UserCategory)]++
	}

	out := ProfileSummary{
		TotalRecords: len(files),
		Labels:       labels,
		Categories:   categories,
	}
	for k, v := range labels {
		if k != NoneKey {
			out.LabeledRecords += v
		}
	}
	for k, v := range categories {
		if k != NoneKey {
			out.CategorizedRecords += v
		}
	}
	top := TopKey(labels)
	out.TopLabel = &top
	topCat := TopKey(categories)
	out.TopCategory = &topCat
	return out
}

// TopKey returns the most frequent key, ties broken alphabetically.
// An empty histogram yields NoneKey.
func TopKey(m map[string]int) string {
	if len(m) == 0 {
		return NoneKey
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if m[keys[i]] != m[keys[j]] {
			return m[keys[i]] > m[keys[j]]
		}
		return keys[i] < keys[j]
	})
	return keys[0]
}

// Sorted returns histogram entries by descending count.
func Sorted(m map[string]int) []KeyCount {
	out := make([]KeyCount, 0, len(m))
	for k, v := range m {
		out = append(out, KeyCount{Key: k, Count: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	return out
}

type KeyCount struct {
	Key   string
	Count int
}

func labelKey(l *Label) string {
	if l == nil || *l == "" {
		return NoneKey
	}
	return string(*l)
}

func categoryKey(c *Category) string {
	if c == nil || *c == "" {
		return NoneKey
	}
	return string(*c)
}
