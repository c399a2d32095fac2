package category

import (
	"strings"

	"desktopcleaner/internal/model"
)

type Bucket string

const (
	Images    Bucket = "images"
	Documents Bucket = "documents"
	Archives  Bucket = "archives"
	Other     Bucket = "other"
)

var byExtension = map[string]Bucket{
	".png":  Images,
	".jpg":  Images,
	".jpeg": Images,
	".gif":  Images,
	".bmp":  Images,
	".webp": Images,
	".txt":  Documents,
	".pdf":  Documents,
	".doc":  Documents,
	".docx": Documents,
	".xlsx": Documents,
	".pptx": Documents,
	".dwg":  Documents,
	".zip":  Archives,
	".rar":  Archives,
	".7z":   Archives,
}

// Of buckets a file extension, with or without the leading dot.
func Of(ext string) Bucket {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	if b, ok := byExtension[ext]; ok {
		return b
	}
	return Other
}

type Count struct {
	Bucket Bucket
	Files  int
}

// Histogram counts files per bucket in the order buckets are first seen.
func Histogram(files []model.FileRecord) []Count {
	idx := map[Bucket]int{}
	out := []Count{}
	for _, f := range files {
		b := Of(f.Ext)
		i, ok := idx[b]
		if !ok {
			i = len(out)
			idx[b] = i
			out = append(out, Count{Bucket: b})
		}
		out[i].Files++
	}
	return out
}
