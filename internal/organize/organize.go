// Package organize moves desktop files the user labeled "organize" into
// the matching folder under home.
package organize

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Laisky/errors/v2"

	"desktopcleaner/internal/model"
)

var folderByExt = map[string]string{
	".mp4": "Videos", ".mov": "Videos", ".mkv": "Videos", ".avi": "Videos", ".webm": "Videos",
	".mp3": "Music", ".wav": "Music", ".flac": "Music", ".ogg": "Music",
	".jpg": "Pictures", ".jpeg": "Pictures", ".png": "Pictures", ".gif": "Pictures",
	".webp": "Pictures", ".bmp": "Pictures", ".heic": "Pictures",
	".pdf": "Documents", ".doc": "Documents", ".docx": "Documents", ".txt": "Documents",
	".md": "Documents", ".xls": "Documents", ".xlsx": "Documents", ".ppt": "Documents", ".pptx": "Documents",
	".zip": "Downloads", ".rar": "Downloads", ".7z": "Downloads", ".tar": "Downloads", ".gz": "Downloads",
	".exe": "Downloads", ".msi": "Downloads", ".apk": "Downloads",
}

// Folder names the home subfolder for ext, if there is one.
func Folder(ext string) (string, bool) {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	f, ok := folderByExt[ext]
	return f, ok
}

type Move struct {
	From string
	To   string
}

// Plan lists a move for every file labeled organize whose type has a home
// folder. Files of unknown type are returned in skipped.
func Plan(home string, files []model.FileRecord) (moves []Move, skipped []model.FileRecord) {
	for _, f := range files {
		if f.UserLabel == nil || *f.UserLabel != model.LabelOrganize {
			continue
		}
		folder, ok := Folder(f.Ext)
		if !ok {
			skipped = append(skipped, f)
			continue
		}
		moves = append(moves, Move{From: f.Path, To: filepath.Join(home, folder, f.Name)})
	}
	return moves, skipped
}

// Apply performs m, renaming the target if a file already sits there, and
// returns where the file ended up.
func Apply(m Move) (string, error) {
	dst, err := uniquePath(m.To)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", errors.Wrapf(err, "create %s", filepath.Dir(dst))
	}
	if err := os.Rename(m.From, dst); err != nil {
		return "", errors.Wrapf(err, "move %s", m.From)
	}
	return dst, nil
}

func uniquePath(path string) (string, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path, nil
	} else if err != nil {
		return "", errors.Wrapf(err, "stat %s", path)
	}

	ext := filepath.Ext(path)
	base := strings.TrimSuffix(filepath.Base(path), ext)
	dir := filepath.Dir(path)
	for i := 1; i <= 9999; i++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s (%d)%s", base, i, ext))
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate, nil
		} else if err != nil {
			return "", errors.Wrapf(err, "stat %s", candidate)
		}
	}
	return "", errors.Errorf("cannot find a free name for %s", path)
}
