// Package scan lists the files sitting on the desktop.
package scan

import (
	"container/heap"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Laisky/errors/v2"
)

// Entry is one regular file found directly in the scanned folder.
type Entry struct {
	Name       string
	Path       string
	Ext        string
	Size       int64
	ModTime    time.Time
	AccessTime time.Time
}

// ListDesktop returns the regular files directly inside dir. Folders and
// symlinks are skipped, as are entries the user cannot stat.
func ListDesktop(dir string) ([]Entry, error) {
	dir = filepath.Clean(dir)
	items, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", dir)
	}

	out := make([]Entry, 0, len(items))
	for _, it := range items {
		if it.IsDir() || it.Type()&os.ModeSymlink != 0 || !it.Type().IsRegular() {
			continue
		}
		info, err := it.Info()
		if err != nil {
			if isAccessDenied(err) || errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, errors.Wrapf(err, "stat %s", it.Name())
		}
		out = append(out, Entry{
			Name:       it.Name(),
			Path:       filepath.Join(dir, it.Name()),
			Ext:        strings.ToLower(filepath.Ext(it.Name())),
			Size:       info.Size(),
			ModTime:    info.ModTime(),
			AccessTime: accessTime(info),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Ignored reports whether name matches one of the ignore patterns.
// Patterns use filepath.Match syntax and compare case-insensitively.
func Ignored(name string, patterns []string) bool {
	name = strings.ToLower(name)
	for _, p := range patterns {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		if p == name {
			return true
		}
		if ok, err := filepath.Match(p, name); err == nil && ok {
			return true
		}
	}
	return false
}

// TopFiles keeps the max heaviest entries pushed into it.
type TopFiles struct {
	max int
	h   entryHeap
}

func NewTopFiles(max int) *TopFiles {
	return &TopFiles{max: max}
}

func (t *TopFiles) Push(e Entry) {
	// min-heap of size max: the lightest kept entry sits at the root
	if t.max <= 0 {
		return
	}
	if t.h.Len() < t.max {
		heap.Push(&t.h, e)
		return
	}
	if t.h[0].Size < e.Size {
		heap.Pop(&t.h)
		heap.Push(&t.h, e)
	}
}

func (t *TopFiles) ListDesc() []Entry {
	out := make([]Entry, t.h.Len())
	copy(out, t.h)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Size != out[j].Size {
			return out[i].Size > out[j].Size
		}
		return out[i].Path < out[j].Path
	})
	return out
}

// Heaviest returns the n largest entries, biggest first.
func Heaviest(entries []Entry, n int) []Entry {
	top := NewTopFiles(n)
	for _, e := range entries {
		top.Push(e)
	}
	return top.ListDesc()
}

type entryHeap []Entry

func (h entryHeap) Len() int            { return len(h) }
func (h entryHeap) Less(i, j int) bool  { return h[i].Size < h[j].Size }
func (h entryHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *entryHeap) Push(x interface{}) { *h = append(*h, x.(Entry)) }
func (h *entryHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// FolderStats sums the size of every folder placed on the desktop.
type FolderStats struct {
	Root    string
	Total   int64
	Files   int
	ByChild map[string]int64
	// Names is sorted by size, largest first.
	Names []string
}

// Folders walks each subfolder of root in parallel and totals its size.
// Loose files in root itself are not counted.
func Folders(root string) (*FolderStats, error) {
	root = filepath.Clean(root)
	items, err := os.ReadDir(root)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", root)
	}

	stats := &FolderStats{Root: root, ByChild: map[string]int64{}}
	var mu sync.Mutex
	for _, it := range items {
		if !it.IsDir() || it.Type()&os.ModeSymlink != 0 || skipDirName(it.Name()) {
			continue
		}
		name := it.Name()
		stats.ByChild[name] = 0
		n, err := walkFilesConcurrent(filepath.Join(root, name), func(_ string, size int64) {
			mu.Lock()
			stats.ByChild[name] += size
			stats.Total += size
			mu.Unlock()
		})
		if err != nil {
			return nil, errors.Wrapf(err, "walk %s", name)
		}
		stats.Files += n
	}

	stats.Names = make([]string, 0, len(stats.ByChild))
	for name := range stats.ByChild {
		stats.Names = append(stats.Names, name)
	}
	sort.Slice(stats.Names, func(i, j int) bool {
		a, b := stats.ByChild[stats.Names[i]], stats.ByChild[stats.Names[j]]
		if a != b {
			return a > b
		}
		return stats.Names[i] < stats.Names[j]
	})
	return stats, nil
}

func skipDirName(name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	return name == "$recycle.bin" || name == "system volume information"
}

func walkFilesConcurrent(root string, onFile func(path string, size int64)) (int, error) {
	workers := runtime.NumCPU()
	if workers < 4 {
		workers = 4
	}
	if workers > 16 {
		workers = 16
	}
	sem := make(chan struct{}, workers)
	var (
		wg       sync.WaitGroup
		seen     atomic.Int64
		stop     atomic.Bool
		errMu    sync.Mutex
		firstErr error
	)

	setErr := func(err error) {
		errMu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		errMu.Unlock()
		stop.Store(true)
	}

	var walkDir func(dir string)
	walkDir = func(dir string) {
		if stop.Load() {
			return
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			if !isAccessDenied(err) {
				setErr(err)
			}
			return
		}
		for _, e := range entries {
			if stop.Load() {
				return
			}
			full := filepath.Join(dir, e.Name())
			if e.Type()&os.ModeSymlink != 0 {
				continue
			}
			if e.IsDir() {
				if skipDirName(e.Name()) {
					continue
				}
				// fall back to an inline walk when every worker is busy
				select {
				case sem <- struct{}{}:
					wg.Add(1)
					go func(p string) {
						defer func() {
							<-sem
							wg.Done()
						}()
						walkDir(p)
					}(full)
				default:
					walkDir(full)
				}
				continue
			}
			info, err := e.Info()
			if err != nil {
				if !isAccessDenied(err) && !errors.Is(err, fs.ErrNotExist) {
					setErr(err)
				}
				continue
			}
			onFile(full, info.Size())
			seen.Add(1)
		}
	}

	walkDir(root)
	wg.Wait()

	errMu.Lock()
	defer errMu.Unlock()
	return int(seen.Load()), firstErr
}
