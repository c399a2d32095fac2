//go:build windows

package scan

import (
	"errors"
	"io/fs"
	"os"
	"syscall"
)

func isAccessDenied(err error) bool {
	if os.IsPermission(err) {
		return true
	}
	var pe *fs.PathError
	if errors.As(err, &pe) && os.IsPermission(pe.Err) {
		return true
	}
	// system folders like $Recycle.Bin are often unreadable for normal users
	return errors.Is(err, syscall.ERROR_ACCESS_DENIED)
}
