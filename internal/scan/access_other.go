//go:build !windows

package scan

import (
	"errors"
	"io/fs"
	"os"
)

func isAccessDenied(err error) bool {
	if os.IsPermission(err) {
		return true
	}
	var pe *fs.PathError
	return errors.As(err, &pe) && os.IsPermission(pe.Err)
}
