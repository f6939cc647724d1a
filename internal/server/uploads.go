package server

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"time"
)

// sweepUploads removes upload temp files in dir older than maxAge. Handlers
// delete their own temp files; this only catches files left behind by a
// process that died mid-request.
func sweepUploads(dir string, maxAge time.Duration, now time.Time) (int, error) {
	matches, err := filepath.Glob(filepath.Join(dir, uploadTempPrefix+"*"))
	if err != nil {
		return 0, err
	}

	var (
		removed int
		errs    []error
	)
	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil {
			if !os.IsNotExist(err) {
				errs = append(errs, err)
			}
			continue
		}
		if info.IsDir() || now.Sub(info.ModTime()) < maxAge {
			continue
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			errs = append(errs, err)
			continue
		}
		removed++
	}
	return removed, stderrors.Join(errs...)
}
