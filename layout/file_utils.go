package layout

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// OpenPath opens path as given when absolute, otherwise relative to the working directory.
func OpenPath(path string) (*os.File, error) {
	fullPath := path

	if filepath.IsAbs(path) {
		slog.InfoContext(logCtx, "Opening absolute path", "path", path)
	} else {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("could not get working directory: %w", err)
		}

		fullPath = filepath.Join(wd, path)
		slog.InfoContext(logCtx, "Opening relative path", "path", path, "resolved", fullPath)
	}

	file, err := os.Open(fullPath)
	if err != nil {
		return nil, fmt.Errorf("could not open file %s: %w", path, err)
	}

	return file, nil
}
