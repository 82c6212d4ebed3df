package diagfmt

import (
	"os"
	"path/filepath"
)

// formatPath renders a stored file path according to the mode. Virtual
// files keep their names untouched.
func formatPath(path string, virtual bool, mode PathMode) string {
	if virtual || path == "" {
		return path
	}
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(path); err == nil {
			return abs
		}
	case PathModeRelative:
		if cwd, err := os.Getwd(); err == nil {
			if rel, err := filepath.Rel(cwd, path); err == nil {
				return rel
			}
		}
	case PathModeBasename:
		return filepath.Base(path)
	}
	return path
}
