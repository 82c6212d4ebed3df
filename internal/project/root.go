package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FindSableToml walks up from startDir to locate sable.toml.
func FindSableToml(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "sable.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// LoadNearestManifest finds and parses the manifest governing startDir.
// A missing manifest is not an error: the zero Manifest (all features
// off) is returned with ok=false.
func LoadNearestManifest(startDir string) (Manifest, bool, error) {
	path, ok, err := FindSableToml(startDir)
	if err != nil || !ok {
		return Manifest{}, false, err
	}
	m, err := LoadManifest(path)
	if err != nil {
		return Manifest{}, true, err
	}
	return m, true, nil
}
