package codec

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/dfa/pkg/automaton"
)

// ReadFile loads an automaton from path. The format follows the file extension.
func ReadFile(path string) (*automaton.Automaton, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open automaton file: %w", err)
	}
	defer f.Close()

	return Decode(f, FormatFromPath(path))
}

// WriteFile saves a to path atomically.
// It writes to a temporary file in the same directory, syncs it and renames it over the destination.
func WriteFile(path string, a *automaton.Automaton) error {
	data, err := Marshal(a, FormatFromPath(path))
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to ensure directory: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, "tmp-"+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	// Closing twice and removing a renamed file are both harmless.
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// Windows refuses to rename over an existing file.
	if _, err := os.Stat(path); err == nil {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to replace existing file: %w", err)
		}
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to move temp file into place: %w", err)
	}
	return nil
}
