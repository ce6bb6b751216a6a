package runner

import (
	"os"
	"path/filepath"
)

// writeFile best-effort writes data to path, creating parent
// directories as needed. Screenshot and artifact writes are never
// allowed to fail a run — callers treat a non-nil error as "skip".
func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
