package sceneio

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileWriter persists definition text. Extract-to-reusable-unit writes
// through this interface before touching the graph; the written file is a
// side effect that undo does not reverse.
type FileWriter interface {
	WriteFile(path string, data []byte) error
}

// OSWriter writes to the local filesystem, creating parent directories.
type OSWriter struct{}

func (OSWriter) WriteFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("sceneio: create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("sceneio: write %s: %w", path, err)
	}
	return nil
}

// MemWriter captures writes in memory for tests and dry runs.
type MemWriter struct {
	mu    sync.Mutex
	files map[string][]byte
}

// NewMemWriter creates an empty in-memory writer.
func NewMemWriter() *MemWriter {
	return &MemWriter{files: make(map[string][]byte)}
}

func (w *MemWriter) WriteFile(path string, data []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	buf := make([]byte, len(data))
	copy(buf, data)
	w.files[path] = buf
	return nil
}

// File returns the last write to path and whether one happened.
func (w *MemWriter) File(path string) ([]byte, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	data, ok := w.files[path]
	return data, ok
}

// FailWriter always fails. Tests use it to drive the hard-failure path of
// extract-to-reusable-unit.
type FailWriter struct{ Err error }

func (w FailWriter) WriteFile(path string, data []byte) error {
	return fmt.Errorf("sceneio: write %s: %w", path, w.Err)
}
