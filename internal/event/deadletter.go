package event

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// DeadLetterWriter appends events that could not be published to a JSON lines file
type DeadLetterWriter struct {
	path string
	mu   sync.Mutex
}

// DeadLetterEntry represents an event that failed to publish after all retries
type DeadLetterEntry struct {
	SchemaVersion string    `json:"schema_version"`
	Timestamp     time.Time `json:"timestamp"`
	Event         Event     `json:"event"`
	Attempts      int       `json:"attempts"`
	LastError     string    `json:"last_error,omitempty"`
}

// NewDeadLetterWriter creates a writer for path. The file is opened per write.
func NewDeadLetterWriter(path string) *DeadLetterWriter {
	return &DeadLetterWriter{path: path}
}

// Write appends a failed event
func (w *DeadLetterWriter) Write(event Event, attempts int, lastError error) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if dir := filepath.Dir(w.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	f, err := os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, DeadLetterFilePermissions)
	if err != nil {
		return err
	}
	defer f.Close()

	entry := DeadLetterEntry{
		SchemaVersion: DeadLetterSchemaVersion,
		Timestamp:     time.Now().UTC(),
		Event:         event,
		Attempts:      attempts,
	}
	if lastError != nil {
		entry.LastError = lastError.Error()
	}

	return json.NewEncoder(f).Encode(entry)
}
