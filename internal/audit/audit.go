// Package audit provides the append-only migration log: one JSONL entry per
// skipped bundle, unresolved reference, ghost attachment, and deletion, with
// enough context to follow up by hand.
package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Entry is a single migration log record.
type Entry struct {
	Timestamp time.Time `json:"ts"`
	Event     string    `json:"event"` // skip, unresolved_link, ghost_attachment, delete, warning
	NoteID    string    `json:"note_id,omitempty"`
	Note      string    `json:"note,omitempty"` // title or output path
	Bundle    string    `json:"bundle,omitempty"`
	Target    string    `json:"target,omitempty"` // link/attachment target
	Reason    string    `json:"reason,omitempty"`
}

// Event names.
const (
	EventSkip       = "skip"
	EventUnresolved = "unresolved_link"
	EventGhost      = "ghost_attachment"
	EventDelete     = "delete"
	EventWarning    = "warning"
)

// Logger appends entries to the migration log file. The zero-value-disabled
// form is a no-op, so callers never nil-check.
type Logger struct {
	path    string
	enabled bool
	mu      sync.Mutex
	entries []Entry
}

// New creates a logger writing to logPath. If enabled is false the logger
// records nothing and writes nothing.
func New(logPath string, enabled bool) *Logger {
	return &Logger{path: logPath, enabled: enabled}
}

// Log appends one entry to the log file.
func (l *Logger) Log(entry Entry) error {
	if !l.enabled {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	l.entries = append(l.entries, entry)

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal log entry: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write log entry: %w", err)
	}
	return nil
}

// Entries returns everything logged so far, for the report writer.
func (l *Logger) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// LogSkip records a bundle that could not be converted.
func (l *Logger) LogSkip(bundlePath, reason string) error {
	return l.Log(Entry{Event: EventSkip, Bundle: bundlePath, Reason: reason})
}

// LogUnresolved records an internal reference with no index entry.
func (l *Logger) LogUnresolved(noteID, note, targetID, display string) error {
	return l.Log(Entry{
		Event:  EventUnresolved,
		NoteID: noteID,
		Note:   note,
		Target: targetID,
		Reason: fmt.Sprintf("display text %q left unlinked", display),
	})
}

// LogGhost records an attachment reference whose file was never found.
func (l *Logger) LogGhost(noteID, note, target, reason string) error {
	return l.Log(Entry{Event: EventGhost, NoteID: noteID, Note: note, Target: target, Reason: reason})
}

// LogDelete records a note removed by the cleanup pass.
func (l *Logger) LogDelete(relPath, reason string) error {
	return l.Log(Entry{Event: EventDelete, Note: relPath, Reason: reason})
}

// LogWarning records a non-fatal oddity worth a manual look.
func (l *Logger) LogWarning(noteID, note, reason string) error {
	return l.Log(Entry{Event: EventWarning, NoteID: noteID, Note: note, Reason: reason})
}
