package audit

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestLoggerWritesJSONL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "migration.log")
	l := New(path, true)

	if err := l.LogSkip("/in/a.textbundle", "encrypted"); err != nil {
		t.Fatal(err)
	}
	if err := l.LogUnresolved("id-1", "A.md", "gone-id", "old note"); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	var lines []Entry
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var e Entry
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			t.Fatalf("line not valid JSON: %v", err)
		}
		lines = append(lines, e)
	}
	if len(lines) != 2 {
		t.Fatalf("got %d lines", len(lines))
	}
	if lines[0].Event != EventSkip || lines[0].Bundle != "/in/a.textbundle" {
		t.Errorf("first = %+v", lines[0])
	}
	if lines[1].Event != EventUnresolved || lines[1].Target != "gone-id" {
		t.Errorf("second = %+v", lines[1])
	}
	if lines[0].Timestamp.IsZero() {
		t.Error("timestamp not set")
	}
}

func TestLoggerEntries(t *testing.T) {
	l := New(filepath.Join(t.TempDir(), "m.log"), true)
	l.LogGhost("id-1", "A.md", "attachments/A/x.png", "missing from export")
	l.LogDelete("B.md", "empty after conversion")

	entries := l.Entries()
	if len(entries) != 2 {
		t.Fatalf("Entries = %d", len(entries))
	}
	if entries[0].Event != EventGhost || entries[1].Event != EventDelete {
		t.Errorf("entries = %+v", entries)
	}
}

func TestLoggerDisabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m.log")
	l := New(path, false)

	if err := l.LogSkip("/x", "y"); err != nil {
		t.Fatal(err)
	}
	if len(l.Entries()) != 0 {
		t.Error("disabled logger recorded entries")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("disabled logger wrote a file")
	}
}
