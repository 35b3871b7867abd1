package report

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/Coryrichter94/Craft.do-to-Obsidian-Migrator/internal/audit"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "report.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRecordRunAndLastRun(t *testing.T) {
	db := openTestDB(t)

	started := time.Date(2026, 8, 26, 10, 0, 0, 0, time.UTC)
	run := RunSummary{
		StartedAt:       started,
		FinishedAt:      started.Add(3 * time.Second),
		Input:           "/exports/craft",
		Output:          "/vault",
		Notes:           12,
		Skipped:         2,
		LinksResolved:   30,
		LinksUnresolved: 1,
		Ghosts:          1,
	}

	id, err := db.RecordRun(run, nil)
	if err != nil {
		t.Fatal(err)
	}
	if id == 0 {
		t.Error("expected a run id")
	}

	got, err := db.LastRun()
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != id || got.Notes != 12 || got.Skipped != 2 || got.LinksResolved != 30 {
		t.Errorf("LastRun = %+v", got)
	}
	if !got.StartedAt.Equal(started) {
		t.Errorf("StartedAt = %v", got.StartedAt)
	}
}

func TestLastRunEmpty(t *testing.T) {
	db := openTestDB(t)

	if _, err := db.LastRun(); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("err = %v, want sql.ErrNoRows", err)
	}
}

func TestEvents(t *testing.T) {
	db := openTestDB(t)

	entries := []audit.Entry{
		{Timestamp: time.Now(), Event: audit.EventSkip, Bundle: "/in/a.textbundle", Reason: "encrypted"},
		{Timestamp: time.Now(), Event: audit.EventUnresolved, NoteID: "id-1", Target: "gone-id"},
		{Timestamp: time.Now(), Event: audit.EventSkip, Bundle: "/in/b.textbundle", Reason: "malformed"},
	}
	runID, err := db.RecordRun(RunSummary{StartedAt: time.Now(), FinishedAt: time.Now()}, entries)
	if err != nil {
		t.Fatal(err)
	}

	all, err := db.Events(runID, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("Events = %d entries", len(all))
	}

	skips, err := db.Events(runID, audit.EventSkip)
	if err != nil {
		t.Fatal(err)
	}
	if len(skips) != 2 {
		t.Fatalf("skip events = %d", len(skips))
	}
	if skips[0].Bundle != "/in/a.textbundle" || skips[1].Reason != "malformed" {
		t.Errorf("skips = %+v", skips)
	}
}

func TestEventsScopedToRun(t *testing.T) {
	db := openTestDB(t)

	first, err := db.RecordRun(RunSummary{}, []audit.Entry{{Event: audit.EventGhost}})
	if err != nil {
		t.Fatal(err)
	}
	second, err := db.RecordRun(RunSummary{}, []audit.Entry{{Event: audit.EventGhost}, {Event: audit.EventDelete}})
	if err != nil {
		t.Fatal(err)
	}

	for _, c := range []struct {
		runID int64
		want  int
	}{{first, 1}, {second, 2}} {
		got, err := db.Events(c.runID, "")
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != c.want {
			t.Errorf("run %d: %d events, want %d", c.runID, len(got), c.want)
		}
	}
}
