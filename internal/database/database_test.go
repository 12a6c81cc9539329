package database

import (
	"path/filepath"
	"testing"
	"time"
)

func newTestDB(t *testing.T) *HistoryDB {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("Failed to close database: %v", err)
		}
	})
	return db
}

func TestRecordAndQueryEvents(t *testing.T) {
	db := newTestDB(t)

	events := []struct {
		action string
		path   string
		reason string
		errMsg string
	}{
		{ActionRemove, "/data/old/a.txt", "", ""},
		{ActionSkip, "/data/new", "younger than threshold", ""},
		{ActionError, "/data/old/locked.txt", "", "permission denied"},
	}
	for _, e := range events {
		if err := db.RecordEvent(e.action, e.path, "execute", e.reason, e.errMsg); err != nil {
			t.Fatalf("RecordEvent(%s) failed: %v", e.path, err)
		}
	}

	recent, err := db.GetRecentEvents(10)
	if err != nil {
		t.Fatalf("GetRecentEvents failed: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("Expected 3 events, got %d", len(recent))
	}

	removes, err := db.GetEventsByAction(ActionRemove)
	if err != nil {
		t.Fatalf("GetEventsByAction failed: %v", err)
	}
	if len(removes) != 1 || removes[0].Path != "/data/old/a.txt" {
		t.Errorf("Unexpected REMOVE events: %+v", removes)
	}
	if removes[0].FileName != "a.txt" {
		t.Errorf("Expected file_name a.txt, got %q", removes[0].FileName)
	}
	if removes[0].Mode != "execute" {
		t.Errorf("Expected mode execute, got %q", removes[0].Mode)
	}

	errored, err := db.GetEventsByAction(ActionError)
	if err != nil {
		t.Fatalf("GetEventsByAction failed: %v", err)
	}
	if len(errored) != 1 || errored[0].ErrorMessage != "permission denied" {
		t.Errorf("Unexpected ERROR events: %+v", errored)
	}
}

func TestGetEventCountByAction(t *testing.T) {
	db := newTestDB(t)

	for i := 0; i < 3; i++ {
		if err := db.RecordEvent(ActionDryRun, "/data/f.txt", "dry-run", "", ""); err != nil {
			t.Fatalf("RecordEvent failed: %v", err)
		}
	}
	if err := db.RecordEvent(ActionSkip, "/data/new", "dry-run", "too young", ""); err != nil {
		t.Fatalf("RecordEvent failed: %v", err)
	}

	counts, err := db.GetEventCountByAction()
	if err != nil {
		t.Fatalf("GetEventCountByAction failed: %v", err)
	}
	if counts[ActionDryRun] != 3 {
		t.Errorf("Expected 3 DRY_RUN events, got %d", counts[ActionDryRun])
	}
	if counts[ActionSkip] != 1 {
		t.Errorf("Expected 1 SKIP event, got %d", counts[ActionSkip])
	}
}

func TestGetEventsByPath(t *testing.T) {
	db := newTestDB(t)

	if err := db.RecordEvent(ActionRemove, "/data/old/a.txt", "execute", "", ""); err != nil {
		t.Fatalf("RecordEvent failed: %v", err)
	}
	if err := db.RecordEvent(ActionRemove, "/srv/other.txt", "execute", "", ""); err != nil {
		t.Fatalf("RecordEvent failed: %v", err)
	}

	matched, err := db.GetEventsByPath("/data/%")
	if err != nil {
		t.Fatalf("GetEventsByPath failed: %v", err)
	}
	if len(matched) != 1 || matched[0].Path != "/data/old/a.txt" {
		t.Errorf("Unexpected matches: %+v", matched)
	}
}

func TestGetEventsSince(t *testing.T) {
	db := newTestDB(t)

	if err := db.RecordEvent(ActionRemove, "/data/a.txt", "execute", "", ""); err != nil {
		t.Fatalf("RecordEvent failed: %v", err)
	}

	recent, err := db.GetEventsSince(time.Now().Add(-time.Minute))
	if err != nil {
		t.Fatalf("GetEventsSince failed: %v", err)
	}
	if len(recent) != 1 {
		t.Errorf("Expected 1 recent event, got %d", len(recent))
	}

	none, err := db.GetEventsSince(time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("GetEventsSince failed: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("Expected no future events, got %d", len(none))
	}
}

func TestDeleteOldRecords(t *testing.T) {
	db := newTestDB(t)

	if err := db.RecordEvent(ActionRemove, "/data/a.txt", "execute", "", ""); err != nil {
		t.Fatalf("RecordEvent failed: %v", err)
	}

	deleted, err := db.DeleteOldRecords(1)
	if err != nil {
		t.Fatalf("DeleteOldRecords failed: %v", err)
	}
	if deleted != 0 {
		t.Errorf("Expected fresh record to survive, deleted=%d", deleted)
	}

	deleted, err = db.DeleteOldRecords(-1)
	if err != nil {
		t.Fatalf("DeleteOldRecords failed: %v", err)
	}
	if deleted != 1 {
		t.Errorf("Expected 1 record deleted with future cutoff, got %d", deleted)
	}
}
