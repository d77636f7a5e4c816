package history

import (
	"path/filepath"
	"testing"
	"time"
)

func TestAppendAndEntries(t *testing.T) {
	log := NewLog(filepath.Join(t.TempDir(), "optimization_history.json"))
	now := time.Date(2026, 8, 29, 9, 30, 0, 0, time.UTC)

	for i, company := range []string{"Acme", "Globex"} {
		err := log.Append(Entry{
			Company:  company,
			Title:    "Engineer",
			URL:      "https://example.com/jobs/1",
			Original: "original cv",
			Spanish:  "cv es",
			English:  "cv en",
		}, now.Add(time.Duration(i)*time.Minute))
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	entries, err := log.Entries()
	if err != nil {
		t.Fatalf("entries: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Company != "Acme" || entries[1].Company != "Globex" {
		t.Fatalf("entries out of order: %+v", entries)
	}
	if entries[0].Timestamp != "2026-08-29 09:30:00" {
		t.Fatalf("timestamp = %q", entries[0].Timestamp)
	}
}

func TestEntriesMissingFileIsEmpty(t *testing.T) {
	log := NewLog(filepath.Join(t.TempDir(), "nope.json"))
	entries, err := log.Entries()
	if err != nil {
		t.Fatalf("entries: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty history, got %v", entries)
	}
}
