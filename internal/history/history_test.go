package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/typr/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("close store: %v", err)
		}
	})
	return store
}

func sessionAt(modeKey string, netWPM float64, at time.Time) model.SessionResult {
	return model.SessionResult{
		RawWPM:       netWPM + 4,
		NetWPM:       netWPM,
		Accuracy:     0.95,
		Consistency:  0.4,
		Errors:       2,
		CharsTyped:   120,
		CorrectChars: 114,
		Words:        25,
		ModeKey:      modeKey,
		Elapsed:      45 * time.Second,
		Timestamp:    at,
	}
}

func TestInsertAndListRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	id, err := store.InsertResult(ctx, sessionAt("timed-60-p0-n0", 52.5, at))
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if id == 0 {
		t.Fatalf("expected non-zero row id")
	}

	records, err := store.ListResults(ctx, model.HistoryFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	got := records[0].Result
	if got.ModeKey != "timed-60-p0-n0" || got.NetWPM != 52.5 || got.RawWPM != 56.5 {
		t.Fatalf("unexpected record: %+v", got)
	}
	if !got.Timestamp.Equal(at) {
		t.Fatalf("timestamp not preserved: %v", got.Timestamp)
	}
	if got.Elapsed != 45*time.Second {
		t.Fatalf("duration not preserved: %v", got.Elapsed)
	}
}

func TestListOrderedOldestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	// Insert out of chronological order.
	for _, offset := range []time.Duration{2 * time.Hour, 0, time.Hour} {
		if _, err := store.InsertResult(ctx, sessionAt("words-25-p0-n0", 40, base.Add(offset))); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}
	records, err := store.ListResults(ctx, model.HistoryFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	for i := 1; i < len(records); i++ {
		if records[i].Result.Timestamp.Before(records[i-1].Result.Timestamp) {
			t.Fatalf("records not ordered oldest first")
		}
	}
}

func TestListFilters(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		key := "timed-60-p0-n0"
		if i%2 == 1 {
			key = "words-25-p0-n0"
		}
		if _, err := store.InsertResult(ctx, sessionAt(key, 40+float64(i), base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	byMode, err := store.ListResults(ctx, model.HistoryFilter{ModeKey: "words-25-p0-n0"})
	if err != nil {
		t.Fatalf("list by mode: %v", err)
	}
	if len(byMode) != 2 {
		t.Fatalf("expected 2 records for mode, got %d", len(byMode))
	}
	for _, rec := range byMode {
		if rec.Result.ModeKey != "words-25-p0-n0" {
			t.Fatalf("filter leaked other modes: %+v", rec.Result)
		}
	}

	since := base.Add(3 * time.Hour)
	bySince, err := store.ListResults(ctx, model.HistoryFilter{Since: &since})
	if err != nil {
		t.Fatalf("list since: %v", err)
	}
	if len(bySince) != 2 {
		t.Fatalf("expected 2 records since cutoff, got %d", len(bySince))
	}

	last, err := store.ListResults(ctx, model.HistoryFilter{Last: 2})
	if err != nil {
		t.Fatalf("list last: %v", err)
	}
	if len(last) != 2 {
		t.Fatalf("expected last 2 records, got %d", len(last))
	}
	if last[1].Result.NetWPM != 44 {
		t.Fatalf("last filter must keep the most recent records: %+v", last)
	}
}

func TestListEmptyStore(t *testing.T) {
	store := newTestStore(t)
	records, err := store.ListResults(context.Background(), model.HistoryFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected no records, got %d", len(records))
	}
}

func TestReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history.db")
	ctx := context.Background()

	store, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	if _, err := store.InsertResult(ctx, sessionAt("timed-30-p50-n1", 60, at)); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() {
		if err := reopened.Close(); err != nil {
			t.Errorf("close reopened: %v", err)
		}
	}()
	records, err := reopened.ListResults(ctx, model.HistoryFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 1 || records[0].Result.ModeKey != "timed-30-p50-n1" {
		t.Fatalf("unexpected records after reopen: %+v", records)
	}
}
