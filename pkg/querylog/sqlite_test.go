package querylog

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/gigabytetmn/freeradius-server/pkg/radius"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "querylog.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testRecord(ts time.Time) *Record {
	return &Record{
		ID:        uuid.New(),
		RequestID: uuid.New(),
		Block:     "group-lookup",
		Processor: "sql",
		Query:     "SELECT groupname FROM radusergroup WHERE username = 'alice'",
		Rcode:     radius.RcodeUpdated,
		Duration:  1500 * time.Microsecond,
		Timestamp: ts,
	}
}

func TestSQLiteStore_WriteQuery(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	rec := testRecord(now)
	if err := store.Write(ctx, rec); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got, err := store.Query(ctx, now.Add(-time.Minute), now.Add(time.Minute), 0)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Query() returned %d records, want 1", len(got))
	}

	r := got[0]
	if r.ID != rec.ID || r.RequestID != rec.RequestID {
		t.Errorf("record IDs = %v/%v, want %v/%v", r.ID, r.RequestID, rec.ID, rec.RequestID)
	}
	if r.Block != rec.Block || r.Processor != rec.Processor || r.Query != rec.Query {
		t.Errorf("record fields = %+v, want %+v", r, rec)
	}
	if r.Rcode != radius.RcodeUpdated {
		t.Errorf("Rcode = %v, want %v", r.Rcode, radius.RcodeUpdated)
	}
	if r.Duration != rec.Duration {
		t.Errorf("Duration = %v, want %v", r.Duration, rec.Duration)
	}
}

func TestSQLiteStore_QueryOrderAndLimit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 5; i++ {
		if err := store.Write(ctx, testRecord(base.Add(time.Duration(i)*time.Second))); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
	}

	got, err := store.Query(ctx, base, base.Add(time.Minute), 3)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Query(limit=3) returned %d records", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].Timestamp.After(got[i-1].Timestamp) {
			t.Errorf("records not in newest-first order: %v after %v",
				got[i].Timestamp, got[i-1].Timestamp)
		}
	}

	// The interval is half-open: a record exactly at 'to' is excluded.
	got, err = store.Query(ctx, base, base.Add(2*time.Second), 0)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("Query() over half-open interval returned %d records, want 2", len(got))
	}
}

func TestSQLiteStore_DeleteOlderThan(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	now := time.Now().UTC()
	old := testRecord(now.AddDate(0, 0, -40))
	fresh := testRecord(now)
	for _, rec := range []*Record{old, fresh} {
		if err := store.Write(ctx, rec); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
	}

	removed, err := store.DeleteOlderThan(ctx, now.AddDate(0, 0, -30))
	if err != nil {
		t.Fatalf("DeleteOlderThan() error = %v", err)
	}
	if removed != 1 {
		t.Errorf("DeleteOlderThan() = %d, want 1", removed)
	}

	n, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if n != 1 {
		t.Errorf("Count() = %d, want 1", n)
	}
}
