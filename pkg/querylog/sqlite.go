package querylog

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/gigabytetmn/freeradius-server/pkg/radius"
)

// schema contains the SQL statements to create the query log schema.
const schema = `
CREATE TABLE IF NOT EXISTS querylog (
    id TEXT PRIMARY KEY,
    request_id TEXT NOT NULL,
    block TEXT NOT NULL,
    processor TEXT NOT NULL,
    query TEXT,
    rcode INTEGER NOT NULL,
    duration_us INTEGER NOT NULL,
    timestamp TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_querylog_timestamp ON querylog(timestamp);
CREATE INDEX IF NOT EXISTS idx_querylog_request ON querylog(request_id);
`

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db         *sql.DB
	insertStmt *sql.Stmt
	logger     *slog.Logger
}

// NewSQLiteStore opens (or creates) the query log database at path. WAL
// mode is enabled for concurrent readers and a busy timeout guards against
// transient lock contention.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, &StorageError{Op: "open", Cause: err}
	}

	// SQLite supports a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	s := &SQLiteStore{
		db:     db,
		logger: slog.Default().With("component", "querylog.sqlite"),
	}

	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	s.logger.Info("query log storage initialized", "path", path)

	return s, nil
}

func (s *SQLiteStore) initialize() error {
	if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return &StorageError{Op: "enable_wal", Cause: err}
	}
	if _, err := s.db.Exec("PRAGMA busy_timeout=5000;"); err != nil {
		return &StorageError{Op: "set_busy_timeout", Cause: err}
	}
	if _, err := s.db.Exec(schema); err != nil {
		return &StorageError{Op: "create_schema", Cause: err}
	}

	stmt, err := s.db.Prepare(`
		INSERT INTO querylog (id, request_id, block, processor, query, rcode, duration_us, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return &StorageError{Op: "prepare", Cause: err}
	}
	s.insertStmt = stmt

	return nil
}

// Write persists a single record.
func (s *SQLiteStore) Write(ctx context.Context, rec *Record) error {
	_, err := s.insertStmt.ExecContext(ctx,
		rec.ID.String(),
		rec.RequestID.String(),
		rec.Block,
		rec.Processor,
		rec.Query,
		int(rec.Rcode),
		rec.Duration.Microseconds(),
		rec.Timestamp.UTC(),
	)
	if err != nil {
		return &StorageError{Op: "write", Cause: err}
	}
	return nil
}

// Query returns records in [from, to), newest first.
func (s *SQLiteStore) Query(ctx context.Context, from, to time.Time, limit int) ([]*Record, error) {
	q := `
		SELECT id, request_id, block, processor, query, rcode, duration_us, timestamp
		FROM querylog
		WHERE timestamp >= ? AND timestamp < ?
		ORDER BY timestamp DESC`
	args := []any{from.UTC(), to.UTC()}
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, &StorageError{Op: "query", Cause: err}
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		var (
			rec        Record
			id, reqID  string
			rcode      int
			durationUs int64
		)
		if err := rows.Scan(&id, &reqID, &rec.Block, &rec.Processor,
			&rec.Query, &rcode, &durationUs, &rec.Timestamp); err != nil {
			return nil, &StorageError{Op: "scan", Cause: err}
		}

		if rec.ID, err = uuid.Parse(id); err != nil {
			return nil, &StorageError{Op: "scan", Cause: fmt.Errorf("bad record id %q: %w", id, err)}
		}
		if rec.RequestID, err = uuid.Parse(reqID); err != nil {
			return nil, &StorageError{Op: "scan", Cause: fmt.Errorf("bad request id %q: %w", reqID, err)}
		}
		rec.Rcode = radius.Rcode(rcode)
		rec.Duration = time.Duration(durationUs) * time.Microsecond

		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, &StorageError{Op: "query", Cause: err}
	}

	return records, nil
}

// DeleteOlderThan removes records older than cutoff.
func (s *SQLiteStore) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM querylog WHERE timestamp < ?", cutoff.UTC())
	if err != nil {
		return 0, &StorageError{Op: "delete", Cause: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, &StorageError{Op: "delete", Cause: err}
	}
	return n, nil
}

// Count returns the total number of stored records.
func (s *SQLiteStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM querylog").Scan(&n); err != nil {
		return 0, &StorageError{Op: "count", Cause: err}
	}
	return n, nil
}

// Close releases the store.
func (s *SQLiteStore) Close() error {
	if s.insertStmt != nil {
		s.insertStmt.Close()
	}
	return s.db.Close()
}
