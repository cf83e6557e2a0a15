package querylog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gigabytetmn/freeradius-server/pkg/radius"
)

// Record is one logged map-processor evaluation.
type Record struct {
	// ID uniquely identifies the record.
	ID uuid.UUID

	// RequestID is the ID of the request that triggered the evaluation.
	RequestID uuid.UUID

	// Block is the map block name from the configuration.
	Block string

	// Processor is the map processor name.
	Processor string

	// Query is the expanded source template. Empty when expansion failed.
	Query string

	// Rcode is the evaluation result code.
	Rcode radius.Rcode

	// Duration is how long the evaluation took.
	Duration time.Duration

	// Timestamp is when the evaluation completed.
	Timestamp time.Time
}

// Store persists evaluation records.
type Store interface {
	// Write persists a single record.
	Write(ctx context.Context, rec *Record) error

	// Query returns records in the half-open interval [from, to), newest
	// first, up to limit. A limit of 0 means no limit.
	Query(ctx context.Context, from, to time.Time, limit int) ([]*Record, error)

	// DeleteOlderThan removes records with timestamps before cutoff and
	// returns how many were removed.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)

	// Count returns the total number of stored records.
	Count(ctx context.Context) (int64, error)

	// Close releases the store.
	Close() error
}

// StorageError reports a query log storage failure.
type StorageError struct {
	// Op is the failing operation ("open", "write", "query", ...).
	Op string

	// Cause is the underlying error.
	Cause error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	return fmt.Sprintf("querylog storage %s failed: %v", e.Op, e.Cause)
}

// Unwrap implements the errors.Unwrap interface for error chain support.
func (e *StorageError) Unwrap() error {
	return e.Cause
}
