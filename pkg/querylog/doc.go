// Package querylog records map-processor evaluations for audit.
//
// Each evaluation produces a Record: which block ran, which processor, the
// expanded query, the resulting rcode, and timing. Records are written
// asynchronously through a Recorder into a SQLite-backed Store, and pruned
// on a cron schedule by the retention Scheduler.
//
// The query log is an operational audit trail, not a billing-grade ledger:
// under sustained overload the Recorder drops records rather than applying
// backpressure to the request pipeline, and counts what it dropped.
package querylog
