// Package journal provides SQLite-backed history of workaround executions.
//
// The journal is append-only and observational: the executed flag in each
// definition file remains the only idempotency state. A journal write
// failure never changes the outcome of an execution.
//
// # Table
//
//   - runs: one row per execute request, outcome ran, skipped or failed
//
// # Ordering
//
// Rows are ordered by seq, an INTEGER PRIMARY KEY assigned on insert.
// Queries return newest first: ORDER BY seq DESC.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
package journal
