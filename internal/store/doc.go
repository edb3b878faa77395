// Package store keeps a SQLite history of lesson program runs.
//
// Each recorded run holds the command that produced it, the lessons that
// ran their broken variant and one row per executed step with its printed
// lines and fault, if any.
//
// # Ordering
//
// Runs are numbered by seq, a logical counter assigned at write time.
// Every query orders by seq (and step position), never by timestamps, so
// listings are stable across machines.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Steps are deleted with their run
//
// JSON columns are written with internal/canonical so identical runs
// produce identical rows.
package store
