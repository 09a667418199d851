// Package store records pipeline runs in a SQLite ledger.
//
// Each run gets one row in runs and one row per untranslated key in
// untranslated_keys. Run rows are ordered by their insertion sequence,
// never by wall-clock time, so listing is deterministic.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: untranslated keys reference their run
package store
