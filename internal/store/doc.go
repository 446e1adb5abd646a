// Package store keeps a SQLite log of scenario runs and the checks they
// evaluated, so results can be compared across runs.
//
// # Tables
//
//   - runs: one row per invocation of the checker, identified by a UUIDv7
//   - checks: one row per evaluated expectation or assertion
//
// Runs are ordered by started_seq, a counter assigned on insert, never by
// wall time. Checks keep their insertion order.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks instead of failing
//   - foreign_keys=ON: checks must reference an existing run
//   - A single open connection
package store
