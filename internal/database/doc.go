// Package database provides SQLite-based storage for spdrs crawl history.
//
// The HistoryDB archives completed crawl runs: the seed, the scope
// boundary, timing, and every page result with its links. The archive is
// write-once per run and is never consulted by the crawl engine itself,
// so past runs have no influence on which pages a new crawl fetches.
//
// Design decision: We use SQLite (via modernc.org/sqlite) instead of other
// databases because:
//  1. No external dependencies - the database is a single file
//  2. CGO-free implementation allows easy cross-compilation
//  3. Sufficient performance for our use case
//  4. WAL mode provides good concurrent read performance
package database
