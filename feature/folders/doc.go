// Package folders provides diagnostics for the configured inventory folders.
//
// Unlike the 'inventory' package, which serves records, this package reports on the
// plumbing behind them: what the cache holds, how recent syncs went, whether the
// remote backend still lists each folder and whether the history table is intact.
//
// # HTTP Endpoints
//
//   - GET /folders : Cache state and recent sync runs per folder (supports ?runs=N).
//   - GET /folders/access : Lists every folder on the remote backend.
//   - GET /folders/history : Checks the sync history table schema.
//
// None of these endpoints trigger a sync.
package folders
