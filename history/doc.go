// Package history contains the concrete core.HistoryStore backends and the
// factory that selects between them.
//
//   - MemoryStore: volatile, process-lifetime map (default)
//   - FileStore:   MemoryStore index plus an append-only JSON-lines audit log
//   - SQLiteStore: durable index in a SQLite database
//
// Callers obtain a store through New (or the meshkit façade) and depend only
// on core.HistoryStore; they must tolerate Retrieve returning an empty record
// for unknown keys.
package history
