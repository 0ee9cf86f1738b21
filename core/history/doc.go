// Package history records every folder sync attempt.
//
// Runs are stored through GORM (MySQL or SQLite) and read back for the folder
// overview. When no database is configured the Nop recorder is used and history
// is simply not kept.
package history
