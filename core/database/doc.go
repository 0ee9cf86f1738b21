// Package database opens the sync history database.
//
// It wraps GORM with either the MySQL driver or the SQLite driver ("sqlite", file
// path or ":memory:") and verifies the connection with a ping. TableColumns and
// MissingColumns inspect a table so callers can check that the history schema is in place.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    logger.Warn("History disabled", zap.Error(err))
//	}
package database
