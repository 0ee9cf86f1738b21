// Package logger builds the zap logger shared by the HTTP server and the CLI commands.
//
// Level and Format come from the "log" section of the configuration (LOG_LEVEL,
// LOG_FORMAT). The server logs JSON; "console" is meant for running sync and search
// from a terminal. A "debug" level switches to zap's development preset.
//
// Request handlers log through WithRayID, which tags the entry with the ray_id set by
// the rayid middleware, so a slow search can be traced to the folder syncs it
// triggered:
//
//	l := logger.WithRayID(h.service.logger, c)
//	l.Warn("Folder served stale", zap.String("folder_id", id), zap.Error(err))
package logger
