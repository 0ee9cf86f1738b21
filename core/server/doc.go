// Package server holds the HTTP server configuration.
//
// The start command builds the Fiber application; this package only defines the
// listen port, the API key protecting the inventory endpoints and whether metrics
// are exposed.
package server
