// Package inventory exposes the inventory cache and search engine over HTTP.
//
// # HTTP Endpoints
//
//   - GET /inventory/search : Filters records (project, min_price, max_price, rooms, status,
//     min_area, max_area, limit, repeated folder, and a q criteria string).
//   - GET /inventory/summary : Record counts by status and freshness per folder.
//   - GET /inventory/snapshots/{folder} : Snapshot of one folder (URL encode ids with slashes).
//   - POST /inventory/refresh/{folder} : Forces a sync of one folder.
//
// Errors are returned as {"error": "..."}: 400 for invalid parameters, 404 for unknown
// folders and 503 when nothing could be served.
package inventory
