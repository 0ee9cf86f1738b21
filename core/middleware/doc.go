// Package middleware contains HTTP middleware for the Fiber application.
//
//   - auth: API key validation (X-API-Key header or api_key query parameter).
//   - rayid: tags every request with a ray id, exposed in the X-Ray-ID header
//     and picked up by logger.WithRayID.
package middleware
