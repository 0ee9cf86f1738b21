// Package search answers structured inventory queries across cached folders.
//
// Filters apply in a fixed order: project, rooms, price range, status, then area.
// Results are sorted by ascending price with unpriced units last, then by project.
// A folder that cannot be served is reported in Result.Failures; only when no
// requested folder can be served does Search return ErrUnavailable.
package search
