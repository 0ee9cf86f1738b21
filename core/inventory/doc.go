// Package inventory defines the canonical apartment inventory model shared by the
// synchronization, cache and search layers.
//
// # Records
//
// A Record is one apartment row normalized out of a developer spreadsheet. Numeric
// attributes are pointers: nil means the source cell was blank or could not be read
// as a non-negative number. Records are immutable once built.
//
// # Snapshots
//
// A Snapshot is the full inventory of one remote folder at a point in time. Snapshots
// are replaced wholesale on refresh and never mutated in place; the cache hands out
// shallow copies that carry staleness flags.
package inventory
