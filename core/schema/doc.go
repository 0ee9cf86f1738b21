// Package schema maps spreadsheet header rows onto canonical inventory fields.
//
// Every field owns an alias table covering Russian and English headers and common
// unit suffixes. Matching is accent and case insensitive and fully deterministic.
package schema
