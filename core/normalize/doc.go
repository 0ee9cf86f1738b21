// Package normalize converts spreadsheet rows into canonical inventory records.
//
// Numeric cells tolerate thousands separators, decimal commas, currency symbols and
// trailing unit text. Anything that cannot be read as a non-negative number becomes
// nil rather than an error. Status cells are matched against a ru/en/ka vocabulary.
package normalize
