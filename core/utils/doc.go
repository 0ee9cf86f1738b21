// Package utils provides common utility functions for the realty-inventory application.
// It includes text folding helpers shared by header detection, cell normalisation and
// search matching, and other shared logic that doesn't fit into domain-specific packages.
package utils
