// Package checks holds the folder and history diagnostics used by the folders feature.
package checks
