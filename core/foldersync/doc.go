// Package foldersync builds a fresh inventory snapshot of one remote folder.
//
// A sync lists the folder, reuses the rows of files whose version marker did not
// change, and downloads and parses the rest on a bounded worker group. One broken
// file never fails the whole folder: its error is recorded on the snapshot and the
// result is reported as a SyncFailed carrying the partial snapshot.
package foldersync
