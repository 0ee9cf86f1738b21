package foldersync

import "time"

// Config holds sync limits.
type Config struct {
	// Workers bounds concurrent downloads per sync.
	Workers int
	// Timeout is the overall deadline of one sync.
	Timeout time.Duration
}

func (c Config) workers() int {
	if c.Workers <= 0 {
		return 4
	}
	return c.Workers
}
