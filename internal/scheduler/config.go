package scheduler

import (
	"time"
)

// Config controls scheduler intervals and job limits.
type Config struct {
	// RunInterval overrides the dashboard reminderInterval when set.
	RunInterval time.Duration
	JobTimeout  time.Duration
	// EnabledJobs limits RunOnce to the named jobs. Empty enables all.
	EnabledJobs []string
}

func DefaultConfig() Config {
	return Config{
		JobTimeout: 30 * time.Second,
	}
}

func (c Config) withDefaults() Config {
	defaults := DefaultConfig()
	if c.JobTimeout <= 0 {
		c.JobTimeout = defaults.JobTimeout
	}
	return c
}
