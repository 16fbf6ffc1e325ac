// Package model defines the domain types used across the application.
package model

import "time"

// Check interval bounds in seconds.
const (
	DefaultInterval = 300
	MinInterval     = 30
)

// MonitorConfig holds the monitored URL set and check settings.
// URLs contains no duplicates and Interval never drops below MinInterval
// through a mutation.
type MonitorConfig struct {
	URLs         []string  `json:"urls"`
	Interval     int       `json:"interval"`
	StoreContent bool      `json:"store_content"`
	LastUpdated  time.Time `json:"last_updated"`
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() MonitorConfig {
	return MonitorConfig{
		URLs:     []string{},
		Interval: DefaultInterval,
	}
}

// Snapshot is the last observed state of a single monitored URL.
// Content is populated only when content retention was enabled at the time
// of the update; stale content from an earlier retention period may remain.
type Snapshot struct {
	Hash        string    `json:"hash"`
	StatusCode  int       `json:"status_code"`
	LastChecked time.Time `json:"last_checked"`
	Content     string    `json:"content,omitempty"`
}
