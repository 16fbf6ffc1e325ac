// Package storage defines the persistence interfaces and their implementations.
package storage

import "webwatch_bot/internal/model"

// ConfigStore persists the monitored URL set and check settings.
// All mutators persist synchronously before returning; a persistence error
// is reported but the in-memory mutation stands.
type ConfigStore interface {
	Current() model.MonitorConfig
	AddURL(url string) (bool, error)
	RemoveURL(url string) (bool, error)
	Clear() (int, error)
	SetInterval(seconds int) (int, error)
	ToggleContentRetention() (bool, error)
}

// SnapshotStore persists the last observed snapshot per URL.
type SnapshotStore interface {
	Get(url string) (model.Snapshot, bool)
	Put(url string, snap model.Snapshot) error
}
