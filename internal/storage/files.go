package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"webwatch_bot/internal/model"
)

// FileConfigStore implements ConfigStore backed by a single JSON document.
type FileConfigStore struct {
	path string
	cfg  model.MonitorConfig
}

// LoadConfig reads the config file at path, creating it with defaults when
// absent. The returned store is always usable; a non-nil error explains why
// defaults were used instead of the file contents.
func LoadConfig(path string) (*FileConfigStore, error) {
	s := &FileConfigStore{path: path, cfg: model.DefaultConfig()}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, s.save()
		}
		return s, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, &s.cfg); err != nil {
		s.cfg = model.DefaultConfig()
		return s, fmt.Errorf("parse config: %w", err)
	}
	if s.cfg.Interval < model.MinInterval {
		s.cfg.Interval = model.DefaultInterval
	}
	return s, nil
}

func (s *FileConfigStore) save() error {
	s.cfg.LastUpdated = time.Now().UTC()
	data, err := json.MarshalIndent(s.cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Current returns a copy of the configuration.
func (s *FileConfigStore) Current() model.MonitorConfig {
	cfg := s.cfg
	cfg.URLs = append([]string(nil), s.cfg.URLs...)
	return cfg
}

// AddURL inserts url into the watch list, rejecting duplicates.
func (s *FileConfigStore) AddURL(url string) (bool, error) {
	for _, u := range s.cfg.URLs {
		if u == url {
			return false, nil
		}
	}
	s.cfg.URLs = append(s.cfg.URLs, url)
	return true, s.save()
}

// RemoveURL deletes url from the watch list if present.
func (s *FileConfigStore) RemoveURL(url string) (bool, error) {
	for i, u := range s.cfg.URLs {
		if u == url {
			s.cfg.URLs = append(s.cfg.URLs[:i], s.cfg.URLs[i+1:]...)
			return true, s.save()
		}
	}
	return false, nil
}

// Clear empties the watch list and returns the number of URLs removed.
func (s *FileConfigStore) Clear() (int, error) {
	n := len(s.cfg.URLs)
	s.cfg.URLs = []string{}
	return n, s.save()
}

// SetInterval sets the check interval, clamping to the minimum, and returns
// the applied value.
func (s *FileConfigStore) SetInterval(seconds int) (int, error) {
	if seconds < model.MinInterval {
		seconds = model.MinInterval
	}
	s.cfg.Interval = seconds
	return seconds, s.save()
}

// ToggleContentRetention flips the content retention flag and returns the
// new value.
func (s *FileConfigStore) ToggleContentRetention() (bool, error) {
	s.cfg.StoreContent = !s.cfg.StoreContent
	return s.cfg.StoreContent, s.save()
}

// FileSnapshotStore implements SnapshotStore backed by a single JSON document
// mapping URL to snapshot.
type FileSnapshotStore struct {
	path  string
	snaps map[string]model.Snapshot
}

// LoadSnapshots reads the snapshot file at path. A missing file yields an
// empty store; an unreadable one yields an empty store plus the error.
func LoadSnapshots(path string) (*FileSnapshotStore, error) {
	s := &FileSnapshotStore{path: path, snaps: make(map[string]model.Snapshot)}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, fmt.Errorf("read snapshots: %w", err)
	}
	if err := json.Unmarshal(data, &s.snaps); err != nil {
		s.snaps = make(map[string]model.Snapshot)
		return s, fmt.Errorf("parse snapshots: %w", err)
	}
	return s, nil
}

// Get returns the stored snapshot for url.
func (s *FileSnapshotStore) Get(url string) (model.Snapshot, bool) {
	snap, ok := s.snaps[url]
	return snap, ok
}

// Put stores the snapshot for url and persists the full map.
func (s *FileSnapshotStore) Put(url string, snap model.Snapshot) error {
	s.snaps[url] = snap
	data, err := json.MarshalIndent(s.snaps, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshots: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write snapshots: %w", err)
	}
	return nil
}
