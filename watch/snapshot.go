// ABOUTME: Persisted snapshot of the last fully-processed classroom state
// ABOUTME: Single JSON document, atomic replace, absence means first run
package watch

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/harperreed/classwatch/config"
	"github.com/harperreed/classwatch/models"
)

// SnapshotStore reads and replaces the diff baseline on disk.
type SnapshotStore struct {
	path string
}

// SnapshotPath returns the XDG-compliant path of the snapshot file.
func SnapshotPath() string {
	return filepath.Join(config.Dir(), "snapshot.json")
}

func NewSnapshotStore(path string) *SnapshotStore {
	if path == "" {
		path = SnapshotPath()
	}
	return &SnapshotStore{path: path}
}

// Load returns the persisted snapshot. An absent file is the valid first-run
// state and yields an empty snapshot. A malformed file is logged and also
// treated as empty: every fetched item then counts as new, which only
// re-notifies, never drops.
func (s *SnapshotStore) Load() (*models.Snapshot, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("snapshot: failed to read %s, treating as first run: %v", s.path, err)
		}
		return &models.Snapshot{}, false
	}

	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		log.Printf("snapshot: malformed file %s, treating as first run: %v", s.path, err)
		return &models.Snapshot{}, false
	}

	return &snap, true
}

// Save replaces the snapshot wholesale. Write-temp-then-rename keeps a crash
// mid-write from leaving a torn file.
func (s *SnapshotStore) Save(snap *models.Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}

	return nil
}
