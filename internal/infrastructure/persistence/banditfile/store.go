// Package banditfile persists the learner's snapshot as a single JSON
// document on disk. Writes go through a temp file and rename so a crash
// mid-save never leaves a truncated state file behind.
package banditfile

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/Lalit-mahajan-1/NutriAi/internal/domain/bandit"
	"github.com/Lalit-mahajan-1/NutriAi/pkg/errors"
	"go.uber.org/zap"
)

// Store reads and writes bandit snapshots at a fixed path
type Store struct {
	path   string
	logger *zap.Logger
}

// NewStore creates a file-backed snapshot store
func NewStore(path string, logger *zap.Logger) *Store {
	return &Store{path: path, logger: logger.Named("bandit-state")}
}

// Save writes the snapshot atomically
func (s *Store) Save(ctx context.Context, snap bandit.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := json.Marshal(snap)
	if err != nil {
		return errors.Wrap(err, "encode bandit state")
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return errors.Wrap(err, "create state directory")
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return errors.Wrap(err, "write bandit state")
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return errors.Wrap(err, "replace bandit state")
	}

	s.logger.Info("Saved bandit state",
		zap.String("path", s.path),
		zap.Int("bytes", len(payload)),
	)
	return nil
}

// Load reads the snapshot. A missing file returns a STATE_NOT_FOUND error
// so the caller can start from a cold store.
func (s *Store) Load(ctx context.Context) (bandit.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return bandit.Snapshot{}, err
	}

	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return bandit.Snapshot{}, errors.NewStateNotFoundError(s.path)
		}
		return bandit.Snapshot{}, errors.Wrap(err, "read bandit state")
	}

	var snap bandit.Snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return bandit.Snapshot{}, errors.Wrap(err, "decode bandit state")
	}

	s.logger.Info("Loaded bandit state",
		zap.String("path", s.path),
		zap.Int("users", len(snap.Users)),
	)
	return snap, nil
}
