package service

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Sweeper empties the upload staging directory. It has no notion of which
// uploads belong to which session; a logout sweeps everything.
type Sweeper struct {
	dir    string
	logger *zap.Logger
}

func NewSweeper(dir string, logger *zap.Logger) *Sweeper {
	return &Sweeper{dir: dir, logger: logger}
}

// Sweep deletes every entry directly inside the staging directory, files and
// subtrees alike. A failed entry is logged and skipped; the sweep always
// visits the rest.
func (s *Sweeper) Sweep() {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		s.logger.Error("Failed to read upload directory", zap.String("dir", s.dir), zap.Error(err))
		return
	}

	removed := 0
	for _, entry := range entries {
		path := filepath.Join(s.dir, entry.Name())
		if err := os.RemoveAll(path); err != nil {
			s.logger.Warn("Failed to delete staged upload", zap.String("path", path), zap.Error(err))
			continue
		}
		removed++
	}

	if removed > 0 {
		s.logger.Info("Swept upload directory", zap.String("dir", s.dir), zap.Int("removed", removed))
	}
}
