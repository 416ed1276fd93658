// Package download owns the scratch directory where audio artifacts are
// produced before streaming. Every request works inside its own UUID-named
// workspace, so title-derived artifact names can never collide across
// concurrent requests.
package download

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

const dirPerm = 0o755

type Store struct {
	root string
}

// NewStore creates the working directory if it does not exist and returns a
// store rooted there.
func NewStore(root string) (*Store, error) {
	if err := os.MkdirAll(root, dirPerm); err != nil {
		return nil, fmt.Errorf("create working directory %s: %w", root, err)
	}
	return &Store{root: root}, nil
}

func (s *Store) Root() string { return s.root }

// NewWorkspace allocates a fresh request-scoped subdirectory. The caller
// owns it and must Release it when done.
func (s *Store) NewWorkspace() (string, error) {
	dir := filepath.Join(s.root, uuid.NewString())
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return "", fmt.Errorf("create workspace: %w", err)
	}
	return dir, nil
}

// Release removes a workspace and everything in it. An already-removed
// workspace is a no-op, never an error, so it is safe on every exit path.
func (s *Store) Release(dir string) {
	if dir == "" {
		return
	}
	if err := os.RemoveAll(dir); err != nil {
		log.Printf("torax-api: release workspace %s: %v", dir, err)
	}
}

// Sweep removes entries in the working directory older than maxAge and
// returns how many were removed. It catches whatever a crashed request or
// an unclean shutdown left behind.
func (s *Store) Sweep(maxAge time.Duration) (int, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return 0, fmt.Errorf("read working directory: %w", err)
	}

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		if err := os.RemoveAll(filepath.Join(s.root, entry.Name())); err != nil {
			log.Printf("torax-api: sweep %s: %v", entry.Name(), err)
			continue
		}
		removed++
	}
	return removed, nil
}

// StartSweeper runs Sweep on an interval until ctx is cancelled.
func (s *Store) StartSweeper(ctx context.Context, interval, maxAge time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		for {
			select {
			case <-ctx.Done():
				ticker.Stop()
				return
			case <-ticker.C:
				if n, err := s.Sweep(maxAge); err != nil {
					log.Printf("torax-api: sweeper: %v", err)
				} else if n > 0 {
					log.Printf("torax-api: sweeper removed %d stale entries", n)
				}
			}
		}
	}()
}
