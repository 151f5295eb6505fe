// Package lockfile guards the tracker against concurrent runs with a
// marker file next to the database.
package lockfile

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gittrack/internal/contract"
)

// ErrLockHeld means another live run owns the marker file.
var ErrLockHeld = errors.New("lock already held by another run")

// Lock is a single-process advisory lock backed by an O_EXCL file.
type Lock struct {
	Path   string
	MaxAge time.Duration
	clock  contract.Clock

	held bool
}

// New returns a lock on the given marker path. A marker older than
// maxAge is treated as a leftover from a crashed run and reclaimed.
func New(path string, maxAge time.Duration, clock contract.Clock) *Lock {
	if clock == nil {
		clock = time.Now
	}
	return &Lock{Path: path, MaxAge: maxAge, clock: clock}
}

// Acquire creates the marker file, failing with ErrLockHeld when a
// fresh marker already exists.
func (l *Lock) Acquire() error {
	if err := l.create(); err == nil {
		l.held = true
		return nil
	} else if !errors.Is(err, os.ErrExist) {
		return fmt.Errorf("create lock %s: %w", l.Path, err)
	}

	info, err := os.Stat(l.Path)
	if errors.Is(err, os.ErrNotExist) {
		// Holder released between our create and stat, try once more.
		if err := l.create(); err != nil {
			return ErrLockHeld
		}
		l.held = true
		return nil
	}
	if err != nil {
		return fmt.Errorf("stat lock %s: %w", l.Path, err)
	}

	if l.clock().Sub(info.ModTime()) < l.MaxAge {
		return ErrLockHeld
	}

	// Stale marker from a crashed run: remove and retake.
	if err := os.Remove(l.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove stale lock %s: %w", l.Path, err)
	}
	if err := l.create(); err != nil {
		return ErrLockHeld
	}
	l.held = true
	return nil
}

// Release removes the marker. Safe to call more than once.
func (l *Lock) Release() error {
	if !l.held {
		return nil
	}
	l.held = false
	if err := os.Remove(l.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove lock %s: %w", l.Path, err)
	}
	return nil
}

func (l *Lock) create() error {
	f, err := os.OpenFile(l.Path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = fmt.Fprintf(f, "PID=%d\nSTART=%s\n", os.Getpid(), l.clock().Format(time.RFC3339))
	return err
}
