package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

const (
	lockFileSuffix = ".lock"
)

// StoreLock manages a file-based lock next to the record store, so only one
// process appends to it at a time.
type StoreLock struct {
	lock *flock.Flock
	path string
}

// NewStoreLock creates a new lock for the given store path.
func NewStoreLock(storePath string) (*StoreLock, error) {
	absPath, err := filepath.Abs(storePath)
	if err != nil {
		return nil, fmt.Errorf("could not get absolute store path: %w", err)
	}
	lockPath := absPath + lockFileSuffix
	return &StoreLock{
		lock: flock.New(lockPath),
		path: lockPath,
	}, nil
}

// Lock acquires the store lock, waiting if necessary.
// It will print a message if it has to wait.
func (l *StoreLock) Lock() error {
	locked, err := l.lock.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire lock on %s: %w", l.path, err)
	}

	if !locked {
		fmt.Fprintf(os.Stderr, "Another platescope process is writing to the dataset, waiting for it to finish...\n")
		if err := l.lock.Lock(); err != nil {
			return fmt.Errorf("failed to acquire lock on %s after waiting: %w", l.path, err)
		}
	}
	return nil
}

// TryLock acquires the lock without waiting and reports whether it succeeded.
func (l *StoreLock) TryLock() (bool, error) {
	return l.lock.TryLock()
}

// Unlock releases the store lock.
func (l *StoreLock) Unlock() error {
	if err := l.lock.Unlock(); err != nil {
		// Suppress error if the lock file doesn't exist, as it means we don't hold the lock.
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to release lock on %s: %w", l.path, err)
	}
	return nil
}

func (l *StoreLock) Path() string { return l.path }
