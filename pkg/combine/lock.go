// File: pkg/combine/lock.go
package combine

import (
	"fmt"

	"github.com/gofrs/flock"
)

// LockSuffix is appended to the output path to name its lock file.
const LockSuffix = ".lock"

// outputLock serialises runs that target the same output path.
type outputLock struct {
	flock *flock.Flock
	path  string
}

// lockOutput acquires an exclusive lock for output without blocking.
// ErrOutputLocked is returned when another run holds it.
func lockOutput(output string) (*outputLock, error) {
	path := output + LockSuffix
	fl := flock.New(path)

	acquired, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to try lock on %s: %w", path, err)
	}
	if !acquired {
		return nil, fmt.Errorf("%w: %s", ErrOutputLocked, path)
	}
	return &outputLock{flock: fl, path: path}, nil
}

// Release unlocks the lock file. The file stays on disk so that every run
// locks the same inode.
func (l *outputLock) Release() error {
	if err := l.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to release lock on %s: %w", l.path, err)
	}
	return nil
}
