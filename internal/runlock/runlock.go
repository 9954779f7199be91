// Package runlock prevents two invocations from mutating the same tree at
// the same time.
package runlock

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"smalirename/internal/faults"
)

// Stage labels errors produced by this package.
const Stage = "lock"

// Lock is an acquired advisory lock for one root.
type Lock struct {
	lock *flock.Flock
}

// PathFor returns the lock file used for root inside stateDir.
func PathFor(stateDir, root string) string {
	sum := sha256.Sum256([]byte(filepath.Clean(root)))
	return filepath.Join(stateDir, hex.EncodeToString(sum[:8])+".lock")
}

// Acquire takes the lock for root without blocking. A lock held by another
// process is reported as a precondition failure.
func Acquire(stateDir, root string) (*Lock, error) {
	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		return nil, faults.Wrap(faults.ErrPrecondition, Stage, stateDir, "create state directory", err)
	}
	path := PathFor(stateDir, root)
	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, faults.Wrap(faults.ErrPrecondition, Stage, path, "acquire lock", err)
	}
	if !ok {
		return nil, faults.Wrap(faults.ErrPrecondition, Stage, root,
			fmt.Sprintf("another smalirename run holds %s", path), nil)
	}
	return &Lock{lock: fl}, nil
}

// Path returns the lock file path.
func (l *Lock) Path() string {
	return l.lock.Path()
}

// Release unlocks. The lock file is left in place for reuse.
func (l *Lock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	return l.lock.Unlock()
}
