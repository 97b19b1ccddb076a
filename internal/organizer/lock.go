package organizer

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"autokit/internal/services"
)

// acquireLock takes an exclusive, non-blocking lock for dir. The returned
// release func is always non-nil.
func acquireLock(lockDir, dir string) (func(), error) {
	if lockDir == "" {
		return func() {}, nil
	}
	if err := os.MkdirAll(lockDir, 0o755); err != nil {
		return func() {}, services.Wrap(services.ErrConfiguration, "organizer", "prepare lock", "create lock directory", err)
	}
	sum := sha256.Sum256([]byte(dir))
	lockPath := filepath.Join(lockDir, "organize-"+hex.EncodeToString(sum[:8])+".lock")

	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return func() {}, services.Wrap(services.ErrTransient, "organizer", "acquire lock", lockPath, err)
	}
	if !ok {
		return func() {}, services.Wrap(
			services.ErrConflict,
			"organizer",
			"acquire lock",
			fmt.Sprintf("another organize pass is already running on %s", dir),
			nil,
		)
	}
	return func() { _ = lock.Unlock() }, nil
}
