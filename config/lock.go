package config

import (
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"
	"github.com/pkg/errors"
)

// ErrLocked is returned when another process holds the configuration lock.
var ErrLocked = errors.New("configuration is locked by another process")

var lockMutex sync.Mutex

func makeLockFile() *flock.Flock {
	return flock.New(filepath.Join(Home(), "config.lock"))
}

// WithLock runs f while holding the configuration lock of the current home.
func WithLock(f func() error) error {
	lockMutex.Lock()
	defer lockMutex.Unlock()

	lock := makeLockFile()
	ok, err := lock.TryLock()
	if err != nil {
		return errors.WithStack(err)
	}
	if !ok {
		return ErrLocked
	}
	defer lock.Close()
	return f()
}
