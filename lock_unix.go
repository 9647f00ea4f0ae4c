//go:build unix

package cryptofolio

import (
	"os"

	"golang.org/x/sys/unix"
)

// lockFile blocks until f is exclusively locked. The lock is advisory, and
// released by unlockFile or when f is closed.
func lockFile(f *os.File) error {
	for {
		err := unix.Flock(int(f.Fd()), unix.LOCK_EX)
		if err != unix.EINTR {
			return err
		}
	}
}

func unlockFile(f *os.File) error { return unix.Flock(int(f.Fd()), unix.LOCK_UN) }
