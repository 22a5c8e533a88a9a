//go:build !(linux || darwin || freebsd || openbsd || netbsd || dragonfly || windows)

package primes

import "os"

// No advisory locking on this platform; a single process per mirror is assumed.
func lockFile(*os.File, bool) error {
	return nil
}

func unlockFile(*os.File) error {
	return nil
}
