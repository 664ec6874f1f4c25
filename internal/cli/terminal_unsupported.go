//go:build !windows && !linux && !darwin && !freebsd && !netbsd && !openbsd && !dragonfly

package cli

import "os"

func isTerminal(_ *os.File) bool {
	return false
}
