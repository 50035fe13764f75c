//go:build !windows

package rewriter

import "golang.org/x/sys/unix"

func fsync(fd uintptr) error {
	return unix.Fsync(int(fd))
}
