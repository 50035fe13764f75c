//go:build windows

package rewriter

func fsync(fd uintptr) error { return nil }
