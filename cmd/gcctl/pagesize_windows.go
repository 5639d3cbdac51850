//go:build windows

package main

import "os"

// osPageSize reports the OS memory page size. golang.org/x/sys/windows has
// no single-call equivalent to unix.Getpagesize (it requires a
// GetSystemInfo call and a struct field read), so the stdlib's
// cross-platform accessor is used here instead.
func osPageSize() int {
	return os.Getpagesize()
}
