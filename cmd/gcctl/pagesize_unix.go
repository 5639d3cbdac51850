//go:build linux || darwin || freebsd

package main

import "golang.org/x/sys/unix"

// osPageSize reports the OS memory page size, shown alongside AllocBytes
// in stats output purely as orientation for a human reader.
func osPageSize() int {
	return unix.Getpagesize()
}
