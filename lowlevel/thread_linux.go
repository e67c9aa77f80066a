//go:build linux

package lowlevel

import (
	"golang.org/x/sys/unix"
)

// CurrentThreadID returns the kernel task id of the calling thread.
func CurrentThreadID() ThreadID {
	return ThreadID(unix.Gettid())
}
