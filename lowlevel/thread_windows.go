//go:build windows

package lowlevel

import (
	"golang.org/x/sys/windows"
)

// CurrentThreadID returns the Win32 thread id of the calling thread.
func CurrentThreadID() ThreadID {
	return ThreadID(windows.GetCurrentThreadId())
}
