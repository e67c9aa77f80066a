//go:build darwin

package lowlevel

/*
#include <pthread.h>
#include <stdint.h>
*/
import "C"

// CurrentThreadID returns the system-wide unique id of the calling thread.
func CurrentThreadID() ThreadID {
	var tid C.uint64_t
	C.pthread_threadid_np(nil, &tid)
	return ThreadID(tid)
}
