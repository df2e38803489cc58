// Package testsupport holds small test helpers shared across this
// module's package tests, ported from the teacher's test/testing.go.
package testsupport

import (
	"runtime"
	"testing"
	"time"
)

// WaitOrTimeout runs cb in a goroutine and reports whether it completed
// within duration, ported verbatim in behavior from the teacher's
// WaitThisOrTimeout.
func WaitOrTimeout(cb func(), duration time.Duration) bool {
	done := make(chan struct{})
	go func() {
		cb()
		close(done)
	}()
	select {
	case <-done:
		return true
	case <-time.After(duration):
		return false
	}
}

// PrintStackTrace dumps every goroutine's stack to t, useful when a test
// hangs waiting on a channel that should have been closed.
func PrintStackTrace(t *testing.T) {
	buf := make([]byte, 1<<16)
	n := runtime.Stack(buf, true)
	t.Logf("%s", buf[:n])
}
