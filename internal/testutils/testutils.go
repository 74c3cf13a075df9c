// Package testutils provides testing utilities and helper functions
package testutils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// DefaultTimeout bounds every blocking wait in tests
const DefaultTimeout = 5 * time.Second

// RequireClosed fails the test if ch is not closed within timeout
func RequireClosed(t testing.TB, ch <-chan struct{}, timeout time.Duration, msgAndArgs ...interface{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(timeout):
		require.FailNow(t, "channel was not closed in time", msgAndArgs...)
	}
}

// AssertOpen checks that ch is still open after waiting for settle
func AssertOpen(t testing.TB, ch <-chan struct{}, settle time.Duration, msgAndArgs ...interface{}) bool {
	t.Helper()
	select {
	case <-ch:
		return assert.Fail(t, "channel closed unexpectedly", msgAndArgs...)
	case <-time.After(settle):
		return true
	}
}

// RunWithin runs fn in its own goroutine and returns a channel closed when fn returns
func RunWithin(fn func()) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		fn()
	}()
	return done
}
