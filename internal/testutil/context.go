package testutil

import (
	"context"
	"testing"
	"time"
)

// Context returns a context cancelled when the test ends or after d.
func Context(tb testing.TB, d time.Duration) context.Context {
	tb.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), d)
	tb.Cleanup(cancel)
	return ctx
}
