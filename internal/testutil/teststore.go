package testutil

import (
	"log/slog"
	"testing"

	"github.com/mbrandeis/taskloom/internal/store"
)

// NewTestStore creates an in-memory Badger-backed document store. The store
// is closed when the test completes.
func NewTestStore(t *testing.T) store.Store {
	t.Helper()
	st, err := store.OpenBadgerInMemory()
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	t.Cleanup(func() {
		st.Close()
	})
	return st
}

// NewTestLogger returns a logger that discards everything.
func NewTestLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
