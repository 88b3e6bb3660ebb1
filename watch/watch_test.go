package watch_test

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"go.kiln.build/kiln/watch"
)

func TestRunTriggersRebuildOnChange(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls int32
	done := make(chan struct{})
	rebuild := func() error {
		if atomic.AddInt32(&calls, 1) == 1 {
			close(done)
		}
		return nil
	}

	go watch.Run(ctx, dir, rebuild, nil)

	// Give the watcher time to register the root directory before the
	// write, otherwise the event can be missed.
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.cpp"), []byte("x"), 0o644))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("rebuild was not triggered within timeout")
	}
	require.GreaterOrEqual(t, atomic.LoadInt32(&calls), int32(1))
}

func TestRunStopsOnContextCancel(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())

	errCh := make(chan error, 1)
	go func() { errCh <- watch.Run(ctx, dir, func() error { return nil }, nil) }()

	cancel()

	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after context cancellation")
	}
}
