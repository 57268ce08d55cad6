package watcher_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/vimbridge/internal/watcher"
)

func startWatcher(t *testing.T, path string) <-chan struct{} {
	t.Helper()
	w, err := watcher.New(watcher.Config{Path: path, Debounce: 50 * time.Millisecond})
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })

	onChange, err := w.Start()
	require.NoError(t, err)
	return onChange
}

func TestWatcher_DebouncesWrites(t *testing.T) {
	rc := filepath.Join(t.TempDir(), "vimbridgerc")
	require.NoError(t, os.WriteFile(rc, []byte("set ts=2"), 0o644))
	onChange := startWatcher(t, rc)

	for i := 0; i < 10; i++ {
		require.NoError(t, os.WriteFile(rc, []byte(fmt.Sprintf("set ts=%d", i)), 0o644))
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case <-onChange:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected a change signal")
	}

	select {
	case <-onChange:
		t.Fatal("writes within the debounce window should coalesce")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestWatcher_CreatedFile(t *testing.T) {
	rc := filepath.Join(t.TempDir(), "vimbridgerc")
	onChange := startWatcher(t, rc)

	require.NoError(t, os.WriteFile(rc, []byte("set number"), 0o644))

	select {
	case <-onChange:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("creating the file should signal")
	}
}

func TestWatcher_RenamedIntoPlace(t *testing.T) {
	dir := t.TempDir()
	rc := filepath.Join(dir, "vimbridgerc")
	tmp := filepath.Join(dir, "vimbridgerc.tmp")
	require.NoError(t, os.WriteFile(rc, []byte("old"), 0o644))
	require.NoError(t, os.WriteFile(tmp, []byte("new"), 0o644))
	onChange := startWatcher(t, rc)

	require.NoError(t, os.Rename(tmp, rc))

	select {
	case <-onChange:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("an atomic save should signal")
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	rc := filepath.Join(dir, "vimbridgerc")
	other := filepath.Join(dir, "hook.sh")
	require.NoError(t, os.WriteFile(rc, []byte("set ts=2"), 0o644))
	require.NoError(t, os.WriteFile(other, []byte("#!/bin/sh"), 0o644))
	onChange := startWatcher(t, rc)

	require.NoError(t, os.WriteFile(other, []byte("#!/bin/sh\nexit 0"), 0o644))

	select {
	case <-onChange:
		t.Fatal("writes to other files should not signal")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestWatcher_Stop(t *testing.T) {
	rc := filepath.Join(t.TempDir(), "vimbridgerc")
	w, err := watcher.New(watcher.Config{Path: rc})
	require.NoError(t, err)
	require.Equal(t, rc, w.Path())

	_, err = w.Start()
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		assert.NoError(t, w.Stop())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop timed out")
	}
}

func TestWatcher_MissingDirectory(t *testing.T) {
	w, err := watcher.New(watcher.Config{Path: filepath.Join(t.TempDir(), "nope", "vimbridgerc")})
	require.NoError(t, err)
	defer func() { _ = w.Stop() }()

	_, err = w.Start()
	require.Error(t, err)
}
