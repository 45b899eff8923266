package watcher_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/swatch/internal/adapters/watcher"
	"go.trai.ch/swatch/internal/core/ports"
	"go.trai.ch/swatch/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestWatcher_ReportsWatchedFileOnly(t *testing.T) {
	dir := t.TempDir()
	watched := filepath.Join(dir, "app.config.yaml")
	other := filepath.Join(dir, "notes.yaml")
	require.NoError(t, os.WriteFile(watched, []byte("ui: {}\n"), 0o600))

	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)

	w := watcher.NewWatcher(logger)
	t.Cleanup(func() { _ = w.Stop() })

	require.NoError(t, w.Start(t.Context(), watched))

	require.NoError(t, os.WriteFile(other, []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(watched, []byte("ui: {card: {}}\n"), 0o600))

	events := make(chan ports.WatchEvent, 10)
	go func() {
		for ev := range w.Events() {
			events <- ev
		}
		close(events)
	}()

	select {
	case ev := <-events:
		assert.Equal(t, watched, ev.Path)
		assert.Contains(t, []ports.WatchOp{ports.OpWrite, ports.OpCreate}, ev.Operation)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for watch event")
	}
}

func TestWatcher_StopEndsEvents(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ui: {}\n"), 0o600))

	w := watcher.NewWatcher(nil)
	require.NoError(t, w.Start(t.Context(), path))

	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())

	done := make(chan struct{})
	go func() {
		for range w.Events() {
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("events iterator did not end after Stop")
	}
}

func TestWatcher_StopBeforeStart(t *testing.T) {
	w := watcher.NewWatcher(nil)
	assert.NoError(t, w.Stop())
}

func TestWatchOp_String(t *testing.T) {
	assert.Equal(t, "create", ports.OpCreate.String())
	assert.Equal(t, "write", ports.OpWrite.String())
	assert.Equal(t, "remove", ports.OpRemove.String())
	assert.Equal(t, "rename", ports.OpRename.String())
	assert.Equal(t, "unknown", ports.WatchOp(99).String())
}
