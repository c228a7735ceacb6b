package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		w := New("library.xml")
		assert.Equal(t, "library.xml", w.path)
		assert.Equal(t, DefaultDebounce, w.debounce)
	})

	t.Run("debounce option", func(t *testing.T) {
		w := New("library.xml", WithDebounce(time.Second))
		assert.Equal(t, time.Second, w.debounce)
	})

	t.Run("non positive debounce ignored", func(t *testing.T) {
		w := New("library.xml", WithDebounce(0))
		assert.Equal(t, DefaultDebounce, w.debounce)
	})
}

func TestRelevant(t *testing.T) {
	path := filepath.Join(string(filepath.Separator), "music", "library.xml")

	tests := []struct {
		name     string
		event    fsnotify.Event
		expected bool
	}{
		{"write to export", fsnotify.Event{Name: path, Op: fsnotify.Write}, true},
		{"create export", fsnotify.Event{Name: path, Op: fsnotify.Create}, true},
		{"rename export", fsnotify.Event{Name: path, Op: fsnotify.Rename}, true},
		{"chmod export", fsnotify.Event{Name: path, Op: fsnotify.Chmod}, false},
		{"other file", fsnotify.Event{Name: filepath.Join(filepath.Dir(path), "other.xml"), Op: fsnotify.Write}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, relevant(tt.event, path))
		})
	}
}

func TestWatcher_Run(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "library.xml")
	require.NoError(t, os.WriteFile(path, []byte("<plist/>"), 0o600))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	calls := make(chan struct{}, 8)
	done := make(chan error, 1)
	w := New(path, WithDebounce(50*time.Millisecond))
	go func() {
		done <- w.Run(ctx, func(context.Context) error {
			calls <- struct{}{}
			return errors.New("reindex failed")
		})
	}()

	// Give the watcher time to register before writing.
	time.Sleep(200 * time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "unrelated.txt"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(path, []byte("<plist></plist>"), 0o600))
	require.NoError(t, os.WriteFile(path, []byte("<plist>\n</plist>"), 0o600))

	select {
	case <-calls:
	case <-time.After(5 * time.Second):
		t.Fatal("callback was not invoked")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcher_Run_MissingDirectory(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "missing", "library.xml"))

	err := w.Run(context.Background(), func(context.Context) error { return nil })

	require.Error(t, err)
	assert.Contains(t, err.Error(), "watching")
}
