package logger

import (
	"bytes"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// capture redirects output for the duration of a test.
func capture(t *testing.T, v bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(v)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})
	return &buf
}

func TestSetVerbose(t *testing.T) {
	capture(t, false)
	assert.False(t, IsVerbose())

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestVerboseOutput(t *testing.T) {
	tests := []struct {
		name string
		log  func()
		want string
	}{
		{"debug", func() { Debug("skipped %s: %s", "itunes_track", "remote track") }, "[DEBUG] skipped itunes_track: remote track\n"},
		{"info", func() { Info("%d indexed", 42) }, "[INFO] 42 indexed\n"},
		{"warn", func() { Warn("recording failed") }, "[WARN] recording failed\n"},
		{"section", func() { Section("Index Tracks") }, "\n=== Index Tracks ===\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := capture(t, true)
			tt.log()
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestQuietOutput(t *testing.T) {
	buf := capture(t, false)

	Debug("hidden")
	Info("hidden")
	Section("hidden")
	assert.Empty(t, buf.String())

	Warn("shown %d", 1)
	assert.Equal(t, "[WARN] shown 1\n", buf.String())
}

func TestConcurrentAccess(t *testing.T) {
	buf := capture(t, true)

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			Debug("message")
			Info("message")
			_ = IsVerbose()
		}()
	}
	wg.Wait()

	assert.Equal(t, 40, strings.Count(buf.String(), "message"))
}
