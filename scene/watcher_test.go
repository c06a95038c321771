package scene

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherReportsChanges(t *testing.T) {

	dir := t.TempDir()
	path := filepath.Join(dir, "scene.toml")
	other := filepath.Join(dir, "other.toml")
	require.NoError(t, os.WriteFile(path, []byte("# v1"), 0o644))

	w, err := NewWatcher(path)
	require.NoError(t, err)
	defer w.Close()

	assert.False(t, w.Changed())

	// Other files in the same directory are ignored
	require.NoError(t, os.WriteFile(other, []byte("x"), 0o644))
	time.Sleep(100 * time.Millisecond)
	assert.False(t, w.Changed())

	require.NoError(t, os.WriteFile(path, []byte("# v2"), 0o644))
	assert.Eventually(t, w.Changed, 2*time.Second, 10*time.Millisecond)

	// Changed resets after being read
	assert.False(t, w.Changed())
}

func TestWatcherCloseTwice(t *testing.T) {

	path := filepath.Join(t.TempDir(), "scene.toml")
	w, err := NewWatcher(path)
	require.NoError(t, err)

	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}

func TestWatcherMissingDir(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "nope", "scene.toml"))
	assert.Error(t, err)
}
