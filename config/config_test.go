package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAppliesDefaults(t *testing.T) {

	c, err := Parse([]byte(`
window:
  title: Kitchen
  vsync: false
scene:
  watch: true
`))
	require.NoError(t, err)

	assert.Equal(t, "Kitchen", c.Window.Title)
	assert.Equal(t, int32(1280), c.Window.Width)
	assert.False(t, c.IsVSync())
	assert.True(t, c.IsMSAA())
	assert.True(t, c.IsFlipTextures())

	assert.True(t, c.Scene.Watch)
	assert.Equal(t, "./res/scenes/kitchen.toml", c.Scene.Path)
	assert.Equal(t, []float32{0, 5, 12}, c.Camera.Position)
	assert.Equal(t, float32(45), c.Camera.FovDeg)
}

func TestParseErrors(t *testing.T) {

	_, err := Parse([]byte("window: [1, 2"))
	assert.Error(t, err)

	_, err = Parse([]byte("camera:\n  position: [1, 2]"))
	assert.Error(t, err)

	_, err = Parse([]byte("camera:\n  near: 10\n  far: 5"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {

	dir := t.TempDir()

	c, err := Load(filepath.Join(dir, "missing.yml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), c)

	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("window:\n  width: 800\n  height: 600\n"), 0o644))

	c, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, int32(800), c.Window.Width)
	assert.Equal(t, int32(600), c.Window.Height)
}
