package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-1, 0, 1))
	assert.Equal(t, 1.0, Clamp(2, 0, 1))
	assert.Equal(t, 0.25, Clamp(0.25, 0, 1))
}

func TestUnitToByte(t *testing.T) {
	assert.Equal(t, uint8(0), UnitToByte(-0.5))
	assert.Equal(t, uint8(128), UnitToByte(0.5))
	assert.Equal(t, uint8(255), UnitToByte(1))
	assert.Equal(t, uint8(255), UnitToByte(7))
}

func TestFileHelpers(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "a", "b", "shot.png")

	assert.False(t, DirExists(filepath.Join(dir, "a")))
	require.NoError(t, CreateParentDir(nested))
	assert.True(t, DirExists(filepath.Join(dir, "a", "b")))
	assert.False(t, FileExists(nested))

	require.NoError(t, os.WriteFile(nested, []byte("x"), 0644))
	assert.True(t, FileExists(nested))
	assert.False(t, FileExists(filepath.Join(dir, "a")))

	require.NoError(t, CreateParentDir("local.png"))
}

func TestLowerExt(t *testing.T) {
	assert.Equal(t, ".png", LowerExt("Frame.PNG"))
	assert.Equal(t, ".toml", LowerExt("/etc/geogl/config.toml"))
	assert.Equal(t, "", LowerExt("noext"))
}
