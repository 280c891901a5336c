package filesystem

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestManager(t *testing.T) (Manager, string) {
	basePath := t.TempDir()

	require.NoError(t, ioutil.WriteFile(filepath.Join(basePath, "sample.bin"), []byte("0123456789"), 0666))
	require.NoError(t, os.MkdirAll(filepath.Join(basePath, "videos"), 0777))
	require.NoError(t, ioutil.WriteFile(filepath.Join(basePath, "videos", "clip.mp4"), []byte("clip"), 0666))

	m, err := NewManager(basePath, zap.NewNop())
	require.NoError(t, err)

	return m, basePath
}

func TestNewManager_CreatesMissingBase(t *testing.T) {
	basePath := filepath.Join(t.TempDir(), "missing", "root")

	m, err := NewManager(basePath, zap.NewNop())
	require.NoError(t, err)

	info, err := os.Stat(m.BaseDirectory())
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestNewManager_BaseIsFile(t *testing.T) {
	basePath := filepath.Join(t.TempDir(), "file")
	require.NoError(t, ioutil.WriteFile(basePath, []byte{}, 0666))

	_, err := NewManager(basePath, zap.NewNop())
	assert.Error(t, err)
}

func TestManager_Exists(t *testing.T) {
	m, _ := newTestManager(t)

	assert.True(t, m.Exists("sample.bin"))
	assert.True(t, m.Exists("/sample.bin"))
	assert.True(t, m.Exists("videos/clip.mp4"))

	assert.False(t, m.Exists("missing.bin"))
	assert.False(t, m.Exists("videos"))
	assert.False(t, m.Exists("../sample.bin"))
}

func TestManager_Size(t *testing.T) {
	m, _ := newTestManager(t)

	size, err := m.Size("sample.bin")
	require.NoError(t, err)
	assert.Equal(t, int64(10), size)

	_, err = m.Size("missing.bin")
	assert.Equal(t, os.ErrNotExist, err)

	_, err = m.Size("../../etc/passwd")
	assert.Equal(t, os.ErrInvalid, err)
}

func TestManager_File(t *testing.T) {
	m, _ := newTestManager(t)

	file, err := m.File("videos/clip.mp4")
	require.NoError(t, err)
	assert.Equal(t, "clip.mp4", file.Name)
	assert.Equal(t, int64(4), file.Size)
}

func TestManager_Open(t *testing.T) {
	m, _ := newTestManager(t)

	reader, err := m.Open("sample.bin")
	require.NoError(t, err)
	defer func() { _ = reader.Close() }()

	content, err := ioutil.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "0123456789", string(content))

	_, err = m.Open("missing.bin")
	assert.Equal(t, os.ErrNotExist, err)
}
