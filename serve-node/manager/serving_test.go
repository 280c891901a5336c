package manager

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/freakmaxi/kertish-serve/basics/errors"
	"github.com/freakmaxi/kertish-serve/serve-node/filesystem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestServing(t *testing.T, files map[string][]byte) Serving {
	basePath := t.TempDir()
	for name, content := range files {
		require.NoError(t, ioutil.WriteFile(filepath.Join(basePath, name), content, 0666))
	}

	store, err := filesystem.NewManager(basePath, zap.NewNop())
	require.NoError(t, err)

	return NewServing(store, zap.NewNop())
}

func rangeHeader(value string) *string {
	return &value
}

func TestServing_Size(t *testing.T) {
	s := newTestServing(t, map[string][]byte{"hundred.bin": sampleContent(100)})

	size, err := s.Size("hundred.bin")
	require.NoError(t, err)
	assert.Equal(t, int64(100), size)

	_, err = s.Size("missing.bin")
	assert.Equal(t, os.ErrNotExist, err)

	_, err = s.Size("../hundred.bin")
	assert.Equal(t, os.ErrInvalid, err)
}

func TestServing_DownloadRange(t *testing.T) {
	content := sampleContent(100)
	s := newTestServing(t, map[string][]byte{"hundred.bin": content})

	download, err := s.Download("hundred.bin", rangeHeader("bytes=10-19"))
	require.NoError(t, err)
	assert.True(t, download.Partial())
	assert.Equal(t, "hundred.bin", download.File().Name)
	assert.Equal(t, int64(10), download.Range().Size)

	result, err := download.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, content[10:20], result)

	download, err = s.Download("hundred.bin", rangeHeader("bytes=-5"))
	require.NoError(t, err)
	assert.Equal(t, int64(95), download.Range().Start)
	assert.Equal(t, int64(99), download.Range().End)

	result, err = download.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, content[95:], result)
}

func TestServing_DownloadFull(t *testing.T) {
	content := sampleContent(42)
	s := newTestServing(t, map[string][]byte{"answer.bin": content})

	download, err := s.Download("answer.bin", nil)
	require.NoError(t, err)
	assert.False(t, download.Partial())

	result, err := download.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, content, result)
}

func TestServing_DownloadErrors(t *testing.T) {
	s := newTestServing(t, map[string][]byte{"hundred.bin": sampleContent(100)})

	_, err := s.Download("missing.bin", nil)
	assert.Equal(t, os.ErrNotExist, err)

	_, err = s.Download("hundred.bin", rangeHeader("bytes=50-200"))
	assert.Equal(t, errors.ErrUnsatisfiableRange, err)

	_, err = s.Download("hundred.bin", rangeHeader("pages=1-2"))
	assert.Equal(t, errors.ErrMalformedRange, err)
}

func TestServing_DownloadRemovedBeforeRead(t *testing.T) {
	basePath := t.TempDir()
	target := filepath.Join(basePath, "short-lived.bin")
	require.NoError(t, ioutil.WriteFile(target, sampleContent(10), 0666))

	store, err := filesystem.NewManager(basePath, zap.NewNop())
	require.NoError(t, err)
	s := NewServing(store, zap.NewNop())

	download, err := s.Download("short-lived.bin", nil)
	require.NoError(t, err)

	require.NoError(t, os.Remove(target))

	_, err = download.Read(context.Background())
	assert.Equal(t, os.ErrNotExist, err)
}
