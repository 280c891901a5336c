package main

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefineFlags_Get(t *testing.T) {
	fc, err := defineFlags([]string{"fetch", "--serve-address", "10.0.0.1:4000", "--chunks", "8", "get", "videos/clip.mp4"})
	require.NoError(t, err)

	assert.Equal(t, "10.0.0.1:4000", fc.serveAddress)
	assert.Equal(t, 8, fc.chunks)
	assert.Equal(t, "get", fc.command)
	assert.Equal(t, []string{"videos/clip.mp4", "clip.mp4"}, fc.params)
}

func TestDefineFlags_Size(t *testing.T) {
	fc, err := defineFlags([]string{"fetch", "size", "report.pdf"})
	require.NoError(t, err)

	assert.Equal(t, "localhost:4000", fc.serveAddress)
	assert.Equal(t, "/filedownload", fc.prefix)
	assert.Equal(t, "size", fc.command)
}

func TestDefineFlags_Invalid(t *testing.T) {
	_, err := defineFlags([]string{"fetch", "size"})
	assert.Error(t, err)

	_, err = defineFlags([]string{"fetch", "--overwrite", "size", "a.bin"})
	assert.Error(t, err)

	_, err = defineFlags([]string{"fetch", "--chunks", "0", "get", "a.bin"})
	assert.Error(t, err)

	_, err = defineFlags([]string{"fetch", "get", "../a.bin"})
	assert.Error(t, err)

	_, err = defineFlags([]string{"fetch", "rm", "a.bin"})
	assert.Error(t, err)

	_, err = defineFlags([]string{"fetch"})
	assert.Equal(t, flag.ErrHelp, err)
}

func TestDefineFlags_Version(t *testing.T) {
	fc, err := defineFlags([]string{"fetch", "--version"})
	require.NoError(t, err)
	assert.True(t, fc.version)
}
