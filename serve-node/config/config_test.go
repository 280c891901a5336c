package config

import (
	"errors"
	"io/ioutil"
	"path/filepath"
	"testing"
	"time"

	errors2 "github.com/freakmaxi/kertish-serve/basics/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func environment(values map[string]string) func(string) string {
	return func(key string) string {
		return values[key]
	}
}

func TestConfig_Defaults(t *testing.T) {
	c := New()

	assert.Equal(t, ":4000", c.BindAddress)
	assert.Equal(t, "/filedownload", c.Prefix())
	assert.False(t, c.RFCFraming)
	assert.Equal(t, 30*time.Second, c.ReadTimeoutDuration())
	assert.Equal(t, time.Duration(0), c.WriteTimeoutDuration())

	err := c.Validate()
	assert.True(t, errors.Is(err, errors2.ErrBaseDirectory))
}

func TestConfig_LoadEnvironment(t *testing.T) {
	c := New()

	require.NoError(t, c.LoadEnvironment(environment(map[string]string{
		"BIND_ADDRESS":   ":8080",
		"BASE_DIRECTORY": "/srv/files",
		"ROUTE_PREFIX":   "/files/",
		"RFC_FRAMING":    "TRUE",
		"WRITE_TIMEOUT":  "600",
	})))

	assert.Equal(t, ":8080", c.BindAddress)
	assert.Equal(t, "/srv/files", c.BaseDirectory)
	assert.Equal(t, "/files", c.Prefix())
	assert.True(t, c.RFCFraming)
	assert.Equal(t, 10*time.Minute, c.WriteTimeoutDuration())
	assert.NoError(t, c.Validate())
}

func TestConfig_LoadEnvironmentInvalidTimeouts(t *testing.T) {
	c := New()

	err := c.LoadEnvironment(environment(map[string]string{
		"READ_TIMEOUT":  "soon",
		"WRITE_TIMEOUT": "-1",
	}))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors2.ErrTimeout))

	var bulkError *errors2.BulkError
	require.True(t, errors.As(err, &bulkError))
	assert.Equal(t, 2, bulkError.Count())
	assert.Equal(t, uint64(30), c.ReadTimeout)
}

func TestConfig_LoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "serve.toml")
	require.NoError(t, ioutil.WriteFile(path, []byte(`
bind_address = "127.0.0.1:9000"
base_directory = "/data/files"
rfc_framing = true
read_timeout = 5
`), 0666))

	c := New()
	require.NoError(t, c.LoadFile(path))

	assert.Equal(t, "127.0.0.1:9000", c.BindAddress)
	assert.Equal(t, "/data/files", c.BaseDirectory)
	assert.Equal(t, "/filedownload", c.RoutePrefix)
	assert.True(t, c.RFCFraming)
	assert.Equal(t, 5*time.Second, c.ReadTimeoutDuration())

	require.NoError(t, c.LoadEnvironment(environment(map[string]string{
		"BASE_DIRECTORY": "/override",
		"RFC_FRAMING":    "0",
	})))
	assert.Equal(t, "/override", c.BaseDirectory)
	assert.False(t, c.RFCFraming)
}

func TestConfig_LoadFileWrongTypes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "serve.toml")
	require.NoError(t, ioutil.WriteFile(path, []byte(`
base_directory = 12
read_timeout = "later"
`), 0666))

	c := New()
	err := c.LoadFile(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors2.ErrTimeout))
	assert.Equal(t, "", c.BaseDirectory)
}

func TestConfig_LoadFileMissing(t *testing.T) {
	c := New()
	assert.Error(t, c.LoadFile(filepath.Join(t.TempDir(), "missing.toml")))
}

func TestConfig_ValidatePrefix(t *testing.T) {
	c := New()
	c.BaseDirectory = "/srv"
	c.RoutePrefix = "files"

	assert.Error(t, c.Validate())
}
