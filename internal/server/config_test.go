package server

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/iwvelando/mediation-calc/pkg/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaultsWhenMissing(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, constants.DefaultServerAddress, cfg.Address)
	assert.Equal(t, constants.DefaultMaxBodySizeBytes, cfg.BodySizeBytes())
	read, write := cfg.Timeouts()
	assert.Equal(t, DefaultTimeout, read)
	assert.Equal(t, DefaultTimeout, write)
	assert.Empty(t, cfg.Logging.Level)
	assert.Empty(t, cfg.Logging.Format)
	assert.Empty(t, cfg.Logging.OutputFile)
}

func TestLoadConfigEmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, constants.DefaultServerAddress, cfg.Address)
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server-config.yaml")

	contents := []byte(`address: 127.0.0.1:9000
maxBodySize: 2M
readTimeout: 5s
writeTimeout: 1m
logging:
  level: debug
  format: console
  outputFile: /tmp/server.log
`)
	require.NoError(t, os.WriteFile(path, contents, 0600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Address)
	assert.Equal(t, int64(2*1024*1024), cfg.BodySizeBytes())
	read, write := cfg.Timeouts()
	assert.Equal(t, 5*time.Second, read)
	assert.Equal(t, time.Minute, write)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "/tmp/server.log", cfg.Logging.OutputFile)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	for name, body := range map[string]string{
		"size":    "maxBodySize: invalid",
		"timeout": "readTimeout: soon",
		"yaml":    "address: [unterminated",
	} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0600))

			_, err := LoadConfig(path)
			assert.Error(t, err)
		})
	}
}

func TestSetBodySizeBytes(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	cfg.SetBodySizeBytes(0)
	assert.Equal(t, constants.DefaultMaxBodySizeBytes, cfg.BodySizeBytes())

	cfg.SetBodySizeBytes(4096)
	assert.Equal(t, int64(4096), cfg.BodySizeBytes())
	assert.Equal(t, "4096", cfg.MaxBodySize)
}

func TestParseSize(t *testing.T) {
	tests := map[string]int64{
		"":          constants.DefaultMaxBodySizeBytes,
		"1024":      1024,
		"512b":      512,
		"256K":      256 * 1024,
		"1m":        1024 * 1024,
		"3MB":       3 * 1024 * 1024,
		"  4096   ": 4096,
	}

	for input, expected := range tests {
		got, err := ParseSize(input)
		require.NoError(t, err, "ParseSize(%q)", input)
		assert.Equal(t, expected, got, "ParseSize(%q)", input)
	}

	_, err := ParseSize("1TB")
	assert.Error(t, err, "unsupported unit")
	_, err = ParseSize("abc")
	assert.Error(t, err, "invalid number")
}
