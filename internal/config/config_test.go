package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/ivysilani/pkg/ivysilani"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Valid(t *testing.T) {
	path := writeConfig(t, `
[client]
api_base_url = "http://localhost:9000"
timeout = "30s"
page_size = 10

[log]
level = "debug"
verbose = true
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000", cfg.Client.APIBaseURL)
	assert.Equal(t, 30*time.Second, cfg.Client.Timeout)
	assert.Equal(t, 10, cfg.Client.PageSize)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.VerboseLogging())
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)

	assert.Equal(t, ivysilani.DefaultUserAgent, cfg.Client.UserAgent)
	assert.Equal(t, ivysilani.DefaultTimeout, cfg.Client.Timeout)
	assert.Equal(t, ivysilani.DefaultImageWidth, cfg.Client.ImageWidth)
	assert.Equal(t, ivysilani.DefaultPageSize, cfg.Client.PageSize)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.VerboseLogging())
	assert.Equal(t, Default(), cfg)
}

func TestLoad_EnvSubstitution(t *testing.T) {
	t.Setenv("IVYSILANI_TEST_UA", "TestAgent/1.0")
	cfg, err := Load(writeConfig(t, `
[client]
user_agent = "${IVYSILANI_TEST_UA}"
`))
	require.NoError(t, err)
	assert.Equal(t, "TestAgent/1.0", cfg.Client.UserAgent)
}

func TestLoad_MissingEnvVar(t *testing.T) {
	require.NoError(t, os.Unsetenv("IVYSILANI_MISSING"))
	path := writeConfig(t, `
[client]
user_agent = "${IVYSILANI_MISSING}"
web_base_url = "${IVYSILANI_MISSING}"
`)

	_, err := Load(path)
	require.Error(t, err)

	var cfgErr *Error
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, []string{"IVYSILANI_MISSING"}, cfgErr.Missing)
	assert.Equal(t, path, cfgErr.Path)
	assert.Contains(t, err.Error(), "IVYSILANI_MISSING")
}

func TestLoad_ValidationError(t *testing.T) {
	_, err := Load(writeConfig(t, `
[log]
level = "loud"
`))
	require.Error(t, err)

	var cfgErr *Error
	require.True(t, errors.As(err, &cfgErr))
	require.Len(t, cfgErr.Errors, 1)
	assert.Contains(t, cfgErr.Errors[0], "log.level")
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config")

	_, err = Load(writeConfig(t, "[client\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestLoadOrDefault(t *testing.T) {
	t.Setenv(EnvVar, "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, path, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, Default(), cfg)

	explicit := writeConfig(t, "[client]\npage_size = 5\n")
	cfg, path, err = LoadOrDefault(explicit)
	require.NoError(t, err)
	assert.Equal(t, explicit, path)
	assert.Equal(t, 5, cfg.Client.PageSize)

	t.Setenv(EnvVar, "/nonexistent/config.toml")
	_, _, err = LoadOrDefault("")
	require.Error(t, err)
}

func TestClientOptions(t *testing.T) {
	cfg := Default()
	cfg.Client.PageSize = 7
	assert.Len(t, cfg.ClientOptions(nil), 5)

	cfg.Client.WebBaseURL = "http://localhost:1"
	cfg.Client.APIBaseURL = "http://localhost:2"
	cfg.Client.RateLimit = 2.5
	opts := cfg.ClientOptions(nil)
	assert.Len(t, opts, 8)
	assert.NotNil(t, ivysilani.New(opts...))
}

func TestSubstituteEnvVars(t *testing.T) {
	t.Setenv("IVY_A", "a")
	require.NoError(t, os.Unsetenv("IVY_B"))

	out, missing := substituteEnvVars(`x = "${IVY_A}" y = "${IVY_B}" z = "${IVY_B}"`)
	assert.Equal(t, `x = "a" y = "${IVY_B}" z = "${IVY_B}"`, out)
	assert.Equal(t, []string{"IVY_B"}, missing)
}
