package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func baseEnv() map[string]string {
	return map[string]string{
		"ZESTY_INSTANCE_ZUID": "8-instance",
		"ZESTY_BIN_ZUID":      "1-bin",
		"ZESTY_MODEL_ZUID":    "6-model",
		"ZESTY_USER_ZUID":     "5-user",
		"ZESTY_ACCESS_TOKEN":  "token-abc",
	}
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(envMap(baseEnv()))
	require.NoError(t, err)

	assert.Equal(t, AuthToken, cfg.Auth.Mode)
	assert.Equal(t, "token-abc", cfg.Auth.AccessToken)
	assert.Equal(t, DefaultAuthURL, cfg.Zesty.AuthURL)
	assert.Equal(t, DefaultMediaURL, cfg.Zesty.MediaURL)
	assert.Equal(t, "https://8-instance.api.zesty.io/v1", cfg.Zesty.InstanceURL)
	assert.Equal(t, 60*time.Second, cfg.Capture.Interval)
	assert.Equal(t, "raspistill", cfg.Capture.Command)
	assert.Equal(t, []string{"--encoding", "jpg", "--output"}, cfg.Capture.Args)
	assert.Equal(t, ".", cfg.Capture.Dir)
	assert.Equal(t, 2*time.Minute, cfg.HTTPTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestFromEnvOverrides(t *testing.T) {
	env := baseEnv()
	env["CAPTURE_INTERVAL"] = "5s"
	env["CAPTURE_COMMAND"] = "libcamera-still"
	env["CAPTURE_ARGS"] = "  -n  -o "
	env["CAPTURE_DIR"] = "/tmp/garden"
	env["HTTP_TIMEOUT"] = "30s"
	env["ZESTY_INSTANCE_URL"] = "http://localhost:9000/v1"
	env["LOG_LEVEL"] = "debug"

	cfg, err := FromEnv(envMap(env))
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, cfg.Capture.Interval)
	assert.Equal(t, "libcamera-still", cfg.Capture.Command)
	assert.Equal(t, []string{"-n", "-o"}, cfg.Capture.Args)
	assert.Equal(t, "/tmp/garden", cfg.Capture.Dir)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "http://localhost:9000/v1", cfg.Zesty.InstanceURL)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestFromEnvLoginPreferredOverToken(t *testing.T) {
	env := baseEnv()
	env["ZESTY_USER_EMAIL"] = "gardener@example.com"
	env["ZESTY_USER_PASSWORD"] = "hunter2"

	cfg, err := FromEnv(envMap(env))
	require.NoError(t, err)
	assert.Equal(t, AuthLogin, cfg.Auth.Mode)
	assert.Equal(t, "gardener@example.com", cfg.Auth.Email)
}

func TestFromEnvHalfLoginIsAnError(t *testing.T) {
	env := baseEnv()
	delete(env, "ZESTY_ACCESS_TOKEN")
	env["ZESTY_USER_EMAIL"] = "gardener@example.com"

	_, err := FromEnv(envMap(env))
	assert.ErrorContains(t, err, "must be set together")
}

func TestFromEnvReportsAllProblems(t *testing.T) {
	_, err := FromEnv(envMap(map[string]string{
		"CAPTURE_INTERVAL": "soon",
		"HTTP_TIMEOUT":     "-1s",
	}))
	require.Error(t, err)

	msg := err.Error()
	for _, want := range []string{
		"ZESTY_INSTANCE_ZUID is required",
		"ZESTY_BIN_ZUID is required",
		"ZESTY_MODEL_ZUID is required",
		"ZESTY_USER_ZUID is required",
		"ZESTY_ACCESS_TOKEN",
		"CAPTURE_INTERVAL",
		"HTTP_TIMEOUT must be > 0",
	} {
		assert.Contains(t, msg, want)
	}
}

func TestSetInterval(t *testing.T) {
	cfg, err := FromEnv(envMap(baseEnv()))
	require.NoError(t, err)

	require.NoError(t, cfg.SetInterval(5*time.Second))
	assert.Equal(t, 5*time.Second, cfg.Capture.Interval)
	assert.Error(t, cfg.SetInterval(0))
}

func TestLoadReadsEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "ZESTY_INSTANCE_ZUID=8-file\nZESTY_BIN_ZUID=1-file\nZESTY_MODEL_ZUID=6-file\nZESTY_USER_ZUID=5-file\nZESTY_ACCESS_TOKEN=file-token\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	// Already-set variables take precedence over the file.
	t.Setenv("ZESTY_BIN_ZUID", "1-env")
	for _, k := range []string{"ZESTY_INSTANCE_ZUID", "ZESTY_MODEL_ZUID", "ZESTY_USER_ZUID", "ZESTY_ACCESS_TOKEN"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "8-file", cfg.Zesty.InstanceZUID)
	assert.Equal(t, "1-env", cfg.Zesty.BinZUID)
	assert.Equal(t, "file-token", cfg.Auth.AccessToken)
}

func TestLoadMissingEnvFileIsFine(t *testing.T) {
	for k, v := range baseEnv() {
		t.Setenv(k, v)
	}

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.env"))
	require.NoError(t, err)
	assert.Equal(t, "8-instance", cfg.Zesty.InstanceZUID)
}
