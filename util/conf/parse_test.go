package conf

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type testNested struct {
	Status  int           `conf:"status"`
	Body    string        `conf:"body"`
	Timeout time.Duration `conf:"timeout"`
}

type testConfig struct {
	LogLevel string     `conf:"log_level"`
	Nested   testNested `conf:"nested"`
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse[testConfig](ParseOptions{
		Defaults: MergeDefaults("nested", map[string]any{
			"status": 200,
			"body":   "hello",
		}),
		EnvPrefix: "ROUTESHIM_TEST_",
		Log:       zaptest.NewLogger(t),
	})
	require.NoError(t, err)

	assert.Equal(t, 200, cfg.Nested.Status)
	assert.Equal(t, "hello", cfg.Nested.Body)
}

func TestParse_Precedence(t *testing.T) {
	dir := t.TempDir()

	jsonFile := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(jsonFile, []byte(`{
		"log_level": "debug",
		"nested": {"status": 201, "body": "from json", "timeout": "5s"}
	}`), 0o600))

	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte(
		"ROUTESHIM_TEST_NESTED__BODY=from env file\nROUTESHIM_TEST_NESTED__STATUS=202\n",
	), 0o600))

	t.Setenv("ROUTESHIM_TEST_NESTED__STATUS", "203")

	cfg, err := Parse[testConfig](ParseOptions{
		Defaults:    DefaultConfig{"log_level": "info"},
		EnvPrefix:   "ROUTESHIM_TEST_",
		FileName:    jsonFile,
		EnvFileName: envFile,
		Log:         zaptest.NewLogger(t),
	})
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "from env file", cfg.Nested.Body)
	assert.Equal(t, 203, cfg.Nested.Status)
	assert.Equal(t, 5*time.Second, cfg.Nested.Timeout)
}

func TestParse_EnvMap(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte(
		"ROUTESHIM_TEST_BODY=from env file\nROUTESHIM_TEST_NESTED__STATUS=202\n",
	), 0o600))

	t.Setenv("ROUTESHIM_TEST_TIMEOUT", "3s")

	cfg, err := Parse[testConfig](ParseOptions{
		EnvPrefix: "ROUTESHIM_TEST_",
		EnvMap: map[string]string{
			"ROUTESHIM_TEST_BODY":    "nested.body",
			"ROUTESHIM_TEST_TIMEOUT": "nested.timeout",
		},
		EnvFileName: envFile,
		Log:         zaptest.NewLogger(t),
	})
	require.NoError(t, err)

	assert.Equal(t, "from env file", cfg.Nested.Body)
	assert.Equal(t, 202, cfg.Nested.Status)
	assert.Equal(t, 3*time.Second, cfg.Nested.Timeout)
}

func TestParse_MissingFile(t *testing.T) {
	_, err := Parse[testConfig](ParseOptions{
		FileName: filepath.Join(t.TempDir(), "missing.json"),
	})

	assert.Error(t, err)
}

func TestTransformEnv(t *testing.T) {
	tests := []struct {
		env, prefix, key string
	}{
		{"LOG_LEVEL", "", "log_level"},
		{"ROUTER__STATUS", "", "router.status"},
		{"APP_ROUTER__BODY", "APP_", "router.body"},
		{"APP_HTTP__SHUTDOWN_TIMEOUT", "APP_", "http.shutdown_timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			assert.Equal(t, tt.key, transformEnv(tt.env, tt.prefix))
		})
	}
}

func TestMergeDefaults(t *testing.T) {
	merged := MergeDefaults("ns", map[string]int{"a": 1}, map[string]int{"b": 2})

	assert.Equal(t, map[string]int{"ns.a": 1, "ns.b": 2}, merged)
}
