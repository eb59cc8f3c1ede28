package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnv_WriterDefaults(t *testing.T) {
	t.Setenv("TABLENAME", "users-table")

	cfg, err := NewWriterConfig()
	require.NoError(t, err)

	assert.Equal(t, "users-table", cfg.TableName)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.True(t, cfg.Logging.Enabled)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.False(t, cfg.Metrics.Datadog.Enabled)
	assert.Equal(t, "guest.", cfg.Metrics.Datadog.Namespace)
}

func TestLoadEnv_OverridesAndTypes(t *testing.T) {
	t.Setenv("TABLENAME", "t")
	t.Setenv("PREVIEW_API_KEY", "da2-key")
	t.Setenv("PREVIEW_PORT", "9090")
	t.Setenv("PREVIEW_TIMEOUT", "250ms")
	t.Setenv("LOG_ENABLED", "FALSE")

	cfg := &PreviewConfig{Logging: LoggingConf{Enabled: true}}
	require.NoError(t, LoadEnv(cfg))

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "/graphql", cfg.Route)
	assert.Equal(t, 250*time.Millisecond, cfg.Timeout)
	assert.False(t, cfg.Logging.Enabled)
	assert.Equal(t, "da2-key", cfg.APIKey)
}

func TestLoadEnv_KeepsYAMLValues(t *testing.T) {
	cfg := Default()
	cfg.Logging.Level = "debug"

	require.NoError(t, LoadEnv(cfg))

	// envDefault não sobrescreve o que já veio preenchido
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, DefaultStackID, cfg.Stack.ID)

	t.Setenv("STACK_ID", "Preview")
	t.Setenv("GUEST_FUNCTION_RUNTIME", RuntimeGo)
	require.NoError(t, LoadEnv(cfg))
	assert.Equal(t, "Preview", cfg.Stack.ID)
	assert.Equal(t, RuntimeGo, cfg.Function.Runtime)
}

func TestLoadEnv_StackEnvironmentIsExplicit(t *testing.T) {
	// o CLI do CDK sempre exporta estas variáveis
	t.Setenv("CDK_DEFAULT_ACCOUNT", "111111111111")
	t.Setenv("CDK_DEFAULT_REGION", "us-east-1")

	cfg := Default()
	require.NoError(t, LoadEnv(cfg))
	assert.Empty(t, cfg.Stack.Account)
	assert.Empty(t, cfg.Stack.Region)

	t.Setenv("GUEST_STACK_ACCOUNT", "222222222222")
	t.Setenv("GUEST_STACK_REGION", "sa-east-1")
	require.NoError(t, LoadEnv(cfg))
	assert.Equal(t, "222222222222", cfg.Stack.Account)
	assert.Equal(t, "sa-east-1", cfg.Stack.Region)
}

func TestAuthConf_KeyExpiry(t *testing.T) {
	assert.Equal(t, 30*24*time.Hour, Default().API.Authorization.KeyExpiry())
}

func TestLoadEnv_Errors(t *testing.T) {
	t.Run("Not A Pointer", func(t *testing.T) {
		err := LoadEnv(WriterConfig{})
		var invalid *InvalidConfigError
		assert.True(t, errors.As(err, &invalid))
	})

	t.Run("Nil", func(t *testing.T) {
		err := LoadEnv(nil)
		assert.Error(t, err)
	})

	t.Run("Bad Conversion", func(t *testing.T) {
		t.Setenv("PREVIEW_PORT", "abc")
		err := LoadEnv(&PreviewConfig{})

		var fieldErr *FieldError
		require.True(t, errors.As(err, &fieldErr))
		assert.Equal(t, "PREVIEW_PORT", fieldErr.EnvVar)
		assert.Equal(t, "Port", fieldErr.FieldName)
	})

	t.Run("Unsupported Type", func(t *testing.T) {
		type withSlice struct {
			Hosts []string `env:"HOSTS"`
		}
		t.Setenv("HOSTS", "a,b")
		err := LoadEnv(&withSlice{})

		var unsupported *UnsupportedTypeError
		assert.True(t, errors.As(err, &unsupported))
	})
}

func TestApplyRuntimeProfile(t *testing.T) {
	cfg := Default()
	cfg.ApplyRuntimeProfile()
	assert.Equal(t, DefaultHandler, cfg.Function.Handler)
	assert.Equal(t, DefaultCode, cfg.Function.Code)

	cfg.Function.Runtime = RuntimeGo
	cfg.ApplyRuntimeProfile()
	assert.Equal(t, GoHandler, cfg.Function.Handler)
	assert.Equal(t, GoCode, cfg.Function.Code)
	assert.Equal(t, GoMemoryMiB, cfg.Function.MemorySize)
}

func TestStackConfig_Path(t *testing.T) {
	cfg := Default()
	cfg.Stack.BaseDir = "/repo"
	assert.Equal(t, "/repo/assets/schema.graphql", cfg.Path(cfg.API.Schema))
	assert.Equal(t, "/abs/file", cfg.Path("/abs/file"))
}

func TestNewWriterConfig_MissingTable(t *testing.T) {
	t.Setenv("TABLENAME", "")
	_, err := NewWriterConfig()
	assert.Error(t, err)
}
