package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	require.NoError(t, InitConfig())
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8.17.3", cfg.Stack.Version)
	assert.Equal(t, "elastic-stack", cfg.Stack.ProjectName)
	assert.Equal(t, "deploy/docker-compose.yml", cfg.Stack.ComposeFile)
	assert.Empty(t, cfg.Stack.HostIP)
	assert.Equal(t, 9200, cfg.Elastic.Port)
	assert.Equal(t, "elastic", cfg.Elastic.Username)
	assert.Equal(t, "changeme", cfg.Elastic.Password)
	assert.Equal(t, 5601, cfg.Kibana.Port)
	assert.GreaterOrEqual(t, len(cfg.Kibana.EncryptionKey), 32)
	assert.Equal(t, 30, cfg.Health.MaxAttempts)
	assert.Equal(t, 10, cfg.Health.IntervalSeconds)
	assert.Equal(t, "INFO", cfg.Logging.Level)
}

func TestLoadEnvOverride(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("STACK_VERSION", "9.1.0")
	t.Setenv("ELASTIC_PASSWORD", "s3cret")
	t.Setenv("HEALTH_MAX_ATTEMPTS", "5")

	require.NoError(t, InitConfig())
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9.1.0", cfg.Stack.Version)
	assert.Equal(t, "s3cret", cfg.Elastic.Password)
	assert.Equal(t, 5, cfg.Health.MaxAttempts)
}
