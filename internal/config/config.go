package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// StackConfig holds deployment-wide settings consumed by the orchestrator runtime.
type StackConfig struct {
	Version     string `mapstructure:"version"`
	ProjectName string `mapstructure:"project_name"`
	ComposeFile string `mapstructure:"compose_file"`
	HostIP      string `mapstructure:"host_ip"`
}

// ElasticConfig holds search engine connection settings.
type ElasticConfig struct {
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// KibanaConfig holds web UI settings.
type KibanaConfig struct {
	Port          int    `mapstructure:"port"`
	Password      string `mapstructure:"password"`
	EncryptionKey string `mapstructure:"encryption_key"`
}

// HealthConfig holds the health polling budget.
type HealthConfig struct {
	MaxAttempts     int `mapstructure:"max_attempts"`
	IntervalSeconds int `mapstructure:"interval_seconds"`
}

// LoggingConfig holds the logging-related configuration.
type LoggingConfig struct {
	Level string `mapstructure:"log_level"`
}

// Config is the top-level configuration struct. Immutable after Load.
type Config struct {
	Stack   StackConfig   `mapstructure:"stack"`
	Elastic ElasticConfig `mapstructure:"elastic"`
	Kibana  KibanaConfig  `mapstructure:"kibana"`
	Health  HealthConfig  `mapstructure:"health"`
	Logging LoggingConfig `mapstructure:"log"`
}

// InitConfig performs the initial configuration: setting defaults, specifying the config file, and reading it.
func InitConfig() error {
	// Set defaults for each sub-configuration.
	viper.SetDefault("stack.version", "8.17.3")
	viper.SetDefault("stack.project_name", "elastic-stack")
	viper.SetDefault("stack.compose_file", "deploy/docker-compose.yml")
	viper.SetDefault("stack.host_ip", "")
	viper.SetDefault("elastic.port", 9200)
	viper.SetDefault("elastic.username", "elastic")
	viper.SetDefault("elastic.password", "changeme")
	viper.SetDefault("kibana.port", 5601)
	viper.SetDefault("kibana.password", "changeme")
	viper.SetDefault("kibana.encryption_key", "changemechangemechangemechangeme")
	viper.SetDefault("health.max_attempts", 30)
	viper.SetDefault("health.interval_seconds", 10)
	viper.SetDefault("log.log_level", "INFO")

	// Specify the config file details.
	viper.SetConfigName("config") // Looks for config.yaml
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".") // current directory

	// Read the config file if available.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// If the file is not found, just continue with defaults and env vars.
	}

	// Enable automatic environment variable binding.
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return nil
}

// Load unmarshals the configuration into the Config struct.
func Load() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}
	return &config, nil
}
