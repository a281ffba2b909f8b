// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Import struct {
		AutoDetectInvestments bool   `mapstructure:"auto_detect_investments" yaml:"auto_detect_investments"`
		IgnoreTransfers       bool   `mapstructure:"ignore_transfers" yaml:"ignore_transfers"`
		DefaultPaymentMethod  string `mapstructure:"default_payment_method" yaml:"default_payment_method"`
	} `mapstructure:"import" yaml:"import"`

	Categories struct {
		File string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"categories" yaml:"categories"`

	Supabase struct {
		URL         string `mapstructure:"url" yaml:"url"`
		AnonKey     string `mapstructure:"anon_key" yaml:"-"`
		AccessToken string `mapstructure:"access_token" yaml:"-"` // Never serialize the token
	} `mapstructure:"supabase" yaml:"supabase"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading
func InitializeConfig() (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.extrato")
	v.AddConfigPath(".extrato")
	v.AddConfigPath(".")

	// 3. Environment variables
	v.SetEnvPrefix("EXTRATO")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
		// Config file not found or invalid is OK, we'll use defaults and env vars
	}

	// 5. Credentials always come from the environment, never the file
	if err := v.BindEnv("supabase.anon_key", "EXTRATO_ANON_KEY"); err != nil {
		fmt.Printf("Warning: failed to bind EXTRATO_ANON_KEY environment variable: %v\n", err)
	}
	if err := v.BindEnv("supabase.access_token", "EXTRATO_ACCESS_TOKEN"); err != nil {
		fmt.Printf("Warning: failed to bind EXTRATO_ACCESS_TOKEN environment variable: %v\n", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 6. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// Import defaults
	v.SetDefault("import.auto_detect_investments", true)
	v.SetDefault("import.ignore_transfers", false)
	v.SetDefault("import.default_payment_method", "debit")

	// Categories defaults
	v.SetDefault("categories.file", "")

	// Supabase defaults
	v.SetDefault("supabase.url", "")
	v.SetDefault("supabase.anon_key", "")
	v.SetDefault("supabase.access_token", "")
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	switch config.Import.DefaultPaymentMethod {
	case "debit", "credit", "pix", "cash":
	default:
		return fmt.Errorf("invalid import.default_payment_method: %s", config.Import.DefaultPaymentMethod)
	}

	return nil
}

// ConfigureLoggingFromConfig configures logging based on the Config struct
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
