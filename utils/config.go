package utils

import (
	"fmt"
	"log"

	"github.com/spf13/viper"
)

var (
	EnvPath string = "."
)

type Config struct {
	Env                string `mapstructure:"ENV"`
	ServerPort         int    `mapstructure:"SERVER_PORT"`
	SigningKey         string `mapstructure:"SIGNING_KEY"`
	BlindPayBaseURL    string `mapstructure:"BLINDPAY_BASE_URL"`
	BlindPayAPIKey     string `mapstructure:"BLINDPAY_API_KEY"`
	BlindPayInstanceID string `mapstructure:"BLINDPAY_INSTANCE_ID"`
	WalletRelayURL     string `mapstructure:"WALLET_RELAY_URL"`
	SessionTTLMinutes  int    `mapstructure:"SESSION_TTL_MINUTES"`
	Papertrail         string `mapstructure:"PAPERTRAIL"`
	PapertrailAppName  string `mapstructure:"PAPERTRAIL_APP_NAME"`
}

func LoadConfig(path string) (*Config, error) {
	// Validate that the path is not empty
	if path == "" {
		path = "."
	}

	// Create a new Viper instance to avoid global state
	v := viper.New()

	// Disable environment variable prefix
	v.SetEnvPrefix("")
	v.AutomaticEnv()

	// Configure config file
	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		// Log the error, but don't fail entirely
		log.Printf("Warning: Unable to read config file: %v", err)
	}

	// Create config struct
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func validateConfig(config *Config) error {
	if config.ServerPort == 0 {
		return fmt.Errorf("server port must be specified")
	}

	if config.SigningKey == "" {
		return fmt.Errorf("embed-token signing key must be provided")
	}

	if config.BlindPayBaseURL == "" || config.BlindPayAPIKey == "" || config.BlindPayInstanceID == "" {
		return fmt.Errorf("blindpay credentials must be provided")
	}

	// Sessions live for the widget's mounted lifetime; default to an hour
	if config.SessionTTLMinutes == 0 {
		config.SessionTTLMinutes = 60
	}

	return nil
}

// Optional: Masking sensitive information for logging
func (c *Config) Redact() Config {
	redacted := *c
	redacted.SigningKey = "****"
	redacted.BlindPayAPIKey = "****"
	return redacted
}
