package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Version is the SDK version reported in the User-Agent header.
const Version = "1.0.0"

// Config holds the client-side settings for talking to the shortener service.
type Config struct {
	// BaseURL is the service endpoint, without a trailing slash.
	BaseURL string `mapstructure:"base_url"`
	// TimeoutSeconds bounds each request through the underlying HTTP client.
	// Zero means no client-side deadline.
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
	// UserAgent is sent with every request.
	UserAgent string `mapstructure:"user_agent"`
}

// Default returns the configuration for the public spoo.me endpoint.
// It does not touch the filesystem or the environment.
func Default() Config {
	return Config{
		BaseURL:        "https://spoo.me",
		TimeoutSeconds: 30,
		UserAgent:      "spoo-go/" + Version,
	}
}

// LoadConfig reads config.yaml from the working directory, applying defaults
// and SPOO_* environment overrides (e.g. SPOO_BASE_URL). A missing config
// file is not an error; the defaults are returned.
func LoadConfig() (Config, error) {
	var config Config

	v := viper.New()
	v.AddConfigPath(".")
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix("SPOO")
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return config, fmt.Errorf("reading config file: %w", err)
		}
	}

	if err := v.Unmarshal(&config); err != nil {
		return config, fmt.Errorf("decoding config: %w", err)
	}

	return config, nil
}

// MustLoadConfig is LoadConfig with a panic on failure, for program setup.
func MustLoadConfig() Config {
	config, err := LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}
	return config
}

func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("base_url", defaults.BaseURL)
	v.SetDefault("timeout_seconds", defaults.TimeoutSeconds)
	v.SetDefault("user_agent", defaults.UserAgent)
}
