// Package config loads application configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envFile = ".env"

// envBindings maps configuration keys to the environment variables overriding them.
var envBindings = map[string][]string{
	"github.url":    {"GH_API_URL"},
	"github.token":  {"GH_API_TOKEN", "GITHUB_TOKEN"},
	"slack.token":   {"SLACK_BOT_TOKEN"},
	"slack.channel": {"SLACK_CHANNEL"},
	"slack.api_url": {"SLACK_API_URL"},
}

// Load reads the YAML file at path, or debriefr.yaml from the working
// directory and ~/.config/debriefr when path is empty, and applies
// environment overrides. A missing default file is not an error.
func Load(path string) (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("debriefr")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "debriefr"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	bindEnvs(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// loadEnvFile exports the variables of .env that are not already set.
func loadEnvFile() {
	envMap, err := godotenv.Read(envFile)
	if err != nil {
		return
	}
	for k, val := range envMap {
		if _, exists := os.LookupEnv(k); !exists {
			_ = os.Setenv(k, val)
		}
	}
}

func bindEnvs(v *viper.Viper) {
	for key, names := range envBindings {
		_ = v.BindEnv(append([]string{key}, names...)...)
	}
}
