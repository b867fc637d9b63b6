package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the application's configuration.
type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`
	Auth struct {
		Secret          string `yaml:"secret"`
		TokenTTLSeconds int64  `yaml:"token_ttl_seconds"`
	} `yaml:"auth"`
	Uploads struct {
		Dir        string `yaml:"dir"`
		RandomKeys bool   `yaml:"random_keys"`
	} `yaml:"uploads"`
	SMTP struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		To       string `yaml:"to"`
	} `yaml:"smtp"`
}

// LoadConfig reads configuration from the specified YAML file.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	// Set defaults
	if config.Server.Port == "" {
		config.Server.Port = ":8080"
	}

	if config.Database.Path == "" {
		config.Database.Path = "./harmony.db"
	}

	if config.Auth.TokenTTLSeconds == 0 {
		config.Auth.TokenTTLSeconds = 3600
	}

	if config.Uploads.Dir == "" {
		config.Uploads.Dir = "./static/uploads"
	}

	// Expand environment variables in secrets
	config.Auth.Secret = os.ExpandEnv(config.Auth.Secret)
	config.SMTP.Password = os.ExpandEnv(config.SMTP.Password)

	return config, nil
}
