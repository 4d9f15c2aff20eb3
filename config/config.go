package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	CONFIG_PATH = "./res/config.yaml"
)

// ServiceConfig holds the configuration for the service.
type ServiceConfig struct {
	ServiceName string          `yaml:"service_name" validate:"required"`
	LogLevel    string          `yaml:"loglevel" validate:"required"`
	Host        string          `yaml:"host" validate:"required"`
	Port        string          `yaml:"port" validate:"required"`
	API         APIConfig       `yaml:"api" validate:"required"`
	Session     SessionConfig   `yaml:"session" validate:"required"`
	RateLimit   RateLimitConfig `yaml:"rate_limit" validate:"required"`
}

// APIConfig points the sign-up page at the users backend.
type APIConfig struct {
	BaseURL string        `yaml:"base_url" validate:"required,url"`
	Timeout time.Duration `yaml:"timeout" validate:"gte=0"`
}

type SessionConfig struct {
	TTL           time.Duration `yaml:"ttl" validate:"required,gt=0"`
	SweepInterval time.Duration `yaml:"sweep_interval" validate:"required,gt=0"`
}

// RateLimitConfig limits how often the submit route may be hit across all sessions.
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" validate:"required,gt=0"`
	Burst             int     `yaml:"burst" validate:"required,gt=0"`
}

// ReadLocalConfig reads the service configuration from a YAML file at the specified path.
// It unmarshals the YAML content into a ServiceConfig struct and returns it.
// If there is an error reading the file or unmarshaling the content, it returns an error.
func ReadLocalConfig(configPath string) (*ServiceConfig, error) {
	config := &ServiceConfig{}

	yamlFile, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	err = yaml.Unmarshal(yamlFile, config)
	if err != nil {
		return nil, err
	}

	return config, nil
}
