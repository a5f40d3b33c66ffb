package appconfig

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"text/template"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v2"
)

// Config holds all configuration details
type Config struct {
	Host     string         `yaml:"host"`
	BasePath string         `yaml:"basePath"`
	DocsPath string         `yaml:"docsPath"`
	Database DatabaseConfig `yaml:"database"`
	Pulsar   PulsarConfig   `yaml:"pulsar"`
	Token    TokenConfig    `yaml:"token"`
}

// DatabaseConfig defines the database connection details
type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	Source string `yaml:"source"`
}

// PulsarConfig defines the messaging system connection details. DLQTopic and
// MaxRedeliveries are optional; the consumer falls back to its defaults.
type PulsarConfig struct {
	URL             string `yaml:"url"`
	TopicProducer   string `yaml:"topicProducer"`
	TopicConsumer   string `yaml:"topicConsumer"`
	Subscription    string `yaml:"subscription"`
	DLQTopic        string `yaml:"dlqTopic"`
	MaxRedeliveries uint32 `yaml:"maxRedeliveries"`
}

// TokenConfig defines token issuance settings. Expiry and CleanupInterval
// are Go durations, e.g. "2h" and "60s".
type TokenConfig struct {
	Secret          string   `yaml:"secret"`
	Expiry          Duration `yaml:"expiry"`
	CleanupInterval Duration `yaml:"cleanupInterval"`
}

// Duration is a time.Duration that unmarshals from a YAML string like "90s".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// LoadConfig loads and parses the configuration from a given file path
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		err := errors.New("config file path is required")
		log.Error().Err(err).Msg("config file not provided")
		return nil, err
	}

	// Parse the template file
	tmpl, err := template.ParseFiles(path)
	if err != nil {
		log.Error().Err(err).Msg("error parsing config file template")
		return nil, err
	}

	// Create a map of environment variables
	envVars := loadEnvVars()

	// Execute the template with environment variables
	var buf bytes.Buffer
	err = tmpl.Execute(&buf, envVars)
	if err != nil {
		log.Error().Err(err).Msg("error executing config file template")
		return nil, err
	}

	// Load and unmarshal the YAML
	var config Config
	if err := yaml.Unmarshal(buf.Bytes(), &config); err != nil {
		log.Error().Err(err).Msg("failed to unmarshal config YAML")
		return nil, err
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Token.Expiry <= 0 {
		c.Token.Expiry = Duration(2 * time.Hour)
	}
	if c.Token.CleanupInterval <= 0 {
		c.Token.CleanupInterval = Duration(time.Minute)
	}
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
}

// loadEnvVars loads environment variables into a map
func loadEnvVars() map[string]string {
	envVars := make(map[string]string)
	for _, env := range os.Environ() {
		kv := strings.SplitN(env, "=", 2)
		if len(kv) == 2 {
			envVars[kv[0]] = kv[1]
		}
	}
	return envVars
}
