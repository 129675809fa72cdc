package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the munbot API configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Data     DataConfig     `yaml:"data"`
	Model    ModelConfig    `yaml:"model"`
	Notify   NotifyConfig   `yaml:"notify"`
	Reminder ReminderConfig `yaml:"reminder"`
	Auth     AuthConfig     `yaml:"auth"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	DB               int      `yaml:"db"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// DataConfig locates the document catalog, its resolution rules, and the
// question corpus on disk.
type DataConfig struct {
	CatalogPath string `yaml:"catalog_path"`
	RulesPath   string `yaml:"rules_path"`
	CorpusDir   string `yaml:"corpus_dir"`
	SlotsPath   string `yaml:"slots_path"`  // empty disables slot seeding
	EntityType  string `yaml:"entity_type"` // NLU entity tag carrying action keywords
}

// ModelConfig holds the fallback language model settings. An empty APIKey and
// BaseURL disables the fallback entirely.
type ModelConfig struct {
	APIKey      string  `yaml:"api_key"`
	BaseURL     string  `yaml:"base_url"`
	Model       string  `yaml:"model"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float32 `yaml:"temperature"`
	System      string  `yaml:"system_prompt"`
	Threshold   float64 `yaml:"corpus_threshold"` // min similarity to answer from corpus
}

// NotifyConfig holds reminder delivery settings.
type NotifyConfig struct {
	EmailFrom       string `yaml:"email_from"`
	WhatsappBaseURL string `yaml:"whatsapp_base_url"`
	WhatsappPhoneID string `yaml:"whatsapp_phone_id"`
	WhatsappToken   string `yaml:"whatsapp_token"`
	WhatsappTimeout int    `yaml:"whatsapp_timeout_sec"`
}

// ReminderConfig holds the daily reminder schedule.
type ReminderConfig struct {
	Enabled bool `yaml:"enabled"`
	Hour    int  `yaml:"hour"` // local hour of day, 0-23
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Data.CatalogPath == "" {
		c.Data.CatalogPath = "data/catalog.json"
	}
	if c.Data.RulesPath == "" {
		c.Data.RulesPath = "data/rules.yaml"
	}
	if c.Data.CorpusDir == "" {
		c.Data.CorpusDir = "data/corpus"
	}
	if c.Data.SlotsPath == "" {
		c.Data.SlotsPath = "data/appointments.json"
	}
	if c.Data.EntityType == "" {
		c.Data.EntityType = "accion"
	}
	if c.Model.Model == "" {
		c.Model.Model = "gpt-4o-mini"
	}
	if c.Model.MaxTokens <= 0 {
		c.Model.MaxTokens = 256
	}
	if c.Model.Threshold <= 0 {
		c.Model.Threshold = 0.2
	}
	if c.Notify.WhatsappTimeout <= 0 {
		c.Notify.WhatsappTimeout = 10
	}
	if c.Reminder.Hour <= 0 {
		c.Reminder.Hour = 9
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if len(c.Database.Addrs) == 0 {
		return fmt.Errorf("database.addrs is required")
	}
	if c.Reminder.Hour < 0 || c.Reminder.Hour > 23 {
		return fmt.Errorf("reminder.hour must be between 0 and 23, got %d", c.Reminder.Hour)
	}
	if c.Reminder.Enabled && c.Notify.WhatsappPhoneID != "" && c.Notify.WhatsappToken == "" {
		return fmt.Errorf("notify.whatsapp_token is required when notify.whatsapp_phone_id is set")
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
