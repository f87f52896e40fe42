package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/dyluth/slate/internal/instance"
	"gopkg.in/yaml.v3"
)

// Defaults applied by Load when a field is omitted.
const (
	DefaultInstance       = "default"
	DefaultHTTPAddr       = ":8080"
	DefaultRedisURL       = "redis://localhost:6379"
	DefaultMaxTabs        = 10
	DefaultPersistTimeout = 5 * time.Second
	DefaultSessionTTL     = 12 * time.Hour
)

// SlateConfig represents the top-level slate.yml configuration
type SlateConfig struct {
	Version    string           `yaml:"version"`
	Instance   string           `yaml:"instance"` // Namespace for all Redis keys
	Server     ServerConfig     `yaml:"server"`
	Redis      RedisConfig      `yaml:"redis"`
	Auth       AuthConfig       `yaml:"auth"`
	App        AppConfig        `yaml:"app"`
	EdgeConfig EdgeConfigConfig `yaml:"edge_config"`
}

// ServerConfig holds HTTP listener settings
type ServerConfig struct {
	HTTPAddr string `yaml:"http_addr"`
}

// RedisConfig holds the key-value store connection
type RedisConfig struct {
	URL string `yaml:"url"` // redis://[:password@]host:port[/db]
}

// AuthConfig holds the single login accepted by the workspace.
// The password is compared verbatim unless password_hash (bcrypt) is set.
type AuthConfig struct {
	Username      string        `yaml:"username"`
	Password      string        `yaml:"password,omitempty"`
	PasswordHash  string        `yaml:"password_hash,omitempty"`
	SessionSecret string        `yaml:"session_secret,omitempty"` // Random per process if empty
	SessionTTL    time.Duration `yaml:"-"`
	SessionTTLRaw string        `yaml:"session_ttl,omitempty"`
}

// AppConfig holds workspace limits
type AppConfig struct {
	MaxTabs           int           `yaml:"max_tabs,omitempty"`
	PersistTimeout    time.Duration `yaml:"-"`
	PersistTimeoutRaw string        `yaml:"persist_timeout,omitempty"`
}

// EdgeConfigConfig selects the config / feature-flag source.
// With id and token set the remote REST API is used; otherwise items come
// from file (a YAML mapping) or the inline static mapping.
type EdgeConfigConfig struct {
	BaseURL string         `yaml:"base_url,omitempty"`
	ID      string         `yaml:"id,omitempty"`
	Token   string         `yaml:"token,omitempty"`
	File    string         `yaml:"file,omitempty"`
	Static  map[string]any `yaml:"static,omitempty"`
}

// Remote reports whether the remote Edge Config API is configured.
func (e *EdgeConfigConfig) Remote() bool {
	return e.ID != ""
}

// envOverrides maps environment variables onto config fields. Non-empty
// variables win over the file.
var envOverrides = []struct {
	name  string
	field func(c *SlateConfig) *string
}{
	{"SLATE_INSTANCE_NAME", func(c *SlateConfig) *string { return &c.Instance }},
	{"SLATE_HTTP_ADDR", func(c *SlateConfig) *string { return &c.Server.HTTPAddr }},
	{"REDIS_URL", func(c *SlateConfig) *string { return &c.Redis.URL }},
	{"SLATE_USERNAME", func(c *SlateConfig) *string { return &c.Auth.Username }},
	{"SLATE_PASSWORD", func(c *SlateConfig) *string { return &c.Auth.Password }},
	{"SLATE_SESSION_SECRET", func(c *SlateConfig) *string { return &c.Auth.SessionSecret }},
	{"EDGE_CONFIG_ID", func(c *SlateConfig) *string { return &c.EdgeConfig.ID }},
	{"EDGE_CONFIG_TOKEN", func(c *SlateConfig) *string { return &c.EdgeConfig.Token }},
}

// Load reads slate.yml from path, expands ${VAR} references, applies
// environment overrides and defaults, then validates the result.
func Load(path string) (*SlateConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return Parse(data)
}

// Parse builds a validated configuration from raw YAML.
func Parse(data []byte) (*SlateConfig, error) {
	var config SlateConfig
	if err := yaml.Unmarshal([]byte(expandEnvVars(string(data))), &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	config.applyEnv()
	config.applyDefaults()

	if err := config.parseDurations(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// CheckSyntax reports whether data decodes as a slate.yml document without
// applying defaults or validating values.
func CheckSyntax(data []byte) error {
	var config SlateConfig
	return yaml.Unmarshal(data, &config)
}

// Validate performs strict validation on the configuration
func (c *SlateConfig) Validate() error {
	if c.Version != "1.0" {
		return fmt.Errorf("unsupported version: %s (expected: 1.0)", c.Version)
	}

	if err := instance.ValidateName(c.Instance); err != nil {
		return err
	}

	if c.Redis.URL == "" {
		return fmt.Errorf("redis.url is required")
	}

	if c.Auth.Username == "" {
		return fmt.Errorf("auth.username is required")
	}

	if c.Auth.Password == "" && c.Auth.PasswordHash == "" {
		return fmt.Errorf("auth.password or auth.password_hash is required")
	}

	if c.App.MaxTabs < 1 {
		return fmt.Errorf("app.max_tabs must be >= 1, got %d", c.App.MaxTabs)
	}

	if c.EdgeConfig.Remote() && c.EdgeConfig.Token == "" {
		return fmt.Errorf("edge_config.token is required when edge_config.id is set")
	}

	return nil
}

func (c *SlateConfig) applyEnv() {
	for _, o := range envOverrides {
		if v := os.Getenv(o.name); v != "" {
			*o.field(c) = v
		}
	}
}

func (c *SlateConfig) applyDefaults() {
	if c.Instance == "" {
		c.Instance = DefaultInstance
	}
	if c.Server.HTTPAddr == "" {
		c.Server.HTTPAddr = DefaultHTTPAddr
	}
	if c.Redis.URL == "" {
		c.Redis.URL = DefaultRedisURL
	}
	if c.App.MaxTabs == 0 {
		c.App.MaxTabs = DefaultMaxTabs
	}
	c.Auth.SessionTTL = DefaultSessionTTL
	c.App.PersistTimeout = DefaultPersistTimeout
}

// parseDurations converts the raw duration strings into time.Duration values
func (c *SlateConfig) parseDurations() error {
	if c.Auth.SessionTTLRaw != "" {
		d, err := time.ParseDuration(c.Auth.SessionTTLRaw)
		if err != nil || d <= 0 {
			return fmt.Errorf("auth.session_ttl %q must be a positive duration", c.Auth.SessionTTLRaw)
		}
		c.Auth.SessionTTL = d
	}

	if c.App.PersistTimeoutRaw != "" {
		d, err := time.ParseDuration(c.App.PersistTimeoutRaw)
		if err != nil || d <= 0 {
			return fmt.Errorf("app.persist_timeout %q must be a positive duration", c.App.PersistTimeoutRaw)
		}
		c.App.PersistTimeout = d
	}

	return nil
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR_NAME} with the variable's value (empty if unset).
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(envVarPattern.FindStringSubmatch(match)[1])
	})
}
