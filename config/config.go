package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the settings shared by the web server, the CLI and the MCP server.
// Values come from an optional YAML file and are overridden by environment variables.
type Config struct {
	// Azure app registration used for the authorization-code flow
	ClientID     string `yaml:"client_id"`
	TenantID     string `yaml:"tenant_id"`
	ClientSecret string `yaml:"client_secret"`
	RedirectURI  string `yaml:"redirect_uri"`
	Scopes       []string `yaml:"scopes"`

	// Web server
	ListenAddr    string        `yaml:"listen_addr"`
	StaticDir     string        `yaml:"static_dir"`
	SessionSecret string        `yaml:"session_secret"`
	SessionTTL    time.Duration `yaml:"session_ttl"`
	SecureCookies bool          `yaml:"secure_cookies"`

	// Logging
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// Default subscription for the CLI and MCP tools
	SubscriptionID string `yaml:"subscription_id"`
}

// DefaultScopes requests ARM access plus the OpenID claims used for the display name
var DefaultScopes = []string{
	"https://management.azure.com/.default",
	"openid",
	"profile",
}

// RedirectPath must match the redirect URI registered for the app
const RedirectPath = "/auth/callback"

func defaults() *Config {
	return &Config{
		Scopes:     append([]string(nil), DefaultScopes...),
		ListenAddr: "localhost:5000",
		StaticDir:  "frontend",
		SessionTTL: 8 * time.Hour,
		LogLevel:   "info",
		LogFormat:  "console",
	}
}

// Load reads the YAML file at path (skipped when path is empty or the file does not
// exist) and then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.ClientID = getEnvOrDefault("AZURE_CLIENT_ID", c.ClientID)
	c.TenantID = getEnvOrDefault("AZURE_TENANT_ID", c.TenantID)
	c.ClientSecret = getEnvOrDefault("AZURE_CLIENT_SECRET", c.ClientSecret)
	c.RedirectURI = getEnvOrDefault("AZURE_REDIRECT_URI", c.RedirectURI)
	c.SubscriptionID = getEnvOrDefault("AZURE_SUBSCRIPTION_ID", c.SubscriptionID)
	c.ListenAddr = getEnvOrDefault("LISTEN_ADDR", c.ListenAddr)
	c.StaticDir = getEnvOrDefault("STATIC_DIR", c.StaticDir)
	c.LogLevel = getEnvOrDefault("LOG_LEVEL", c.LogLevel)
	c.LogFormat = getEnvOrDefault("LOG_FORMAT", c.LogFormat)

	// Legacy key name; SESSION_SECRET wins when both are set
	c.SessionSecret = getEnvOrDefault("FLASK_SECRET_KEY", c.SessionSecret)
	c.SessionSecret = getEnvOrDefault("SESSION_SECRET", c.SessionSecret)

	if scopes := os.Getenv("AZURE_SCOPES"); scopes != "" {
		c.Scopes = strings.Fields(scopes)
	}

	if ttl := os.Getenv("SESSION_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return fmt.Errorf("invalid SESSION_TTL %q: %w", ttl, err)
		}
		c.SessionTTL = d
	}

	if secure := os.Getenv("SECURE_COOKIES"); secure != "" {
		c.SecureCookies = secure == "1" || strings.EqualFold(secure, "true")
	}

	return nil
}

// Validate reports settings the web server cannot run without
func (c *Config) Validate() error {
	var missing []string
	if c.ClientID == "" {
		missing = append(missing, "AZURE_CLIENT_ID")
	}
	if c.TenantID == "" {
		missing = append(missing, "AZURE_TENANT_ID")
	}
	if c.ClientSecret == "" {
		missing = append(missing, "AZURE_CLIENT_SECRET")
	}
	if c.RedirectURI == "" {
		missing = append(missing, "AZURE_REDIRECT_URI")
	}
	if c.SessionSecret == "" {
		missing = append(missing, "SESSION_SECRET")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Authority is the Microsoft identity platform authority for the tenant
func (c *Config) Authority() string {
	return "https://login.microsoftonline.com/" + c.TenantID
}

// HasSubscription returns true if a default subscription is configured
func (c *Config) HasSubscription() bool {
	return c.SubscriptionID != ""
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
