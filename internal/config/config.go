package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/benvon/wifi-api/internal/models"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultFrontendOrigin is the Vite dev server the desktop frontend runs on
	DefaultFrontendOrigin = "http://localhost:5173"
	// DefaultServerHost binds every interface
	DefaultServerHost = "0.0.0.0"
	// DefaultServerPort is the port the frontend expects the API on
	DefaultServerPort = "8000"
	// DefaultCORSMaxAge is how long browsers may cache a preflight (seconds)
	DefaultCORSMaxAge = 600
)

// ConfigPathEnv names the env var holding an optional YAML config file path
const ConfigPathEnv = "WIFI_API_CONFIG"

// Config holds application configuration
type Config struct {
	ServerHost       string        `yaml:"server_host" validate:"required"`
	ServerPort       string        `yaml:"server_port" validate:"required,tcp_port"`
	ServerReload     bool          `yaml:"server_reload"`
	ReloadInterval   time.Duration `yaml:"reload_interval" validate:"gt=0"`
	ReloadWatchPaths []string      `yaml:"reload_watch_paths"`
	ServerDebugMode  bool          `yaml:"server_debug_mode"`
	LogFormat        string        `yaml:"log_format" validate:"oneof=json console"`

	AllowedOrigins       []string `yaml:"allowed_origins" validate:"min=1,dive,cors_origin"`
	CORSAllowCredentials bool     `yaml:"cors_allow_credentials"`
	CORSAllowedMethods   []string `yaml:"cors_allowed_methods" validate:"min=1,dive,required"`
	CORSAllowedHeaders   []string `yaml:"cors_allowed_headers" validate:"dive,required"`
	CORSMaxAge           int      `yaml:"cors_max_age" validate:"gte=0"`

	EnableHSTS     bool          `yaml:"enable_hsts"`
	RequestTimeout time.Duration `yaml:"request_timeout" validate:"gt=0"`
	MetricsEnabled bool          `yaml:"metrics_enabled"`
	OTELEnabled    bool          `yaml:"otel_enabled"`
	OTELEndpoint   string        `yaml:"otel_endpoint"`
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		ServerHost:           DefaultServerHost,
		ServerPort:           DefaultServerPort,
		ServerReload:         true,
		ReloadInterval:       1 * time.Second,
		LogFormat:            "json",
		AllowedOrigins:       []string{DefaultFrontendOrigin},
		CORSAllowCredentials: true,
		CORSAllowedMethods:   []string{models.Wildcard},
		CORSAllowedHeaders:   []string{models.Wildcard},
		CORSMaxAge:           DefaultCORSMaxAge,
		RequestTimeout:       30 * time.Second,
		MetricsEnabled:       true,
	}
}

// Load loads configuration from the file named by WIFI_API_CONFIG (if any)
// and then from environment variables
func Load() (*Config, error) {
	return LoadFile(os.Getenv(ConfigPathEnv))
}

// LoadFile loads configuration from defaults, then the YAML file at path
// (skipped when path is empty), then environment variables. Later sources win.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() {
	c.ServerHost = getEnv("SERVER_HOST", c.ServerHost)
	c.ServerPort = getEnv("SERVER_PORT", c.ServerPort)
	c.ServerReload = getEnvBool("SERVER_RELOAD", c.ServerReload)
	c.ReloadInterval = getEnvDuration("RELOAD_INTERVAL", c.ReloadInterval)
	c.ReloadWatchPaths = getEnvList("RELOAD_WATCH_PATHS", c.ReloadWatchPaths)
	c.ServerDebugMode = getEnvBool("SERVER_DEBUG_MODE", c.ServerDebugMode)
	c.LogFormat = getEnv("LOG_FORMAT", c.LogFormat)
	c.AllowedOrigins = getEnvList("FRONTEND_URL", c.AllowedOrigins)
	c.CORSAllowCredentials = getEnvBool("CORS_ALLOW_CREDENTIALS", c.CORSAllowCredentials)
	c.CORSAllowedMethods = getEnvList("CORS_ALLOWED_METHODS", c.CORSAllowedMethods)
	c.CORSAllowedHeaders = getEnvList("CORS_ALLOWED_HEADERS", c.CORSAllowedHeaders)
	c.CORSMaxAge = getEnvInt("CORS_MAX_AGE", c.CORSMaxAge)
	c.EnableHSTS = getEnvBool("ENABLE_HSTS", c.EnableHSTS)
	c.RequestTimeout = getEnvDuration("REQUEST_TIMEOUT", c.RequestTimeout)
	c.MetricsEnabled = getEnvBool("METRICS_ENABLED", c.MetricsEnabled)
	c.OTELEnabled = getEnvBool("OTEL_ENABLED", c.OTELEnabled)
	c.OTELEndpoint = getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", c.OTELEndpoint)
}

// Validate checks the configuration and reports every invalid field at once
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validatorErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Addr is the host:port the server listens on
func (c *Config) Addr() string {
	return net.JoinHostPort(c.ServerHost, c.ServerPort)
}

// CORSPolicy builds the immutable CORS policy from the configuration
func (c *Config) CORSPolicy() models.CORSPolicy {
	return models.NewCORSPolicy(
		c.AllowedOrigins,
		c.CORSAllowCredentials,
		c.CORSAllowedMethods,
		c.CORSAllowedHeaders,
		c.CORSMaxAge,
	)
}

// SplitList parses a comma-separated list, trimming whitespace and dropping
// empty and duplicate entries
func SplitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	var out []string
	seen := make(map[string]bool)
	for _, p := range parts {
		s := strings.TrimSpace(p)
		if s != "" && !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		if list := SplitList(value); len(list) > 0 {
			return list
		}
	}
	return defaultValue
}
