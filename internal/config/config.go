package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the full runtime configuration. Precedence when loading:
// file > environment > defaults.
type Config struct {
	HTTP      *HTTPConfig      `json:"http"`
	WebSocket *WebSocketConfig `json:"websocket"`
}

type HTTPConfig struct {
	Host         string        `json:"host"`
	Port         int           `json:"port"`
	ReadTimeout  time.Duration `json:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout"`
}

// WebSocketConfig is the gateway tuning surface. AllowedOrigins empty
// means allow all (development); the coordinator never sees any of this.
type WebSocketConfig struct {
	PingInterval   time.Duration `json:"ping_interval"`
	ReadTimeout    time.Duration `json:"read_timeout"`
	WriteTimeout   time.Duration `json:"write_timeout"`
	BufferSize     int           `json:"buffer_size"`
	AllowedOrigins []string      `json:"allowed_origins"`
	RateLimit      int           `json:"rate_limit"`
	RateWindow     time.Duration `json:"rate_window"`
}

// DefaultConfig returns sane single-classroom defaults.
func DefaultConfig() *Config {
	return &Config{
		HTTP: &HTTPConfig{
			Host:         "0.0.0.0",
			Port:         4000,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		WebSocket: &WebSocketConfig{
			PingInterval:   30 * time.Second,
			ReadTimeout:    60 * time.Second,
			WriteTimeout:   10 * time.Second,
			BufferSize:     100,
			AllowedOrigins: nil,
			RateLimit:      100,
			RateWindow:     time.Minute,
		},
	}
}

// Validate rejects configurations that cannot run.
func (c *Config) Validate() error {
	if c.HTTP == nil {
		return fmt.Errorf("HTTP configuration is required")
	}
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("HTTP port must be between 1 and 65535")
	}
	if c.HTTP.Host == "" {
		return fmt.Errorf("HTTP host cannot be empty")
	}
	if c.HTTP.ReadTimeout <= 0 || c.HTTP.WriteTimeout <= 0 {
		return fmt.Errorf("HTTP timeouts must be positive")
	}
	if c.WebSocket == nil {
		return fmt.Errorf("WebSocket configuration is required")
	}
	if c.WebSocket.PingInterval <= 0 {
		return fmt.Errorf("WebSocket ping interval must be positive")
	}
	if c.WebSocket.ReadTimeout <= c.WebSocket.PingInterval {
		return fmt.Errorf("WebSocket read timeout must exceed the ping interval")
	}
	if c.WebSocket.WriteTimeout <= 0 {
		return fmt.Errorf("WebSocket write timeout must be positive")
	}
	if c.WebSocket.BufferSize <= 0 {
		return fmt.Errorf("WebSocket buffer size must be positive")
	}
	if c.WebSocket.RateLimit <= 0 || c.WebSocket.RateWindow <= 0 {
		return fmt.Errorf("WebSocket rate limit and window must be positive")
	}
	return nil
}

// LoadFromEnv overlays LIVEPOLL_* environment variables on the defaults.
func LoadFromEnv() *Config {
	cfg := DefaultConfig()

	if port := os.Getenv("LIVEPOLL_HTTP_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.HTTP.Port = p
		}
	}
	if host := os.Getenv("LIVEPOLL_HTTP_HOST"); host != "" {
		cfg.HTTP.Host = host
	}
	if v := os.Getenv("LIVEPOLL_HTTP_READ_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.HTTP.ReadTimeout = d
		}
	}
	if v := os.Getenv("LIVEPOLL_HTTP_WRITE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.HTTP.WriteTimeout = d
		}
	}
	if v := os.Getenv("LIVEPOLL_WS_PING_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.WebSocket.PingInterval = d
		}
	}
	if v := os.Getenv("LIVEPOLL_WS_READ_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.WebSocket.ReadTimeout = d
		}
	}
	if v := os.Getenv("LIVEPOLL_WS_WRITE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.WebSocket.WriteTimeout = d
		}
	}
	if v := os.Getenv("LIVEPOLL_WS_BUFFER_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.WebSocket.BufferSize = n
		}
	}
	if v := os.Getenv("LIVEPOLL_ALLOWED_ORIGINS"); v != "" {
		origins := strings.Split(v, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		cfg.WebSocket.AllowedOrigins = origins
	}
	if v := os.Getenv("LIVEPOLL_WS_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.WebSocket.RateLimit = n
		}
	}
	if v := os.Getenv("LIVEPOLL_WS_RATE_WINDOW"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.WebSocket.RateWindow = d
		}
	}

	return cfg
}

// configFile mirrors Config for JSON parsing, with durations as strings.
type configFile struct {
	HTTP *struct {
		Host         string `json:"host"`
		Port         int    `json:"port"`
		ReadTimeout  string `json:"read_timeout"`
		WriteTimeout string `json:"write_timeout"`
	} `json:"http"`
	WebSocket *struct {
		PingInterval   string   `json:"ping_interval"`
		ReadTimeout    string   `json:"read_timeout"`
		WriteTimeout   string   `json:"write_timeout"`
		BufferSize     int      `json:"buffer_size"`
		AllowedOrigins []string `json:"allowed_origins"`
		RateLimit      int      `json:"rate_limit"`
		RateWindow     string   `json:"rate_window"`
	} `json:"websocket"`
}

// LoadFromFile reads a JSON config, layering it over environment and
// defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var file configFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	cfg := LoadFromEnv()

	if file.HTTP != nil {
		if file.HTTP.Host != "" {
			cfg.HTTP.Host = file.HTTP.Host
		}
		if file.HTTP.Port > 0 {
			cfg.HTTP.Port = file.HTTP.Port
		}
		setDuration(&cfg.HTTP.ReadTimeout, file.HTTP.ReadTimeout)
		setDuration(&cfg.HTTP.WriteTimeout, file.HTTP.WriteTimeout)
	}
	if file.WebSocket != nil {
		setDuration(&cfg.WebSocket.PingInterval, file.WebSocket.PingInterval)
		setDuration(&cfg.WebSocket.ReadTimeout, file.WebSocket.ReadTimeout)
		setDuration(&cfg.WebSocket.WriteTimeout, file.WebSocket.WriteTimeout)
		setDuration(&cfg.WebSocket.RateWindow, file.WebSocket.RateWindow)
		if file.WebSocket.BufferSize > 0 {
			cfg.WebSocket.BufferSize = file.WebSocket.BufferSize
		}
		if file.WebSocket.AllowedOrigins != nil {
			cfg.WebSocket.AllowedOrigins = file.WebSocket.AllowedOrigins
		}
		if file.WebSocket.RateLimit > 0 {
			cfg.WebSocket.RateLimit = file.WebSocket.RateLimit
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", path, err)
	}
	return cfg, nil
}

func setDuration(dst *time.Duration, value string) {
	if value == "" {
		return
	}
	if d, err := time.ParseDuration(value); err == nil {
		*dst = d
	}
}

// LoadWithPrecedence resolves configuration as file > env > defaults.
// A missing or broken file falls back to env/defaults silently so a bare
// deployment still boots.
func LoadWithPrecedence(path string) *Config {
	if path != "" {
		if cfg, err := LoadFromFile(path); err == nil {
			return cfg
		}
	}
	return LoadFromEnv()
}
