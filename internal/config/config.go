package config

import (
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type APIConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
}

type SessionConfig struct {
	File   string `yaml:"file"`
	KeyHex string `yaml:"key_hex"`
}

type AuthFlowConfig struct {
	ResendWindow  string `yaml:"resend_window"`
	RedirectDelay string `yaml:"redirect_delay"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type ConfigFile struct {
	API     APIConfig      `yaml:"api"`
	Session SessionConfig  `yaml:"session"`
	Auth    AuthFlowConfig `yaml:"auth"`
	Log     LogConfig      `yaml:"log"`
}

type Config struct {
	APIBaseURL    string
	HTTPTimeout   time.Duration
	SessionFile   string
	SessionKey    []byte
	ResendWindow  time.Duration
	RedirectDelay time.Duration
	LogLevel      string
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Load reads the optional yaml config file and applies environment
// overrides. A missing file is fine; every setting has a default.
func Load() (*Config, error) {
	configFile, err := loadConfigFile(env("CARZY_CONFIG", "config/config.yml"))
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
		configFile = &ConfigFile{}
	}

	baseURL := env("CARZY_API_BASE_URL", configFile.API.BaseURL)
	if baseURL == "" {
		baseURL = "http://127.0.0.1:8000"
	}

	timeout, err := parseDuration(env("CARZY_HTTP_TIMEOUT", configFile.API.Timeout), 15*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP timeout: %w", err)
	}

	resendWindow, err := parseDuration(env("CARZY_RESEND_WINDOW", configFile.Auth.ResendWindow), 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid resend window: %w", err)
	}

	redirectDelay, err := parseDuration(env("CARZY_REDIRECT_DELAY", configFile.Auth.RedirectDelay), 1500*time.Millisecond)
	if err != nil {
		return nil, fmt.Errorf("invalid redirect delay: %w", err)
	}

	sessionFile := env("CARZY_SESSION_FILE", configFile.Session.File)
	if sessionFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("could not resolve home directory: %w", err)
		}
		sessionFile = home + "/.carzy/session.json"
	}

	sessionKey, err := parseSessionKey(env("CARZY_SESSION_KEY_HEX", configFile.Session.KeyHex))
	if err != nil {
		return nil, err
	}

	return &Config{
		APIBaseURL:    baseURL,
		HTTPTimeout:   timeout,
		SessionFile:   sessionFile,
		SessionKey:    sessionKey,
		ResendWindow:  resendWindow,
		RedirectDelay: redirectDelay,
		LogLevel:      env("CARZY_LOG_LEVEL", defaultString(configFile.Log.Level, "info")),
	}, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}

// parseSessionKey decodes the optional session sealing key (hex, 64 chars
// -> 32 bytes). Empty means the session file is stored in plaintext.
func parseSessionKey(hexk string) ([]byte, error) {
	if hexk == "" {
		return nil, nil
	}
	b, err := hex.DecodeString(hexk)
	if err != nil {
		return nil, fmt.Errorf("session key hex decode error: %w", err)
	}
	if len(b) != 32 {
		return nil, fmt.Errorf("session key length must be 32 bytes (hex 64 chars)")
	}
	return b, nil
}

func parseDuration(s string, def time.Duration) (time.Duration, error) {
	if s == "" {
		return def, nil
	}
	return time.ParseDuration(s)
}

func defaultString(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
