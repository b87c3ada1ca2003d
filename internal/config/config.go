package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/codefionn/rechenschnell/internal/consts"
)

const appName = "rechenschnell"

// Environment variables that override file values
const (
	EnvLogLevel = "RECHENSCHNELL_LOG_LEVEL"
	EnvLogPath  = "RECHENSCHNELL_LOG_PATH"
)

// Config represents application configuration
type Config struct {
	LogLevel    string `json:"log_level"` // debug, info, warn, error, none
	LogPath     string `json:"log_path,omitempty"`
	LockOnError bool   `json:"lock_on_error"` // keypad ignores input after an error until cleared
	HistorySize int    `json:"history_size"`  // in-memory only
	ShowTree    bool   `json:"show_tree"`     // print the parsed tree next to results
	ListenAddr  string `json:"listen_addr"`   // address for "serve"
	ColorOutput bool   `json:"color_output"`  // style CLI output when stdout is a terminal
}

func defaultConfigDir() string {
	switch runtime.GOOS {
	case "windows":
		if appData := strings.TrimSpace(os.Getenv("APPDATA")); appData != "" {
			return filepath.Join(appData, appName)
		}
		homeDir, _ := os.UserHomeDir()
		return filepath.Join(homeDir, "AppData", "Roaming", appName)
	default:
		if configHome := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); configHome != "" {
			return filepath.Join(configHome, appName)
		}
		homeDir, _ := os.UserHomeDir()
		return filepath.Join(homeDir, ".config", appName)
	}
}

func defaultStateDir() string {
	switch runtime.GOOS {
	case "linux":
		if stateHome := strings.TrimSpace(os.Getenv("XDG_STATE_HOME")); stateHome != "" {
			return filepath.Join(stateHome, appName)
		}
		homeDir, _ := os.UserHomeDir()
		return filepath.Join(homeDir, ".local", "state", appName)
	case "windows":
		if localAppData := strings.TrimSpace(os.Getenv("LOCALAPPDATA")); localAppData != "" {
			return filepath.Join(localAppData, appName)
		}
		homeDir, _ := os.UserHomeDir()
		return filepath.Join(homeDir, "AppData", "Local", appName)
	default:
		return defaultConfigDir()
	}
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		LogLevel:    "info",
		LogPath:     filepath.Join(defaultStateDir(), appName+".log"),
		LockOnError: true,
		HistorySize: consts.DefaultHistorySize,
		ListenAddr:  consts.DefaultListenAddr,
		ColorOutput: true,
	}
}

// Load loads configuration from path over the defaults. A missing file is
// not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	// Unmarshal into default config (overrides only provided fields)
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	cfg.normalize()
	return cfg, nil
}

// normalize repairs empty or out-of-range fields
func (c *Config) normalize() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogPath == "" {
		c.LogPath = filepath.Join(defaultStateDir(), appName+".log")
	}
	if c.HistorySize < 0 {
		c.HistorySize = 0
	}
	if c.HistorySize > consts.MaxHistorySize {
		c.HistorySize = consts.MaxHistorySize
	}
	if c.ListenAddr == "" {
		c.ListenAddr = consts.DefaultListenAddr
	}
}

// ApplyEnv lets environment variables override logging settings
func (c *Config) ApplyEnv() {
	if envLevel := strings.TrimSpace(os.Getenv(EnvLogLevel)); envLevel != "" {
		c.LogLevel = envLevel
	}
	if envPath := strings.TrimSpace(os.Getenv(EnvLogPath)); envPath != "" {
		c.LogPath = envPath
	}
}

// Save saves configuration to file
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// GetConfigPath returns the default config path
func GetConfigPath() string {
	return filepath.Join(defaultConfigDir(), "config.json")
}
