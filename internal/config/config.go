// Package config handles the configuration directory, settings file and stored session.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// AppName is the application directory name.
	AppName = "tasktrack"

	// SettingsFile is the optional settings filename.
	SettingsFile = "config.yaml"

	// EnvFile is the optional dotenv filename.
	EnvFile = ".env"

	// TokenFileName is the stored session token filename.
	TokenFileName = "token.json"
)

// Environment variables that override the settings file.
const (
	EnvAPIBaseURL  = "TASKTRACK_API_BASE_URL"
	EnvAuthPath    = "TASKTRACK_AUTH_PATH"
	EnvPersonsPath = "TASKTRACK_PERSONS_PATH"
	EnvTasksPath   = "TASKTRACK_TASKS_PATH"
	EnvTimeout     = "TASKTRACK_TIMEOUT"
	EnvPassword    = "TASKTRACK_PASSWORD"
)

// API holds the backend location and client limits.
type API struct {
	BaseURL     string        `yaml:"apiBaseURL"`
	AuthPath    string        `yaml:"authPath"`
	PersonsPath string        `yaml:"personsPath"`
	TasksPath   string        `yaml:"tasksPath"`
	Timeout     time.Duration `yaml:"timeout"`
	RateLimit   float64       `yaml:"rateLimit"`
	RateBurst   int           `yaml:"rateBurst"`
}

// DefaultAPI returns the settings used when nothing is configured.
func DefaultAPI() API {
	return API{
		BaseURL:     "http://localhost:8080",
		AuthPath:    "/auth",
		PersonsPath: "/persons",
		TasksPath:   "/tasks",
		Timeout:     10 * time.Second,
		RateLimit:   10,
		RateBurst:   20,
	}
}

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// API is the backend configuration.
	API API
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/tasktrack or $HOME/.config/tasktrack.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{Dir: dir, API: DefaultAPI()}, nil
}

// Load creates a Config and fills API from, in increasing priority:
// defaults, config.yaml, .env files (working dir then config dir) and the process environment.
func Load(configDir string) (*Config, error) {
	cfg, err := New(configDir)
	if err != nil {
		return nil, err
	}

	if err := cfg.loadSettings(); err != nil {
		return nil, err
	}

	// godotenv never overrides variables that are already set.
	for _, path := range []string{EnvFile, filepath.Join(cfg.Dir, EnvFile)} {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("invalid %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// SettingsPath returns the path to the settings file.
func (c *Config) SettingsPath() string {
	return filepath.Join(c.Dir, SettingsFile)
}

// TokenPath returns the path to the stored session token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFileName)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// Password returns the password provided through the environment, if any.
func (c *Config) Password() string {
	return os.Getenv(EnvPassword)
}

func (c *Config) loadSettings() error {
	data, err := os.ReadFile(c.SettingsPath())
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", SettingsFile, err)
	}

	var file API
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("invalid %s: %w", SettingsFile, err)
	}
	c.API = mergeAPI(c.API, file)
	return nil
}

func (c *Config) applyEnv() error {
	setString := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setString(&c.API.BaseURL, EnvAPIBaseURL)
	setString(&c.API.AuthPath, EnvAuthPath)
	setString(&c.API.PersonsPath, EnvPersonsPath)
	setString(&c.API.TasksPath, EnvTasksPath)

	if v := os.Getenv(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			// Bare numbers are seconds.
			secs, convErr := strconv.Atoi(v)
			if convErr != nil {
				return fmt.Errorf("invalid %s: %q", EnvTimeout, v)
			}
			d = time.Duration(secs) * time.Second
		}
		c.API.Timeout = d
	}
	return nil
}

// mergeAPI overlays the non-zero fields of override onto base.
func mergeAPI(base, override API) API {
	if override.BaseURL != "" {
		base.BaseURL = override.BaseURL
	}
	if override.AuthPath != "" {
		base.AuthPath = override.AuthPath
	}
	if override.PersonsPath != "" {
		base.PersonsPath = override.PersonsPath
	}
	if override.TasksPath != "" {
		base.TasksPath = override.TasksPath
	}
	if override.Timeout > 0 {
		base.Timeout = override.Timeout
	}
	if override.RateLimit > 0 {
		base.RateLimit = override.RateLimit
	}
	if override.RateBurst > 0 {
		base.RateBurst = override.RateBurst
	}
	return base
}
