package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/zhubert/supportchat/internal/errors"
)

// Defaults applied when the config file omits a field.
const (
	DefaultAPIURL                = "http://localhost:8000"
	DefaultUserID                = 1
	DefaultRequestTimeoutSeconds = 60
	DefaultReloadAttempts        = 3
	DefaultReloadBackoffMS       = 250
	MaxReloadAttempts            = 10
)

// Environment variables consulted by Load.
const (
	EnvConfigPath = "SUPPORTCHAT_CONFIG"
	EnvAPIURL     = "SUPPORTCHAT_API_URL"
)

// Config holds the client preferences. Conversation state is never stored here;
// the remote service is the only durable store for sessions.
type Config struct {
	APIURL                string `json:"api_url,omitempty"`
	UserID                int    `json:"user_id,omitempty"`
	RequestTimeoutSeconds int    `json:"request_timeout_seconds,omitempty"`
	Theme                 string `json:"theme,omitempty"`                 // UI theme name (e.g., "dark-purple", "nord")
	NotificationsEnabled  bool   `json:"notifications_enabled,omitempty"` // Desktop notification when a reply arrives while unfocused
	ConfirmDelete         *bool  `json:"confirm_delete,omitempty"`        // nil means true
	ReloadAttempts        int    `json:"reload_attempts,omitempty"`       // Directory polls after a new session is bound
	ReloadBackoffMS       int    `json:"reload_backoff_ms,omitempty"`

	mu       sync.RWMutex
	filePath string
}

// configDir returns the path to the config directory
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".supportchat"), nil
}

// configPath returns the path to the config file
func configPath() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// New returns a config with every default applied and no backing file.
func New() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads the config from disk, or returns defaults if it doesn't exist.
// SUPPORTCHAT_API_URL overrides the stored API URL.
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, errors.ConfigLoadFailed("~/.supportchat", err)
	}
	return LoadFrom(path)
}

// LoadFrom reads the config at path. A missing file yields defaults.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{filePath: path}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, errors.ConfigLoadFailed(path, err)
	}
	if err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, errors.ConfigLoadFailed(path, err)
		}
	}

	if env := os.Getenv(EnvAPIURL); env != "" {
		cfg.APIURL = env
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyDefaults fills zero-valued fields. It must only be called before the
// Config is shared, so it takes no lock.
func (c *Config) applyDefaults() {
	if c.APIURL == "" {
		c.APIURL = DefaultAPIURL
	}
	if c.UserID == 0 {
		c.UserID = DefaultUserID
	}
	if c.RequestTimeoutSeconds == 0 {
		c.RequestTimeoutSeconds = DefaultRequestTimeoutSeconds
	}
	if c.ReloadAttempts == 0 {
		c.ReloadAttempts = DefaultReloadAttempts
	}
	if c.ReloadBackoffMS == 0 {
		c.ReloadBackoffMS = DefaultReloadBackoffMS
	}
}

// Validate checks that the config values are usable.
func (c *Config) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if err := ValidateAPIURL(c.APIURL); err != nil {
		return err
	}
	if c.UserID < 0 {
		return errors.ConfigInvalid(fmt.Sprintf("user_id must be positive, got %d", c.UserID))
	}
	if c.RequestTimeoutSeconds < 0 {
		return errors.ConfigInvalid(fmt.Sprintf("request_timeout_seconds must be positive, got %d", c.RequestTimeoutSeconds))
	}
	if c.ReloadAttempts < 0 || c.ReloadBackoffMS < 0 {
		return errors.ConfigInvalid("reload_attempts and reload_backoff_ms must not be negative")
	}
	if c.ReloadAttempts > MaxReloadAttempts {
		return errors.ConfigInvalid(fmt.Sprintf("reload_attempts must be at most %d, got %d", MaxReloadAttempts, c.ReloadAttempts))
	}
	return nil
}

// ValidateAPIURL reports whether raw is an absolute http(s) URL.
func ValidateAPIURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return errors.ConfigInvalid(fmt.Sprintf("api_url %q: %v", raw, err))
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.ConfigInvalid(fmt.Sprintf("api_url %q must use http or https", raw))
	}
	if u.Host == "" {
		return errors.ConfigInvalid(fmt.Sprintf("api_url %q has no host", raw))
	}
	return nil
}

// Save writes the config to disk. The file is replaced atomically.
func (c *Config) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	path := c.filePath
	if path == "" {
		p, err := configPath()
		if err != nil {
			return errors.ConfigSaveFailed("~/.supportchat", err)
		}
		path = p
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.ConfigSaveFailed(path, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.ConfigSaveFailed(path, err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return errors.ConfigSaveFailed(path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return errors.ConfigSaveFailed(path, err)
	}
	return nil
}

// FilePath returns the path the config was loaded from.
func (c *Config) FilePath() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.filePath
}

// GetAPIURL returns the base URL of the chat service
func (c *Config) GetAPIURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.APIURL
}

// SetAPIURL sets the base URL of the chat service
func (c *Config) SetAPIURL(u string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.APIURL = u
}

// GetUserID returns the fixed user id sent with every message
func (c *Config) GetUserID() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.UserID
}

// SetUserID sets the user id sent with every message
func (c *Config) SetUserID(id int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.UserID = id
}

// RequestTimeout returns the per-request transport timeout.
func (c *Config) RequestTimeout() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// GetTheme returns the current theme name
func (c *Config) GetTheme() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Theme
}

// SetTheme sets the current theme name
func (c *Config) SetTheme(theme string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Theme = theme
}

// GetNotificationsEnabled returns whether reply notifications are enabled
func (c *Config) GetNotificationsEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.NotificationsEnabled
}

// SetNotificationsEnabled sets whether reply notifications are enabled
func (c *Config) SetNotificationsEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.NotificationsEnabled = enabled
}

// ShouldConfirmDelete reports whether deletion asks for confirmation first.
func (c *Config) ShouldConfirmDelete() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ConfirmDelete == nil || *c.ConfirmDelete
}

// SetConfirmDelete sets whether deletion asks for confirmation first.
func (c *Config) SetConfirmDelete(confirm bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ConfirmDelete = &confirm
}

// ReloadPolicy returns how many times the directory is polled for a newly bound
// session and the wait between polls.
func (c *Config) ReloadPolicy() (attempts int, backoff time.Duration) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ReloadAttempts, time.Duration(c.ReloadBackoffMS) * time.Millisecond
}
