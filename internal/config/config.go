// Package config loads and saves the YAML configuration file, including the
// list of saved server connections.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Theme       string            `yaml:"theme"`
	Results     ResultsConfig     `yaml:"results"`
	AuditLog    string            `yaml:"audit_log,omitempty"`
	Connections []SavedConnection `yaml:"connections"`
}

// ResultsConfig holds result display settings.
type ResultsConfig struct {
	PageSize       int `yaml:"page_size"`
	MaxColumnWidth int `yaml:"max_column_width"`
}

// SavedConnection holds parameters for a saved database connection. Each
// connection carries a stable ID so renames don't orphan references to it.
type SavedConnection struct {
	ID       uuid.UUID `yaml:"id"`
	Name     string    `yaml:"name"`
	Adapter  string    `yaml:"adapter"` // "mysql" or "postgres"
	DSN      string    `yaml:"dsn,omitempty"`
	Host     string    `yaml:"host,omitempty"`
	Port     int       `yaml:"port,omitempty"`
	User     string    `yaml:"user,omitempty"`
	Password string    `yaml:"password,omitempty"`
	Database string    `yaml:"database,omitempty"`
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Theme: "default",
		Results: ResultsConfig{
			PageSize:       1000,
			MaxColumnWidth: 50,
		},
	}
}

// ConfigDir returns the termdba configuration directory path. It uses
// os.UserConfigDir to locate the base config directory and appends "termdba"
// to it, typically resulting in ~/.config/termdba/.
func ConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config dir: %w", err)
	}
	return filepath.Join(base, "termdba"), nil
}

// Load reads a Config from the YAML file at path. If the file does not exist,
// it returns DefaultConfig without error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// LoadDefault loads configuration from the default path
// (ConfigDir()/config.yaml).
func LoadDefault() (*Config, error) {
	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}
	return Load(filepath.Join(dir, "config.yaml"))
}

// Save writes the Config to the YAML file at path, creating any necessary
// parent directories.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// SaveDefault writes the Config to the default path
// (ConfigDir()/config.yaml).
func (c *Config) SaveDefault() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return c.Save(filepath.Join(dir, "config.yaml"))
}

// AddConnection appends a saved connection, assigning it a fresh ID when it
// has none.
func (c *Config) AddConnection(sc SavedConnection) SavedConnection {
	if sc.ID == uuid.Nil {
		sc.ID = uuid.New()
	}
	c.Connections = append(c.Connections, sc)
	return sc
}

// FindConnection looks a saved connection up by name or ID string.
func (c *Config) FindConnection(key string) (SavedConnection, bool) {
	for _, sc := range c.Connections {
		if sc.Name == key || sc.ID.String() == key {
			return sc, true
		}
	}
	return SavedConnection{}, false
}

// RemoveConnection deletes the saved connection with the given name or ID
// string. It reports whether a connection was removed.
func (c *Config) RemoveConnection(key string) bool {
	for i, sc := range c.Connections {
		if sc.Name == key || sc.ID.String() == key {
			c.Connections = append(c.Connections[:i], c.Connections[i+1:]...)
			return true
		}
	}
	return false
}

// BuildDSN constructs a connection URL from the individual fields of a
// SavedConnection. If DSN is already set, it is returned as-is.
func (sc *SavedConnection) BuildDSN() string {
	if sc.DSN != "" {
		return sc.DSN
	}

	var b strings.Builder
	b.WriteString(strings.ToLower(sc.Adapter))
	b.WriteString("://")

	if sc.User != "" {
		b.WriteString(sc.User)
		if sc.Password != "" {
			b.WriteByte(':')
			b.WriteString(sc.Password)
		}
		b.WriteByte('@')
	}

	host := sc.Host
	if host == "" {
		host = "localhost"
	}
	b.WriteString(host)

	if sc.Port > 0 {
		fmt.Fprintf(&b, ":%d", sc.Port)
	}

	if sc.Database != "" {
		b.WriteByte('/')
		b.WriteString(sc.Database)
	}

	return b.String()
}

// DisplayString returns a human-readable representation of the connection,
// formatted as "adapter://host:port/database". The password is never
// included.
func (sc *SavedConnection) DisplayString() string {
	host := sc.Host
	if host == "" {
		host = "localhost"
	}

	var location string
	if sc.Port > 0 {
		location = fmt.Sprintf("%s:%d", host, sc.Port)
	} else {
		location = host
	}

	if sc.Database != "" {
		return fmt.Sprintf("%s://%s/%s", sc.Adapter, location, sc.Database)
	}
	return fmt.Sprintf("%s://%s", sc.Adapter, location)
}
