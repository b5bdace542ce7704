// Package cliconfig handles configuration paths and identity storage for the
// flowtask CLI.
package cliconfig

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

const (
	// AppName is the configuration directory name.
	AppName = "flowtask"

	identityFile  = "identity.json"
	selectionFile = "selection.json"

	// DefaultServerURL is used when neither the flag nor the environment
	// sets one.
	DefaultServerURL = "http://localhost:8080"
)

// Config holds CLI paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// ServerURL is the FlowTask API base URL.
	ServerURL string

	Quiet bool
	Debug bool
}

// Identity is the stored identity stub: an email, nothing verified.
type Identity struct {
	Email string `json:"email"`
}

// Selection is the last listing selection; task numbers from the previous
// listing resolve against it.
type Selection struct {
	ListID string `json:"list_id,omitempty"`
	Filter string `json:"filter,omitempty"`
}

// New creates a Config with the default or specified config directory.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}

	server := os.Getenv("FLOWTASK_SERVER")
	if server == "" {
		server = DefaultServerURL
	}

	return &Config{Dir: dir, ServerURL: strings.TrimRight(server, "/")}, nil
}

// DefaultConfigDir returns XDG_CONFIG_HOME/flowtask or $HOME/.config/flowtask.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

func (c *Config) identityPath() string {
	return filepath.Join(c.Dir, identityFile)
}

func (c *Config) selectionPath() string {
	return filepath.Join(c.Dir, selectionFile)
}

// LoadIdentity returns the stored identity, or ok=false when not logged in.
func (c *Config) LoadIdentity() (Identity, bool) {
	data, err := os.ReadFile(c.identityPath())
	if err != nil {
		return Identity{}, false
	}
	var id Identity
	if err := json.Unmarshal(data, &id); err != nil || id.Email == "" {
		return Identity{}, false
	}
	return id, true
}

func (c *Config) SaveIdentity(id Identity) error {
	if err := c.EnsureDir(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(id, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.identityPath(), data, 0600)
}

func (c *Config) ClearIdentity() error {
	err := os.Remove(c.identityPath())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (c *Config) LoadSelection() Selection {
	data, err := os.ReadFile(c.selectionPath())
	if err != nil {
		return Selection{}
	}
	var sel Selection
	if err := json.Unmarshal(data, &sel); err != nil {
		return Selection{}
	}
	return sel
}

func (c *Config) SaveSelection(sel Selection) error {
	if err := c.EnsureDir(); err != nil {
		return err
	}
	data, err := json.Marshal(sel)
	if err != nil {
		return err
	}
	return os.WriteFile(c.selectionPath(), data, 0600)
}
