// Package config provides TOML configuration loading for rtkit.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// ErrInvalid marks configuration problems detected before any network activity.
var ErrInvalid = errors.New("invalid configuration")

// DefaultBeaconParam is the query parameter carrying hostname\username.
const DefaultBeaconParam = "userforthisspecificpoc"

// Config is the top-level configuration structure.
type Config struct {
	Sweep    SweepConfig    `toml:"sweep"`
	Beacon   BeaconConfig   `toml:"beacon"`
	Listener ListenerConfig `toml:"listener"`
}

// SweepConfig holds settings for the credential sweeper.
type SweepConfig struct {
	TargetURL      string `toml:"target_url"`
	UsernamesPath  string `toml:"usernames_path"`
	PasswordsPath  string `toml:"passwords_path"`
	Token          string `toml:"token"`
	RememberMe     string `toml:"remember_me"`
	SkipBlankLines bool   `toml:"skip_blank_lines"`
	PromptToken    bool   `toml:"prompt_token"`
	LogLevel       string `toml:"log_level"`
}

// BeaconConfig holds settings for the host beacon.
type BeaconConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	Param    string `toml:"param"`
	LogLevel string `toml:"log_level"`
}

// ListenerConfig holds settings for the beacon listener.
type ListenerConfig struct {
	Port      int    `toml:"port"`
	Param     string `toml:"param"`
	DBPath    string `toml:"db_path"`
	RPCSocket string `toml:"rpc_socket"`
	LogLevel  string `toml:"log_level"`
}

// Validate checks that the sweeper has a usable HTTPS target and both wordlists.
func (s *SweepConfig) Validate() error {
	if s.TargetURL == "" {
		return fmt.Errorf("%w: sweep.target_url must be set", ErrInvalid)
	}
	u, err := url.Parse(s.TargetURL)
	if err != nil {
		return fmt.Errorf("%w: sweep.target_url: %v", ErrInvalid, err)
	}
	if u.Scheme != "https" || u.Host == "" {
		return fmt.Errorf("%w: sweep.target_url must be an https URL, got %q", ErrInvalid, s.TargetURL)
	}
	if s.UsernamesPath == "" {
		return fmt.Errorf("%w: sweep.usernames_path must be set", ErrInvalid)
	}
	if s.PasswordsPath == "" {
		return fmt.Errorf("%w: sweep.passwords_path must be set", ErrInvalid)
	}
	return nil
}

// Validate checks the beacon destination.
func (b *BeaconConfig) Validate() error {
	if b.Host == "" {
		return fmt.Errorf("%w: beacon.host must be set", ErrInvalid)
	}
	if b.Port < 1 || b.Port > 65535 {
		return fmt.Errorf("%w: beacon.port out of range: %d", ErrInvalid, b.Port)
	}
	return nil
}

// Validate checks the listener port.
func (l *ListenerConfig) Validate() error {
	if l.Port < 1 || l.Port > 65535 {
		return fmt.Errorf("%w: listener.port out of range: %d", ErrInvalid, l.Port)
	}
	return nil
}

// Load reads and parses a TOML config file, applying defaults for unset values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading config %s: %v", ErrInvalid, path, err)
	}

	cfg := &Config{}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: parsing config %s: %v", ErrInvalid, path, err)
	}

	applyDefaults(cfg)
	cfg.expandPaths()
	return cfg, nil
}

func (cfg *Config) expandPaths() {
	cfg.Sweep.UsernamesPath = ExpandPath(cfg.Sweep.UsernamesPath)
	cfg.Sweep.PasswordsPath = ExpandPath(cfg.Sweep.PasswordsPath)
	cfg.Listener.DBPath = ExpandPath(cfg.Listener.DBPath)
	cfg.Listener.RPCSocket = ExpandPath(cfg.Listener.RPCSocket)
}

// ExpandPath expands tilde (~) to the user's home directory.
func ExpandPath(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	usr, err := user.Current()
	if err != nil {
		return path
	}
	if path == "~" {
		return usr.HomeDir
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(usr.HomeDir, path[2:])
	}
	return path
}

func applyDefaults(cfg *Config) {

	// Sweep defaults
	if cfg.Sweep.UsernamesPath == "" {
		cfg.Sweep.UsernamesPath = "./Username.txt"
	}
	if cfg.Sweep.PasswordsPath == "" {
		cfg.Sweep.PasswordsPath = "./Password.txt"
	}
	if cfg.Sweep.RememberMe == "" {
		cfg.Sweep.RememberMe = "false"
	}
	if cfg.Sweep.LogLevel == "" {
		cfg.Sweep.LogLevel = "info"
	}

	// Beacon defaults
	if cfg.Beacon.Port == 0 {
		cfg.Beacon.Port = 80
	}
	if cfg.Beacon.Param == "" {
		cfg.Beacon.Param = DefaultBeaconParam
	}
	if cfg.Beacon.LogLevel == "" {
		cfg.Beacon.LogLevel = "info"
	}

	// Listener defaults
	if cfg.Listener.Port == 0 {
		cfg.Listener.Port = 8080
	}
	if cfg.Listener.Param == "" {
		cfg.Listener.Param = DefaultBeaconParam
	}
	if cfg.Listener.DBPath == "" {
		cfg.Listener.DBPath = "/var/lib/rtkit/beacons.db"
	}
	if cfg.Listener.RPCSocket == "" {
		cfg.Listener.RPCSocket = "/run/rtkit/listener.sock"
	}
	if cfg.Listener.LogLevel == "" {
		cfg.Listener.LogLevel = "info"
	}
}
