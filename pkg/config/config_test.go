package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_ValidConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")

	content := `
[sweep]
  target_url       = "https://login.test/api/session"
  usernames_path   = "/tmp/users.txt"
  passwords_path   = "/tmp/passwords.txt"
  token            = "abc123"
  remember_me      = "true"
  skip_blank_lines = true
  log_level        = "debug"

[beacon]
  host  = "10.0.0.5"
  port  = 8080
  param = "id"

[listener]
  port       = 9090
  db_path    = "/tmp/beacons.db"
  rpc_socket = "/tmp/listener.sock"
`
	if err := os.WriteFile(cfgPath, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Sweep.TargetURL != "https://login.test/api/session" {
		t.Errorf("Sweep.TargetURL: got %s", cfg.Sweep.TargetURL)
	}
	if cfg.Sweep.Token != "abc123" {
		t.Errorf("Sweep.Token: got %s, want abc123", cfg.Sweep.Token)
	}
	if cfg.Sweep.RememberMe != "true" {
		t.Errorf("Sweep.RememberMe: got %s, want true", cfg.Sweep.RememberMe)
	}
	if !cfg.Sweep.SkipBlankLines {
		t.Error("Sweep.SkipBlankLines: got false, want true")
	}
	if cfg.Sweep.LogLevel != "debug" {
		t.Errorf("Sweep.LogLevel: got %s, want debug", cfg.Sweep.LogLevel)
	}
	if cfg.Beacon.Host != "10.0.0.5" || cfg.Beacon.Port != 8080 {
		t.Errorf("Beacon: got %s:%d, want 10.0.0.5:8080", cfg.Beacon.Host, cfg.Beacon.Port)
	}
	if cfg.Beacon.Param != "id" {
		t.Errorf("Beacon.Param: got %s, want id", cfg.Beacon.Param)
	}
	if cfg.Listener.Port != 9090 {
		t.Errorf("Listener.Port: got %d, want 9090", cfg.Listener.Port)
	}
	if cfg.Listener.DBPath != "/tmp/beacons.db" {
		t.Errorf("Listener.DBPath: got %s, want /tmp/beacons.db", cfg.Listener.DBPath)
	}
}

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")

	// Minimal config — all defaults should apply
	content := `
[sweep]
  target_url = "https://login.test/"
`
	if err := os.WriteFile(cfgPath, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Sweep.RememberMe != "false" {
		t.Errorf("default RememberMe: got %q, want \"false\"", cfg.Sweep.RememberMe)
	}
	if cfg.Sweep.Token != "" {
		t.Errorf("default Token: got %q, want empty", cfg.Sweep.Token)
	}
	if cfg.Sweep.UsernamesPath != "./Username.txt" {
		t.Errorf("default UsernamesPath: got %s", cfg.Sweep.UsernamesPath)
	}
	if cfg.Sweep.SkipBlankLines {
		t.Error("default SkipBlankLines: got true, want false")
	}
	if cfg.Beacon.Port != 80 {
		t.Errorf("default Beacon.Port: got %d, want 80", cfg.Beacon.Port)
	}
	if cfg.Beacon.Param != DefaultBeaconParam {
		t.Errorf("default Beacon.Param: got %s, want %s", cfg.Beacon.Param, DefaultBeaconParam)
	}
	if cfg.Listener.Port != 8080 {
		t.Errorf("default Listener.Port: got %d, want 8080", cfg.Listener.Port)
	}
	if cfg.Listener.LogLevel != "info" {
		t.Errorf("default Listener.LogLevel: got %s, want info", cfg.Listener.LogLevel)
	}
}

func TestLoad_NonexistentFile(t *testing.T) {
	_, err := Load("/nonexistent/config.toml")
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid for nonexistent file, got %v", err)
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")

	if err := os.WriteFile(cfgPath, []byte("invalid [[[ toml"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, err := Load(cfgPath)
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid for invalid TOML, got %v", err)
	}
}

func TestSweepValidate(t *testing.T) {
	valid := SweepConfig{
		TargetURL:     "https://login.test/api",
		UsernamesPath: "u.txt",
		PasswordsPath: "p.txt",
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	missing := valid
	missing.TargetURL = ""
	if err := missing.Validate(); !errors.Is(err, ErrInvalid) {
		t.Errorf("missing target: got %v, want ErrInvalid", err)
	}

	plain := valid
	plain.TargetURL = "http://login.test/api"
	if err := plain.Validate(); !errors.Is(err, ErrInvalid) {
		t.Errorf("plaintext target: got %v, want ErrInvalid", err)
	}

	noList := valid
	noList.PasswordsPath = ""
	if err := noList.Validate(); !errors.Is(err, ErrInvalid) {
		t.Errorf("missing passwords path: got %v, want ErrInvalid", err)
	}
}

func TestBeaconValidate(t *testing.T) {
	b := BeaconConfig{Port: 80}
	if err := b.Validate(); !errors.Is(err, ErrInvalid) {
		t.Errorf("missing host: got %v, want ErrInvalid", err)
	}

	b.Host = "127.0.0.1"
	if err := b.Validate(); err != nil {
		t.Errorf("valid beacon rejected: %v", err)
	}

	b.Port = 70000
	if err := b.Validate(); !errors.Is(err, ErrInvalid) {
		t.Errorf("bad port: got %v, want ErrInvalid", err)
	}
}

func TestExpandPath_NoTilde(t *testing.T) {
	if got := ExpandPath("/abs/path"); got != "/abs/path" {
		t.Errorf("absolute path changed: got %s", got)
	}
	if got := ExpandPath("rel/~path"); got != "rel/~path" {
		t.Errorf("relative path changed: got %s", got)
	}
}
