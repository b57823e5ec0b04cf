// Package edit implements the rtkit edit command.
package edit

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

const defaultConfigTemplate = `[sweep]
  target_url       = ""
  usernames_path   = "./Username.txt"
  passwords_path   = "./Password.txt"
  token            = ""
  remember_me      = "false"
  skip_blank_lines = false
  prompt_token     = false
  log_level        = "info"

[beacon]
  host      = ""
  port      = 80
  param     = "userforthisspecificpoc"
  log_level = "info"

[listener]
  port       = 8080
  param      = "userforthisspecificpoc"
  db_path    = "/var/lib/rtkit/beacons.db"
  rpc_socket = "/run/rtkit/listener.sock"
  log_level  = "info"
`

// Run opens the configuration file in the system editor.
// If the file does not exist, it creates it with default values.
func Run(path string) error {
	if err := ensureConfig(path); err != nil {
		return err
	}

	editor, err := findEditor()
	if err != nil {
		return err
	}

	cmd := exec.Command(editor, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd.Run()
}

// ensureConfig seeds path with the default template when it is missing.
func ensureConfig(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	// Create file if it doesn't exist
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Printf("Creating new config file at %s...\n", path)
		if err := os.WriteFile(path, []byte(defaultConfigTemplate), 0600); err != nil {
			return fmt.Errorf("writing default config: %w", err)
		}
	}

	return nil
}

// findEditor returns $EDITOR or the first of vi, nano, vim found in PATH.
func findEditor() (string, error) {
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor, nil
	}
	for _, e := range []string{"vi", "nano", "vim"} {
		if _, err := exec.LookPath(e); err == nil {
			return e, nil
		}
	}
	return "", fmt.Errorf("no editor found ($EDITOR environment variable not set, and vi/nano/vim not in PATH)")
}
