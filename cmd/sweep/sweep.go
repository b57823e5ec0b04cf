// Package sweep implements the rtkit sweep CLI entry point.
package sweep

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/term"

	credsweep "rtkit/internal/sweep"
	"rtkit/internal/wordlist"
	"rtkit/pkg/config"
	"rtkit/pkg/logger"
)

// Run loads both wordlists and sweeps every credential pair against the target.
func Run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.Init(cfg.Sweep.LogLevel)

	if err := cfg.Sweep.Validate(); err != nil {
		return err
	}

	// Both lists are read before the first request goes out.
	usernames, err := wordlist.Load(cfg.Sweep.UsernamesPath, cfg.Sweep.SkipBlankLines)
	if err != nil {
		return err
	}
	passwords, err := wordlist.Load(cfg.Sweep.PasswordsPath, cfg.Sweep.SkipBlankLines)
	if err != nil {
		return err
	}

	token := cfg.Sweep.Token
	if cfg.Sweep.PromptToken {
		if token, err = promptToken(); err != nil {
			return err
		}
	}

	s := &credsweep.Sweeper{
		TargetURL:  cfg.Sweep.TargetURL,
		Token:      token,
		RememberMe: cfg.Sweep.RememberMe,
		Out:        os.Stdout,
		Log:        log,
	}

	n, err := s.Run(context.Background(), usernames, passwords)
	if err != nil {
		log.Error().Int("completed", n).Msg("Sweep aborted")
		return fmt.Errorf("sweep: %w", err)
	}
	return nil
}

func promptToken() (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("%w: prompt_token requires an interactive terminal", config.ErrInvalid)
	}

	fmt.Fprint(os.Stderr, "Session token: ")
	tokenBytes, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading token: %w", err)
	}
	return string(tokenBytes), nil
}
