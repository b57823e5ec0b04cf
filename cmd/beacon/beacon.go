// Package beacon implements the rtkit beacon CLI entry point.
package beacon

import (
	"context"
	"fmt"
	"os"

	hostbeacon "rtkit/internal/beacon"
	"rtkit/internal/sysinfo"
	"rtkit/pkg/config"
	"rtkit/pkg/logger"
)

// Run sends one identity beacon to the configured listener.
func Run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.Init(cfg.Beacon.LogLevel)

	if err := cfg.Beacon.Validate(); err != nil {
		return err
	}

	id, err := sysinfo.Collect()
	if err != nil {
		return fmt.Errorf("collecting identity: %w", err)
	}

	target := hostbeacon.BuildURL(cfg.Beacon.Host, cfg.Beacon.Port, cfg.Beacon.Param, id)

	log.Info().
		Str("hostname", id.Hostname).
		Str("username", id.Username).
		Str("os", id.OSName).
		Str("target", target).
		Msg("Sending beacon")

	return hostbeacon.Send(context.Background(), nil, target, os.Stdout, log)
}
