// rtkit: credential sweeper and host beacon for authorized assessments.
//
// Usage:
//
//	rtkit sweep   - PUT every username/password pair to the target
//	rtkit beacon  - report hostname and username to a listener
//	rtkit listen  - receive and record beacons
//	rtkit history - list recorded beacons
package main

import (
	"fmt"
	"os"
	"strings"

	"rtkit/cmd/beacon"
	"rtkit/cmd/edit"
	"rtkit/cmd/history"
	"rtkit/cmd/listen"
	"rtkit/cmd/sweep"
)

const (
	defaultSystemPath = "/etc/rtkit/config.toml"
	defaultLocalPath  = "rtkit.toml"
	version           = "0.3.0"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	configPath, args := splitConfigFlag(os.Args[1:])

	// Auto-discover config if not specified
	if configPath == "" {
		if _, err := os.Stat(defaultLocalPath); err == nil {
			configPath = defaultLocalPath
		} else {
			configPath = defaultSystemPath
		}
	}

	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	subcommand := args[0]
	var err error

	switch subcommand {
	case "sweep":
		err = sweep.Run(configPath)
	case "beacon":
		err = beacon.Run(configPath)
	case "listen":
		err = listen.Run(configPath)
	case "history":
		err = history.Run(configPath)
	case "edit":
		err = edit.Run(configPath)
	case "version":
		fmt.Printf("rtkit v%s\n", version)
		return
	case "help", "--help", "-h":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", subcommand)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// splitConfigFlag removes --config <path> or --config=<path> from args.
func splitConfigFlag(in []string) (string, []string) {
	configPath := ""
	args := make([]string, 0, len(in))
	for i := 0; i < len(in); i++ {
		arg := in[i]
		if arg == "--config" && i+1 < len(in) {
			configPath = in[i+1]
			i++
			continue
		}
		if strings.HasPrefix(arg, "--config=") && len(arg) > len("--config=") {
			configPath = strings.TrimPrefix(arg, "--config=")
			continue
		}
		args = append(args, arg)
	}
	return configPath, args
}

func printUsage() {
	fmt.Printf(`rtkit v%s - credential sweeper and host beacon

Usage:
  rtkit <command> [--config <path>]

Commands:
  sweep    PUT every username/password pair to sweep.target_url
  beacon   Send hostname and username to the configured listener
  listen   Receive beacons and record them
  history  List beacons recorded by a running listener
  edit     Edit the configuration file in your system editor
  version  Print version information
  help     Show this help message

Options:
  --config <path>  Path to config file (default: looks for ./%s, then %s)

Examples:
  rtkit edit                            # Create and edit configuration
  rtkit sweep > responses.txt           # Response bodies on stdout, logs on stderr
  rtkit listen --config ./rtkit.toml    # Start the beacon listener

`, version, defaultLocalPath, defaultSystemPath)
}
