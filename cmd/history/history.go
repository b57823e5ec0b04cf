// Package history implements the rtkit history CLI (recorded beacon table).
package history

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"rtkit/internal/rpc"
	"rtkit/internal/store"
	"rtkit/pkg/config"
)

// Run fetches recorded beacons from a running listener and prints them.
func Run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	client, err := rpc.NewClient(cfg.Listener.RPCSocket)
	if err != nil {
		return fmt.Errorf("connecting to listener: %w\nIs 'rtkit listen' running?", err)
	}
	defer client.Close()

	records, err := client.ListBeacons()
	if err != nil {
		return fmt.Errorf("fetching beacons: %w", err)
	}

	if len(records) == 0 {
		fmt.Println("No beacons received yet.")
		return nil
	}

	fmt.Printf("\n  Beacons (%d sources)\n\n", len(records))
	displayBeaconTable(os.Stdout, records)
	return nil
}

func displayBeaconTable(w io.Writer, records []store.BeaconRecord) {
	bold := color.New(color.FgWhite, color.Bold).SprintFunc()

	fmt.Fprintf(w, "  %s\n", bold(fmt.Sprintf("%-4s %-24s %-16s %-22s %-6s %-19s",
		"#", "Hostname", "Username", "Remote", "Count", "Last Seen")))
	fmt.Fprintf(w, "  %s %s %s %s %s %s\n",
		strings.Repeat("─", 4),
		strings.Repeat("─", 24),
		strings.Repeat("─", 16),
		strings.Repeat("─", 22),
		strings.Repeat("─", 6),
		strings.Repeat("─", 19))

	for i, r := range records {
		fmt.Fprintf(w, "  %-4d %s %s %-22s %-6d %-19s\n",
			i+1,
			color.GreenString("%-24s", truncate(r.Hostname, 24)),
			color.CyanString("%-16s", truncate(r.Username, 16)),
			truncate(r.RemoteAddr, 22),
			r.Count,
			r.LastSeen.Format("2006-01-02 15:04:05"),
		)
	}
}

func truncate(s string, maxLen int) string {
	if len([]rune(s)) <= maxLen {
		return s
	}
	return string([]rune(s)[:maxLen-1]) + "…"
}
