// Package sysinfo collects the local identity reported by the host beacon.
package sysinfo

import (
	"fmt"
	"os"
	"os/user"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v3/host"
)

// Identity holds the values embedded in a beacon.
type Identity struct {
	Hostname string
	Username string
	OSName   string
}

// Collect resolves the hostname and current login name.
func Collect() (*Identity, error) {
	hostname, err := os.Hostname()
	if err != nil || hostname == "" {
		hostInfo, herr := host.Info()
		if herr != nil {
			return nil, fmt.Errorf("resolving hostname: %w", herr)
		}
		hostname = hostInfo.Hostname
	}

	username := currentUsername()
	if username == "" {
		return nil, fmt.Errorf("resolving current username: no login name available")
	}

	return &Identity{
		Hostname: hostname,
		Username: username,
		OSName:   osName(),
	}, nil
}

// currentUsername prefers the account database and falls back to the
// environment for containers without a passwd entry.
func currentUsername() string {
	username := ""
	if u, err := user.Current(); err == nil {
		username = u.Username
	}
	if username == "" {
		username = os.Getenv("USER")
	}
	if username == "" {
		username = os.Getenv("USERNAME")
	}
	return NormalizeUsername(username)
}

// NormalizeUsername strips a Windows DOMAIN\ prefix and surrounding space.
func NormalizeUsername(name string) string {
	name = strings.TrimSpace(name)
	if i := strings.LastIndex(name, `\`); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// osName retrieves a short platform description for logging.
func osName() string {
	hostInfo, err := host.Info()
	if err != nil {
		return runtime.GOOS
	}
	name := hostInfo.Platform
	if name == "" {
		name = runtime.GOOS
	}
	if hostInfo.PlatformVersion != "" {
		name += " " + hostInfo.PlatformVersion
	}
	return name
}
