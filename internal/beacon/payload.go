// Package beacon builds and sends the host identification request.
package beacon

import (
	"fmt"
	"net/url"
	"strings"

	"rtkit/internal/sysinfo"
)

// Separator is the escaped backslash joining hostname and username.
const Separator = "%5C"

// BuildURL returns http://host:port/?param=<hostname>%5C<username>.
// Both values are query-escaped so the separator occurs exactly once.
func BuildURL(host string, port int, param string, id *sysinfo.Identity) string {
	hostname := url.QueryEscape(id.Hostname)
	username := url.QueryEscape(sysinfo.NormalizeUsername(id.Username))
	return fmt.Sprintf("http://%s:%d/?%s=%s%s%s",
		host, port, url.QueryEscape(param), hostname, Separator, username)
}

// ParseValue splits a received hostname\username value. ok is false when
// the separator is missing.
func ParseValue(v string) (hostname, username string, ok bool) {
	i := strings.LastIndex(v, `\`)
	if i < 0 {
		return "", "", false
	}
	return v[:i], v[i+1:], true
}
