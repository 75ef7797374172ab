package config

import (
	"net/url"
	"strings"
)

// Per-environment host allow-lists. Matching is substring-or-equality, not
// strict suffix: "192.168." matches any LAN host, and development keeps
// access to the online test backend. This is intentionally loose and a known
// weak point ("nottest.3fenban.com.evil.example" would match
// "test.3fenban.com"); it mirrors the mini-program's configured domain list
// and must not be silently tightened.
var allowedDomains = map[Environment][]string{
	Development: {
		"127.0.0.1",
		"localhost",
		"192.168.",
		"test.3fenban.com",
	},
	Production: {
		"test.3fenban.com",
		"api.3fenban.com",
		"www.3fenban.com",
	},
}

// IsDomainAllowed reports whether rawURL's hostname matches the allow-list
// for env. It fails closed: malformed URLs and URLs without a hostname
// return false, never an error.
func IsDomainAllowed(rawURL string, env Environment) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	hostname := u.Hostname()
	if hostname == "" {
		return false
	}
	for _, domain := range allowedDomains[env] {
		if hostname == domain || strings.Contains(hostname, domain) {
			return true
		}
	}
	return false
}
