package hosts

import (
	"net"
	"strings"
)

// Match reports whether needle is root or a subdomain of it.
//
// google.com, www.google.com -> www., true
// google.com, google.com -> "", true
// google.com, yahoo.com -> "", false
func Match(root, needle string) (sub string, ok bool) {
	root = strings.TrimSuffix(root, ".")
	needle = strings.TrimSuffix(needle, ".")
	at := len(needle) - len(root)
	if at >= 0 && strings.EqualFold(needle[at:], root) {
		if at == 0 {
			return "", true
		}
		if needle[at-1] == '.' {
			return needle[:at], true
		}
	}
	return
}

var localhosts = map[string]bool{
	"localhost":             true,
	"localhost.localdomain": true,
	"ip6-localhost":         true,
	"ip6-loopback":          true,
}

func IsLocal(host string) bool {
	host = strings.ToLower(host)
	return strings.HasSuffix(host, ".local") ||
		strings.HasSuffix(host, ".localhost") ||
		localhosts[host]
}

// IsLoopback reports whether the entry's address is a loopback address.
func (e Entry) IsLoopback() bool {
	ip := net.ParseIP(e.IPAddress)
	return ip != nil && ip.IsLoopback()
}

// IsLocal reports whether the entry maps a local name or a loopback address.
func (e Entry) IsLocal() bool {
	if e.IsLoopback() {
		return true
	}
	for _, h := range e.Hostnames() {
		if IsLocal(h) {
			return true
		}
	}
	return false
}

// InDomain reports whether any of the entry's names is within domain.
func (e Entry) InDomain(domain string) bool {
	for _, h := range e.Hostnames() {
		if _, ok := Match(domain, h); ok {
			return true
		}
	}
	return false
}
