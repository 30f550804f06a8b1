package netutil

import (
	"net"
	"strings"
)

// NormalizeIP trims ports and brackets and collapses IPv4-mapped IPv6
// addresses (::ffff:a.b.c.d) to their IPv4 form. Input that does not parse
// as an IP returns "".
func NormalizeIP(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if host, _, err := net.SplitHostPort(s); err == nil {
		s = host
	}
	s = strings.TrimSuffix(strings.TrimPrefix(s, "["), "]")
	if i := strings.IndexByte(s, '%'); i >= 0 {
		s = s[:i]
	}

	ip := net.ParseIP(s)
	if ip == nil {
		return ""
	}
	if v4 := ip.To4(); v4 != nil {
		return v4.String()
	}
	return ip.String()
}

// ClientAddress resolves the effective client address. The socket address
// (already resolved through trusted proxies) wins, then the first entry of
// X-Forwarded-For, then X-Real-IP.
func ClientAddress(socketAddr, forwardedFor, realIP string) string {
	if ip := NormalizeIP(socketAddr); ip != "" {
		return ip
	}
	if forwardedFor != "" {
		first := forwardedFor
		if i := strings.IndexByte(first, ','); i >= 0 {
			first = first[:i]
		}
		if ip := NormalizeIP(first); ip != "" {
			return ip
		}
	}
	return NormalizeIP(realIP)
}
