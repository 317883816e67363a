package clientip

import (
	"net"
	"net/http"
	"strings"
)

// headers are checked in priority order.
var headers = []string{
	"CF-Connecting-IP",
	"DO-Connecting-IP",
	"X-Forwarded-For",
	"X-Real-IP",
}

// GetIP returns the client IP for r. Proxy headers win over RemoteAddr;
// when nothing parses the raw RemoteAddr is returned.
func GetIP(r *http.Request) string {
	for _, h := range headers {
		value := r.Header.Get(h)
		if value == "" {
			continue
		}
		// X-Forwarded-For: client, proxy1, proxy2
		if first, _, found := strings.Cut(value, ","); found {
			value = first
		}
		if ip := normalize(value); ip != "" {
			return ip
		}
	}

	return RemoteIP(r)
}

// RemoteIP returns the address of the direct peer and ignores proxy headers,
// which any client can set. Use it unless a trusted proxy overwrites them.
func RemoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if ip := normalize(host); ip != "" {
		return ip
	}
	return r.RemoteAddr
}

func normalize(raw string) string {
	ip := net.ParseIP(strings.TrimSpace(raw))
	if ip == nil || ip.IsUnspecified() {
		return ""
	}
	return ip.String()
}
