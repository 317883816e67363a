// Package clientip extracts client IP addresses from HTTP requests.
//
// GetIP trusts proxy headers in this order, then falls back to RemoteAddr:
//  1. CF-Connecting-IP
//  2. DO-Connecting-IP
//  3. X-Forwarded-For (leftmost entry)
//  4. X-Real-IP
//
// These headers are client controlled unless a proxy in front of the service
// overwrites them. Services exposed directly should use RemoteIP, which reads
// only the connection address.
//
// Results are normalized with net.IP.String; 0.0.0.0 and unparseable values
// are skipped. When nothing parses, the raw RemoteAddr is returned.
package clientip
