package address

import "strings"

const DefaultAddr = "0.0.0.0"

// Normalize prepends the wildcard address when only a port was given.
func Normalize(addr string) string {
	if len(Hostname(addr)) == 0 {
		return DefaultAddr + addr
	}

	return addr
}

// Hostname strips the port part from a host:port pair, if one is present.
func Hostname(addr string) string {
	if colon := strings.IndexByte(addr, ':'); colon != -1 {
		return addr[:colon]
	}

	return addr
}

// IsLoopback reports whether the hostname part of addr names the local host
// the way clients commonly spell it.
func IsLoopback(addr string) bool {
	host := Hostname(addr)
	return strings.EqualFold(host, "localhost") || host == "127.0.0.1"
}
