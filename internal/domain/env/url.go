// Where: cli/internal/domain/env/url.go
// What: Decompose the public application URL.
// Why: The gateway port and base path are written as separate variables and
// recombined by the orchestration backend.
package env

import (
	"net/url"
	"strconv"
	"strings"
)

// URLParts is the decomposition of an application URL.
// BaseURL never carries a port or a path.
type URLParts struct {
	BaseURL  string
	BasePath string
	Port     int
}

// HasPort reports whether the source URL carried an explicit port.
func (p URLParts) HasPort() bool {
	return p.Port > 0
}

// String recombines the parts into scheme://host[:port][/path].
func (p URLParts) String() string {
	var b strings.Builder
	b.WriteString(p.BaseURL)
	if p.HasPort() {
		b.WriteString(":")
		b.WriteString(strconv.Itoa(p.Port))
	}
	b.WriteString(p.BasePath)
	return b.String()
}

// Scheme returns the scheme portion of BaseURL.
func (p URLParts) Scheme() string {
	scheme, _, ok := strings.Cut(p.BaseURL, "://")
	if !ok {
		return ""
	}
	return scheme
}

// EffectivePort returns the explicit port or the scheme default.
func (p URLParts) EffectivePort() int {
	if p.HasPort() {
		return p.Port
	}
	if strings.EqualFold(p.Scheme(), "https") {
		return 443
	}
	return 80
}

// ComputeURL parses raw and splits it into base URL, base path and port.
// Trailing slashes on the path are dropped; a root path yields an empty BasePath.
// Credentials, queries and fragments are rejected since the parts cannot carry them.
func ComputeURL(raw string) (URLParts, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return URLParts{}, &InvalidURLError{Input: raw, Reason: "empty"}
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return URLParts{}, &InvalidURLError{Input: raw, Reason: err.Error()}
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return URLParts{}, &InvalidURLError{Input: raw, Reason: "scheme and host are required"}
	}
	if parsed.User != nil {
		return URLParts{}, &InvalidURLError{Input: raw, Reason: "credentials are not allowed"}
	}
	if strings.ContainsAny(trimmed, "?#") {
		return URLParts{}, &InvalidURLError{Input: raw, Reason: "query and fragment are not allowed"}
	}
	hostname := parsed.Hostname()
	if hostname == "" {
		return URLParts{}, &InvalidURLError{Input: raw, Reason: "host is empty"}
	}
	if strings.Contains(hostname, ":") {
		hostname = "[" + hostname + "]"
	}

	parts := URLParts{
		BaseURL: strings.ToLower(parsed.Scheme) + "://" + hostname,
	}
	if rawPort := parsed.Port(); rawPort != "" {
		port, err := strconv.Atoi(rawPort)
		if err != nil || port <= 0 || port > 65535 {
			return URLParts{}, &InvalidURLError{Input: raw, Reason: "port out of range"}
		}
		parts.Port = port
	}
	if path := strings.TrimRight(parsed.EscapedPath(), "/"); path != "" {
		parts.BasePath = path
	}
	return parts, nil
}
