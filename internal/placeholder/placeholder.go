// Package placeholder tells real configuration values apart from the
// unfilled template defaults that setup guides and sample files leave
// behind.
package placeholder

import (
	"net/url"
	"strings"
)

// Denylist holds the template fragments that must never survive in a
// generated config document. Matching is case-insensitive.
var Denylist = []string{
	"your-",
	"<your",
	"/path/to/",
	"your_resource_name",
	"changeme",
}

// IsPlaceholder reports whether value is an unfilled template default
// rather than a real configured value. Empty and whitespace-only values
// count as placeholders.
func IsPlaceholder(value string) bool {
	v := strings.TrimSpace(value)
	if v == "" {
		return true
	}
	lower := strings.ToLower(v)
	if strings.HasPrefix(lower, "your-") {
		return true
	}
	if strings.HasPrefix(v, "<") && strings.HasSuffix(v, ">") {
		return true
	}
	if strings.HasPrefix(lower, "/path/to/") {
		return true
	}
	if u, err := url.Parse(v); err == nil && u.Scheme != "" {
		if strings.HasPrefix(strings.ToLower(u.Host), "your-") {
			return true
		}
	}
	return false
}

// ContainsTemplate reports whether line carries any [Denylist] fragment.
func ContainsTemplate(line string) bool {
	lower := strings.ToLower(line)
	for _, fragment := range Denylist {
		if strings.Contains(lower, fragment) {
			return true
		}
	}
	return false
}
