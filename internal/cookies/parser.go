// Package cookies handles Instagram session cookie strings: parsing,
// canonical formatting, and import from local web browsers.
package cookies

import (
	"sort"
	"strings"
)

// EssentialNames are the cookies Instagram needs for an authenticated
// session, in the canonical order they are serialized.
var EssentialNames = []string{
	"csrftoken",
	"sessionid",
	"ds_user_id",
	"mid",
	"ig_did",
	"ig_nrcb",
	"rur",
}

// Parse splits a "k=v; k=v" cookie string into a map. Malformed parts are
// skipped; values keep any embedded "=".
func Parse(cookieStr string) map[string]string {
	out := make(map[string]string)
	for _, part := range strings.Split(cookieStr, ";") {
		key, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key != "" && value != "" {
			out[key] = value
		}
	}
	return out
}

// Format serializes a cookie map as "k=v; k=v". Essential cookies come first
// in their canonical order, anything else follows alphabetically, so the same
// map always formats to the same string.
func Format(m map[string]string) string {
	var parts []string
	seen := make(map[string]bool)
	for _, name := range EssentialNames {
		if v, ok := m[name]; ok && v != "" {
			parts = append(parts, name+"="+v)
			seen[name] = true
		}
	}

	var rest []string
	for k, v := range m {
		if !seen[k] && v != "" {
			rest = append(rest, k+"="+v)
		}
	}
	sort.Strings(rest)

	return strings.Join(append(parts, rest...), "; ")
}

// Essential keeps only the essential session cookies from m.
func Essential(m map[string]string) map[string]string {
	out := make(map[string]string)
	for _, name := range EssentialNames {
		if v, ok := m[name]; ok && v != "" {
			out[name] = v
		}
	}
	return out
}

// EssentialString builds the canonical cookie string for a session, dropping
// everything that is not part of the essential set.
func EssentialString(m map[string]string) string {
	return Format(Essential(m))
}
