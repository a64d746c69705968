// Package config parses the receiver's "-c" configuration string and, for
// repeatable field deployments, an optional static YAML profile.
package config

import "strings"

// ParseKV splits a configuration string of the form "key=value,key2=value2"
// (commas and ampersands both accepted as separators, matching the
// reference decoder's ConfigParser) into a map. Entries with no "=" are
// stored with an empty value, matching the original's leftmost-split
// behaviour.
func ParseKV(s string) map[string]string {
	out := make(map[string]string)
	for _, field := range strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '&'
	}) {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		if i := strings.Index(field, "="); i >= 0 {
			out[field[:i]] = field[i+1:]
		} else {
			out[field] = ""
		}
	}
	return out
}
