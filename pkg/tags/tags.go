// Package tags normalizes notification tags to the form the Pincho API
// accepts.
package tags

import "strings"

// Normalize lowercases and trims each tag, strips characters outside
// [a-z0-9_-], drops tags left empty, and removes duplicates while
// preserving first-occurrence order. Returns nil when nothing survives.
func Normalize(in []string) []string {
	if len(in) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, tag := range in {
		tag = strings.Map(keepAllowed, strings.ToLower(strings.TrimSpace(tag)))
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

func keepAllowed(r rune) rune {
	switch {
	case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
		return r
	default:
		return -1
	}
}
