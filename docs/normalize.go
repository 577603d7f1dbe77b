// Package docs turns raw comment fragments into the documentation text exposed
// by generated code.
package docs

import "strings"

// Normalize joins fragments with "\n". With trim, every fragment is split into
// lines first and each line is trimmed, including the first and last line of
// a multi-line fragment. The boolean is false when there are no fragments.
func Normalize(fragments []string, trim bool) (string, bool) {
	if len(fragments) == 0 {
		return "", false
	}
	if !trim {
		return strings.Join(fragments, "\n"), true
	}
	lines := make([]string, 0, len(fragments))
	for _, frag := range fragments {
		for _, line := range strings.Split(frag, "\n") {
			lines = append(lines, strings.TrimSpace(line))
		}
	}
	return strings.Join(lines, "\n"), true
}
