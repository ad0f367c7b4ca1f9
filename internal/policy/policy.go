// Package policy splits trade-policy cells into their text and the
// trailing note-reference markers.
package policy

import (
	"regexp"
	"strings"
)

var refsRe = regexp.MustCompile(`^(.*?)([*\d,]+)$`)

// Extract splits a cell like "Restricted*1,2" into its policy text and
// individual reference tokens ("*", "1", "2"). Cells without trailing
// markers come back with nil refs.
func Extract(cell string) (string, []string) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return "", nil
	}

	m := refsRe.FindStringSubmatch(s)
	if m == nil {
		return s, nil
	}

	text := strings.TrimSpace(m[1])
	var refs []string
	for _, part := range strings.Split(m[2], ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if strings.Trim(part, "*") == "" {
			for range part {
				refs = append(refs, "*")
			}
			continue
		}
		for _, r := range part {
			refs = append(refs, string(r))
		}
	}
	return text, refs
}
