package resume

import "strings"

// AddSkill returns skills with the trimmed value appended. Blank input and
// exact (case-sensitive) duplicates leave the slice unchanged; a genuinely
// new skill is appended at the end, preserving insertion order.
func AddSkill(skills []string, value string) []string {
	trimmed := strings.TrimSpace(value)
	out := append([]string(nil), skills...)
	if trimmed == "" {
		return out
	}
	for _, s := range out {
		if s == trimmed {
			return out
		}
	}
	return append(out, trimmed)
}

// RemoveSkill returns skills with the exact value removed, if present.
func RemoveSkill(skills []string, value string) []string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		if s != value {
			out = append(out, s)
		}
	}
	return out
}
