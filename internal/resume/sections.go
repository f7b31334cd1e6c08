package resume

import "fmt"

// SectionKey identifies one of the five reorderable résumé sections.
type SectionKey string

// The fixed section key set. SectionOrder is always a permutation of
// exactly these five keys.
const (
	SectionSummary        SectionKey = "summary"
	SectionExperience     SectionKey = "experience"
	SectionEducation      SectionKey = "education"
	SectionCertifications SectionKey = "certifications"
	SectionSkills         SectionKey = "skills"
)

// SectionLabels maps section keys to their display headings.
var SectionLabels = map[SectionKey]string{
	SectionSummary:        "Professional Summary",
	SectionExperience:     "Work Experience",
	SectionEducation:      "Education",
	SectionCertifications: "Certifications",
	SectionSkills:         "Skills",
}

// DefaultSectionOrder returns a fresh copy of the default permutation.
func DefaultSectionOrder() []SectionKey {
	return []SectionKey{
		SectionSummary,
		SectionExperience,
		SectionEducation,
		SectionCertifications,
		SectionSkills,
	}
}

// IsValidSectionOrder reports whether order is a permutation of the five
// section keys: length five, no duplicates, no unknown keys.
func IsValidSectionOrder(order []SectionKey) bool {
	if len(order) != 5 {
		return false
	}
	seen := make(map[SectionKey]bool, 5)
	for _, key := range order {
		if _, known := SectionLabels[key]; !known {
			return false
		}
		if seen[key] {
			return false
		}
		seen[key] = true
	}
	return true
}

// MoveSection returns a new section order with key moved from index from to
// index to, shifting the keys in between (swap semantics, nothing dropped).
// It returns an error when the indices are out of range, when key is not at
// the from index, or when the current order is not a valid permutation.
func MoveSection(order []SectionKey, key SectionKey, from, to int) ([]SectionKey, error) {
	if !IsValidSectionOrder(order) {
		return nil, fmt.Errorf("section order is not a valid permutation: %v", order)
	}
	if from < 0 || from >= len(order) || to < 0 || to >= len(order) {
		return nil, fmt.Errorf("section move out of range: from=%d to=%d", from, to)
	}
	if order[from] != key {
		return nil, fmt.Errorf("section %q is not at index %d", key, from)
	}

	out := append([]SectionKey(nil), order...)
	if from == to {
		return out, nil
	}
	if from < to {
		copy(out[from:], out[from+1:to+1])
	} else {
		copy(out[to+1:], order[to:from])
	}
	out[to] = key
	return out, nil
}
