// Package resume defines the canonical résumé document model and the
// mutation operations every editor surface goes through.
package resume

import "strings"

// Default style values applied to a freshly created document.
const (
	DefaultAccentColor = "#1565C0"
	DefaultTextColor   = "#333333"
	DefaultFontFamily  = "Roboto, sans-serif"
)

// Style holds the visual customization of a document.
type Style struct {
	AccentColor string `json:"color"`
	TextColor   string `json:"textColor"`
	FontFamily  string `json:"font"`
}

// Profile holds the identity block rendered at the top of every template.
type Profile struct {
	FullName string `json:"name"`
	JobTitle string `json:"title"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Summary  string `json:"summary"`
	// Photo is a data-URI image reference, or empty when no photo is set.
	Photo string `json:"photo,omitempty"`
}

// ExperienceEntry is one position in the experience section.
type ExperienceEntry struct {
	Company     string `json:"company"`
	Position    string `json:"position"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description"`
}

// EducationEntry is one school in the education section.
type EducationEntry struct {
	School string `json:"school"`
	Degree string `json:"degree"`
	Year   string `json:"year"`
}

// CertificationEntry is one certification or license.
type CertificationEntry struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Year   string `json:"year"`
}

// Document is the root résumé entity: all content and style for one résumé.
// It is a plain, deeply-cloneable structure with no behavior of its own;
// all mutation goes through the operations in this package.
type Document struct {
	Style          Style                `json:"style"`
	Profile        Profile              `json:"profile"`
	Experience     []ExperienceEntry    `json:"experience"`
	Education      []EducationEntry     `json:"education"`
	Certifications []CertificationEntry `json:"certifications"`
	Skills         []string             `json:"skills"`
	SectionOrder   []SectionKey         `json:"sectionOrder"`
}

// NewDocument returns an empty document with default style, empty collections
// and the default section order.
func NewDocument() Document {
	return Document{
		Style: Style{
			AccentColor: DefaultAccentColor,
			TextColor:   DefaultTextColor,
			FontFamily:  DefaultFontFamily,
		},
		Experience:     []ExperienceEntry{},
		Education:      []EducationEntry{},
		Certifications: []CertificationEntry{},
		Skills:         []string{},
		SectionOrder:   DefaultSectionOrder(),
	}
}

// Clone returns a deep copy of the document. Slices are copied so edits to
// the clone never alias the original.
func (d Document) Clone() Document {
	out := d
	out.Experience = append([]ExperienceEntry(nil), d.Experience...)
	out.Education = append([]EducationEntry(nil), d.Education...)
	out.Certifications = append([]CertificationEntry(nil), d.Certifications...)
	out.Skills = append([]string(nil), d.Skills...)
	out.SectionOrder = append([]SectionKey(nil), d.SectionOrder...)
	return out
}

// Normalize repairs fields that may be missing after decoding an older or
// partial document: nil collections become empty and an invalid section
// order falls back to the default permutation.
func (d *Document) Normalize() {
	if d.Style.AccentColor == "" {
		d.Style.AccentColor = DefaultAccentColor
	}
	if d.Style.TextColor == "" {
		d.Style.TextColor = DefaultTextColor
	}
	if d.Style.FontFamily == "" {
		d.Style.FontFamily = DefaultFontFamily
	}
	if d.Experience == nil {
		d.Experience = []ExperienceEntry{}
	}
	if d.Education == nil {
		d.Education = []EducationEntry{}
	}
	if d.Certifications == nil {
		d.Certifications = []CertificationEntry{}
	}
	if d.Skills == nil {
		d.Skills = []string{}
	}
	if !IsValidSectionOrder(d.SectionOrder) {
		d.SectionOrder = DefaultSectionOrder()
	}
}

// HasContent reports whether the entry identifies a real position: at least
// one of company, position or description is non-blank.
func (e ExperienceEntry) HasContent() bool {
	return !blank(e.Company) || !blank(e.Position) || !blank(e.Description)
}

// HasContent reports whether the entry identifies a real school.
func (e EducationEntry) HasContent() bool {
	return !blank(e.School) || !blank(e.Degree)
}

// HasContent reports whether the entry identifies a real certification.
func (e CertificationEntry) HasContent() bool {
	return !blank(e.Name) || !blank(e.Issuer)
}

// HasRealContent reports whether the document carries any user-entered
// content. Documents without real content render in placeholder mode.
func (d Document) HasRealContent() bool {
	if !blank(d.Profile.Summary) || len(d.Skills) > 0 {
		return true
	}
	for _, e := range d.Experience {
		if e.HasContent() {
			return true
		}
	}
	for _, e := range d.Education {
		if e.HasContent() {
			return true
		}
	}
	for _, e := range d.Certifications {
		if e.HasContent() {
			return true
		}
	}
	return false
}

// DeriveTitle returns the record title for this document: the explicit title
// when provided, otherwise "Name — Title" (template key standing in for a
// missing job title), otherwise "Untitled Resume".
func (d Document) DeriveTitle(explicit, templateKey string) string {
	if explicit != "" {
		return explicit
	}
	if d.Profile.FullName != "" {
		sub := d.Profile.JobTitle
		if sub == "" {
			sub = templateKey
		}
		return d.Profile.FullName + " — " + sub
	}
	return "Untitled Resume"
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
