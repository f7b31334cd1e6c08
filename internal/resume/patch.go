package resume

// Patch is a partial overlay over a document's top-level fields. Nil fields
// are left untouched; non-nil fields replace the current value wholesale.
// Array-valued fields follow the whole-replacement contract: callers supply
// the complete new slice after an insert, delete or reorder, never a delta.
type Patch struct {
	AccentColor    *string               `json:"color,omitempty"`
	TextColor      *string               `json:"textColor,omitempty"`
	FontFamily     *string               `json:"font,omitempty"`
	FullName       *string               `json:"name,omitempty"`
	JobTitle       *string               `json:"title,omitempty"`
	Email          *string               `json:"email,omitempty"`
	Phone          *string               `json:"phone,omitempty"`
	Location       *string               `json:"location,omitempty"`
	Summary        *string               `json:"summary,omitempty"`
	Photo          *string               `json:"photo,omitempty"`
	Experience     *[]ExperienceEntry    `json:"experience,omitempty"`
	Education      *[]EducationEntry     `json:"education,omitempty"`
	Certifications *[]CertificationEntry `json:"certifications,omitempty"`
	Skills         *[]string             `json:"skills,omitempty"`
	SectionOrder   *[]SectionKey         `json:"sectionOrder,omitempty"`
}

// IsZero reports whether the patch names no fields at all.
func (p Patch) IsZero() bool {
	return p.AccentColor == nil && p.TextColor == nil && p.FontFamily == nil &&
		p.FullName == nil && p.JobTitle == nil && p.Email == nil &&
		p.Phone == nil && p.Location == nil && p.Summary == nil &&
		p.Photo == nil && p.Experience == nil && p.Education == nil &&
		p.Certifications == nil && p.Skills == nil && p.SectionOrder == nil
}

// Apply merges the patch into doc and returns the resulting document. The
// input document is never mutated; named fields are overwritten, everything
// else is carried over unchanged.
func Apply(doc Document, p Patch) Document {
	out := doc.Clone()

	if p.AccentColor != nil {
		out.Style.AccentColor = *p.AccentColor
	}
	if p.TextColor != nil {
		out.Style.TextColor = *p.TextColor
	}
	if p.FontFamily != nil {
		out.Style.FontFamily = *p.FontFamily
	}
	if p.FullName != nil {
		out.Profile.FullName = *p.FullName
	}
	if p.JobTitle != nil {
		out.Profile.JobTitle = *p.JobTitle
	}
	if p.Email != nil {
		out.Profile.Email = *p.Email
	}
	if p.Phone != nil {
		out.Profile.Phone = *p.Phone
	}
	if p.Location != nil {
		out.Profile.Location = *p.Location
	}
	if p.Summary != nil {
		out.Profile.Summary = *p.Summary
	}
	if p.Photo != nil {
		out.Profile.Photo = *p.Photo
	}
	if p.Experience != nil {
		out.Experience = append([]ExperienceEntry{}, *p.Experience...)
	}
	if p.Education != nil {
		out.Education = append([]EducationEntry{}, *p.Education...)
	}
	if p.Certifications != nil {
		out.Certifications = append([]CertificationEntry{}, *p.Certifications...)
	}
	if p.Skills != nil {
		out.Skills = append([]string{}, *p.Skills...)
	}
	if p.SectionOrder != nil && IsValidSectionOrder(*p.SectionOrder) {
		out.SectionOrder = append([]SectionKey{}, *p.SectionOrder...)
	}
	return out
}

// StringPtr is a convenience helper for building patches.
func StringPtr(s string) *string { return &s }
