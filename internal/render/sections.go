package render

import (
	"strings"

	"github.com/jonathan/resume-studio/internal/resume"
)

// RenderableSections is the pre-filtered section content shared by every
// layout. Entries that fail the eligibility test are dropped here, so the
// layouts themselves are pure styling over already-filtered content.
type RenderableSections struct {
	Summary        string
	Experience     []resume.ExperienceEntry
	Education      []resume.EducationEntry
	Certifications []resume.CertificationEntry
	Skills         []string
	Order          []resume.SectionKey
	Placeholder    bool
}

// ExtractSections computes the renderable content of a document: eligible
// entries only, the effective section order, and whether placeholder mode
// is active (no real content anywhere).
func ExtractSections(doc resume.Document) RenderableSections {
	out := RenderableSections{
		Summary: strings.TrimSpace(doc.Profile.Summary),
		Skills:  append([]string(nil), doc.Skills...),
	}

	for _, e := range doc.Experience {
		if e.HasContent() {
			out.Experience = append(out.Experience, e)
		}
	}
	for _, e := range doc.Education {
		if e.HasContent() {
			out.Education = append(out.Education, e)
		}
	}
	for _, e := range doc.Certifications {
		if e.HasContent() {
			out.Certifications = append(out.Certifications, e)
		}
	}

	order := doc.SectionOrder
	if !resume.IsValidSectionOrder(order) {
		order = resume.DefaultSectionOrder()
	}
	out.Order = append([]resume.SectionKey(nil), order...)

	out.Placeholder = !doc.HasRealContent()
	return out
}

// Has reports whether the named section has any eligible content to render.
// Sections without content render nothing, not an empty heading.
func (s RenderableSections) Has(key resume.SectionKey) bool {
	switch key {
	case resume.SectionSummary:
		return s.Summary != ""
	case resume.SectionExperience:
		return len(s.Experience) > 0
	case resume.SectionEducation:
		return len(s.Education) > 0
	case resume.SectionCertifications:
		return len(s.Certifications) > 0
	case resume.SectionSkills:
		return len(s.Skills) > 0
	default:
		return false
	}
}

// MainColumnOrder filters the section order down to the keys the modern
// template renders in its main column. Sidebar membership is fixed by the
// template; only the relative order of summary and experience is the
// user's choice.
func (s RenderableSections) MainColumnOrder() []resume.SectionKey {
	var out []resume.SectionKey
	for _, key := range s.Order {
		if key == resume.SectionSummary || key == resume.SectionExperience {
			out = append(out, key)
		}
	}
	return out
}
