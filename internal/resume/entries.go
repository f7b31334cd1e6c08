package resume

// List editors for the three entry collections. Each follows the shared
// protocol: add appends an empty entry, update replaces a single field of a
// single entry (silent no-op when the index is out of bounds), remove
// deletes positionally and shifts later entries down. Every operation
// returns a new slice and leaves its input untouched, matching the
// whole-replacement patch contract.

// ExperienceField names an editable field of an ExperienceEntry.
type ExperienceField string

// Editable experience fields.
const (
	ExperienceCompany     ExperienceField = "company"
	ExperiencePosition    ExperienceField = "position"
	ExperienceStartDate   ExperienceField = "startDate"
	ExperienceEndDate     ExperienceField = "endDate"
	ExperienceDescription ExperienceField = "description"
)

// AppendExperience returns entries with one empty entry appended.
func AppendExperience(entries []ExperienceEntry) []ExperienceEntry {
	out := append([]ExperienceEntry(nil), entries...)
	return append(out, ExperienceEntry{})
}

// UpdateExperience returns entries with field of entry i replaced by value.
func UpdateExperience(entries []ExperienceEntry, i int, field ExperienceField, value string) []ExperienceEntry {
	out := append([]ExperienceEntry(nil), entries...)
	if i < 0 || i >= len(out) {
		return out
	}
	switch field {
	case ExperienceCompany:
		out[i].Company = value
	case ExperiencePosition:
		out[i].Position = value
	case ExperienceStartDate:
		out[i].StartDate = value
	case ExperienceEndDate:
		out[i].EndDate = value
	case ExperienceDescription:
		out[i].Description = value
	}
	return out
}

// RemoveExperience returns entries with entry i deleted.
func RemoveExperience(entries []ExperienceEntry, i int) []ExperienceEntry {
	if i < 0 || i >= len(entries) {
		return append([]ExperienceEntry(nil), entries...)
	}
	out := make([]ExperienceEntry, 0, len(entries)-1)
	out = append(out, entries[:i]...)
	return append(out, entries[i+1:]...)
}

// EducationField names an editable field of an EducationEntry.
type EducationField string

// Editable education fields.
const (
	EducationSchool EducationField = "school"
	EducationDegree EducationField = "degree"
	EducationYear   EducationField = "year"
)

// AppendEducation returns entries with one empty entry appended.
func AppendEducation(entries []EducationEntry) []EducationEntry {
	out := append([]EducationEntry(nil), entries...)
	return append(out, EducationEntry{})
}

// UpdateEducation returns entries with field of entry i replaced by value.
func UpdateEducation(entries []EducationEntry, i int, field EducationField, value string) []EducationEntry {
	out := append([]EducationEntry(nil), entries...)
	if i < 0 || i >= len(out) {
		return out
	}
	switch field {
	case EducationSchool:
		out[i].School = value
	case EducationDegree:
		out[i].Degree = value
	case EducationYear:
		out[i].Year = value
	}
	return out
}

// RemoveEducation returns entries with entry i deleted.
func RemoveEducation(entries []EducationEntry, i int) []EducationEntry {
	if i < 0 || i >= len(entries) {
		return append([]EducationEntry(nil), entries...)
	}
	out := make([]EducationEntry, 0, len(entries)-1)
	out = append(out, entries[:i]...)
	return append(out, entries[i+1:]...)
}

// CertificationField names an editable field of a CertificationEntry.
type CertificationField string

// Editable certification fields.
const (
	CertificationName   CertificationField = "name"
	CertificationIssuer CertificationField = "issuer"
	CertificationYear   CertificationField = "year"
)

// AppendCertification returns entries with one empty entry appended.
func AppendCertification(entries []CertificationEntry) []CertificationEntry {
	out := append([]CertificationEntry(nil), entries...)
	return append(out, CertificationEntry{})
}

// UpdateCertification returns entries with field of entry i replaced by value.
func UpdateCertification(entries []CertificationEntry, i int, field CertificationField, value string) []CertificationEntry {
	out := append([]CertificationEntry(nil), entries...)
	if i < 0 || i >= len(out) {
		return out
	}
	switch field {
	case CertificationName:
		out[i].Name = value
	case CertificationIssuer:
		out[i].Issuer = value
	case CertificationYear:
		out[i].Year = value
	}
	return out
}

// RemoveCertification returns entries with entry i deleted.
func RemoveCertification(entries []CertificationEntry, i int) []CertificationEntry {
	if i < 0 || i >= len(entries) {
		return append([]CertificationEntry(nil), entries...)
	}
	out := make([]CertificationEntry, 0, len(entries)-1)
	out = append(out, entries[:i]...)
	return append(out, entries[i+1:]...)
}
