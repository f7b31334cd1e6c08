package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/jonathan/resume-studio/internal/resume"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var pageTemplates = template.Must(template.New("layouts").ParseFS(templateFS, "templates/*.tmpl"))

// page is the view model handed to the layout templates. Styling is
// precomputed into a CSS block so the templates stay pure markup; the photo
// is a data URI and must bypass the template URL filter.
type page struct {
	CSS        template.CSS
	Name       string
	Title      string
	Email      string
	Phone      string
	Location   string
	Photo      template.URL
	HasContact bool
	Sections   RenderableSections
	MainOrder  []resume.SectionKey
}

func buildPage(doc resume.Document, css string) page {
	secs := ExtractSections(doc)

	name := doc.Profile.FullName
	if name == "" {
		name = "Your Name"
	}
	title := doc.Profile.JobTitle
	if title == "" {
		title = "Job Title"
	}

	return page{
		CSS:        template.CSS(css),
		Name:       name,
		Title:      title,
		Email:      doc.Profile.Email,
		Phone:      doc.Profile.Phone,
		Location:   doc.Profile.Location,
		Photo:      template.URL(doc.Profile.Photo),
		HasContact: doc.Profile.Email != "" || doc.Profile.Phone != "" || doc.Profile.Location != "",
		Sections:   secs,
		MainOrder:  secs.MainColumnOrder(),
	}
}

func executeLayout(name string, key Key, doc resume.Document, css string) (*Document, error) {
	p := buildPage(doc, css)

	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, name, p); err != nil {
		return nil, fmt.Errorf("failed to execute %s layout: %w", name, err)
	}

	return &Document{
		Template:    key,
		Width:       PageWidth,
		Height:      PageHeight,
		Placeholder: p.Sections.Placeholder,
		HTML:        buf.String(),
	}, nil
}

// baseCSS holds the rules shared by all layouts: the fixed virtual page,
// the document's font and the accent/text colors as variables.
func baseCSS(style resume.Style) string {
	return fmt.Sprintf(`
:root { --accent: %s; --accent-tint: %s18; --text: %s; }
* { margin: 0; padding: 0; box-sizing: border-box; }
body { width: %dpx; min-height: %dpx; background: #ffffff; font-family: %s; color: var(--text); }
.section { margin-bottom: 16px; }
.placeholder { opacity: 0.5; }
.placeholder .ph-heading { font-size: 9px; font-weight: 700; text-transform: uppercase; letter-spacing: 1px; color: var(--accent); margin-bottom: 4px; }
.placeholder .ph-body { font-size: 8.5px; line-height: 1.6; }
.placeholder .ph-entry { margin-bottom: 12px; border-left: 2px solid var(--accent); padding-left: 10px; }
.placeholder .ph-role { font-size: 10px; font-weight: 700; }
.placeholder .ph-org { font-size: 8.5px; font-weight: 600; color: var(--accent); }
.placeholder .ph-dates { font-size: 7.5px; }
`, style.AccentColor, style.AccentColor, style.TextColor, PageWidth, PageHeight, style.FontFamily)
}

func layoutModern(doc resume.Document) (*Document, error) {
	css := baseCSS(doc.Style) + `
.page { display: flex; min-height: 842px; }
.sidebar { width: 190px; background: var(--accent); color: #ffffff; padding: 20px; display: flex; flex-direction: column; gap: 8px; }
.sidebar .photo { width: 80px; height: 80px; border-radius: 50%; object-fit: cover; margin: 0 auto 8px; border: 3px solid rgba(255,255,255,0.3); }
.side-heading { font-size: 8px; font-weight: 700; text-transform: uppercase; letter-spacing: 1.5px; opacity: 0.6; margin-top: 8px; }
.side-item { font-size: 7.5px; opacity: 0.9; }
.side-entry { margin-bottom: 6px; }
.side-entry .primary { font-size: 8px; font-weight: 600; }
.side-entry .secondary { font-size: 7.5px; opacity: 0.8; }
.side-entry .year { font-size: 7px; opacity: 0.6; }
.side-rule { height: 1px; background: rgba(255,255,255,0.15); margin: 8px 0; }
.contact-line { font-size: 7.5px; word-break: break-all; }
.main { flex: 1; padding: 24px; }
.name { font-size: 22px; font-weight: 800; color: var(--accent); }
.job-title { font-size: 12px; margin-bottom: 8px; }
.accent-rule { height: 2.5px; background: var(--accent); border-radius: 2px; margin-bottom: 16px; }
.heading { font-size: 9px; font-weight: 700; text-transform: uppercase; letter-spacing: 1px; color: var(--accent); margin-bottom: 6px; }
.entry { margin-bottom: 12px; border-left: 2px solid var(--accent); padding-left: 10px; }
.entry .position { font-size: 10px; font-weight: 700; }
.entry .company { font-size: 8.5px; font-weight: 600; color: var(--accent); }
.entry .dates { font-size: 7.5px; }
.entry .description { font-size: 8px; margin-top: 2px; line-height: 1.5; }
.summary-text { font-size: 8.5px; line-height: 1.6; }
`
	return executeLayout("modern", KeyModern, doc, css)
}

func layoutClassic(doc resume.Document) (*Document, error) {
	css := baseCSS(doc.Style) + `
.page { padding: 28px; min-height: 842px; }
.header { text-align: center; margin-bottom: 8px; }
.header .photo { width: 80px; height: 80px; border-radius: 50%; object-fit: cover; margin: 0 auto 8px; border: 3px solid var(--accent); display: block; }
.name { font-size: 24px; font-weight: 800; color: var(--accent); }
.job-title { font-size: 12px; }
.contact-row { display: flex; justify-content: center; gap: 16px; flex-wrap: wrap; font-size: 8px; margin-bottom: 8px; }
.accent-rule { height: 2px; background: var(--accent); margin-bottom: 16px; }
.heading { font-size: 10px; font-weight: 700; text-transform: uppercase; color: var(--accent); margin-bottom: 2px; }
.divider { height: 1px; background: #e0e0e0; margin-bottom: 6px; }
.entry { margin-bottom: 10px; }
.entry-row { display: flex; justify-content: space-between; }
.entry .position { font-size: 9.5px; font-weight: 700; }
.entry .dates { font-size: 8px; flex-shrink: 0; margin-left: 8px; }
.entry .description { font-size: 8px; margin-top: 2px; line-height: 1.5; }
.line-item { display: flex; justify-content: space-between; margin-bottom: 4px; }
.line-item .primary { font-size: 9px; font-weight: 600; }
.line-item .year { font-size: 8px; }
.summary-text { font-size: 8.5px; line-height: 1.6; }
.skills-line { font-size: 8.5px; }
`
	return executeLayout("classic", KeyClassic, doc, css)
}

func layoutCreative(doc resume.Document) (*Document, error) {
	css := baseCSS(doc.Style) + fmt.Sprintf(`
.banner { background: linear-gradient(135deg, %s 0%%, %sCC 100%%); color: #ffffff; padding: 24px; display: flex; gap: 16px; align-items: center; }
.banner .photo { width: 70px; height: 70px; border-radius: 50%%; object-fit: cover; border: 3px solid rgba(255,255,255,0.4); }
.name { font-size: 22px; font-weight: 800; }
.job-title { font-size: 12px; opacity: 0.85; }
.contact-row { display: flex; gap: 12px; flex-wrap: wrap; font-size: 8px; opacity: 0.7; margin-top: 4px; }
.body { padding: 24px; }
.heading { font-size: 10px; font-weight: 700; color: var(--accent); margin-bottom: 6px; }
.callout { background: var(--accent-tint); border-left: 3px solid var(--accent); border-radius: 6px; padding: 12px; font-size: 8.5px; line-height: 1.6; margin-bottom: 16px; }
.chips { display: flex; flex-wrap: wrap; gap: 4px; }
.chip { background: var(--accent-tint); color: var(--accent); border-radius: 10px; padding: 2px 8px; font-size: 8px; font-weight: 600; }
.entry { position: relative; padding-left: 12px; margin-bottom: 12px; }
.dot { position: absolute; left: 0; top: 4px; width: 6px; height: 6px; border-radius: 50%%; background: var(--accent); }
.entry .position { font-size: 9.5px; font-weight: 700; }
.entry .company { font-size: 8.5px; font-weight: 600; color: var(--accent); }
.entry .dates { font-size: 7px; }
.entry .description { font-size: 7.5px; margin-top: 2px; line-height: 1.5; }
.item { margin-bottom: 8px; }
.item .primary { font-size: 9px; font-weight: 700; }
.item .secondary { font-size: 8px; }
.item .year { font-size: 7.5px; color: var(--accent); }
`, doc.Style.AccentColor, doc.Style.AccentColor)
	return executeLayout("creative", KeyCreative, doc, css)
}
