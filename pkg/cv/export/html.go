package export

import (
	"bytes"
	"html/template"
	"strings"
	"time"

	"github.com/pharmalink/cv/pkg/cv"
)

// One-page HTML résumé document, handed to the print service as-is. The
// exporter consumes a cv.CVView: every masking decision was already made by
// the projection that built the view, so this file contains no anonymization
// logic. html/template escapes all interpolated user text.

// Options carries caller-supplied document parameters. Contact data arrives
// explicitly here rather than being read off the CV record; it is rendered
// only for full-mode views.
type Options struct {
	DocumentTitle string
	ContactEmail  string
	ContactPhone  string
	GeneratedAt   time.Time
}

type documentData struct {
	View        cv.CVView
	Title       string
	Email       string
	Phone       string
	ShowContact bool
	Generated   string
}

// Generate renders the document markup for a view. A nil/empty view yields a
// minimal placeholder page rather than an error.
func Generate(view cv.CVView, opts Options) (string, error) {
	email := strings.TrimSpace(opts.ContactEmail)
	phone := strings.TrimSpace(opts.ContactPhone)
	if view.Contact != nil {
		if email == "" {
			email = view.Contact.Email
		}
		if phone == "" {
			phone = view.Contact.Phone
		}
	}
	showContact := view.Mode == cv.ModeFull && (email != "" || phone != "")
	title := strings.TrimSpace(opts.DocumentTitle)
	if title == "" {
		title = "CV - " + view.DisplayName
	}
	generated := ""
	if !opts.GeneratedAt.IsZero() {
		generated = cv.FormatMonthYear(opts.GeneratedAt)
	}
	data := documentData{
		View:        view,
		Title:       title,
		Email:       email,
		Phone:       phone,
		ShowContact: showContact,
		Generated:   generated,
	}
	var buf bytes.Buffer
	if err := documentTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var documentTemplate = template.Must(template.New("cv-document").Parse(documentMarkup))

const documentMarkup = `<!DOCTYPE html>
<html lang="fr">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
  body { font-family: 'Helvetica Neue', Arial, sans-serif; color: #1f2933; margin: 0; padding: 32px 40px; font-size: 12px; }
  .header { display: flex; align-items: center; gap: 20px; border-bottom: 2px solid #0e7c66; padding-bottom: 16px; }
  .avatar { width: 64px; height: 64px; border-radius: 50%; background: #0e7c66; color: #fff; display: flex; align-items: center; justify-content: center; font-size: 24px; font-weight: 600; }
  .avatar img { width: 64px; height: 64px; border-radius: 50%; object-fit: cover; }
  .identity h1 { margin: 0; font-size: 22px; }
  .identity .title { color: #0e7c66; font-weight: 600; margin: 2px 0; }
  .identity .meta { color: #52606d; }
  .summary { margin: 16px 0; line-height: 1.5; }
  h2 { font-size: 13px; text-transform: uppercase; letter-spacing: 0.08em; color: #0e7c66; border-bottom: 1px solid #d9e2ec; padding-bottom: 3px; margin: 18px 0 8px; }
  .row { margin-bottom: 10px; }
  .row .heading { font-weight: 600; }
  .row .subheading { color: #3e4c59; }
  .row .meta { color: #52606d; font-size: 11px; }
  .row .body { margin-top: 3px; line-height: 1.4; }
  .tags span { display: inline-block; background: #e3f2ef; color: #0e7c66; border-radius: 10px; padding: 1px 8px; margin: 2px 4px 2px 0; font-size: 11px; }
  .columns { display: flex; gap: 32px; }
  .columns > div { flex: 1; }
  .footer { margin-top: 24px; border-top: 1px solid #d9e2ec; padding-top: 8px; color: #9aa5b1; font-size: 10px; display: flex; align-items: center; gap: 6px; }
</style>
</head>
<body>
<div class="header">
  <div class="avatar">{{if .View.PhotoURL}}<img src="{{.View.PhotoURL}}" alt="">{{else}}{{.View.Initials}}{{end}}</div>
  <div class="identity">
    <h1>{{.View.DisplayName}}</h1>
    {{if .View.Title}}<div class="title">{{.View.Title}}</div>{{end}}
    <div class="meta">{{.View.Location}} · Expérience : {{.View.TotalExperience}}</div>
    {{if .ShowContact}}<div class="meta">{{if .Email}}{{.Email}}{{end}}{{if and .Email .Phone}} · {{end}}{{if .Phone}}{{.Phone}}{{end}}</div>{{end}}
  </div>
</div>
{{if .View.Summary}}<p class="summary">{{.View.Summary}}</p>{{end}}
{{range .View.Sections}}{{if or (eq .ID "experiences") (eq .ID "formations") (eq .ID "key_missions")}}
<h2>{{.Title}}</h2>
{{range .Rows}}<div class="row">
  <div class="heading">{{.Heading}}</div>
  {{if .Subheading}}<div class="subheading">{{.Subheading}}</div>{{end}}
  {{if or .Meta .Period .Duration}}<div class="meta">{{.Meta}}{{if .Period}}{{if .Meta}} · {{end}}{{.Period}}{{end}}{{if .Duration}} ({{.Duration}}){{end}}</div>{{end}}
  {{if .Body}}<div class="body">{{.Body}}</div>{{end}}
  {{if .Tags}}<div class="tags">{{range .Tags}}<span>{{.}}</span>{{end}}</div>{{end}}
</div>
{{end}}{{end}}{{end}}
<div class="columns">
  <div>
  {{range .View.Sections}}{{if or (eq .ID "skills") (eq .ID "software") (eq .ID "brands") (eq .ID "animation_specialties")}}
    <h2>{{.Title}}</h2>
    <div class="tags">{{range .Tags}}<span>{{.}}</span>{{end}}</div>
  {{end}}{{end}}
  </div>
  <div>
  {{range .View.Sections}}{{if or (eq .ID "certifications") (eq .ID "languages") (eq .ID "brand_certifications") (eq .ID "mobility") (eq .ID "daily_rate")}}
    <h2>{{.Title}}</h2>
    {{range .Rows}}<div class="row"><span class="heading">{{.Heading}}</span>{{if .Meta}} · {{.Meta}}{{end}}{{if .Period}} <span class="meta">({{.Period}})</span>{{end}}</div>{{end}}
    {{if .Tags}}<div class="tags">{{range .Tags}}<span>{{.}}</span>{{end}}</div>{{end}}
  {{end}}{{end}}
  </div>
</div>
<div class="footer">
  <svg width="14" height="14" viewBox="0 0 24 24" xmlns="http://www.w3.org/2000/svg"><path fill="#0e7c66" d="M12 2a10 10 0 1 0 0 20 10 10 0 0 0 0-20zm1 11h4v-2h-4V7h-2v4H7v2h4v4h2v-4z"/></svg>
  <span>CV généré par PharmaLink{{if .Generated}} · {{.Generated}}{{end}}</span>
</div>
</body>
</html>
`
