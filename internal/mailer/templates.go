package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"slices"
	"strings"
)

const (
	TemplateDefault      = "default"
	TemplateNotification = "notification"
	TemplateWelcome      = "welcome"

	// Placeholder is used when a message carries neither a plain nor an HTML body.
	Placeholder = "This is an automated notification."

	footer = "This is an automated notification from autokit."
)

var templates = template.Must(template.New(TemplateDefault).Parse(`<html>
  <body>
    <p>{{.Message}}</p>
  </body>
</html>
`))

func init() {
	template.Must(templates.New(TemplateNotification).Parse(`<html>
  <body>
    <h3 style="color: #3498db;">{{.Title}}</h3>
    <p>{{.Message}}</p>
    <hr>
    <small>{{.Footer}}</small>
  </body>
</html>
`))
	template.Must(templates.New(TemplateWelcome).Parse(`<html>
  <body>
    <h2 style="color: #2c3e50;">{{.Title}}</h2>
    <p>Hi <strong>{{.Name}}</strong>,</p>
    {{if .Message}}<p>{{.Message}}</p>
    {{else}}<p>Thank you for connecting with us. We're excited to have you!</p>
    {{end}}<br>
    <p>Best regards,<br>
    <em>autokit</em></p>
  </body>
</html>
`))
}

// TemplateNames lists the built-in HTML templates.
func TemplateNames() []string {
	return []string{TemplateDefault, TemplateNotification, TemplateWelcome}
}

type templateData struct {
	Title   string
	Message string
	Name    string
	Footer  string
}

// Render executes the named template. Values are HTML-escaped.
func Render(name string, data templateData) (string, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = TemplateDefault
	}
	if !slices.Contains(TemplateNames(), name) {
		return "", fmt.Errorf("unknown email template %q", name)
	}
	if data.Footer == "" {
		data.Footer = footer
	}
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s template: %w", name, err)
	}
	return buf.String(), nil
}
