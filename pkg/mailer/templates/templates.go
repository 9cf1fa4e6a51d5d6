package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmpl "html/template"
)

//go:embed *.tmpl
var FS embed.FS

// Subjects per template name.
var subjects = map[string]string{
	"password_reset":   "Password Reset Request",
	"password_changed": "Password Changed Successfully",
}

// Render renders the named template with the given data and returns the
// subject and HTML body.
func Render(name string, data map[string]any) (subject, html string, err error) {
	subject, ok := subjects[name]
	if !ok {
		return "", "", fmt.Errorf("unknown email template %q", name)
	}
	t, err := htmpl.ParseFS(FS, name+".tmpl")
	if err != nil {
		return "", "", err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", "", err
	}
	return subject, buf.String(), nil
}
