package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmpl "html/template"
	"io"
	"strings"
	texttpl "text/template"
)

//go:embed *.tmpl
var FS embed.FS

// EmailData is the data passed to every template.
type EmailData struct {
	Name    string
	AppName string

	ResetURL  string
	VerifyURL string

	ExpiresAtText string
}

// defaultFn backs {{ .Value | default "fallback" }}; blank strings count as empty.
func defaultFn(fallback, value string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

var funcs = map[string]any{"default": defaultFn}

// Every template is parsed once; files are addressed by base name.
var (
	htmlSet = htmpl.Must(htmpl.New("").Funcs(htmpl.FuncMap(funcs)).ParseFS(FS, "*.html.tmpl"))
	textSet = texttpl.Must(texttpl.New("").Funcs(texttpl.FuncMap(funcs)).ParseFS(FS, "*.subject.tmpl", "*.text.tmpl"))
)

// Template names.
const (
	VerifyEmail   = "verify_email"
	ResetPassword = "reset_password"
)

type executor interface {
	ExecuteTemplate(w io.Writer, name string, data any) error
}

func execute(set executor, name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := set.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %q: %w", name, err)
	}
	return buf.String(), nil
}

// Render produces the subject, text and HTML parts of the named email.
func Render(name string, data any) (subject, text, html string, err error) {
	if subject, err = execute(textSet, name+".subject.tmpl", data); err != nil {
		return "", "", "", err
	}
	if text, err = execute(textSet, name+".text.tmpl", data); err != nil {
		return "", "", "", err
	}
	if html, err = execute(htmlSet, name+".html.tmpl", data); err != nil {
		return "", "", "", err
	}
	return strings.TrimSpace(subject), text, html, nil
}
