// Package template renders the in-page extraction script from text/template
// sources stored in a templates directory.
package template

import (
	"bytes"
	"os"
	"path/filepath"
	ttemplate "text/template"

	"github.com/msaveliev/ozonkw"
)

// SearchQueriesTemplate is the file name of the search-queries extraction
// script template.
const SearchQueriesTemplate = "collect_search_queries.js.tmpl"

// Compile-time interface verification.
var _ ozonkw.ScriptRenderer = (*Renderer)(nil)

// Renderer is a text/template-backed ScriptRenderer. Rendering is a pure
// function of the template text and the two injected parameters.
type Renderer struct {
	dir  string
	name string
}

// NewRenderer creates a Renderer reading templates from dir.
func NewRenderer(dir string) *Renderer {
	return &Renderer{dir: dir, name: SearchQueriesTemplate}
}

// templateData is the binding for the extraction script template.
type templateData struct {
	Keyword    string
	MaxRetries int
}

// Render returns the extraction script for keyword as a self-contained
// JavaScript function expression. Returns ETEMPLATE if the template file is
// missing or malformed.
func (r *Renderer) Render(keyword string, maxRetries int) (string, error) {
	path := filepath.Join(r.dir, r.name)

	src, err := os.ReadFile(path)
	if err != nil {
		return "", ozonkw.Errorf(ozonkw.ETEMPLATE, "template %q not found: %v", r.name, err)
	}

	t, err := ttemplate.New(r.name).Parse(string(src))
	if err != nil {
		return "", ozonkw.Errorf(ozonkw.ETEMPLATE, "template %q is malformed: %v", r.name, err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, templateData{Keyword: keyword, MaxRetries: maxRetries}); err != nil {
		return "", ozonkw.Errorf(ozonkw.ETEMPLATE, "rendering template %q: %v", r.name, err)
	}
	return buf.String(), nil
}
