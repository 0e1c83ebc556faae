package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"text/template"

	"prefs-generator/internal/analyze"
)

// header is the first line of every generated file.
const header = "// Code generated by prefs-generator. DO NOT EDIT."

var unitTemplate = template.Must(template.New("unit").Parse(header + `

//go:build !` + analyze.GenerateTag + `

package {{.Package}}

import (
{{range .Imports}}	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{end}})

var (
{{range .Assertions}}	_ {{.}} = (*{{$.Impl}})(nil)
{{end}})

{{if .Comments}}// {{.KeysVar}} lists every key declared by {{.Interface}}.
{{end}}var {{.KeysVar}} = []string{
{{range .Keys}}	{{printf "%q" .}},
{{end}}}
{{range .Carriers}}
type {{.Name}} struct {
	Value {{.Type}}
}
{{end}}
{{if .Comments}}// {{.Impl}} implements {{.Interface}} on top of a prefs.Store.
{{end}}type {{.Impl}} struct {
{{range .Fields}}	{{.Name}} {{.Type}}
{{end}}}
{{with .Constructor}}
{{if $.Comments}}// {{.Doc}}
{{end}}func {{.Name}}({{.Params}}) *{{$.Impl}} {
	return &{{$.Impl}}{
{{range .Inits}}		{{.Name}}: {{.Type}},
{{end}}	}
}
{{end}}{{range .Methods}}
{{if and $.Comments .Doc}}// {{.Doc}}
{{end}}func (s *{{$.Impl}}) {{.Name}}({{.Params}}){{if .Results}} {{.Results}}{{end}} {
{{range .Body}}{{if .}}	{{.}}{{end}}
{{end}}}
{{end}}`))

// render executes the template and formats the result. On a formatting
// error the unformatted source is returned with the error.
func render(unit *Unit) ([]byte, error) {
	var buf bytes.Buffer
	if err := unitTemplate.Execute(&buf, unit); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return buf.Bytes(), fmt.Errorf("formatting code: %w", err)
	}

	return formatted, nil
}
