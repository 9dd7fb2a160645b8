package gen

import (
	"strings"
	"text/template"
)

// classData feeds classTemplate.
type classData struct {
	Namespace string // empty for the global namespace
	Body      string
}

// synthesizedClassData feeds synthesizedClassTemplate.
type synthesizedClassData struct {
	Name    string
	Methods []string
}

// shim is one forwarding function or class alias.
type shim struct {
	Name   string // original name
	Target string // absolute new name
}

// bindingsData feeds bindingsTemplate.
type bindingsData struct {
	Shims   []shim
	Aliases []shim
}

var classTemplate = template.Must(template.New("class").Parse(`<?php

{{if .Namespace}}namespace {{.Namespace}};

{{end}}{{.Body}}
`))

var synthesizedClassTemplate = template.Must(template.New("synthesized").Parse(`class {{.Name}}
{
{{- range $i, $m := .Methods}}
{{if $i}}
{{end}}{{$m}}
{{- end}}
}`))

var bindingsTemplate = template.Must(template.New("bindings").Parse(`<?php

{{range .Shims}}function {{.Name}}(...$args) {
    return {{.Target}}(...$args);
}

{{end}}{{range .Aliases}}class_alias('{{.Target}}', '{{.Name}}');
{{end}}`))

var polyfillsTemplate = template.Must(template.New("polyfills").Parse(`<?php

// Polyfills extracted by transmuter

{{range .}}{{.Text}}

{{end}}`))

// accessorMethod renders the static accessor of a global class over $GLOBALS.
func accessorMethod(name, indent string) string {
	lines := []string{
		"public static function " + name + "(string $name)",
		"{",
		indent + "if (isset($GLOBALS[$name])) {",
		indent + indent + "return $GLOBALS[$name];",
		indent + "}",
		"",
		indent + "return null;",
		"}",
	}

	for i, l := range lines {
		if l != "" {
			lines[i] = indent + l
		}
	}

	return strings.Join(lines, "\n")
}
