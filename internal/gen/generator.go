package gen

import (
	"bytes"
	"cmp"
	"fmt"
	"log/slog"
	"path"
	"slices"
	"strings"

	"transmuter/internal/analyze"
	"transmuter/internal/common"
	"transmuter/internal/mapping"
	"transmuter/internal/plan"
)

// Printer renders declaration payloads as PHP source.
type Printer[P any] interface {
	// Method renders a function declaration as a public static method
	// called name.
	Method(name string, decl P) (string, error)
	// Class renders a class declaration renamed to name. extends replaces
	// the declared superclass when not empty.
	Class(name, extends string, decl P) (string, error)
}

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// AppDir is the directory class files are written under.
	AppDir string
	// BindingsFile is the name of the forwarding shim file.
	BindingsFile string
	// PolyfillsFile is the name of the extracted polyfill file.
	PolyfillsFile string
	// Reserved holds lower-cased function names that get no shim because
	// the runtime already defines them.
	Reserved common.Set[string]
	// Indent is one level of indentation inside generated classes.
	Indent string
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		AppDir:        "app",
		BindingsFile:  "bindings.php",
		PolyfillsFile: "polyfills.php",
		Reserved:      common.NewSet[string](),
		Indent:        "    ",
	}
}

// GeneratedFile represents a generated PHP source file.
type GeneratedFile struct {
	// Filename is the slash-separated path relative to the output directory.
	Filename string
	// Content is the file content.
	Content []byte
}

// Generator generates PHP code from a resolved plan.
type Generator[P any] struct {
	config  GeneratorConfig
	printer Printer[P]
	log     *slog.Logger
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator[P any](config GeneratorConfig, printer Printer[P], log *slog.Logger) *Generator[P] {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return &Generator[P]{config: config, printer: printer, log: log}
}

// Generate renders every class of the plan plus the bindings and polyfill
// files. table is the final mapping table; it decides which shims and
// aliases are written. Files are returned sorted by name.
func (g *Generator[P]) Generate(p *plan.Plan[P], table *mapping.Table, polyfills []analyze.Guard) ([]GeneratedFile, error) {
	var files []GeneratedFile

	owners := map[string]string{} // lower-cased filename -> class

	for _, cls := range p.ClassDecls() {
		file, err := g.generateClass(cls)
		if err != nil {
			return nil, fmt.Errorf("generating %s: %w", cls.FQCN(), err)
		}

		key := strings.ToLower(file.Filename)
		if other, ok := owners[key]; ok {
			return nil, fmt.Errorf("classes %s and %s would both be written to %s", other, cls.FQCN(), file.Filename)
		}

		owners[key] = cls.FQCN()

		g.log.Debug("generated class", slog.String("class", cls.FQCN()), slog.String("file", file.Filename))
		files = append(files, *file)
	}

	bindings, err := g.generateBindings(table)
	if err != nil {
		return nil, fmt.Errorf("generating bindings: %w", err)
	}

	poly, err := g.generatePolyfills(polyfills)
	if err != nil {
		return nil, fmt.Errorf("generating polyfills: %w", err)
	}

	files = append(files, *bindings, *poly)

	slices.SortFunc(files, func(a, b GeneratedFile) int { return cmp.Compare(a.Filename, b.Filename) })

	return files, nil
}

// ClassPath returns where cls is written: the namespace segments after the
// root become directories.
func (g *Generator[P]) ClassPath(cls *plan.ClassDecl[P]) string {
	segs := common.NamespaceSegments(cls.Namespace)
	if len(segs) > 0 {
		segs = segs[1:]
	}

	parts := append([]string{g.config.AppDir}, segs...)
	parts = append(parts, cls.Name+".php")

	return path.Join(parts...)
}

func (g *Generator[P]) generateClass(cls *plan.ClassDecl[P]) (*GeneratedFile, error) {
	data := classData{Namespace: cls.Namespace}

	if cls.Relocated() {
		body, err := g.printer.Class(cls.Name, cls.Extends, cls.Decl)
		if err != nil {
			return nil, err
		}

		data.Body = body
	} else {
		body, err := g.synthesizedClass(cls)
		if err != nil {
			return nil, err
		}

		data.Body = body
	}

	var buf bytes.Buffer

	err := classTemplate.Execute(&buf, data)
	if err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	return &GeneratedFile{Filename: g.ClassPath(cls), Content: buf.Bytes()}, nil
}

// synthesizedClass renders a class built from functions.
func (g *Generator[P]) synthesizedClass(cls *plan.ClassDecl[P]) (string, error) {
	methods := make([]string, 0, len(cls.Methods))

	for _, m := range cls.Methods {
		if m.Accessor {
			methods = append(methods, accessorMethod(m.Name, g.config.Indent))
			continue
		}

		text, err := g.printer.Method(m.Name, m.Decl)
		if err != nil {
			return "", fmt.Errorf("method %s (function %s): %w", m.Name, m.Function, err)
		}

		methods = append(methods, text)
	}

	var buf bytes.Buffer

	err := synthesizedClassTemplate.Execute(&buf, synthesizedClassData{Name: cls.Name, Methods: methods})
	if err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}

	return buf.String(), nil
}

func (g *Generator[P]) generateBindings(table *mapping.Table) (*GeneratedFile, error) {
	var data bindingsData

	for _, name := range mapping.SortedFunctionNames(table) {
		e := table.Functions[name]
		if e.Polyfill {
			continue
		}

		if g.config.Reserved.Has(strings.ToLower(name)) {
			g.log.Debug("skipping shim for reserved function", slog.String("function", name))
			continue
		}

		t := plan.FunctionTarget(e)
		data.Shims = append(data.Shims, shim{Name: name, Target: t.FQCN() + "::" + t.Method})
	}

	for _, name := range common.SortedKeys(table.Classes) {
		data.Aliases = append(data.Aliases, shim{Name: name, Target: plan.ClassTarget(table.Classes[name]).FQCN()})
	}

	var buf bytes.Buffer

	err := bindingsTemplate.Execute(&buf, data)
	if err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	return &GeneratedFile{Filename: g.config.BindingsFile, Content: buf.Bytes()}, nil
}

func (g *Generator[P]) generatePolyfills(guards []analyze.Guard) (*GeneratedFile, error) {
	var buf bytes.Buffer

	err := polyfillsTemplate.Execute(&buf, guards)
	if err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	return &GeneratedFile{Filename: g.config.PolyfillsFile, Content: buf.Bytes()}, nil
}
