// Package golang renders FastToString methods as Go source.
package golang

import (
	"bytes"
	"fmt"
	"text/template"

	"golang.org/x/tools/imports"

	"github.com/broady/fasttostring"
	"github.com/broady/fasttostring/fasttostringgen/ir"
)

// RuntimeImport is the import path of the package generated code depends on.
const RuntimeImport = "github.com/broady/fasttostring"

var tmpls = template.Must(template.New("GoTemplates").Parse(fileTmpl))

// Emitter renders one artifact per package.
type Emitter struct {
	// DefaultMethodName names the method of enums without an override.
	// Default: fasttostring.DefaultMethodName.
	DefaultMethodName string

	// Filename overrides the name of the generated file.
	// Default: "<package>_fasttostring.go".
	Filename string
}

type fileData struct {
	Header        string
	Package       string
	Alias         string
	RuntimeImport string
	GenVersion    int
	Enums         []enumData
}

type enumData struct {
	Type       string
	Qualified  string
	Underlying string
	Method     string
	Recv       string
	Alias      string
	Members    []memberData
	Aliases    []aliasData
}

type memberData struct {
	Name string
	Doc  string
}

type aliasData struct {
	Name   string
	Target string
}

// Emit renders the marked enums of schema into a single Go file.
// The output depends only on the schema, so equal schemas produce equal bytes.
func (e *Emitter) Emit(schema *ir.Schema) (*ir.Artifact, error) {
	if schema.Package.Name == "" {
		return nil, fmt.Errorf("schema for %q has no package name", schema.Package.Path)
	}
	if len(schema.Enums) == 0 {
		return nil, fmt.Errorf("package %s has no marked enums", schema.Package.Path)
	}

	def := e.DefaultMethodName
	if def == "" {
		def = fasttostring.DefaultMethodName
	}

	alias := importAlias(schema.Package)
	data := fileData{
		Header:        fasttostring.GeneratedHeader,
		Package:       schema.Package.Name,
		Alias:         alias,
		RuntimeImport: RuntimeImport,
		GenVersion:    fasttostring.GenVersion,
	}

	artifact := &ir.Artifact{
		Package:  schema.Package,
		Filename: e.Filename,
	}
	if artifact.Filename == "" {
		artifact.Filename = Filename(schema.Package.Name)
	}

	for _, enum := range schema.Enums {
		ed := enumData{
			Type:       enum.Name.Name,
			Qualified:  enum.QualifiedName(),
			Underlying: enum.Underlying,
			Method:     enum.ResolvedMethodName(def),
			Recv:       receiverName(enum, alias),
			Alias:      alias,
		}
		if ed.Underlying == "" {
			ed.Underlying = "integer"
		}
		for _, m := range enum.DistinctMembers() {
			ed.Members = append(ed.Members, memberData{Name: m.Name, Doc: m.Documentation.Summary})
		}
		aliases := enum.Aliases()
		for _, m := range enum.Members {
			if target, ok := aliases[m.Name]; ok {
				ed.Aliases = append(ed.Aliases, aliasData{Name: m.Name, Target: target})
			}
		}
		if len(ed.Members) == 0 {
			return nil, fmt.Errorf("enum %s has no members", ed.Qualified)
		}

		data.Enums = append(data.Enums, ed)
		artifact.Enums = append(artifact.Enums, ed.Qualified)
	}

	buf := new(bytes.Buffer)
	if err := tmpls.ExecuteTemplate(buf, "File", data); err != nil {
		return nil, fmt.Errorf("%s template failed: %w", artifact.Filename, err)
	}

	formatted, err := imports.Process(artifact.Filename, buf.Bytes(), &imports.Options{
		FormatOnly: true,
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
	})
	if err != nil {
		return nil, fmt.Errorf("%s formatting failed: %w", artifact.Filename, err)
	}
	artifact.Content = formatted

	return artifact, nil
}
