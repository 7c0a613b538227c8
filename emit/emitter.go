// Copyright 2020-present Open Networking Foundation.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package emit

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/onosproject/asn1protogen/genutil"
	"github.com/onosproject/asn1protogen/protoir"
)

// templateHelperFunctions are the functions made available to the
// emitter's templates.
var templateHelperFunctions = template.FuncMap{
	"splitLines": func(s string) []string {
		if s == "" {
			return nil
		}
		return strings.Split(s, "\n")
	},
}

func mustMakeTemplate(name, src string) *template.Template {
	return template.Must(template.New(name).Funcs(templateHelperFunctions).Parse(src))
}

var (
	headerTemplate = mustMakeTemplate("header", `
{{- range splitLines .ExtraComment }}// {{ . }}
{{ end -}}
// Protobuf generated from {{ .SourcePath }} by {{ .ToolName }}-{{ .ToolVersion }}
// {{ .ModuleName }}{{ .OIDComment }}

syntax = "proto3";

package {{ .PackageName }};

{{ range .Imports -}}
import "{{ .Path }}";{{ if .Comment }} //{{ .Comment }}{{ end }}
{{ end -}}
`)

	messageTemplate = mustMakeTemplate("message", `
{{- range splitLines .Comment }}// {{ . }}
{{ end -}}
message {{ .Name }} {
{{- range .Fields }}
  {{ if .Repeated }}repeated {{ end }}{{ .Type }} {{ .Name }} = {{ .Number }}{{ if .Rule }} [(validate.v1.rules).{{ .Rule }}]{{ end }};{{ if .Comment }} // {{ .Comment }}{{ end }}
{{- end }}
{{- range .Oneofs }}
  {{ range splitLines .Comment }}// {{ . }}
  {{ end -}}
  oneof {{ .Name }} {
  {{- range .Fields }}
    {{ if .Repeated }}repeated {{ end }}{{ .Type }} {{ .Name }} = {{ .Number }}{{ if .Rule }} [(validate.v1.rules).{{ .Rule }}]{{ end }};{{ if .Comment }} // {{ .Comment }}{{ end }}
  {{- end }}
  }
{{- end }}
};

`)

	enumTemplate = mustMakeTemplate("enum", `
{{- range splitLines .Comment }}// {{ . }}
{{ end -}}
enum {{ .Name }} {
{{- range .Entries }}
  {{ .Name }} = {{ .Index }};{{ if .AutoGenerated }} // auto generated{{ end }}
{{- end }}
};

`)
)

// Emitter walks a protoir.Module and writes it to a Sink as proto3
// source text, converting identifiers between the casings proto3
// expects as it goes.
type Emitter struct {
	Sink Sink

	// ToolName and ToolVersion are stamped into the header's
	// "generated by" line.
	ToolName    string
	ToolVersion string
}

// NewEmitter returns an Emitter writing to sink. ToolName defaults to
// genutil.CallerName(), the source file path of genutil's own
// CallerName function, the same fallback the
// teacher's code generators use when no caller-supplied tool name is
// configured; callers that want a fixed, human-readable name (as
// cmd/asn1protogen does) should set Emitter.ToolName explicitly.
func NewEmitter(sink Sink) *Emitter {
	return &Emitter{
		Sink:        sink,
		ToolName:    genutil.CallerName(),
		ToolVersion: "0.1.0",
	}
}

type templateImport struct {
	Path    string
	Comment string
}

type templateHeader struct {
	ExtraComment string
	SourcePath   string
	ToolName     string
	ToolVersion  string
	ModuleName   string
	OIDComment   string
	PackageName  string
	Imports      []templateImport
}

type templateField struct {
	Repeated bool
	Type     string
	Name     string
	Number   int
	Rule     string
	Comment  string
}

type templateOneof struct {
	Name    string
	Comment string
	Fields  []templateField
}

type templateMessage struct {
	Comment string
	Name    string
	Fields  []templateField
	Oneofs  []templateOneof
}

type templateEnumEntry struct {
	Name          string
	Index         int
	AutoGenerated bool
}

type templateEnum struct {
	Comment string
	Name    string
	Entries []templateEnumEntry
}

// Emit renders mod in full to e.Sink: the header, every enum, then
// every message, in model order.
func (e *Emitter) Emit(mod *protoir.Module) error {
	var buf bytes.Buffer

	if err := headerTemplate.Execute(&buf, e.buildHeader(mod)); err != nil {
		return fmt.Errorf("emit: header: %w", err)
	}

	// definedNames backstops the type_unique_index suffix convention:
	// it catches the case that convention cannot, two differently
	// identified top-level definitions whose PascalCase/3-digit-suffix
	// names happen to collide (spec section 3: message and enum names
	// must be unique across the whole module).
	definedNames := map[string]bool{}

	for _, en := range mod.Enums {
		if err := enumTemplate.Execute(&buf, buildEnum(en, definedNames)); err != nil {
			return fmt.Errorf("emit: enum %s: %w", en.Name, err)
		}
	}
	for _, m := range mod.Messages {
		if err := messageTemplate.Execute(&buf, buildMessage(m, definedNames)); err != nil {
			return fmt.Errorf("emit: message %s: %w", m.Name, err)
		}
	}

	_, err := e.Sink.Write(buf.Bytes())
	return err
}

func (e *Emitter) buildHeader(mod *protoir.Module) templateHeader {
	sourcePath := mod.SourceFile
	if idx := strings.LastIndexByte(sourcePath, '/'); idx >= 0 {
		sourcePath = sourcePath[idx:]
	} else {
		sourcePath = "/" + sourcePath
	}

	srcSnake := RemoveRelPath(ToSnake(mod.SourceFile, SnakeLower))
	prefix := ""
	if StartsWithNonLower(srcSnake) {
		prefix = "pkg"
	}
	packageName := fmt.Sprintf("%s%s.v1", prefix, srcSnake)

	oidComment := ""
	if mod.HasOID {
		oidComment = fmt.Sprintf(" { %s }", mod.OID)
	}

	imports := make([]templateImport, 0, len(mod.Imports)+1)
	for _, imp := range mod.Imports {
		importName := ToLower(imp.Path)
		path := fmt.Sprintf("%s%s/v1/%s.proto", prefix, srcSnake, importName)
		comment := ""
		if imp.HasOID {
			comment = fmt.Sprintf(" { %s }", imp.OID)
		}
		imports = append(imports, templateImport{Path: path, Comment: comment})
	}
	imports = append(imports, templateImport{Path: "validate/v1/validate.proto"})

	return templateHeader{
		ExtraComment: mod.Comment,
		SourcePath:   sourcePath,
		ToolName:     e.ToolName,
		ToolVersion:  e.ToolVersion,
		ModuleName:   mod.Name,
		OIDComment:   oidComment,
		PackageName:  packageName,
		Imports:      imports,
	}
}

func buildField(f *protoir.Field, number int) templateField {
	typ := f.Type
	if !isProtoScalarType(typ) {
		typ = ToPascal(typ)
	}
	return templateField{
		Repeated: f.Repeated,
		Type:     typ,
		Name:     ToSnake(f.Name, SnakeLower),
		Number:   number,
		Rule:     f.Rules,
		Comment:  f.Comment,
	}
}

func buildMessage(m *protoir.Message, definedNames map[string]bool) templateMessage {
	counter := 0
	fields := make([]templateField, 0, len(m.Fields))
	for _, f := range m.Fields {
		counter++
		fields = append(fields, buildField(f, counter))
	}

	oneofs := make([]templateOneof, 0, len(m.Oneofs))
	for _, o := range m.Oneofs {
		tOneof := templateOneof{Name: ToSnake(o.Name, SnakeLower), Comment: o.Comment}
		for _, f := range o.Fields {
			counter++
			tOneof.Fields = append(tOneof.Fields, buildField(f, counter))
		}
		oneofs = append(oneofs, tOneof)
	}

	name := genutil.MakeNameUnique(messageTypeName(m.Name, m.TypeUniqueIndex), definedNames)
	return templateMessage{
		Comment: m.Comment,
		Name:    name,
		Fields:  fields,
		Oneofs:  oneofs,
	}
}

// messageTypeName matches the name a TYPEREF field targeting this
// message would use: plain PascalCase when type_unique_index is the
// common zero value, PascalCase plus a 3-digit suffix when a
// specialization needs disambiguating (spec section 3: message names
// are unique only after combining name with type_unique_index).
func messageTypeName(name string, typeUniqueIndex int) string {
	if typeUniqueIndex == 0 {
		return ToPascal(name)
	}
	return fmt.Sprintf("%s%03d", ToPascal(name), typeUniqueIndex)
}

func buildEnum(e *protoir.Enum, definedNames map[string]bool) templateEnum {
	upperName := ToSnake(e.Name, SnakeUpper)

	hasZero := false
	for _, entry := range e.Entries {
		if entry.HasIndex && entry.Index == 0 {
			hasZero = true
			break
		}
	}

	var entries []templateEnumEntry
	if !hasZero {
		entries = append(entries, templateEnumEntry{
			Name:          upperName + "_UNDEFINED",
			Index:         0,
			AutoGenerated: true,
		})
	}

	// Index 0 is already held, by the auto-generated entry or by an
	// explicit zero, so unnumbered entries count from 1.
	counter := 1
	for _, entry := range e.Entries {
		idx := entry.Index
		if !entry.HasIndex {
			idx = counter
			counter++
		}
		entries = append(entries, templateEnumEntry{
			Name:  upperName + "_" + ToSnake(entry.Name, SnakeUpper),
			Index: idx,
		})
	}

	return templateEnum{
		Comment: e.Comment,
		Name:    genutil.MakeNameUnique(ToPascal(e.Name), definedNames),
		Entries: entries,
	}
}
