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

// Package protoir holds the proto model that the lowering pass builds and
// the emitter walks. It is owned exclusively by this core: every
// substructure is constructed once during lowering and mutated only by
// appending, never rewritten, never shared with the ASN.1 input tree.
package protoir

import "fmt"

// ParamKind classifies a generic parameter of a parameterized message.
type ParamKind int

const (
	ParamTYPE ParamKind = iota
	ParamVALUE
	ParamVALUESET
)

// Param is one entry of a Message's generic parameter list.
type Param struct {
	Kind ParamKind
	Name string
}

// Field is a single proto3 field, either standalone or nested inside a
// Oneof. Rules, when non-empty, is the body of a
// `[(validate.v1.rules).<rules>]` annotation.
type Field struct {
	Name     string
	Type     string
	Rules    string
	Comment  string
	Repeated bool
}

// Oneof is a proto3 oneof block: a named group of mutually-exclusive
// fields, used to represent a lowered ASN.1 CHOICE.
type Oneof struct {
	Name    string
	Comment string
	Fields  []*Field
}

// AddField appends a field to the oneof. Field numbering and name
// rewriting are the emitter's responsibility, not the model's.
func (o *Oneof) AddField(f *Field) {
	o.Fields = append(o.Fields, f)
}

// EnumEntry is one value of an Enum. HasIndex distinguishes an explicit
// non-negative index from one that the emitter must number with a
// running counter.
type EnumEntry struct {
	Name     string
	Index    int
	HasIndex bool
}

// Enum is a top-level proto3 enum.
type Enum struct {
	Name    string
	Comment string
	Entries []EnumEntry
}

// NewEnum constructs an Enum, stamping the comment from a printf-style
// template so callers can embed source-file/line provenance.
func NewEnum(name, commentFormat string, args ...interface{}) *Enum {
	return &Enum{
		Name:    name,
		Comment: fmt.Sprintf(commentFormat, args...),
	}
}

// AddEntry appends one value to the enum.
func (e *Enum) AddEntry(name string, index int, hasIndex bool) {
	e.Entries = append(e.Entries, EnumEntry{Name: name, Index: index, HasIndex: hasIndex})
}

// Message is a proto3 message: the translation target for most ASN.1
// type, value, and value-set definitions.
type Message struct {
	Name            string
	SpecIndex       int
	TypeUniqueIndex int

	Fields  []*Field
	Oneofs  []*Oneof
	Params  []Param
	Comment string
}

// NewMessage constructs a Message, stamping the comment from a
// printf-style template (so callers can embed "from <file>:<line>"
// provenance the way the originating ASN.1 definition site does).
func NewMessage(name string, specIndex, typeUniqueIndex int, commentFormat string, args ...interface{}) *Message {
	return &Message{
		Name:            name,
		SpecIndex:       specIndex,
		TypeUniqueIndex: typeUniqueIndex,
		Comment:         fmt.Sprintf(commentFormat, args...),
	}
}

// AddField appends a field to the message's own field list (not inside
// any oneof).
func (m *Message) AddField(f *Field) {
	m.Fields = append(m.Fields, f)
}

// AddOneof appends a oneof block to the message.
func (m *Message) AddOneof(o *Oneof) {
	m.Oneofs = append(m.Oneofs, o)
}

// AddParam appends a generic parameter to the message's header.
func (m *Message) AddParam(p Param) {
	m.Params = append(m.Params, p)
}

// AppendComment appends a line to the message's comment block, used for
// the "Param <gov>:<arg>" lines folded in alongside provenance.
func (m *Message) AppendComment(line string) {
	if m.Comment == "" {
		m.Comment = line
		return
	}
	m.Comment = m.Comment + "\n" + line
}

// Import is one proto3 import statement, optionally annotated with the
// OID of the ASN.1 module it was derived from.
type Import struct {
	Path   string
	OID    string
	HasOID bool
}

// Module is the top-level owner of a translated ASN.1 module: every
// Message, Enum, and Import produced while lowering that module's
// definitions is appended here, in declaration order.
type Module struct {
	Name       string
	SourceFile string
	OID        string
	HasOID     bool

	Imports  []*Import
	Enums    []*Enum
	Messages []*Message
	Comment  string
}

// NewModule constructs an empty Module ready to receive appended
// messages, enums, and imports.
func NewModule(name, sourceFile string) *Module {
	return &Module{Name: name, SourceFile: sourceFile}
}

// AddImport appends an import, skipping a path that is already present
// so that "every import path appears exactly once" (spec section 8) holds
// regardless of how many lowered definitions reference it.
func (mod *Module) AddImport(imp *Import) {
	for _, existing := range mod.Imports {
		if existing.Path == imp.Path {
			return
		}
	}
	mod.Imports = append(mod.Imports, imp)
}

// AddEnum appends a top-level enum to the module.
func (mod *Module) AddEnum(e *Enum) {
	mod.Enums = append(mod.Enums, e)
}

// AddMessage appends a top-level message to the module.
func (mod *Module) AddMessage(m *Message) {
	mod.Messages = append(mod.Messages, m)
}

// AppendComment appends a line to the module's free-form header comment,
// used to surface unhandled-construct diagnostics directly in the
// emitted output.
func (mod *Module) AppendComment(line string) {
	if mod.Comment == "" {
		mod.Comment = line
		return
	}
	mod.Comment = mod.Comment + "\n" + line
}
