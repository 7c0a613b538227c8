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
	"strings"
	"testing"

	"github.com/onosproject/asn1protogen/protoir"
)

func TestIsProtoScalarType(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{in: "int32", want: true},
		{in: "float", want: true},
		{in: "bool", want: true},
		{in: "string", want: true},
		{in: "Age", want: false},
		{in: "int32something", want: false},
	}
	for _, tt := range tests {
		if got := isProtoScalarType(tt.in); got != tt.want {
			t.Errorf("isProtoScalarType(%q): got %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestMessageTypeName(t *testing.T) {
	tests := []struct {
		name            string
		typeUniqueIndex int
		want            string
	}{
		{name: "age", typeUniqueIndex: 0, want: "Age"},
		{name: "age", typeUniqueIndex: 2, want: "Age002"},
	}
	for _, tt := range tests {
		if got := messageTypeName(tt.name, tt.typeUniqueIndex); got != tt.want {
			t.Errorf("messageTypeName(%q, %d): got %q, want %q", tt.name, tt.typeUniqueIndex, got, tt.want)
		}
	}
}

func TestEmitMessage(t *testing.T) {
	mod := protoir.NewModule("Mod", "mod.asn1")
	msg := protoir.NewMessage("age", 0, 0, "range of Integer from mod.asn1:4")
	msg.AddField(&protoir.Field{Name: "value", Type: "int32", Rules: "int32 = {gte: 0, lte: 150}"})
	mod.AddMessage(msg)

	sink := NewBufferSink()
	if err := NewEmitter(sink).Emit(mod); err != nil {
		t.Fatalf("Emit(): unexpected error %v", err)
	}
	out := sink.String()

	if !strings.Contains(out, "message Age {") {
		t.Errorf("output missing unsuffixed message name:\n%s", out)
	}
	if !strings.Contains(out, "int32 value = 1 [(validate.v1.rules).int32 = {gte: 0, lte: 150}];") {
		t.Errorf("output missing expected field line:\n%s", out)
	}
}

func TestEmitMessageWithTypeUniqueIndexSuffix(t *testing.T) {
	mod := protoir.NewModule("Mod", "mod.asn1")
	mod.AddMessage(protoir.NewMessage("wrapper", 0, 2, ""))

	sink := NewBufferSink()
	if err := NewEmitter(sink).Emit(mod); err != nil {
		t.Fatalf("Emit(): unexpected error %v", err)
	}
	if !strings.Contains(sink.String(), "message Wrapper002 {") {
		t.Errorf("output missing suffixed message name:\n%s", sink.String())
	}
}

func TestEmitEnumAutoGeneratesZeroEntry(t *testing.T) {
	mod := protoir.NewModule("Mod", "mod.asn1")
	e := protoir.NewEnum("color", "enumerated from mod.asn1:2")
	e.AddEntry("red", 0, false)
	e.AddEntry("green", 0, false)
	mod.AddEnum(e)

	sink := NewBufferSink()
	if err := NewEmitter(sink).Emit(mod); err != nil {
		t.Fatalf("Emit(): unexpected error %v", err)
	}
	out := sink.String()

	if !strings.Contains(out, "enum Color {") {
		t.Errorf("output missing enum name:\n%s", out)
	}
	if !strings.Contains(out, "COLOR_UNDEFINED = 0;") {
		t.Errorf("output missing auto-generated zero entry:\n%s", out)
	}
	if !strings.Contains(out, "COLOR_RED = 1;") || !strings.Contains(out, "COLOR_GREEN = 2;") {
		t.Errorf("output missing numbered entries:\n%s", out)
	}
}

func TestEmitEnumExplicitZeroSkipsAutoEntry(t *testing.T) {
	mod := protoir.NewModule("Mod", "mod.asn1")
	e := protoir.NewEnum("color", "")
	e.AddEntry("undefined", 0, true)
	e.AddEntry("red", 1, true)
	mod.AddEnum(e)

	sink := NewBufferSink()
	if err := NewEmitter(sink).Emit(mod); err != nil {
		t.Fatalf("Emit(): unexpected error %v", err)
	}
	out := sink.String()
	if strings.Contains(out, "_UNDEFINED = 0; // auto generated") {
		t.Errorf("output should not auto-generate a zero entry when one is explicit:\n%s", out)
	}
}

func TestEmitHeaderImportsAndPackage(t *testing.T) {
	mod := protoir.NewModule("MyModule", "2AP-v3.asn1")
	mod.AddImport(&protoir.Import{Path: "Other"})

	sink := NewBufferSink()
	if err := NewEmitter(sink).Emit(mod); err != nil {
		t.Fatalf("Emit(): unexpected error %v", err)
	}
	out := sink.String()

	if !strings.Contains(out, `syntax = "proto3";`) {
		t.Errorf("output missing syntax line:\n%s", out)
	}
	if !strings.Contains(out, `import "validate/v1/validate.proto";`) {
		t.Errorf("output missing validate import:\n%s", out)
	}
	if !strings.Contains(out, "// MyModule") {
		t.Errorf("output missing module name comment:\n%s", out)
	}
	if !strings.Contains(out, "package pkg2_ap_v3_asn1.v1;") {
		t.Errorf("output missing pkg-prefixed package line:\n%s", out)
	}
	if !strings.Contains(out, `import "pkg2_ap_v3_asn1/v1/other.proto";`) {
		t.Errorf("output missing declared import:\n%s", out)
	}
}

func TestEmitFieldNumberingContinuesAcrossOneofs(t *testing.T) {
	mod := protoir.NewModule("Mod", "mod.asn1")
	msg := protoir.NewMessage("shape", 0, 0, "")
	msg.AddField(&protoir.Field{Name: "width", Type: "int32"})
	o := &protoir.Oneof{Name: "shape"}
	o.AddField(&protoir.Field{Name: "circle", Type: "Circle"})
	o.AddField(&protoir.Field{Name: "square", Type: "Square"})
	msg.AddOneof(o)
	mod.AddMessage(msg)

	sink := NewBufferSink()
	if err := NewEmitter(sink).Emit(mod); err != nil {
		t.Fatalf("Emit(): unexpected error %v", err)
	}
	out := sink.String()

	if !strings.Contains(out, "int32 width = 1;") {
		t.Errorf("output missing first field numbered 1:\n%s", out)
	}
	if !strings.Contains(out, "Circle circle = 2;") || !strings.Contains(out, "Square square = 3;") {
		t.Errorf("output missing oneof fields numbered 2 and 3:\n%s", out)
	}
}
