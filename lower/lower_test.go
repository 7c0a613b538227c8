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

package lower

import (
	"strings"
	"testing"

	"github.com/onosproject/asn1protogen/asn1tree"
	"github.com/onosproject/asn1protogen/protoir"
)

func newMessageForTest() *protoir.Message {
	return protoir.NewMessage("Param1", 0, 0, "")
}

func newLowerer(registry map[string]*asn1tree.Expr) *Lowerer {
	if registry == nil {
		registry = map[string]*asn1tree.Expr{}
	}
	return NewLowerer(Options{}, registry)
}

func TestLowerSkipsEmptyIdentifier(t *testing.T) {
	l := newLowerer(nil)
	l.Lower(&asn1tree.Expr{Identifier: "", ExprType: asn1tree.ExprINTEGER, MetaType: asn1tree.MetaVALUE})
	if len(l.Messages) != 0 || len(l.Enums) != 0 {
		t.Errorf("Lower with empty identifier: got Messages=%v Enums=%v, want both empty", l.Messages, l.Enums)
	}
}

func TestLowerSpecializationsRecurse(t *testing.T) {
	l := newLowerer(nil)
	clone := &asn1tree.Expr{Identifier: "Concrete", ExprType: asn1tree.ExprENUMERATED}
	l.Lower(&asn1tree.Expr{
		Identifier:      "Generic",
		Specializations: []asn1tree.Specialization{{Clone: clone}},
	})
	if len(l.Enums) != 1 || l.Enums[0].Name != "Concrete" {
		t.Errorf("Lower with Specializations: got Enums=%+v, want one enum named Concrete", l.Enums)
	}
}

func TestLowerEnum(t *testing.T) {
	l := newLowerer(nil)
	expr := &asn1tree.Expr{
		Identifier: "Color",
		ExprType:   asn1tree.ExprENUMERATED,
		SourceFile: "color.asn1",
		LineNo:     3,
		Members: []*asn1tree.Expr{
			{ExprType: asn1tree.ExprUNIVERVAL, Identifier: "red", Value: intVal(1)},
			{ExprType: asn1tree.ExprUNIVERVAL, Identifier: "green"},
		},
	}
	l.Lower(expr)

	if len(l.Enums) != 1 {
		t.Fatalf("Enums: got %d, want 1", len(l.Enums))
	}
	e := l.Enums[0]
	if e.Name != "Color" {
		t.Errorf("Name: got %q, want %q", e.Name, "Color")
	}
	if len(e.Entries) != 2 {
		t.Fatalf("Entries: got %d, want 2", len(e.Entries))
	}
	if e.Entries[0].Name != "red" || !e.Entries[0].HasIndex || e.Entries[0].Index != 1 {
		t.Errorf("Entries[0]: got %+v, want red with explicit index 1", e.Entries[0])
	}
	if e.Entries[1].Name != "green" || e.Entries[1].HasIndex {
		t.Errorf("Entries[1]: got %+v, want green with no explicit index", e.Entries[1])
	}
}

func TestLowerValueInteger(t *testing.T) {
	l := newLowerer(nil)
	l.Lower(&asn1tree.Expr{
		Identifier: "MaxRetries",
		MetaType:   asn1tree.MetaVALUE,
		ExprType:   asn1tree.ExprINTEGER,
		Value:      intVal(5),
	})
	if len(l.Messages) != 1 {
		t.Fatalf("Messages: got %d, want 1", len(l.Messages))
	}
	m := l.Messages[0]
	if m.Name != "MaxRetries" || len(m.Fields) != 1 || m.Fields[0].Rules != "int32.const = 5" {
		t.Errorf("Messages[0]: got %+v", m)
	}
}

func TestLowerValueUnhandledExprTypeIsFatal(t *testing.T) {
	l := newLowerer(nil)
	l.Lower(&asn1tree.Expr{
		Identifier: "Weird",
		MetaType:   asn1tree.MetaVALUE,
		ExprType:   asn1tree.ExprBOOLEAN,
	})
	if !l.Fatal {
		t.Errorf("Fatal: got false, want true for an unhandled expr_type in value context")
	}
	if len(l.Errs) != 1 {
		t.Errorf("Errs: got %d, want 1", len(l.Errs))
	}
	if len(l.ErrorComments) != 1 || !strings.HasPrefix(l.ErrorComments[0], "ERROR ") {
		t.Errorf("ErrorComments: got %v, want one line prefixed with %q", l.ErrorComments, "ERROR ")
	}
}

func TestLowerIntegerValueSet(t *testing.T) {
	l := newLowerer(nil)
	l.Lower(&asn1tree.Expr{
		Identifier:  "SmallInts",
		MetaType:    asn1tree.MetaVALUESET,
		ExprType:    asn1tree.ExprINTEGER,
		Constraints: &asn1tree.Constraint{Kind: asn1tree.CtELVALUE, Value: intVal(3)},
	})
	if len(l.Messages) != 1 || l.Messages[0].Fields[0].Rules != "int32 = {in: [3]}" {
		t.Errorf("Messages: got %+v", l.Messages)
	}
}

func TestLowerScalarType(t *testing.T) {
	tests := []struct {
		name     string
		exprType asn1tree.ExprType
		wantType string
	}{
		{name: "integer", exprType: asn1tree.ExprINTEGER, wantType: "int32"},
		{name: "ia5string", exprType: asn1tree.ExprIA5STRING, wantType: "string"},
		{name: "bmpstring", exprType: asn1tree.ExprBMPSTRING, wantType: "string"},
		{name: "boolean", exprType: asn1tree.ExprBOOLEAN, wantType: "bool"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newLowerer(nil)
			l.Lower(&asn1tree.Expr{Identifier: "X", MetaType: asn1tree.MetaTYPE, ExprType: tt.exprType})
			if len(l.Messages) != 1 || l.Messages[0].Fields[0].Type != tt.wantType {
				t.Errorf("Messages: got %+v, want field type %q", l.Messages, tt.wantType)
			}
		})
	}
}

func TestLowerSequence(t *testing.T) {
	l := newLowerer(nil)
	l.Lower(&asn1tree.Expr{
		Identifier: "Point",
		MetaType:   asn1tree.MetaTYPE,
		ExprType:   asn1tree.ExprSEQUENCE,
		Members: []*asn1tree.Expr{
			{Identifier: "x", ExprType: asn1tree.ExprBOOLEAN},
			{Identifier: "oid", ExprType: asn1tree.ExprOBJECTIDENTIFIER},
		},
	})
	if len(l.Messages) != 1 {
		t.Fatalf("Messages: got %d, want 1", len(l.Messages))
	}
	m := l.Messages[0]
	if len(m.Fields) != 2 || m.Fields[0].Type != "bool" || m.Fields[1].Type != "BasicOid" {
		t.Errorf("Fields: got %+v", m.Fields)
	}
}

func TestLowerChoice(t *testing.T) {
	l := newLowerer(nil)
	l.Lower(&asn1tree.Expr{
		Identifier: "Shape",
		MetaType:   asn1tree.MetaTYPE,
		ExprType:   asn1tree.ExprCHOICE,
		Members: []*asn1tree.Expr{
			{Identifier: "circle", ExprType: asn1tree.ExprREFERENCE, MetaType: asn1tree.MetaTYPEREF,
				Reference: &asn1tree.Reference{Components: []asn1tree.RefComponent{{Name: "Circle"}}}},
		},
	})
	if len(l.Messages) != 1 || len(l.Messages[0].Oneofs) != 1 {
		t.Fatalf("Messages: got %+v, want one message with one oneof", l.Messages)
	}
	oneof := l.Messages[0].Oneofs[0]
	if oneof.Name != "Shape" || len(oneof.Fields) != 1 || oneof.Fields[0].Type != "Circle" {
		t.Errorf("Oneofs[0]: got %+v", oneof)
	}
}

func TestLowerTypeRefResolvesThroughRegistry(t *testing.T) {
	terminal := &asn1tree.Expr{Identifier: "Age", MetaType: asn1tree.MetaTYPE, ExprType: asn1tree.ExprINTEGER}
	registry := map[string]*asn1tree.Expr{"Age": terminal}

	l := newLowerer(registry)
	l.Lower(&asn1tree.Expr{
		Identifier: "UserAge",
		MetaType:   asn1tree.MetaTYPEREF,
		Reference:  &asn1tree.Reference{Components: []asn1tree.RefComponent{{Name: "Age"}}},
	})
	if len(l.Messages) != 1 || l.Messages[0].Fields[0].Type != "Age" {
		t.Errorf("Messages: got %+v, want a field typed Age", l.Messages)
	}
}

func TestLowerTypeRefSpecializationSuffix(t *testing.T) {
	terminal := &asn1tree.Expr{Identifier: "Wrapper", MetaType: asn1tree.MetaTYPE, ExprType: asn1tree.ExprSEQUENCE, TypeUniqueIndex: 2}
	registry := map[string]*asn1tree.Expr{"Wrapper": terminal}

	l := newLowerer(registry)
	l.Lower(&asn1tree.Expr{
		Identifier: "Field1",
		MetaType:   asn1tree.MetaTYPEREF,
		Reference:  &asn1tree.Reference{Components: []asn1tree.RefComponent{{Name: "Wrapper"}}},
	})
	if l.Messages[0].Fields[0].Type != "Wrapper002" {
		t.Errorf("Fields[0].Type: got %q, want %q", l.Messages[0].Fields[0].Type, "Wrapper002")
	}
}

func TestLowerTypeRefUnresolvedFallsBackToLastComponent(t *testing.T) {
	l := newLowerer(nil)
	l.Lower(&asn1tree.Expr{
		Identifier: "Field1",
		MetaType:   asn1tree.MetaTYPEREF,
		Reference:  &asn1tree.Reference{Components: []asn1tree.RefComponent{{Name: "Outer"}, {Name: "Inner"}}},
	})
	if l.Messages[0].Fields[0].Type != "Inner" {
		t.Errorf("Fields[0].Type: got %q, want %q", l.Messages[0].Fields[0].Type, "Inner")
	}
}

func TestLowerClassDefAndNonIntegerValueSetProduceNothing(t *testing.T) {
	l := newLowerer(nil)
	l.Lower(&asn1tree.Expr{Identifier: "SomeClass", ExprType: asn1tree.ExprCLASSDEF})
	l.Lower(&asn1tree.Expr{Identifier: "SomeSet", MetaType: asn1tree.MetaVALUESET, ExprType: asn1tree.ExprUTF8STRING})
	if len(l.Messages) != 0 || len(l.Enums) != 0 {
		t.Errorf("got Messages=%v Enums=%v, want both empty", l.Messages, l.Enums)
	}
}

func TestLowerDefaultCaseAccumulatesNonFatalError(t *testing.T) {
	l := newLowerer(nil)
	l.Lower(&asn1tree.Expr{Identifier: "Mystery", MetaType: asn1tree.MetaOBJECTCLASS, ExprType: asn1tree.ExprUNKNOWN})
	if l.Fatal {
		t.Errorf("Fatal: got true, want false for an unhandled top-level dispatch (not a value-context error)")
	}
	if len(l.Errs) != 1 {
		t.Errorf("Errs: got %d, want 1", len(l.Errs))
	}
	if len(l.ErrorComments) != 1 || !strings.HasPrefix(l.ErrorComments[0], "ERROR ") {
		t.Errorf("ErrorComments: got %v, want one line prefixed with %q", l.ErrorComments, "ERROR ")
	}
}

func TestResolveTerminalCycleSafe(t *testing.T) {
	a := &asn1tree.Expr{Identifier: "A", MetaType: asn1tree.MetaTYPEREF,
		Reference: &asn1tree.Reference{Components: []asn1tree.RefComponent{{Name: "B"}}}}
	b := &asn1tree.Expr{Identifier: "B", MetaType: asn1tree.MetaTYPEREF,
		Reference: &asn1tree.Reference{Components: []asn1tree.RefComponent{{Name: "A"}}}}
	registry := map[string]*asn1tree.Expr{"A": a, "B": b}

	l := newLowerer(registry)
	if got := l.resolveTerminal(a); got != nil {
		t.Errorf("resolveTerminal on a cycle: got %+v, want nil", got)
	}
}

func TestExtractParams(t *testing.T) {
	l := newLowerer(nil)
	expr := &asn1tree.Expr{
		Identifier: "Param1",
		LHSParams:  []asn1tree.Param{{GovernorName: "INTEGER", Argument: "foo"}},
	}
	msg := newMessageForTest()
	l.extractParams(msg, expr)

	if len(msg.Params) != 1 || msg.Params[0].Name != "foo" {
		t.Errorf("Params: got %+v, want one param named foo", msg.Params)
	}
	if msg.Comment == "" {
		t.Errorf("Comment: got empty, want a Param line appended")
	}
}
