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
	"fmt"

	"github.com/golang/glog"

	"github.com/onosproject/asn1protogen/asn1tree"
	"github.com/onosproject/asn1protogen/protoir"
	"github.com/onosproject/asn1protogen/util"
)

// Lowerer dispatches on each top-level asn1tree.Expr's (meta type, expr
// type) pair, appending the proto messages and enums it produces to its
// own Messages/Enums slices. It never returns failure to its caller for
// recoverable issues (spec section 7); read Errs after a pass completes
// to see the accumulated diagnostics, and check Fatal for the one case
// ("unhandled expr_type in value context") that the top-level driver may
// surface as a non-zero exit status.
type Lowerer struct {
	Printer *Printer

	// Registry maps a definition's Identifier to its Expr, used to
	// follow A1TC_REFERENCE/TYPEREF chains to their terminal type. The
	// caller populates it from every top-level definition in the module
	// before lowering begins.
	Registry map[string]*asn1tree.Expr

	Messages []*protoir.Message
	Enums    []*protoir.Enum

	Errs  util.Errors
	Fatal bool

	// ErrorComments collects one "ERROR ..." line per unhandled construct,
	// in encounter order, for the caller to fold into the emitted
	// module's header comment (spec section 7: these are prefixed to
	// the output, not just logged).
	ErrorComments []string
}

// recordError logs an unhandled-construct diagnostic, accumulates it in
// Errs, and records an "ERROR ..." line in ErrorComments so it surfaces
// in the emitted proto3 output as well as the process log.
func (l *Lowerer) recordError(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	glog.Warningf("lower: %s", msg)
	l.Errs = util.AppendErr(l.Errs, fmt.Errorf("%s", msg))
	l.ErrorComments = append(l.ErrorComments, "ERROR "+msg)
}

// NewLowerer returns a Lowerer configured with opts and ready to resolve
// references against registry.
func NewLowerer(opts Options, registry map[string]*asn1tree.Expr) *Lowerer {
	return &Lowerer{
		Printer:  NewPrinter(opts),
		Registry: registry,
	}
}

// Lower dispatches a single top-level expression, appending whatever
// messages or enums it produces to l.Messages/l.Enums.
func (l *Lowerer) Lower(expr *asn1tree.Expr) {
	if len(expr.Specializations) > 0 {
		for _, spec := range expr.Specializations {
			l.Lower(spec.Clone)
		}
		return
	}

	if expr.Identifier == "" {
		return
	}

	switch {
	case expr.ExprType == asn1tree.ExprENUMERATED:
		l.lowerEnum(expr)

	case expr.MetaType == asn1tree.MetaVALUE:
		l.lowerValue(expr)

	case expr.ExprType == asn1tree.ExprINTEGER && expr.MetaType == asn1tree.MetaVALUESET:
		l.lowerIntegerValueSet(expr)

	case expr.MetaType == asn1tree.MetaTYPE && isScalarExprType(expr.ExprType):
		l.lowerScalarType(expr)

	case expr.MetaType == asn1tree.MetaTYPE && (expr.ExprType == asn1tree.ExprSEQUENCE || expr.ExprType == asn1tree.ExprSEQUENCEOF):
		l.lowerSequence(expr)

	case expr.MetaType == asn1tree.MetaTYPE && expr.ExprType == asn1tree.ExprCHOICE:
		l.lowerChoice(expr)

	case expr.ExprType == asn1tree.ExprCLASSDEF:
		// No equivalent of CLASS in proto3; silently ignored.

	case expr.MetaType == asn1tree.MetaTYPEREF:
		l.lowerTypeRef(expr)

	case expr.MetaType == asn1tree.MetaVALUESET:
		// Non-integer value set; no proto equivalent.

	default:
		l.recordError("unhandled expr %q (meta=%d, type=%d)", expr.Identifier, expr.MetaType, expr.ExprType)
	}
}

func isScalarExprType(t asn1tree.ExprType) bool {
	switch t {
	case asn1tree.ExprINTEGER, asn1tree.ExprIA5STRING, asn1tree.ExprBMPSTRING, asn1tree.ExprBOOLEAN:
		return true
	default:
		return false
	}
}

func (l *Lowerer) lowerEnum(expr *asn1tree.Expr) {
	enum := protoir.NewEnum(expr.Identifier, "enumerated from %s:%d", expr.SourceFile, expr.LineNo)
	for _, se := range expr.Members {
		if se.ExprType != asn1tree.ExprUNIVERVAL {
			continue
		}
		index := -1
		hasIndex := false
		if se.Value != nil && se.Value.Kind == asn1tree.ValueINTEGER && se.Value.Integer != nil && se.Value.Integer.Sign() >= 0 {
			index = int(se.Value.Integer.Int64())
			hasIndex = true
		}
		enum.AddEntry(se.Identifier, index, hasIndex)
	}
	l.Enums = append(l.Enums, enum)
}

func (l *Lowerer) lowerValue(expr *asn1tree.Expr) {
	switch expr.ExprType {
	case asn1tree.ExprINTEGER:
		msg := protoir.NewMessage(expr.Identifier, expr.SpecIndex, expr.TypeUniqueIndex,
			"constant Integer from %s:%d", expr.SourceFile, expr.LineNo)
		v := "0"
		if expr.Value != nil {
			v = l.Printer.PrintValue(expr.Value, 0)
		}
		msg.AddField(&protoir.Field{Name: "value", Type: "int32", Rules: fmt.Sprintf("int32.const = %s", v)})
		l.Messages = append(l.Messages, msg)

	case asn1tree.ExprREFERENCE:
		l.lowerReferenceValue(expr)

	default:
		l.recordError("unhandled expr_type in value context for %q: %d", expr.Identifier, expr.ExprType)
		l.Fatal = true
	}
}

func (l *Lowerer) lowerReferenceValue(expr *asn1tree.Expr) {
	msg := protoir.NewMessage(expr.Identifier, expr.SpecIndex, expr.TypeUniqueIndex,
		"reference from %s:%d", expr.SourceFile, expr.LineNo)
	field := &protoir.Field{Name: "value", Type: "int32", Comment: printReference(expr.Reference)}

	if expr.Value == nil {
		msg.AddField(field)
		l.Messages = append(l.Messages, msg)
		return
	}

	switch expr.Value.Kind {
	case asn1tree.ValueINTEGER:
		field.Rules = fmt.Sprintf("int32.const = %s", l.Printer.PrintValue(expr.Value, 0))
		msg.AddField(field)
		l.Messages = append(l.Messages, msg)

	case asn1tree.ValueSTRING:
		field.Type = "string"
		field.Rules = fmt.Sprintf("string.const = %s", l.Printer.PrintValue(expr.Value, 0))
		msg.AddField(field)
		l.Messages = append(l.Messages, msg)

	case asn1tree.ValueUNPARSED:
		if expr.IOCTable != nil {
			l.Messages = append(l.Messages, l.Printer.ExtractIOC(expr))
		}

	default:
		l.recordError("AMT_VALUE reference %q with unexpected value kind %d", expr.Identifier, expr.Value.Kind)
	}
}

func (l *Lowerer) lowerIntegerValueSet(expr *asn1tree.Expr) {
	msg := protoir.NewMessage(expr.Identifier, expr.SpecIndex, expr.TypeUniqueIndex,
		"range of Integer from %s:%d", expr.SourceFile, expr.LineNo)
	constraints := l.Printer.PrintConstraint(expr.Constraints, 0)
	msg.AddField(&protoir.Field{Name: "value", Type: "int32", Rules: fmt.Sprintf("int32 = {in: [%s]}", constraints)})
	l.Messages = append(l.Messages, msg)
}

// lowerScalarType handles meta=TYPE over INTEGER, IA5String, BMPString,
// and BOOLEAN. The "range of Integer" comment text below is reused
// verbatim for every scalar kind, including string and boolean types;
// that is not a typo here but a faithful reproduction of the same quirk
// in the originating implementation.
func (l *Lowerer) lowerScalarType(expr *asn1tree.Expr) {
	msg := protoir.NewMessage(expr.Identifier, expr.SpecIndex, expr.TypeUniqueIndex,
		"range of Integer from %s:%d", expr.SourceFile, expr.LineNo)
	l.extractParams(msg, expr)

	field := &protoir.Field{Name: "value", Type: "int32"}
	switch expr.ExprType {
	case asn1tree.ExprINTEGER:
		if expr.Constraints != nil {
			field.Rules = fmt.Sprintf("int32 = {%s}", l.Printer.PrintConstraint(expr.Constraints, Int32Value))
		}
	case asn1tree.ExprIA5STRING, asn1tree.ExprBMPSTRING:
		field.Type = "string"
		if expr.Constraints != nil {
			field.Rules = fmt.Sprintf("string = {%s}", l.Printer.PrintConstraint(expr.Constraints, StringValue))
		}
	case asn1tree.ExprBOOLEAN:
		field.Type = "bool"
	default:
		return
	}
	msg.AddField(field)
	l.Messages = append(l.Messages, msg)
}

func (l *Lowerer) lowerSequence(expr *asn1tree.Expr) {
	msg := protoir.NewMessage(expr.Identifier, expr.SpecIndex, expr.TypeUniqueIndex,
		"sequence from %s:%d", expr.SourceFile, expr.LineNo)
	l.extractParams(msg, expr)

	fields, _ := l.lowerChildren(expr.Members, expr.ExprType == asn1tree.ExprSEQUENCEOF)
	for _, f := range fields {
		msg.AddField(f)
	}
	l.Messages = append(l.Messages, msg)
}

func (l *Lowerer) lowerChoice(expr *asn1tree.Expr) {
	msg := protoir.NewMessage(expr.Identifier, expr.SpecIndex, expr.TypeUniqueIndex,
		"sequence from %s:%d", expr.SourceFile, expr.LineNo)
	l.extractParams(msg, expr)

	oneof := &protoir.Oneof{
		Name:    expr.Identifier,
		Comment: fmt.Sprintf("choice from %s:%d", expr.SourceFile, expr.LineNo),
	}
	fields, _ := l.lowerChildren(expr.Members, false)
	for _, f := range fields {
		oneof.AddField(f)
	}
	msg.AddOneof(oneof)
	l.Messages = append(l.Messages, msg)
}

func (l *Lowerer) lowerTypeRef(expr *asn1tree.Expr) {
	msg := protoir.NewMessage(expr.Identifier, expr.SpecIndex, expr.TypeUniqueIndex,
		"reference from %s:%d", expr.SourceFile, expr.LineNo)
	l.extractParams(msg, expr)

	fieldType := "int32"
	if expr.Reference != nil && len(expr.Reference.Components) >= 1 {
		if term := l.resolveTerminal(expr); term != nil {
			fieldType = typeRefFieldType(term.Identifier, term.TypeUniqueIndex)
		} else {
			last := expr.Reference.Components[len(expr.Reference.Components)-1]
			fieldType = typeRefFieldType(last.Name, 0)
		}
	}
	msg.AddField(&protoir.Field{Name: "value", Type: fieldType})
	l.Messages = append(l.Messages, msg)
}

// typeRefFieldType names a TYPEREF field's target type as the terminal
// definition's identifier, suffixed with its 3-digit type_unique_index
// only when that index disambiguates a specialization (index 0, the
// common single-definition case, renders with no suffix, matching how
// the emitter names an ordinary message).
func typeRefFieldType(identifier string, typeUniqueIndex int) string {
	if typeUniqueIndex == 0 {
		return identifier
	}
	return fmt.Sprintf("%s%03d", identifier, typeUniqueIndex)
}

// resolveTerminal follows a chain of A1TC_REFERENCE/TYPEREF definitions
// through l.Registry until it reaches a non-TYPEREF definition (the
// terminal type), returning nil if the chain cannot be followed (an
// unregistered identifier, or a cycle).
func (l *Lowerer) resolveTerminal(expr *asn1tree.Expr) *asn1tree.Expr {
	seen := map[string]bool{}
	cur := expr
	for {
		if cur.Reference == nil || len(cur.Reference.Components) == 0 {
			return cur
		}
		name := cur.Reference.Components[0].Name
		if seen[name] {
			return nil
		}
		seen[name] = true

		next, ok := l.Registry[name]
		if !ok {
			return nil
		}
		if next.MetaType != asn1tree.MetaTYPEREF {
			return next
		}
		cur = next
	}
}

// extractParams folds an Expr's generic lhs_params into the message's
// Params header and appends one "Param <governor>:<argument>" comment
// line per parameter.
func (l *Lowerer) extractParams(msg *protoir.Message, expr *asn1tree.Expr) {
	for _, param := range expr.LHSParams {
		msg.AddParam(protoir.Param{Kind: ParamKind(param), Name: param.Argument})
		msg.AppendComment(fmt.Sprintf("Param %s:%s", param.GovernorName, param.Argument))
	}
}

// lowerChildren lowers the member expressions of a SEQUENCE, SEQUENCE OF,
// or CHOICE into proto fields, per spec section 4.4.1. parentRepeated is
// true only when the enclosing type is SEQUENCE OF, in which case every
// child field inherits the repeated flag (a SEQUENCE OF child can still
// independently set its own repeated flag when it is itself a nested
// SEQUENCE OF).
func (l *Lowerer) lowerChildren(members []*asn1tree.Expr, parentRepeated bool) (fields []*protoir.Field, extensible bool) {
	for _, se := range members {
		if se.ExprType == asn1tree.ExprEXTENSIBLE {
			extensible = true
			continue
		}
		if se.ExprType == asn1tree.ExprUNIVERVAL {
			continue
		}

		elem := &protoir.Field{Name: se.Identifier, Type: "int32", Repeated: parentRepeated}

		switch {
		case se.ExprType == asn1tree.ExprBITSTRING:
			elem.Type = "BitString"

		case se.ExprType == asn1tree.ExprOBJECTIDENTIFIER:
			elem.Type = "BasicOid"

		case se.ExprType == asn1tree.ExprBOOLEAN:
			elem.Type = "bool"

		case se.ExprType == asn1tree.ExprUTF8STRING || se.ExprType == asn1tree.ExprTELETEXSTRING:
			elem.Type = "string"
			if se.Constraints != nil {
				elem.Rules = fmt.Sprintf("string = {%s}", l.Printer.PrintConstraint(se.Constraints, StringValue))
			}

		case se.MetaType == asn1tree.MetaTYPE && se.ExprType == asn1tree.ExprSEQUENCEOF:
			elem.Repeated = true
			if len(se.Members) > 0 {
				first := se.Members[0]
				if first.ExprType == asn1tree.ExprREFERENCE && first.MetaType == asn1tree.MetaTYPEREF &&
					first.Reference != nil && len(first.Reference.Components) == 1 {
					elem.Type = first.Reference.Components[0].Name
				}
			}

		case se.ExprType == asn1tree.ExprREFERENCE && se.MetaType == asn1tree.MetaTYPEREF:
			if se.Reference != nil {
				switch len(se.Reference.Components) {
				case 1:
					elem.Type = se.Reference.Components[0].Name
				case 2:
					elem.Type = se.Reference.Components[1].Name
				}
			}
		}

		fields = append(fields, elem)
	}
	return fields, extensible
}
