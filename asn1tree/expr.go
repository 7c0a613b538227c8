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

// Package asn1tree defines the in-memory ASN.1 module tree that the
// lowering pass consumes. The tree is produced by an out-of-scope parser
// and constraint fixer; this package never mutates it.
package asn1tree

import "math/big"

// MetaType classifies what kind of definition an Expr represents.
type MetaType int

const (
	MetaUNKNOWN MetaType = iota
	MetaTYPE
	MetaVALUE
	MetaVALUESET
	MetaTYPEREF
	MetaOBJECTCLASS
)

// ExprType is the tag on the expression's underlying ASN.1 construct.
type ExprType int

const (
	ExprUNKNOWN ExprType = iota
	ExprENUMERATED
	ExprINTEGER
	ExprBOOLEAN
	ExprIA5STRING
	ExprBMPSTRING
	ExprUTF8STRING
	ExprTELETEXSTRING
	ExprBITSTRING
	ExprOBJECTIDENTIFIER
	ExprSEQUENCE
	ExprSEQUENCEOF
	ExprCHOICE
	ExprCLASSDEF
	ExprREFERENCE
	ExprUNIVERVAL
	ExprEXTENSIBLE
)

// RefComponent is a single dotted segment of a Reference.
type RefComponent struct {
	Name string
}

// Reference is a dotted chain of identifier components, e.g. the
// right-hand side of a value assignment that points at another definition.
type Reference struct {
	Components []RefComponent
}

// Param describes one entry of an Expr's left-hand-side parameter list
// (the generic arguments of a parameterized type).
type Param struct {
	// GovernorName is the name of the governing type's leading
	// component, used by the PROTO_PARAM_TYPE heuristic. An empty
	// governor means the parameter stands for a bare TYPE.
	GovernorName string
	Argument     string
}

// Specialization is a clone of a parameterized Expr with its parameters
// substituted by concrete arguments.
type Specialization struct {
	Clone *Expr
}

// Module is the back-pointer every Expr carries to its enclosing module.
type Module struct {
	Identifier string
	SourceFile string
}

// ValueKind tags the variant held by a Value.
type ValueKind int

const (
	ValueNOVALUE ValueKind = iota
	ValueNULL
	ValueREAL
	ValueINTEGER
	ValueMIN
	ValueMAX
	ValueFALSE
	ValueTRUE
	ValueTUPLE
	ValueQUADRUPLE
	ValueSTRING
	ValueBITVECTOR
	ValueREFERENCED
	ValueCHOICEIDENTIFIER
	ValueTYPE
	ValueVALUESET
	ValueUNPARSED
)

// BitVector holds a sequence of raw bits, MSB-first within each byte.
type BitVector struct {
	Bits   []byte
	NBits  int
}

// Value is an ASN.1 value literal, covering every variant that
// ValuePrinter is asked to render.
type Value struct {
	Kind ValueKind

	Integer    *big.Int // ValueINTEGER, ValueTUPLE, ValueQUADRUPLE (packed)
	Real       float64  // ValueREAL
	Str        string   // ValueSTRING, ValueUNPARSED
	Bits       BitVector
	Reference  *Reference // ValueREFERENCED
	Identifier string     // ValueCHOICEIDENTIFIER label
	Inner      *Value     // ValueCHOICEIDENTIFIER nested value, ValueTYPE payload (unused)
}

// PresenceKind is the WITH COMPONENTS cell presence annotation.
type PresenceKind int

const (
	PresenceDEFAULT PresenceKind = iota
	PresencePRESENT
	PresenceABSENT
	PresenceOPTIONAL
)

// ConstraintKind tags the variant of a Constraint node.
type ConstraintKind int

const (
	CtINVALID ConstraintKind = iota
	CtELTYPE
	CtELVALUE
	CtELRANGE
	CtELLLRANGE
	CtELRLRANGE
	CtELULRANGE
	CtELEXT
	CtSIZE
	CtFROM
	CtWITHCOMPONENT
	CtWITHCOMPONENTS
	CtCONSTRAINEDBY
	CtCONTAINING
	CtPATTERN
	CtUNION
	CtINTERSECTION
	CtEXCEPT
	CtALLEXCEPT
	CtCSV
	CtCRC
	CtSET
)

// Constraint is a node in the recursive subtype-constraint tree attached
// to a type or value Expr.
type Constraint struct {
	Kind ConstraintKind

	ContainedSubtype *Value // CtELTYPE
	Value            *Value // CtELVALUE, CtCONSTRAINEDBY, CtPATTERN
	RangeStart       *Value // CtELRANGE family
	RangeStop        *Value // CtELRANGE family

	// Elements holds the children of container/algebraic kinds
	// (CtSIZE/CtFROM/CtWITHCOMPONENT wrap exactly one; the algebraic
	// kinds and CtWITHCOMPONENTS may hold many).
	Elements []*Constraint

	// Presence is only meaningful as a property the parent
	// CtWITHCOMPONENTS cell attaches to this element.
	Presence PresenceKind
}

// IOCCell is one populated cell of an information-object-class instance
// table, corresponding to a column value for one object in the set.
type IOCCell struct {
	// NewRef is >0 when the cell actually introduces a value (an empty
	// cell is skipped by the extractor).
	NewRef int
	// FieldIdentifier is the name of the class field (table column)
	// that this cell populates.
	FieldIdentifier string
	// ValueIdentifier is the identifier carried by the cell's value,
	// used verbatim as a proto type name when the value is neither an
	// integer nor the literal "REAL".
	ValueIdentifier string
	// Value is the cell's own value, nil when the table row supplies a
	// type-only reference with no literal; the extractor then types the
	// field from ValueIdentifier alone, and a cell whose ValueIdentifier
	// is also empty gets an empty type and an ERROR comment, never a
	// crash.
	Value *Value
}

// IOCRow is one row (one class instance) of an IOCTable.
type IOCRow struct {
	Columns []IOCCell
}

// IOCTable is the information-object-class instance set attached to an
// Expr whose value is an unparsed object-set literal.
type IOCTable struct {
	Rows []IOCRow
}

// Expr is a single ASN.1 definition: a type, value, value set, type
// reference, or object class, exactly as described in spec section 3.
type Expr struct {
	Identifier string
	MetaType   MetaType
	ExprType   ExprType

	Value       *Value
	Constraints *Constraint
	Members     []*Expr

	LHSParams []Param
	Reference *Reference
	IOCTable  *IOCTable

	Module          *Module
	Specializations []Specialization

	SourceFile string
	LineNo     int

	SpecIndex       int
	TypeUniqueIndex int
}
