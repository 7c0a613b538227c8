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

	"github.com/onosproject/asn1protogen/asn1tree"
)

// PrintConstraint flattens a constraint tree into a validate.v1.rules
// fragment (or, for the constructs with no proto analogue, a verbatim
// ASN.1-ish comment fragment). An asn1tree.CtINVALID node is a structural
// impossibility coming from the parser/fixer, not a user error, so it
// aborts via panic rather than degrading gracefully (spec section 7).
func (p *Printer) PrintConstraint(ct *asn1tree.Constraint, flags Flags) string {
	if ct == nil {
		return ""
	}

	var result strings.Builder
	perhapsSubconstraints := false

	switch ct.Kind {
	case asn1tree.CtELTYPE:
		result.WriteString(p.PrintValue(ct.ContainedSubtype, flags))
		perhapsSubconstraints = true

	case asn1tree.CtELVALUE:
		if flags.Has(StringValue) {
			v := p.PrintValue(ct.Value, flags)
			result.WriteString("min_len: ")
			result.WriteString(v)
			result.WriteString(", max_len: ")
			result.WriteString(v)
		} else {
			result.WriteString(p.PrintValue(ct.Value, flags))
			perhapsSubconstraints = true
		}

	case asn1tree.CtELRANGE, asn1tree.CtELLLRANGE, asn1tree.CtELRLRANGE, asn1tree.CtELULRANGE:
		result.WriteString(p.printRange(ct, flags))

	case asn1tree.CtELEXT:
		// No text; an extension marker within a constraint carries no
		// rule of its own.

	case asn1tree.CtSIZE, asn1tree.CtFROM:
		// SIZE elides the keyword itself (the caller already targets a
		// length context); FROM keeps it.
		if ct.Kind == asn1tree.CtFROM {
			result.WriteString("FROM")
		}
		if len(ct.Elements) == 1 {
			result.WriteString(p.PrintConstraint(ct.Elements[0], flags))
		}

	case asn1tree.CtWITHCOMPONENT:
		result.WriteString("WITH COMPONENT")
		perhapsSubconstraints = true

	case asn1tree.CtWITHCOMPONENTS:
		result.WriteString("WITH COMPONENTS { ")
		for i, cel := range ct.Elements {
			if i > 0 {
				result.WriteString(", ")
			}
			result.WriteString(p.PrintConstraint(cel, flags))
			// Presence annotations (PRESENT/ABSENT/OPTIONAL) are parsed
			// onto cel.Presence but intentionally produce no text here,
			// preserving the original's empty cases.
		}
		result.WriteString(" }")

	case asn1tree.CtCONSTRAINEDBY:
		result.WriteString("CONSTRAINED BY ")
		result.WriteString(p.PrintValue(ct.Value, flags))

	case asn1tree.CtCONTAINING:
		result.WriteString("CONTAINING ")
		result.WriteString(p.PrintValue(ct.Value, flags))

	case asn1tree.CtPATTERN:
		result.WriteString("PATTERN ")
		result.WriteString(p.PrintValue(ct.Value, flags))

	case asn1tree.CtUNION, asn1tree.CtINTERSECTION, asn1tree.CtEXCEPT, asn1tree.CtCSV, asn1tree.CtCRC, asn1tree.CtSET:
		result.WriteString(p.printAlgebraic(ct, flags))

	case asn1tree.CtALLEXCEPT:
		result.WriteString("ALL EXCEPT")
		perhapsSubconstraints = true

	case asn1tree.CtINVALID:
		panic("lower: CtINVALID constraint node reached the printer; this is a parser/fixer bug, not translator input")
	}

	if perhapsSubconstraints && len(ct.Elements) > 0 {
		result.WriteString(" ")
		result.WriteString(p.PrintConstraint(ct.Elements[0], flags))
	}

	return result.String()
}

// printRange renders the four RANGE/LL_RANGE/RL_RANGE/UL_RANGE
// combinations of open/closed endpoints.
func (p *Printer) printRange(ct *asn1tree.Constraint, flags Flags) string {
	strict := ct.Kind == asn1tree.CtELLLRANGE || ct.Kind == asn1tree.CtELULRANGE

	var lowKw string
	switch {
	case !strict && flags.Has(StringValue):
		lowKw = "min_len: "
	case !strict:
		lowKw = "gte: "
	case flags.Has(StringValue):
		lowKw = "min_len: "
	default:
		lowKw = "gt: "
	}

	var b strings.Builder
	b.WriteString(lowKw)
	b.WriteString(p.PrintValue(ct.RangeStart, flags))

	stop := p.PrintValue(ct.RangeStop, flags)
	if stop == "" {
		return b.String()
	}
	b.WriteString(", ")

	closedRight := ct.Kind == asn1tree.CtELRANGE || ct.Kind == asn1tree.CtELLLRANGE
	var highKw string
	switch {
	case closedRight && flags.Has(StringValue):
		highKw = "max_len: "
	case closedRight:
		highKw = "lte: "
	case flags.Has(StringValue):
		highKw = "max_len: "
	default:
		highKw = "lt: "
	}
	b.WriteString(highKw)
	b.WriteString(stop)

	if strict && flags.Has(StringValue) && p.Opts.StrictStringLengthBounds {
		b.WriteString(" /* strict string-length bound widened to inclusive */")
	}
	return b.String()
}

// printAlgebraic renders the UNION/INTERSECTION/EXCEPT/CSV/CRC/SET
// combinators, joining their children with the symbol spec section 4.2
// assigns to each kind.
func (p *Printer) printAlgebraic(ct *asn1tree.Constraint, flags Flags) string {
	var sep string
	wrapBraces := false
	switch ct.Kind {
	case asn1tree.CtEXCEPT:
		sep = " EXCEPT "
	case asn1tree.CtINTERSECTION:
		sep = " ^ "
	case asn1tree.CtUNION:
		sep = ""
	case asn1tree.CtCSV:
		sep = ","
	case asn1tree.CtCRC:
		sep = ","
		wrapBraces = true
	case asn1tree.CtSET:
		sep = "} "
	}

	parts := make([]string, len(ct.Elements))
	for i, el := range ct.Elements {
		s := p.PrintConstraint(el, flags)
		if wrapBraces {
			s = "{" + s + "}"
		}
		parts[i] = s
	}
	return strings.Join(parts, sep)
}
