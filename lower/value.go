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
	"strings"

	"github.com/onosproject/asn1protogen/asn1tree"
)

// int32Max is the upper bound rendered for ATV_MAX under Int32Value,
// matching the original's literal INT32_MAX constant.
const int32Max = 1<<31 - 1

// Printer renders ASN.1 values and constraint trees into the strings
// that become proto scalar literals or validate.v1.rules fragments. It
// carries the translator's byte-compatibility toggles (Options) since
// both renderings are pure functions of their input plus those toggles.
type Printer struct {
	Opts Options
}

// NewPrinter returns a Printer configured with opts.
func NewPrinter(opts Options) *Printer {
	return &Printer{Opts: opts}
}

// PrintValue renders a single ASN.1 value literal. It never fails: an
// unrecognized or absent value renders as the empty string, matching the
// original's "fails silently" contract (spec section 4.1).
func (p *Printer) PrintValue(v *asn1tree.Value, flags Flags) string {
	if v == nil {
		return ""
	}
	switch v.Kind {
	case asn1tree.ValueNOVALUE:
		return ""
	case asn1tree.ValueNULL:
		return "NULL"
	case asn1tree.ValueREAL:
		return fmt.Sprintf("%f", v.Real)
	case asn1tree.ValueINTEGER:
		if v.Integer == nil {
			return "0"
		}
		return v.Integer.String()
	case asn1tree.ValueMIN:
		return "0"
	case asn1tree.ValueMAX:
		if flags.Has(Int32Value) {
			return fmt.Sprintf("%d", int32Max)
		}
		return ""
	case asn1tree.ValueFALSE:
		return "FALSE"
	case asn1tree.ValueTRUE:
		return "TRUE"
	case asn1tree.ValueTUPLE:
		n := int64(0)
		if v.Integer != nil {
			n = v.Integer.Int64()
		}
		return fmt.Sprintf("{%d, %d}", n>>4, n&0x0f)
	case asn1tree.ValueQUADRUPLE:
		n := int64(0)
		if v.Integer != nil {
			n = v.Integer.Int64()
		}
		return fmt.Sprintf("{%d, %d, %d, %d}",
			(n>>24)&0xff, (n>>16)&0xff, (n>>8)&0xff, n&0xff)
	case asn1tree.ValueSTRING:
		return p.quoteString(v.Str)
	case asn1tree.ValueUNPARSED:
		return v.Str
	case asn1tree.ValueBITVECTOR:
		return printBitVector(v.Bits)
	case asn1tree.ValueREFERENCED:
		return printReference(v.Reference)
	case asn1tree.ValueCHOICEIDENTIFIER:
		return v.Identifier + p.PrintValue(v.Inner, flags)
	case asn1tree.ValueTYPE:
		return "ERROR not yet implemented"
	case asn1tree.ValueVALUESET:
		return ""
	default:
		return ""
	}
}

// quoteString renders a STRING value quoted for inclusion in a
// validate.v1.rules string.const. By default it doubles embedded quotes,
// matching the original's proto3-invalid escaping (spec section 9, Open
// Question 2); setting Opts.EscapeStringQuotesWithBackslash backslash-
// escapes them instead, producing valid proto3 syntax.
func (p *Printer) quoteString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		if r == '"' {
			if p.Opts.EscapeStringQuotesWithBackslash {
				b.WriteByte('\\')
			} else {
				b.WriteRune(r)
			}
		}
		b.WriteRune(r)
	}
	b.WriteByte('"')
	return b.String()
}

// printBitVector renders a bit string as 'B (binary) when its length is
// not a multiple of 8, else as 'H (uppercase hex).
func printBitVector(bv asn1tree.BitVector) string {
	var b strings.Builder
	b.WriteByte('\'')
	if bv.NBits%8 != 0 {
		for i := 0; i < bv.NBits; i++ {
			byteVal := bv.Bits[i>>3]
			bit := (byteVal >> (7 - uint(i%8))) & 1
			if bit == 1 {
				b.WriteByte('1')
			} else {
				b.WriteByte('0')
			}
		}
		b.WriteString("'B")
		return b.String()
	}
	const hexDigits = "0123456789ABCDEF"
	for i := 0; i < bv.NBits/8; i++ {
		byteVal := bv.Bits[i]
		b.WriteByte(hexDigits[byteVal>>4])
		b.WriteByte(hexDigits[byteVal&0x0f])
	}
	b.WriteString("'H")
	return b.String()
}

// printReference renders a dotted component-name path, used for both
// ATV_REFERENCED values and reference comments.
func printReference(ref *asn1tree.Reference) string {
	if ref == nil {
		return ""
	}
	names := make([]string, len(ref.Components))
	for i, c := range ref.Components {
		names[i] = c.Name
	}
	return strings.Join(names, ".")
}
