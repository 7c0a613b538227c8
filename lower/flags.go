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

// Package lower turns an asn1tree.Expr forest into a protoir.Module,
// dispatching on each expression's (meta type, expr type) pair and
// printing values, constraints, and information-object-class tables along
// the way.
package lower

// Flags modifies how ValuePrinter and ConstraintPrinter render a node.
type Flags uint32

const (
	// Int32Value indicates MAX should render as the int32 ceiling
	// rather than being elided.
	Int32Value Flags = 1 << iota
	// StringValue indicates the caller is building a string-typed
	// validation rule, so RANGE-family constraints render as
	// min_len/max_len rather than gte/lte.
	StringValue
)

// Has reports whether all bits of other are set in f.
func (f Flags) Has(other Flags) bool {
	return f&other == other
}

// Options are the translator-wide toggles for two ambiguous corners of
// ValuePrinter/ConstraintPrinter rendering.
type Options struct {
	// StrictStringLengthBounds, when true, appends a flagging comment
	// to LL_RANGE/UL_RANGE string constraints instead of silently
	// widening them to inclusive min_len/max_len. Default false
	// silently widens.
	StrictStringLengthBounds bool
	// EscapeStringQuotesWithBackslash, when true, backslash-escapes
	// embedded quotes in STRING values instead of doubling them up.
	// Default false doubles the quotes, which is not valid proto3
	// string-literal syntax.
	EscapeStringQuotesWithBackslash bool
}
