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

// Package translate wires the lowering pass, the Proto model, and the
// emitter into a single entry point.
package translate

import (
	"fmt"

	log "github.com/golang/glog"

	"github.com/onosproject/asn1protogen/asn1tree"
	"github.com/onosproject/asn1protogen/emit"
	"github.com/onosproject/asn1protogen/lower"
	"github.com/onosproject/asn1protogen/protoir"
	"github.com/onosproject/asn1protogen/util"
)

// Options configures a translation run. The zero value preserves the
// originating implementation's byte-for-byte behavior; see
// lower.Options for what each toggle does.
type Options struct {
	Lower lower.Options

	// ToolName and ToolVersion are stamped into the emitted header's
	// "generated by" line.
	ToolName    string
	ToolVersion string
}

// Module is the complete input to a translation: the module's own
// top-level expressions, its name, source filename, and optional OID,
// plus any import declarations the module has already resolved at the
// ASN.1 level (a path and an optional OID annotation).
type Module struct {
	Name       string
	SourceFile string
	OID        string
	HasOID     bool

	Imports []ImportSpec

	// TopLevel holds every top-level definition in the module, in
	// declaration order. ExprLowerer is invoked once per entry.
	TopLevel []*asn1tree.Expr
}

// ImportSpec is one module-level import the lowering pass did not
// itself discover (the parser collaborator resolves these).
type ImportSpec struct {
	Path   string
	OID    string
	HasOID bool
}

// Generate lowers every top-level expression in mod, in order, building
// a registry of identifier to expression first so that TYPEREF chains
// can be resolved to their terminal type, then returns the populated
// Proto module ready for Emit, along with any accumulated diagnostics.
// Generate returns a non-nil error only for the single "unhandled
// expr_type in value context" case (spec section 7); every other
// recoverable issue is folded into the returned util.Errors instead.
func Generate(mod *Module, opts Options) (*protoir.Module, util.Errors, error) {
	registry := map[string]*asn1tree.Expr{}
	for _, expr := range mod.TopLevel {
		if expr.Identifier != "" {
			registry[expr.Identifier] = expr
		}
	}

	lowerer := lower.NewLowerer(opts.Lower, registry)
	for _, expr := range mod.TopLevel {
		lowerer.Lower(expr)
	}

	out := protoir.NewModule(mod.Name, mod.SourceFile)
	out.OID = mod.OID
	out.HasOID = mod.HasOID
	for _, imp := range mod.Imports {
		out.AddImport(&protoir.Import{Path: imp.Path, OID: imp.OID, HasOID: imp.HasOID})
	}
	for _, e := range lowerer.Enums {
		out.AddEnum(e)
	}
	for _, m := range lowerer.Messages {
		out.AddMessage(m)
	}
	for _, line := range lowerer.ErrorComments {
		out.AppendComment(line)
	}

	if lowerer.Fatal {
		log.Errorf("translate: %s: %v", mod.Name, lowerer.Errs)
		return out, lowerer.Errs, fmt.Errorf("translate: %s: unhandled expr_type in value context", mod.Name)
	}
	for _, err := range lowerer.Errs {
		log.Warningf("translate: %s: %v", mod.Name, err)
	}
	return out, lowerer.Errs, nil
}

// Emit runs the emitter over a Proto module produced by Generate,
// writing proto3 source text to sink.
func Emit(protoMod *protoir.Module, sink emit.Sink, opts Options) error {
	emitter := emit.NewEmitter(sink)
	if opts.ToolName != "" {
		emitter.ToolName = opts.ToolName
	}
	if opts.ToolVersion != "" {
		emitter.ToolVersion = opts.ToolVersion
	}
	return emitter.Emit(protoMod)
}
