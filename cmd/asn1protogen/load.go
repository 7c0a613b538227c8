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

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/onosproject/asn1protogen/asn1tree"
	"github.com/onosproject/asn1protogen/translate"
)

// moduleDoc is the on-disk shape the out-of-scope ASN.1 parser is
// expected to hand this driver: a JSON dump of the already
// fix-normalized module tree (spec section 6's "Input" contract), since
// the parser and constraint fixer themselves are not part of the core.
type moduleDoc struct {
	Name       string                `json:"name"`
	SourceFile string                `json:"source_file"`
	OID        string                `json:"oid,omitempty"`
	Imports    []translate.ImportSpec `json:"imports,omitempty"`
	TopLevel   []*asn1tree.Expr      `json:"top_level"`
}

// loadModule reads a moduleDoc from path and adapts it into a
// translate.Module.
func loadModule(path string) (*translate.Module, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var doc moduleDoc
	if err := json.NewDecoder(f).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding module: %w", err)
	}

	return &translate.Module{
		Name:       doc.Name,
		SourceFile: doc.SourceFile,
		OID:        doc.OID,
		HasOID:     doc.OID != "",
		Imports:    doc.Imports,
		TopLevel:   doc.TopLevel,
	}, nil
}
