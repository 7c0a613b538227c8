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

	"github.com/onosproject/asn1protogen/asn1tree"
	"github.com/onosproject/asn1protogen/protoir"
)

// ExtractIOC turns an information-object-class instance table into a
// single proto message whose fields mirror the table's populated cells,
// one field per cell with a positive NewRef. The comment embeds the
// concrete class name (when the expression carries a reference to one)
// and the definition's source provenance.
func (p *Printer) ExtractIOC(expr *asn1tree.Expr) *protoir.Message {
	className := ""
	if expr.Reference != nil && len(expr.Reference.Components) > 0 {
		className = expr.Reference.Components[0].Name
	}

	msg := protoir.NewMessage(expr.Identifier, expr.SpecIndex, expr.TypeUniqueIndex,
		"concrete instance of class %s from %s:%d", className, expr.SourceFile, expr.LineNo)

	for _, row := range expr.IOCTable.Rows {
		for _, cell := range row.Columns {
			if cell.NewRef <= 0 {
				continue
			}

			fieldType, rules, errComment := p.iocCellTypeAndRules(cell)
			name := fmt.Sprintf("%s-%s", cell.FieldIdentifier, cell.ValueIdentifier)

			f := &protoir.Field{
				Name:    name,
				Type:    fieldType,
				Rules:   rules,
				Comment: errComment,
			}
			msg.AddField(f)
		}
	}

	return msg
}

// iocCellTypeAndRules maps one populated IOC cell to a proto field type
// and, when the cell is a concrete integer, an int32.const rule.
func (p *Printer) iocCellTypeAndRules(cell asn1tree.IOCCell) (fieldType, rules, errComment string) {
	if cell.Value != nil && cell.Value.Kind == asn1tree.ValueINTEGER {
		return "int32", fmt.Sprintf("int32.const = %s", p.PrintValue(cell.Value, 0)), ""
	}

	switch cell.ValueIdentifier {
	case "":
		// A missing value is never dereferenced as a null pointer (spec
		// section 9, Open Question 3): it renders as an empty-string
		// identifier plus an explicit error comment on the field.
		return "", "", "ERROR missing IOC cell value"
	case "INTEGER":
		return "int32", "", ""
	case "REAL":
		return "float", "", ""
	default:
		return cell.ValueIdentifier, "", ""
	}
}
