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

// protoScalarTypes is the fixed set of type tokens the emitter passes
// through verbatim rather than PascalCasing. It is an explicit set
// rather than a substring scan so that a type name merely containing
// "int32" as a substring is not mistaken for the scalar.
var protoScalarTypes = map[string]bool{
	"int32":  true,
	"float":  true,
	"bool":   true,
	"string": true,
}

// isProtoScalarType reports whether typ is one of the fixed proto3
// scalar type keywords, which the emitter never PascalCases.
func isProtoScalarType(typ string) bool {
	return protoScalarTypes[typ]
}
