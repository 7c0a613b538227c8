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
	"github.com/onosproject/asn1protogen/asn1tree"
	"github.com/onosproject/asn1protogen/protoir"
)

// ParamKind classifies a generic parameter's kind from its governor and
// argument text: an empty governor means the parameter stands for a bare
// TYPE; otherwise a lowercase-leading argument is a VALUE and anything
// else is a VALUE_SET.
func ParamKind(param asn1tree.Param) protoir.ParamKind {
	if param.GovernorName == "" {
		return protoir.ParamTYPE
	}
	if len(param.Argument) > 0 && param.Argument[0] >= 'a' && param.Argument[0] <= 'z' {
		return protoir.ParamVALUE
	}
	return protoir.ParamVALUESET
}
