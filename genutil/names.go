// Copyright 2019 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package genutil

import (
	"fmt"
	"runtime"
)

// CallerName returns the path of the source file that defines CallerName
// itself, as reported by runtime.Caller(0).
func CallerName() string {
	// Find out the name of this binary so that it can be used for debug
	// reasons.
	_, currentCodeFile, _, ok := runtime.Caller(0)
	if !ok {
		// In the case that we cannot determine the current running binary's name
		// this is non-fatal, so return a default string.
		return "unknown - unable to determine calling binary name"
	}
	return currentCodeFile
}

// MakeNameUnique makes the name specified as an argument unique based on the names
// already defined within a particular context which are specified within the
// definedNames map. If the name has already been defined, an underscore is appended
// to the name until it is unique.
func MakeNameUnique(name string, definedNames map[string]bool) string {
	for {
		if _, nameUsed := definedNames[name]; !nameUsed {
			definedNames[name] = true
			return name
		}
		name = fmt.Sprintf("%s_", name)
	}
}
