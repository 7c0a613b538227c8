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

// Package emit walks a protoir.Module and renders it as proto3 source
// text, converting identifiers between the casings proto3 expects along
// the way.
package emit

import "strings"

func isUpperByte(c byte) bool { return c >= 'A' && c <= 'Z' }
func isLowerByte(c byte) bool { return c >= 'a' && c <= 'z' }
func toUpperByte(c byte) byte {
	if isLowerByte(c) {
		return c - 'a' + 'A'
	}
	return c
}
func toLowerByte(c byte) byte {
	if isUpperByte(c) {
		return c - 'A' + 'a'
	}
	return c
}

func isSeparatorByte(c byte) bool {
	return c == '-' || c == '_' || c == '&'
}

// ToLower ASCII-lowercases s.
func ToLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		b[i] = toLowerByte(c)
	}
	return string(b)
}

// ToPascal renders s in PascalCase: '-', '_', and '&' start a new
// segment (and are themselves dropped); the first letter of every
// segment is uppercased, an uppercase letter directly after a lowercase
// letter is kept as the start of a new word, and every other letter is
// lowercased.
func ToPascal(s string) string {
	var b strings.Builder
	newSegment := true
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isSeparatorByte(c) {
			newSegment = true
			continue
		}
		if newSegment {
			b.WriteByte(toUpperByte(c))
			newSegment = false
		} else if isUpperByte(c) && isLowerByte(s[i-1]) {
			b.WriteByte(c)
		} else {
			b.WriteByte(toLowerByte(c))
		}
	}
	return b.String()
}

// SnakeCase selects the letter case to_snake renders its non-separator
// letters in.
type SnakeCase int

const (
	// SnakeLower renders letters lowercase (the common field/oneof name
	// casing).
	SnakeLower SnakeCase = iota
	// SnakeUpper renders letters uppercase (enum constant casing).
	SnakeUpper
)

// ToSnake renders s in snake_case: '-' and '.' become '_'; an
// underscore is also inserted immediately before a letter that starts a
// new uppercase run (a letter preceded by neither an uppercase letter
// nor an explicit separator); a leading '&' is dropped.
func ToSnake(s string, kind SnakeCase) string {
	if strings.HasPrefix(s, "&") {
		s = s[1:]
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '-' || c == '.':
			b.WriteByte('_')
		case isUpperByte(c):
			if i > 0 && !isSeparatorByte(s[i-1]) && !isUpperByte(s[i-1]) {
				b.WriteByte('_')
			}
			if kind == SnakeUpper {
				b.WriteByte(c)
			} else {
				b.WriteByte(toLowerByte(c))
			}
		case isLowerByte(c):
			if kind == SnakeUpper {
				b.WriteByte(toUpperByte(c))
			} else {
				b.WriteByte(c)
			}
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// RemoveRelPath strips any leading "./" or "../" segments from a path.
func RemoveRelPath(s string) string {
	for {
		switch {
		case strings.HasPrefix(s, "../"):
			s = s[3:]
		case strings.HasPrefix(s, "./"):
			s = s[2:]
		default:
			return s
		}
	}
}

// StartsWithNonLower reports whether s is empty or does not start with
// an ASCII lowercase letter, used to decide whether a package or import
// path needs the "pkg" prefix.
func StartsWithNonLower(s string) bool {
	if s == "" {
		return true
	}
	return !isLowerByte(s[0])
}
