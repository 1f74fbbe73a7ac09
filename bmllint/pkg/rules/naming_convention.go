// Copyright 2026 Google LLC
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

package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/yashwanth2714/Developer-Tools-for-CPQ/bmllint/pkg/diagnostics"
	"github.com/yashwanth2714/Developer-Tools-for-CPQ/bmllint/pkg/scanner"
	ruledata "github.com/yashwanth2714/Developer-Tools-for-CPQ/bmllint/rules"
)

// Name patterns.
var (
	constantName    = regexp.MustCompile(`^[A-Z][A-Z0-9_]*$`)
	lowerWord       = regexp.MustCompile(`^[a-z]+$`)
	camelCaseName   = regexp.MustCompile(`^[a-z]+(?:[A-Z][a-z0-9]*)+$`)
	snakeKindSuffix = regexp.MustCompile(`_(dict|arr|array|list)$`)
	arraySuffix     = regexp.MustCompile(`(List|Arr|Array|_list|_arr|_array)$`)
	dictSuffix      = regexp.MustCompile(`(Dict|Dictionary|_dict)$`)
	recordsSuffix   = regexp.MustCompile(`Records$`)
	booleanName     = regexp.MustCompile(`^(is|has)[a-zA-Z]`)
)

// Value patterns, matched against the trimmed right-hand side.
var (
	arrayLiteral   = regexp.MustCompile(`^\[`)
	jsonArrayCall  = regexp.MustCompile(`(?i)\bjsonarray\b`)
	arrayWord      = regexp.MustCompile(`(?i)\barray\b`)
	typedArray     = regexp.MustCompile(`(?i)^(string|integer|float|date|boolean)\s*\[.*\]`)
	dictCall       = regexp.MustCompile(`(?i)\bdict\s*\(`)
	dictionaryWord = regexp.MustCompile(`(?i)\bdictionary\b`)
	booleanLiteral = regexp.MustCompile(`(?i)^\s*(true|false)\b`)
)

// NamingConvention checks variable names against the kind of value assigned.
// The value kind is guessed from the text of the right-hand side.
type NamingConvention struct {
	doc
}

func NewNamingConvention() *NamingConvention {
	return &NamingConvention{doc: newDoc(ruledata.NamingConventionMD)}
}

func (r *NamingConvention) Check(idx *scanner.Index) []diagnostics.Diagnostic {
	var diags []diagnostics.Diagnostic
	lines := idx.Lines()
	for _, v := range idx.Declarations() {
		if constantName.MatchString(v.Name) {
			continue
		}
		warning := namingWarning(v.Name, rhsOf(lines[v.Line].Masked, v.Col))
		if warning == "" {
			continue
		}
		col := idx.Clamp(v.Line, v.Col)
		diags = append(diags, r.diag(
			diagnostics.LineRange(v.Line, col, idx.Clamp(v.Line, col+len(v.Name))),
			diagnostics.SeverityWarning,
			warning,
		))
	}
	return diags
}

// namingWarning returns the first convention name breaks, or "".
// Dictionaries come first, then arrays, booleans and record sets.
func namingWarning(name, rhs string) string {
	if looksLikeDict(rhs) || dictSuffix.MatchString(name) {
		if !dictSuffix.MatchString(name) {
			return fmt.Sprintf("Dictionary variable %q should use the Dict/Dictionary suffix (e.g., sequenceNumDict).", name)
		}
		if !isCamelCase(name) {
			return fmt.Sprintf("Dictionary variable %q should use camelCase (e.g., sequenceNumDict).", name)
		}
		return ""
	}
	if looksLikeArray(rhs) {
		if !arraySuffix.MatchString(name) {
			return fmt.Sprintf("Array variable %q should have a suffix like Arr/Array/List.", name)
		}
		return ""
	}
	if booleanLiteral.MatchString(rhs) {
		if !booleanName.MatchString(name) && name != "debug" {
			return fmt.Sprintf("Boolean variable %q should be prefixed with \"is\" or \"has\" (e.g., isMandatory).", name)
		}
		if !isCamelCase(name) {
			return fmt.Sprintf("Boolean variable %q should use camelCase (e.g., isMandatory, hasValue).", name)
		}
		return ""
	}
	if recordsSuffix.MatchString(name) {
		if !isCamelCase(strings.TrimSuffix(name, "Records")) {
			return fmt.Sprintf("RecordSet name %q should use camelCase base (e.g., partRecords).", name)
		}
	}
	return ""
}

// rhsOf returns the trimmed text after the first '=' at or after col.
func rhsOf(code string, col int) string {
	if col > len(code) {
		return ""
	}
	eq := strings.IndexByte(code[col:], '=')
	if eq < 0 {
		return ""
	}
	return strings.TrimSpace(code[col+eq+1:])
}

func looksLikeArray(rhs string) bool {
	return arrayLiteral.MatchString(rhs) ||
		jsonArrayCall.MatchString(rhs) ||
		arrayWord.MatchString(rhs) ||
		typedArray.MatchString(rhs)
}

func looksLikeDict(rhs string) bool {
	return dictCall.MatchString(rhs) || dictionaryWord.MatchString(rhs)
}

// isCamelCase ignores a trailing snake case kind suffix such as "_dict".
func isCamelCase(name string) bool {
	name = snakeKindSuffix.ReplaceAllString(name, "")
	return lowerWord.MatchString(name) || camelCaseName.MatchString(name)
}
