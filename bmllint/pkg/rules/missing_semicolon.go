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
	"regexp"
	"strings"

	"github.com/yashwanth2714/Developer-Tools-for-CPQ/bmllint/pkg/diagnostics"
	"github.com/yashwanth2714/Developer-Tools-for-CPQ/bmllint/pkg/scanner"
	ruledata "github.com/yashwanth2714/Developer-Tools-for-CPQ/bmllint/rules"
)

var (
	controlHeaderPattern = regexp.MustCompile(`(?i)^(if|elif|else|for|while|switch|case)\b`)

	// initializerPattern matches a line that opens an array or dictionary
	// literal, as in "x = {", "x = []{" or "x = string[]{".
	initializerPattern = regexp.MustCompile(`=\s*(\w+\s*\[\s*\]\s*|\[\s*\]\s*)?\{$`)
)

// MissingSemicolon reports statements that do not end with a semicolon.
type MissingSemicolon struct {
	doc
}

func NewMissingSemicolon() *MissingSemicolon {
	return &MissingSemicolon{doc: newDoc(ruledata.MissingSemicolonMD)}
}

func (r *MissingSemicolon) Check(idx *scanner.Index) []diagnostics.Diagnostic {
	var diags []diagnostics.Diagnostic
	lines := idx.Lines()
	for i := 0; i < len(lines); {
		text := strings.TrimSpace(lines[i].Masked)
		if text == "" {
			i++
			continue
		}
		header := controlHeaderPattern.MatchString(text)
		if !header && !initializerPattern.MatchString(text) && endsWithBrace(text) {
			i++
			continue
		}

		last := statementEnd(lines, i)
		if !header && !terminated(strings.TrimSpace(lines[last].Masked)) {
			end := lines[last].Line
			diags = append(diags, r.diag(
				diagnostics.Range{
					Start: diagnostics.Position{Line: lines[i].Line, Character: 0},
					End:   diagnostics.Position{Line: end, Character: idx.LineLen(end)},
				},
				diagnostics.SeverityError,
				"Missing semicolon at end of statement.",
			))
		}
		i = last + 1
	}
	return diags
}

// statementEnd returns the index of the last non-empty line of the statement
// that starts at lines[start].
func statementEnd(lines []scanner.CodeLine, start int) int {
	depth := 0
	last := start
	for j := start; j < len(lines); j++ {
		text := strings.TrimSpace(lines[j].Masked)
		if text == "" {
			continue
		}
		last = j
		depth += nesting(text)
		if strings.HasSuffix(text, "{") && !initializerPattern.MatchString(text) {
			return j
		}
		if depth < 0 {
			return j
		}
		if depth == 0 && !continues(text) {
			return j
		}
	}
	return last
}

// nesting returns the net count of opening brackets in masked code.
func nesting(masked string) int {
	n := 0
	for i := 0; i < len(masked); i++ {
		switch masked[i] {
		case '(', '[', '{':
			n++
		case ')', ']', '}':
			n--
		}
	}
	return n
}

func continues(text string) bool {
	switch text[len(text)-1] {
	case '&', '|', '+', ',':
		return true
	}
	return false
}

func endsWithBrace(text string) bool {
	return strings.HasSuffix(text, "{") || strings.HasSuffix(text, "}")
}

func terminated(text string) bool {
	return strings.HasSuffix(text, ";") || endsWithBrace(text)
}
