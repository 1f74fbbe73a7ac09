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

	"github.com/yashwanth2714/Developer-Tools-for-CPQ/bmllint/pkg/diagnostics"
	"github.com/yashwanth2714/Developer-Tools-for-CPQ/bmllint/pkg/scanner"
	ruledata "github.com/yashwanth2714/Developer-Tools-for-CPQ/bmllint/rules"
)

var bareCallPattern = regexp.MustCompile(`\b(not|isnull|upper|lower)\s+[A-Za-z_]\w*`)

// SingleArgParens reports "not x" style calls that omit the parentheses.
// Matches may continue onto the next line.
type SingleArgParens struct {
	doc
}

func NewSingleArgParens() *SingleArgParens {
	return &SingleArgParens{doc: newDoc(ruledata.SingleArgParensMD)}
}

func (r *SingleArgParens) Check(idx *scanner.Index) []diagnostics.Diagnostic {
	var diags []diagnostics.Diagnostic
	text := idx.JoinedMasked()
	for _, m := range bareCallPattern.FindAllStringSubmatchIndex(text, -1) {
		diags = append(diags, r.diag(
			spanAt(idx, m[0], m[1]),
			diagnostics.SeverityError,
			fmt.Sprintf("Function %q should enclose its argument in parentheses.", text[m[2]:m[3]]),
		))
	}
	return diags
}
