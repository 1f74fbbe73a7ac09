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
	"unicode/utf8"

	"github.com/yashwanth2714/Developer-Tools-for-CPQ/bmllint/pkg/diagnostics"
	"github.com/yashwanth2714/Developer-Tools-for-CPQ/bmllint/pkg/scanner"
	ruledata "github.com/yashwanth2714/Developer-Tools-for-CPQ/bmllint/rules"
)

// LineLength reports lines whose code, without comments, is longer than Max
// characters.
type LineLength struct {
	doc
	Max int
}

func NewLineLength(limit int) *LineLength {
	return &LineLength{doc: newDoc(ruledata.LineLengthMD), Max: limit}
}

func (r *LineLength) Check(idx *scanner.Index) []diagnostics.Diagnostic {
	var diags []diagnostics.Diagnostic
	for _, l := range idx.Lines() {
		if utf8.RuneCountInString(l.Code) > r.Max {
			diags = append(diags, r.diag(
				wholeLine(idx, l.Line),
				diagnostics.SeverityWarning,
				fmt.Sprintf("Line too long (>%d chars). Consider splitting across multiple lines.", r.Max),
			))
		}
	}
	return diags
}
