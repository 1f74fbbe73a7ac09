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

	"github.com/yashwanth2714/Developer-Tools-for-CPQ/bmllint/pkg/diagnostics"
	"github.com/yashwanth2714/Developer-Tools-for-CPQ/bmllint/pkg/scanner"
	ruledata "github.com/yashwanth2714/Developer-Tools-for-CPQ/bmllint/rules"
)

var (
	printPattern      = regexp.MustCompile(`\bprint\b`)
	debugGuardPattern = regexp.MustCompile(`(?i)if\s*\(\s*debug\s*\)`)
)

// UnguardedPrint reports print calls not directly preceded by "if (debug)".
type UnguardedPrint struct {
	doc
}

func NewUnguardedPrint() *UnguardedPrint {
	return &UnguardedPrint{doc: newDoc(ruledata.UnguardedPrintMD)}
}

func (r *UnguardedPrint) Check(idx *scanner.Index) []diagnostics.Diagnostic {
	var diags []diagnostics.Diagnostic
	lines := idx.Lines()
	for i, l := range lines {
		if !printPattern.MatchString(l.Masked) {
			continue
		}
		// The guard must be on the line directly above, even if that line
		// holds no code.
		if i > 0 && debugGuardPattern.MatchString(lines[i-1].Masked) {
			continue
		}
		diags = append(diags, r.diag(
			wholeLine(idx, l.Line),
			diagnostics.SeverityHint,
			"Print statements should be wrapped in a debug flag check.",
		))
	}
	return diags
}
