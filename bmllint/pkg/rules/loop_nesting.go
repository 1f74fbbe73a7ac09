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

var loopHeaderPattern = regexp.MustCompile(`\bfor\s+.+\{`)

// LoopNesting reports loops nested deeper than MaxDepth.
type LoopNesting struct {
	doc
	MaxDepth int
}

func NewLoopNesting(maxDepth int) *LoopNesting {
	return &LoopNesting{doc: newDoc(ruledata.LoopNestingMD), MaxDepth: maxDepth}
}

func (r *LoopNesting) Check(idx *scanner.Index) []diagnostics.Diagnostic {
	var diags []diagnostics.Diagnostic
	depth := 0
	for _, l := range idx.Lines() {
		if loopHeaderPattern.MatchString(l.Masked) {
			depth++
			if depth > r.MaxDepth {
				diags = append(diags, r.diag(
					wholeLine(idx, l.Line),
					diagnostics.SeverityWarning,
					fmt.Sprintf("Nested loop depth is %d. Consider refactoring for performance.", depth),
				))
			}
		}
		// Any closing brace ends the innermost loop, including braces of
		// non-loop blocks.
		if strings.Contains(l.Masked, "}") && depth > 0 {
			depth--
		}
	}
	return diags
}
