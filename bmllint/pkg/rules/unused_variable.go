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

// UnusedVariable reports assignments whose name occurs nowhere else.
type UnusedVariable struct {
	doc
}

func NewUnusedVariable() *UnusedVariable {
	return &UnusedVariable{doc: newDoc(ruledata.UnusedVariableMD)}
}

func (r *UnusedVariable) Check(idx *scanner.Index) []diagnostics.Diagnostic {
	sink := diagnostics.NewSink("")
	counts := make(map[string]int)
	for _, v := range idx.Declarations() {
		n, ok := counts[v.Name]
		if !ok {
			n = countWord(idx, v.Name)
			counts[v.Name] = n
		}
		if n > 1 {
			continue
		}
		col := idx.Clamp(v.Line, v.Col)
		if sink.Contains(v.Line, col) {
			continue
		}
		end := idx.Clamp(v.Line, col+len(v.Name))
		sink.Record(r.diag(
			diagnostics.LineRange(v.Line, col, end),
			diagnostics.SeverityInformation,
			fmt.Sprintf("Variable %q is declared but never used.", v.Name),
		))
	}
	return sink.Finalize().Diagnostics
}

// countWord counts whole word occurrences of name in code outside of strings.
func countWord(idx *scanner.Index, name string) int {
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\b`)
	n := 0
	for _, l := range idx.Lines() {
		if l.Masked == "" {
			continue
		}
		n += len(re.FindAllStringIndex(l.Masked, -1))
	}
	return n
}
