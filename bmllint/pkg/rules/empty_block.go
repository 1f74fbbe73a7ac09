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

var emptyBlockPattern = regexp.MustCompile(`\{\s*\}`)

// EmptyBlock reports brace pairs with nothing but whitespace between them.
type EmptyBlock struct {
	doc
}

func NewEmptyBlock() *EmptyBlock {
	return &EmptyBlock{doc: newDoc(ruledata.EmptyBlockMD)}
}

func (r *EmptyBlock) Check(idx *scanner.Index) []diagnostics.Diagnostic {
	var diags []diagnostics.Diagnostic
	for _, m := range emptyBlockPattern.FindAllStringIndex(idx.JoinedMasked(), -1) {
		diags = append(diags, r.diag(
			spanAt(idx, m[0], m[1]),
			diagnostics.SeverityInformation,
			"Empty block detected. Consider removing or adding logic.",
		))
	}
	return diags
}
