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

// Package ruledata holds the documentation of every lint rule. The first
// heading of each document is the rule name and the first paragraph is its
// summary.
package ruledata

import _ "embed"

var (
	//go:embed unused_variable.md
	UnusedVariableMD string

	//go:embed empty_block.md
	EmptyBlockMD string

	//go:embed missing_semicolon.md
	MissingSemicolonMD string

	//go:embed loop_nesting.md
	LoopNestingMD string

	//go:embed naming_convention.md
	NamingConventionMD string

	//go:embed one_statement_per_line.md
	OneStatementPerLineMD string

	//go:embed unguarded_print.md
	UnguardedPrintMD string

	//go:embed single_arg_parens.md
	SingleArgParensMD string

	//go:embed line_length.md
	LineLengthMD string
)
