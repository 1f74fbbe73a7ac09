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

// Package report prints lint results for people and machines.
package report

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/yashwanth2714/Developer-Tools-for-CPQ/bmllint/pkg/diagnostics"
	"github.com/yashwanth2714/Developer-Tools-for-CPQ/bmllint/pkg/lint"
	"github.com/yashwanth2714/Developer-Tools-for-CPQ/bmllint/pkg/scanner"
)

// ColorEnabled resolves a --color mode of auto, always or never.
// Auto follows the terminal and NO_COLOR.
func ColorEnabled(mode string) (bool, error) {
	switch mode {
	case "", "auto":
		return !color.NoColor, nil
	case "always":
		return true, nil
	case "never":
		return false, nil
	}
	return false, fmt.Errorf("unknown color mode %q (want auto, always or never)", mode)
}

type TextOptions struct {
	Color bool
}

type palette struct {
	severity map[diagnostics.Severity]*color.Color
	location *color.Color
	rule     *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		severity: map[diagnostics.Severity]*color.Color{
			diagnostics.SeverityError:       color.New(color.FgRed, color.Bold),
			diagnostics.SeverityWarning:     color.New(color.FgYellow, color.Bold),
			diagnostics.SeverityInformation: color.New(color.FgBlue, color.Bold),
			diagnostics.SeverityHint:        color.New(color.FgCyan),
		},
		location: color.New(color.Bold),
		rule:     color.New(color.Faint),
	}
	all := []*color.Color{p.location, p.rule}
	for _, c := range p.severity {
		all = append(all, c)
	}
	for _, c := range all {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Text writes one entry per diagnostic:
//
//	path:line:col: severity: message [rule]
//	<source line>
//	    ^~~~
//
// Lines and columns are 1-based; columns count characters.
func Text(w io.Writer, files []lint.File, opt TextOptions) error {
	p := newPalette(opt.Color)
	total, withFindings := 0, 0
	for _, f := range files {
		if len(f.Result.Diagnostics) == 0 {
			continue
		}
		withFindings++
		lines := scanner.SplitLines(f.Text)
		diags := append([]diagnostics.Diagnostic(nil), f.Result.Diagnostics...)
		diagnostics.SortByPosition(diags)
		for _, d := range diags {
			total++
			if err := writeEntry(w, p, f.RelPath, lines, d); err != nil {
				return err
			}
		}
	}
	if total == 0 {
		return nil
	}
	_, err := fmt.Fprintf(w, "%s in %s\n", plural(total, "problem"), plural(withFindings, "file"))
	return err
}

func writeEntry(w io.Writer, p palette, path string, lines []string, d diagnostics.Diagnostic) error {
	var src string
	if l := d.Range.Start.Line; l >= 0 && l < len(lines) {
		src = lines[l]
	}
	start := clampCol(src, d.Range.Start.Character)
	end := len(src)
	if d.Range.End.Line == d.Range.Start.Line {
		end = clampCol(src, d.Range.End.Character)
	}
	if end < start {
		end = start
	}

	sev := p.severity[d.Severity]
	if sev == nil {
		sev = p.rule
	}
	loc := fmt.Sprintf("%s:%d:%d:", path, d.Range.Start.Line+1, utf8.RuneCountInString(src[:start])+1)
	header := fmt.Sprintf("%s %s %s", p.location.Sprint(loc), sev.Sprint(d.Severity.String()+":"), d.Message)
	if d.Rule != "" {
		header += " " + p.rule.Sprintf("[%s]", d.Rule)
	}
	if _, err := fmt.Fprintln(w, header); err != nil {
		return err
	}
	if strings.TrimSpace(src) == "" {
		return nil
	}
	_, err := fmt.Fprintf(w, "%s\n%s%s\n", src, indentFor(src[:start]), sev.Sprint(marker(src[start:end])))
	return err
}

// indentFor returns whitespace as wide as prefix, keeping tabs so the marker
// lines up in a terminal.
func indentFor(prefix string) string {
	var b strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			b.WriteByte('\t')
			continue
		}
		b.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return b.String()
}

// marker underlines span with ^ followed by ~.
func marker(span string) string {
	width := runewidth.StringWidth(span)
	if width < 1 {
		width = 1
	}
	return "^" + strings.Repeat("~", width-1)
}

func clampCol(line string, col int) int {
	if col < 0 {
		return 0
	}
	if col > len(line) {
		return len(line)
	}
	for col > 0 && col < len(line) && !utf8.RuneStart(line[col]) {
		col--
	}
	return col
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
