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

// Package engine runs the lint rules over a document.
package engine

import (
	"context"

	"github.com/yashwanth2714/Developer-Tools-for-CPQ/bmllint/pkg/config"
	"github.com/yashwanth2714/Developer-Tools-for-CPQ/bmllint/pkg/diagnostics"
	"github.com/yashwanth2714/Developer-Tools-for-CPQ/bmllint/pkg/rules"
	"github.com/yashwanth2714/Developer-Tools-for-CPQ/bmllint/pkg/scanner"
	"k8s.io/klog/v2"
)

// LanguageID is the only language the engine analyzes.
const LanguageID = "bml"

// Document is a text document as seen by the host.
type Document interface {
	URI() string
	LanguageID() string
	Text() string
}

// TextDocument is a Document held in memory.
type TextDocument struct {
	DocURI      string
	DocLanguage string
	Content     string
}

var _ Document = TextDocument{}

// NewDocument returns a BML document with the given content.
func NewDocument(uri, content string) TextDocument {
	return TextDocument{DocURI: uri, DocLanguage: LanguageID, Content: content}
}

func (d TextDocument) URI() string        { return d.DocURI }
func (d TextDocument) LanguageID() string { return d.DocLanguage }
func (d TextDocument) Text() string       { return d.Content }

// Engine runs the enabled rules. It holds no per-document state and is safe
// for concurrent use.
type Engine struct {
	cfg   *config.Config
	rules []rules.Rule
}

// New creates an Engine with the rules and thresholds of cfg. A nil cfg
// means the defaults.
func New(cfg *config.Config) *Engine {
	if cfg == nil {
		cfg = &config.Config{}
	}
	e := &Engine{cfg: cfg}
	for _, r := range rules.AllRules(cfg.RuleOptions()) {
		if cfg.IsRuleEnabled(r.Name()) {
			e.rules = append(e.rules, r)
		}
	}
	return e
}

// Rules returns the enabled rules.
func (e *Engine) Rules() []rules.Rule {
	return e.rules
}

// Analyze returns the diagnostics for doc. Documents in any other language
// than BML yield no diagnostics.
func (e *Engine) Analyze(ctx context.Context, doc Document) []diagnostics.Diagnostic {
	return e.AnalyzeResult(ctx, doc).Diagnostics
}

// AnalyzeResult is Analyze with the document URI attached.
func (e *Engine) AnalyzeResult(ctx context.Context, doc Document) diagnostics.Result {
	log := klog.FromContext(ctx)

	sink := diagnostics.NewSink(doc.URI())
	if doc.LanguageID() != LanguageID {
		log.V(2).Info("skipping document", "uri", doc.URI(), "languageId", doc.LanguageID())
		return sink.Finalize()
	}

	idx := scanner.FromText(doc.Text())
	for _, r := range e.rules {
		found := r.Check(idx)
		for i := range found {
			found[i].Severity = e.cfg.RuleSeverity(r.Name(), found[i].Severity)
		}
		sink.RecordAll(found)
		if len(found) > 0 {
			log.V(4).Info("rule findings", "uri", doc.URI(), "rule", r.Name(), "count", len(found))
		}
	}
	log.V(2).Info("analyzed document", "uri", doc.URI(), "lines", len(idx.Lines()), "diagnostics", sink.Len())
	return sink.Finalize()
}
