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

package lsp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/yashwanth2714/Developer-Tools-for-CPQ/bmllint/pkg/docs"
)

type session struct {
	in     bytes.Buffer
	nextID int
}

func (s *session) notify(t *testing.T, method string, params any) {
	t.Helper()
	s.write(t, map[string]any{"jsonrpc": "2.0", "method": method, "params": params})
}

func (s *session) request(t *testing.T, method string, params any) int {
	t.Helper()
	s.nextID++
	s.write(t, map[string]any{"jsonrpc": "2.0", "id": s.nextID, "method": method, "params": params})
	return s.nextID
}

func (s *session) write(t *testing.T, msg any) {
	t.Helper()
	payload, err := json.Marshal(msg)
	if err != nil {
		t.Fatal(err)
	}
	if err := writeMessage(&s.in, payload); err != nil {
		t.Fatal(err)
	}
}

// replies splits server output into responses keyed by id and notifications
// in order.
func replies(t *testing.T, out []byte) (map[string]rpcMessage, []rpcMessage) {
	t.Helper()
	responses := make(map[string]rpcMessage)
	var notifications []rpcMessage
	r := bufio.NewReader(bytes.NewReader(out))
	for {
		payload, err := readMessage(r)
		if errors.Is(err, io.EOF) {
			return responses, notifications
		}
		if err != nil {
			t.Fatalf("read reply: %v", err)
		}
		var msg rpcMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			t.Fatalf("decode reply: %v", err)
		}
		if msg.Method != "" {
			notifications = append(notifications, msg)
		} else {
			responses[string(msg.ID)] = msg
		}
	}
}

func open(uri, languageID, text string) didOpenTextDocumentParams {
	return didOpenTextDocumentParams{TextDocument: textDocumentItem{
		URI: uri, LanguageID: languageID, Version: 1, Text: text,
	}}
}

func at(uri string, line, char int) textDocumentPositionParams {
	return textDocumentPositionParams{
		TextDocument: textDocumentIdentifier{URI: uri},
		Position:     position{Line: line, Character: char},
	}
}

func testDocs() *docs.Index {
	return docs.NewIndex([]*docs.Snippet{{
		Key:          "Upper",
		Prefixes:     []string{"upper"},
		FunctionName: "upper",
		Description:  "Upper-cases a string.",
		Body:         "upper(str)",
		Signature:    "upper(str)",
	}})
}

func TestServerSession(t *testing.T) {
	const (
		uriA = "file:///a.bml"
		uriC = "file:///c.bml"
		uriJ = "file:///a.js"
	)
	var s session
	initID := s.request(t, "initialize", map[string]any{"rootUri": "file:///"})
	s.notify(t, "initialized", map[string]any{})
	s.notify(t, "textDocument/didOpen", open(uriA, "bml", `s = upper("😀") + t`))
	s.notify(t, "textDocument/didOpen", open(uriJ, "javascript", "x = 1"))
	hoverID := s.request(t, "textDocument/hover", at(uriA, 0, 6))
	sigID := s.request(t, "textDocument/signatureHelp", at(uriA, 0, 10))
	s.notify(t, "textDocument/didChange", didChangeTextDocumentParams{
		TextDocument:   versionedTextDocumentIdentifier{URI: uriA, Version: 2},
		ContentChanges: []textDocumentContentChangeEvent{{Text: "s = upper(\"😀\") + t;\n"}},
	})
	s.notify(t, "textDocument/didOpen", open(uriC, "bml", "if(x){\ny = 1;\n}"))
	formatID := s.request(t, "textDocument/formatting", map[string]any{
		"textDocument": textDocumentIdentifier{URI: uriC},
		"options":      map[string]any{"tabSize": 4, "insertSpaces": true},
	})
	s.notify(t, "textDocument/didClose", didCloseTextDocumentParams{TextDocument: textDocumentIdentifier{URI: uriA}})
	s.notify(t, "textDocument/didClose", didCloseTextDocumentParams{TextDocument: textDocumentIdentifier{URI: uriJ}})
	unknownID := s.request(t, "workspace/executeCommand", map[string]any{})
	shutdownID := s.request(t, "shutdown", nil)
	s.notify(t, "exit", nil)

	var out bytes.Buffer
	server := NewServer(&s.in, &out, Options{Docs: testDocs(), Version: "v0.0.1"})
	if err := server.Run(context.Background()); !errors.Is(err, ErrExit) {
		t.Fatalf("Run() = %v, want ErrExit", err)
	}

	responses, notifications := replies(t, out.Bytes())
	id := func(n int) string { return strings.TrimSpace(string(mustJSON(t, n))) }

	var initResult initializeResult
	decode(t, responses[id(initID)].Result, &initResult)
	if !initResult.Capabilities.HoverProvider || initResult.Capabilities.SignatureHelpProvider == nil || !initResult.Capabilities.DocumentFormattingProvider {
		t.Errorf("unexpected capabilities %+v", initResult.Capabilities)
	}
	if initResult.ServerInfo.Name != "bmllint" || initResult.ServerInfo.Version != "v0.0.1" {
		t.Errorf("unexpected server info %+v", initResult.ServerInfo)
	}

	var publishes []publishDiagnosticsParams
	for _, n := range notifications {
		if n.Method != "textDocument/publishDiagnostics" {
			t.Errorf("unexpected notification %q", n.Method)
			continue
		}
		var p publishDiagnosticsParams
		decode(t, n.Params, &p)
		publishes = append(publishes, p)
	}
	var uris []string
	for _, p := range publishes {
		uris = append(uris, p.URI)
	}
	if got, want := strings.Join(uris, " "), "file:///a.bml file:///a.bml file:///c.bml file:///a.bml"; got != want {
		t.Fatalf("published for %q, want %q", got, want)
	}

	semicolon, ok := findCode(publishes[0].Diagnostics, "missing-semicolon")
	if !ok {
		t.Fatalf("missing-semicolon not published: %+v", publishes[0].Diagnostics)
	}
	wantRange := lspRange{End: position{Line: 0, Character: 19}}
	if semicolon.Range != wantRange || semicolon.Severity != 1 || semicolon.Source != "bmllint" {
		t.Errorf("unexpected diagnostic %+v", semicolon)
	}
	if publishes[0].Version == nil || *publishes[0].Version != 1 {
		t.Errorf("first publish version = %v", publishes[0].Version)
	}
	if _, ok := findCode(publishes[1].Diagnostics, "missing-semicolon"); ok {
		t.Errorf("missing-semicolon still published after the edit")
	}
	if publishes[3].Diagnostics == nil || len(publishes[3].Diagnostics) != 0 {
		t.Errorf("close published %+v, want an empty list", publishes[3].Diagnostics)
	}

	var h hover
	decode(t, responses[id(hoverID)].Result, &h)
	if !strings.HasPrefix(h.Contents.Value, "Upper-cases a string.") || h.Contents.Kind != "markdown" {
		t.Errorf("unexpected hover %+v", h)
	}
	if h.Range == nil || h.Range.Start.Character != 4 || h.Range.End.Character != 9 {
		t.Errorf("unexpected hover range %+v", h.Range)
	}

	var sig signatureHelp
	decode(t, responses[id(sigID)].Result, &sig)
	if len(sig.Signatures) != 1 || sig.Signatures[0].Label != "upper(str)" || sig.ActiveParameter != 0 {
		t.Errorf("unexpected signature help %+v", sig)
	}

	var edits []textEdit
	decode(t, responses[id(formatID)].Result, &edits)
	if len(edits) != 1 {
		t.Fatalf("got %d edits, want 1", len(edits))
	}
	if edits[0].NewText != "if (x) {\n    y = 1;\n}\n" {
		t.Errorf("NewText = %q", edits[0].NewText)
	}
	if edits[0].Range.End != (position{Line: 2, Character: 1}) {
		t.Errorf("edit range = %+v", edits[0].Range)
	}

	if e := responses[id(unknownID)].Error; e == nil || e.Code != codeMethodNotFound {
		t.Errorf("unknown method reply = %+v", responses[id(unknownID)])
	}
	if _, ok := responses[id(shutdownID)]; !ok {
		t.Error("no reply to shutdown")
	}
}

func TestServerExitWithoutShutdown(t *testing.T) {
	var s session
	s.notify(t, "exit", nil)
	server := NewServer(&s.in, io.Discard, Options{})
	if err := server.Run(context.Background()); !errors.Is(err, ErrExitWithoutShutdown) {
		t.Errorf("Run() = %v, want ErrExitWithoutShutdown", err)
	}
}

func TestServerWithoutDocs(t *testing.T) {
	var s session
	s.request(t, "initialize", map[string]any{})
	s.notify(t, "textDocument/didOpen", open("file:///a.bml", "bml", "x = upper(y);"))
	hoverID := s.request(t, "textDocument/hover", at("file:///a.bml", 0, 6))

	var out bytes.Buffer
	if err := NewServer(&s.in, &out, Options{}).Run(context.Background()); err != nil {
		t.Fatalf("Run() = %v", err)
	}
	responses, _ := replies(t, out.Bytes())
	reply, ok := responses[strings.TrimSpace(string(mustJSON(t, hoverID)))]
	if !ok {
		t.Fatal("no reply to hover")
	}
	if string(reply.Result) != "" && string(reply.Result) != "null" {
		t.Errorf("hover result = %s, want null", reply.Result)
	}
}

func findCode(list []lspDiagnostic, code string) (lspDiagnostic, bool) {
	for _, d := range list {
		if d.Code == code {
			return d, true
		}
	}
	return lspDiagnostic{}, false
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func decode(t *testing.T, raw json.RawMessage, into any) {
	t.Helper()
	if err := json.Unmarshal(raw, into); err != nil {
		t.Fatalf("decode %s: %v", raw, err)
	}
}
