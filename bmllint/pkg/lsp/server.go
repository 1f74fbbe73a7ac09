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

// Package lsp serves lint diagnostics, hover, signature help and formatting
// over the Language Server Protocol on stdio.
package lsp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"

	"github.com/yashwanth2714/Developer-Tools-for-CPQ/bmllint/pkg/diagnostics"
	"github.com/yashwanth2714/Developer-Tools-for-CPQ/bmllint/pkg/docs"
	"github.com/yashwanth2714/Developer-Tools-for-CPQ/bmllint/pkg/engine"
	"github.com/yashwanth2714/Developer-Tools-for-CPQ/bmllint/pkg/format"
	"github.com/yashwanth2714/Developer-Tools-for-CPQ/bmllint/pkg/scanner"
	"k8s.io/klog/v2"
)

var (
	// ErrExit signals a graceful shutdown after receiving "exit".
	ErrExit = errors.New("lsp exit")
	// ErrExitWithoutShutdown signals an "exit" without a preceding "shutdown".
	ErrExitWithoutShutdown = errors.New("lsp exit without shutdown")
)

const source = "bmllint"

// Options configures the server.
type Options struct {
	// Engine analyzes open documents. Nil means the default rules.
	Engine *engine.Engine
	// Docs answers hover and signature help. Nil disables both.
	Docs    *docs.Index
	Format  format.Options
	Version string
}

type document struct {
	languageID string
	version    int
	text       string
}

// Server handles stdio JSON-RPC for the BML language server.
type Server struct {
	in     *bufio.Reader
	out    *bufio.Writer
	sendMu sync.Mutex

	engine    *engine.Engine
	docs      *docs.Index
	format    format.Options
	version   string
	open      map[string]*document
	published *diagnostics.Collection

	shutdownRequested bool
}

// NewServer constructs a new LSP server.
func NewServer(in io.Reader, out io.Writer, opt Options) *Server {
	e := opt.Engine
	if e == nil {
		e = engine.New(nil)
	}
	f := opt.Format
	if f.IndentSize <= 0 {
		f = format.DefaultOptions()
	}
	return &Server{
		in:        bufio.NewReader(in),
		out:       bufio.NewWriter(out),
		engine:    e,
		docs:      opt.Docs,
		format:    f,
		version:   opt.Version,
		open:      make(map[string]*document),
		published: diagnostics.NewCollection(),
	}
}

// Run serves requests until the input ends or the client sends "exit".
func (s *Server) Run(ctx context.Context) error {
	log := klog.FromContext(ctx)
	for {
		payload, err := readMessage(s.in)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		var msg rpcMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			log.Error(err, "failed to parse message")
			continue
		}
		if msg.Method == "" {
			continue
		}
		if err := s.handleMessage(ctx, &msg); err != nil {
			return err
		}
	}
}

func (s *Server) handleMessage(ctx context.Context, msg *rpcMessage) error {
	klog.FromContext(ctx).V(4).Info("lsp message", "method", msg.Method)
	switch msg.Method {
	case "initialize":
		return s.handleInitialize(msg)
	case "initialized":
		return nil
	case "shutdown":
		s.shutdownRequested = true
		return s.sendResponse(msg.ID, nil)
	case "exit":
		if s.shutdownRequested {
			return ErrExit
		}
		return ErrExitWithoutShutdown
	case "textDocument/didOpen":
		return s.handleDidOpen(ctx, msg)
	case "textDocument/didChange":
		return s.handleDidChange(ctx, msg)
	case "textDocument/didSave":
		return s.handleDidSave(ctx, msg)
	case "textDocument/didClose":
		return s.handleDidClose(msg)
	case "textDocument/hover":
		return s.handleHover(msg)
	case "textDocument/signatureHelp":
		return s.handleSignatureHelp(msg)
	case "textDocument/formatting":
		return s.handleFormatting(msg)
	default:
		if len(msg.ID) > 0 {
			return s.sendError(msg.ID, codeMethodNotFound, "method not found")
		}
		return nil
	}
}

func (s *Server) handleInitialize(msg *rpcMessage) error {
	result := initializeResult{
		Capabilities: serverCapabilities{
			TextDocumentSync: textDocumentSyncOptions{
				OpenClose: true,
				Change:    2,
				Save:      saveOptions{IncludeText: true},
			},
			HoverProvider: s.docs != nil,
			SignatureHelpProvider: &signatureHelpOptions{
				TriggerCharacters: []string{"(", ","},
			},
			DocumentFormattingProvider: true,
		},
		ServerInfo: serverInfo{Name: source, Version: s.version},
	}
	if s.docs == nil {
		result.Capabilities.SignatureHelpProvider = nil
	}
	return s.sendResponse(msg.ID, result)
}

func (s *Server) handleDidOpen(ctx context.Context, msg *rpcMessage) error {
	var params didOpenTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}
	item := params.TextDocument
	s.open[item.URI] = &document{languageID: item.LanguageID, version: item.Version, text: item.Text}
	return s.analyze(ctx, item.URI)
}

func (s *Server) handleDidChange(ctx context.Context, msg *rpcMessage) error {
	var params didChangeTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}
	doc, ok := s.open[params.TextDocument.URI]
	if !ok {
		return nil
	}
	doc.text = applyChanges(doc.text, params.ContentChanges)
	doc.version = params.TextDocument.Version
	return s.analyze(ctx, params.TextDocument.URI)
}

func (s *Server) handleDidSave(ctx context.Context, msg *rpcMessage) error {
	var params didSaveTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}
	doc, ok := s.open[params.TextDocument.URI]
	if !ok {
		return nil
	}
	if params.Text != nil {
		doc.text = *params.Text
	}
	return s.analyze(ctx, params.TextDocument.URI)
}

func (s *Server) handleDidClose(msg *rpcMessage) error {
	var params didCloseTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}
	uri := params.TextDocument.URI
	delete(s.open, uri)
	if _, had := s.published.Get(uri); !had {
		return nil
	}
	s.published.Delete(uri)
	return s.sendPublish(uri, nil, nil)
}

// analyze runs the engine over an open document and publishes the result.
// Documents in other languages publish nothing.
func (s *Server) analyze(ctx context.Context, uri string) error {
	doc := s.open[uri]
	if doc.languageID != engine.LanguageID {
		return nil
	}
	result := s.engine.AnalyzeResult(ctx, engine.TextDocument{
		DocURI:      uri,
		DocLanguage: doc.languageID,
		Content:     doc.text,
	})
	s.published.Set(result)

	lines := scanner.SplitLines(doc.text)
	list := make([]lspDiagnostic, 0, len(result.Diagnostics))
	for _, d := range result.Diagnostics {
		list = append(list, toLSP(d, lines))
	}
	version := doc.version
	return s.sendPublish(uri, &version, list)
}

func toLSP(d diagnostics.Diagnostic, lines []string) lspDiagnostic {
	return lspDiagnostic{
		Range: lspRange{
			Start: toPosition(d.Range.Start, lines),
			End:   toPosition(d.Range.End, lines),
		},
		Severity: int(d.Severity) + 1,
		Code:     d.Rule,
		Source:   source,
		Message:  d.Message,
	}
}

func toPosition(p diagnostics.Position, lines []string) position {
	if p.Line < 0 || p.Line >= len(lines) {
		return position{Line: p.Line, Character: p.Character}
	}
	return position{Line: p.Line, Character: utf16Column(lines[p.Line], p.Character)}
}

// cursor returns the text of the line under pos and the cursor's byte offset
// within it.
func (s *Server) cursor(params textDocumentPositionParams) (string, int, bool) {
	doc, ok := s.open[params.TextDocument.URI]
	if !ok || doc.languageID != engine.LanguageID || s.docs == nil {
		return "", 0, false
	}
	line := lineAt(doc.text, params.Position.Line)
	return line, byteOffset(line, params.Position.Character), true
}

func (s *Server) handleHover(msg *rpcMessage) error {
	var params textDocumentPositionParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.sendError(msg.ID, codeInvalidParams, "invalid params")
	}
	line, char, ok := s.cursor(params)
	if !ok {
		return s.sendResponse(msg.ID, nil)
	}
	md, ok := s.docs.Hover(line, char)
	if !ok {
		return s.sendResponse(msg.ID, nil)
	}
	_, start, end, _ := docs.WordAt(line, char)
	n := params.Position.Line
	return s.sendResponse(msg.ID, hover{
		Contents: markupContent{Kind: "markdown", Value: md},
		Range: &lspRange{
			Start: position{Line: n, Character: utf16Column(line, start)},
			End:   position{Line: n, Character: utf16Column(line, end)},
		},
	})
}

func (s *Server) handleSignatureHelp(msg *rpcMessage) error {
	var params textDocumentPositionParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.sendError(msg.ID, codeInvalidParams, "invalid params")
	}
	line, char, ok := s.cursor(params)
	if !ok {
		return s.sendResponse(msg.ID, nil)
	}
	sig, ok := s.docs.SignatureHelp(line, char)
	if !ok {
		return s.sendResponse(msg.ID, nil)
	}
	info := signatureInformation{Label: sig.Label, Parameters: []parameterInformation{}}
	for _, p := range sig.Parameters {
		info.Parameters = append(info.Parameters, parameterInformation{Label: p})
	}
	return s.sendResponse(msg.ID, signatureHelp{
		Signatures:      []signatureInformation{info},
		ActiveParameter: sig.ActiveParameter,
	})
}

func (s *Server) handleFormatting(msg *rpcMessage) error {
	var params documentFormattingParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.sendError(msg.ID, codeInvalidParams, "invalid params")
	}
	edits := []textEdit{}
	doc, ok := s.open[params.TextDocument.URI]
	if !ok || doc.languageID != engine.LanguageID {
		return s.sendResponse(msg.ID, edits)
	}
	formatted := format.Format(doc.text, s.format)
	if formatted != doc.text {
		edits = append(edits, textEdit{
			Range:   lspRange{End: endPosition(doc.text)},
			NewText: formatted,
		})
	}
	return s.sendResponse(msg.ID, edits)
}

func (s *Server) sendResponse(id json.RawMessage, result any) error {
	msg := map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"result":  result,
	}
	return s.send(msg)
}

func (s *Server) sendError(id json.RawMessage, code int, message string) error {
	msg := map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"error":   rpcError{Code: code, Message: message},
	}
	return s.send(msg)
}

func (s *Server) sendPublish(uri string, version *int, list []lspDiagnostic) error {
	if list == nil {
		list = []lspDiagnostic{}
	}
	msg := map[string]any{
		"jsonrpc": "2.0",
		"method":  "textDocument/publishDiagnostics",
		"params": publishDiagnosticsParams{
			URI:         uri,
			Version:     version,
			Diagnostics: list,
		},
	}
	return s.send(msg)
}

func (s *Server) send(msg any) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	s.sendMu.Lock()
	defer s.sendMu.Unlock()
	if err := writeMessage(s.out, payload); err != nil {
		return err
	}
	return s.out.Flush()
}
