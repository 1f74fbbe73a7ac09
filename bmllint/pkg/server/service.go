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

// Package server exposes the engine as a gRPC service.
//
// The service has one unary method, /bmllint.v1.Linter/Analyze, whose request
// and response are google.protobuf.Struct messages:
//
//	request:  {"uri": string, "languageId": string, "text": string}
//	response: {"uri": string, "diagnostics": [{"range": ..., "message": ..., "severity": ...}]}
//
// A missing languageId means "bml".
package server

import (
	"context"
	"encoding/json"

	"github.com/yashwanth2714/Developer-Tools-for-CPQ/bmllint/pkg/diagnostics"
	"github.com/yashwanth2714/Developer-Tools-for-CPQ/bmllint/pkg/engine"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
	"k8s.io/klog/v2"
)

const (
	ServiceName   = "bmllint.v1.Linter"
	AnalyzeMethod = "/" + ServiceName + "/Analyze"
)

// LinterServer is the server API for the Linter service.
type LinterServer interface {
	Analyze(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// LinterServiceDesc describes the Linter service for grpc.Server.RegisterService.
var LinterServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*LinterServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Analyze",
			Handler:    analyzeHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "bmllint/v1/linter.proto",
}

func analyzeHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LinterServer).Analyze(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: AnalyzeMethod,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(LinterServer).Analyze(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

type linter struct {
	engine *engine.Engine
}

var _ LinterServer = (*linter)(nil)

func (l *linter) Analyze(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	fields := req.GetFields()
	text, ok := fields["text"]
	if !ok {
		return nil, status.Error(codes.InvalidArgument, "text is required")
	}
	doc := engine.TextDocument{
		DocURI:      fields["uri"].GetStringValue(),
		DocLanguage: engine.LanguageID,
		Content:     text.GetStringValue(),
	}
	if lang, ok := fields["languageId"]; ok {
		doc.DocLanguage = lang.GetStringValue()
	}

	result := l.engine.AnalyzeResult(ctx, doc)
	klog.FromContext(ctx).V(2).Info("Analyze", "uri", doc.DocURI, "diagnostics", len(result.Diagnostics))
	return resultToStruct(result)
}

func resultToStruct(r diagnostics.Result) (*structpb.Struct, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encoding result: %v", err)
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(data, out); err != nil {
		return nil, status.Errorf(codes.Internal, "encoding result: %v", err)
	}
	return out, nil
}

// Client calls the Linter service.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// Analyze asks the server for the diagnostics of a document.
func (c *Client) Analyze(ctx context.Context, doc engine.Document, opts ...grpc.CallOption) (diagnostics.Result, error) {
	in, err := structpb.NewStruct(map[string]any{
		"uri":        doc.URI(),
		"languageId": doc.LanguageID(),
		"text":       doc.Text(),
	})
	if err != nil {
		return diagnostics.Result{}, err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, AnalyzeMethod, in, out, opts...); err != nil {
		return diagnostics.Result{}, err
	}
	data, err := protojson.Marshal(out)
	if err != nil {
		return diagnostics.Result{}, err
	}
	var r diagnostics.Result
	if err := json.Unmarshal(data, &r); err != nil {
		return diagnostics.Result{}, err
	}
	return r, nil
}
