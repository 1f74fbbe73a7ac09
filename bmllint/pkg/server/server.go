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

package server

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/yashwanth2714/Developer-Tools-for-CPQ/bmllint/pkg/engine"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"k8s.io/klog/v2"
)

// NewGRPCServer returns a gRPC server with the Linter and health services
// registered.
func NewGRPCServer(e *engine.Engine, opts ...grpc.ServerOption) (*grpc.Server, *health.Server) {
	if e == nil {
		e = engine.New(nil)
	}
	s := grpc.NewServer(opts...)
	s.RegisterService(&LinterServiceDesc, &linter{engine: e})

	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(s, hs)
	return s, hs
}

// Serve serves on lis until ctx is done, then stops gracefully.
func Serve(ctx context.Context, lis net.Listener, e *engine.Engine) error {
	s, hs := NewGRPCServer(e)
	klog.Infof("Linter server listening on %v", lis.Addr())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := s.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		hs.Shutdown()
		s.GracefulStop()
		return nil
	})
	return g.Wait()
}

// ListenAndServe listens on the TCP port and calls Serve.
func ListenAndServe(ctx context.Context, port int, e *engine.Engine) error {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	return Serve(ctx, lis, e)
}
