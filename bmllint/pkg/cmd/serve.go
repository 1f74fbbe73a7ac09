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

package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/yashwanth2714/Developer-Tools-for-CPQ/bmllint/pkg/engine"
	"github.com/yashwanth2714/Developer-Tools-for-CPQ/bmllint/pkg/server"
)

// ServeOptions holds the configuration for the "serve" command.
type ServeOptions struct {
	*RootOptions
	Port int
}

// BuildServeCommand constructs the cobra command for "serve".
func BuildServeCommand(rootOpt *RootOptions) *cobra.Command {
	opt := ServeOptions{
		RootOptions: rootOpt,
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the gRPC analysis server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return RunServe(cmd.Context(), opt)
		},
	}

	cmd.Flags().IntVar(&opt.Port, "port", 50051, "Port to listen on")

	return cmd
}

// RunServe executes the business logic for the "serve" command.
func RunServe(ctx context.Context, opt ServeOptions) error {
	cfg, err := opt.LoadConfig()
	if err != nil {
		return err
	}
	return server.ListenAndServe(ctx, opt.Port, engine.New(cfg))
}
