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
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/yashwanth2714/Developer-Tools-for-CPQ/bmllint/pkg/version"
)

// VersionOptions holds the configuration for the "version" command.
type VersionOptions struct {
	*RootOptions
	Out io.Writer
}

// BuildVersionCommand constructs the cobra command for "version".
func BuildVersionCommand(rootOpt *RootOptions) *cobra.Command {
	opt := VersionOptions{
		RootOptions: rootOpt,
	}

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opt.Out = cmd.OutOrStdout()
			return RunVersion(cmd.Context(), opt)
		},
	}

	return cmd
}

// RunVersion executes the business logic for the "version" command.
func RunVersion(ctx context.Context, opt VersionOptions) error {
	if opt.Out == nil {
		opt.Out = os.Stdout
	}
	return version.Write(opt.Out, version.Get(), !color.NoColor)
}
