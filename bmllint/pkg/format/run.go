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

package format

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yashwanth2714/Developer-Tools-for-CPQ/bmllint/pkg/cache"
	"github.com/yashwanth2714/Developer-Tools-for-CPQ/bmllint/pkg/walker"
	"k8s.io/klog/v2"
)

type RunOptions struct {
	Format Options
	// Skip holds extra ignore patterns in gitignore syntax.
	Skip []string
	// DryRun reports the files that would change without writing them.
	DryRun bool
	// Cache, if set, skips files whose content was formatted before.
	Cache *cache.Manager
}

// Run formats the BML files named by paths (all of repoRoot when empty) and
// returns the files that changed, or would change in a dry run.
func Run(ctx context.Context, repoRoot string, paths []string, opt RunOptions) ([]string, error) {
	log := klog.FromContext(ctx)

	files, err := walker.BMLFiles(repoRoot, paths, opt.Skip)
	if err != nil {
		return nil, err
	}

	var dirtyFiles []string
	if opt.Cache != nil {
		for _, f := range files {
			meta, err := opt.Cache.GetOrUpdateMetadata(f)
			if err != nil || !opt.Cache.IsFormatted(opt.Format.cacheKey(meta.Hash)) {
				dirtyFiles = append(dirtyFiles, f)
			}
		}
	} else {
		dirtyFiles = files
	}
	if len(dirtyFiles) == 0 {
		return nil, nil
	}

	log.Info("Formatting BML files", "files", len(dirtyFiles), "dryRun", opt.DryRun)

	var changed []string
	var errs []error
	for _, f := range dirtyFiles {
		didChange, err := formatFile(f, opt)
		if err != nil {
			rel, _ := filepath.Rel(repoRoot, f)
			log.Error(err, "Error formatting file", "file", rel)
			errs = append(errs, fmt.Errorf("error formatting %s: %w", rel, err))
			continue
		}
		if didChange {
			log.V(2).Info("Formatted file", "file", f)
			changed = append(changed, f)
		}
	}
	return changed, errors.Join(errs...)
}

func formatFile(path string, opt RunOptions) (bool, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	formatted := []byte(Format(string(content), opt.Format))

	if bytes.Equal(content, formatted) {
		if opt.Cache != nil {
			opt.Cache.MarkFormatted(opt.Format.cacheKey(cache.HashContent(content)))
		}
		return false, nil
	}
	if opt.DryRun {
		return true, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	if err := os.WriteFile(path, formatted, info.Mode().Perm()); err != nil {
		return false, err
	}
	if opt.Cache != nil {
		opt.Cache.MarkFormatted(opt.Format.cacheKey(cache.HashContent(formatted)))
	}
	return true, nil
}

// cacheKey identifies content formatted with these options.
func (o Options) cacheKey(hash string) string {
	return fmt.Sprintf("%s/%d/%t", hash, o.IndentSize, o.UseTabs)
}
