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

// Package lint runs the engine over BML files on disk.
package lint

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"

	"github.com/yashwanth2714/Developer-Tools-for-CPQ/bmllint/pkg/cache"
	"github.com/yashwanth2714/Developer-Tools-for-CPQ/bmllint/pkg/diagnostics"
	"github.com/yashwanth2714/Developer-Tools-for-CPQ/bmllint/pkg/engine"
	"github.com/yashwanth2714/Developer-Tools-for-CPQ/bmllint/pkg/walker"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"
)

type Options struct {
	// Skip holds extra ignore patterns in gitignore syntax.
	Skip []string
	// Cache, if set, reuses results for content seen before under CacheKey.
	Cache *cache.Manager
	// CacheKey identifies the rule settings and build that produced cached
	// results.
	CacheKey string
	// Jobs bounds the files analyzed at once. Zero means GOMAXPROCS.
	Jobs int
}

// File is the lint result of one file.
type File struct {
	Path    string
	RelPath string
	Text    string
	Result  diagnostics.Result
}

// Run lints the BML files named by paths (all of repoRoot when empty).
// Files that cannot be read are reported in the returned error; the others
// are still linted.
func Run(ctx context.Context, e *engine.Engine, repoRoot string, paths []string, opt Options) ([]File, error) {
	log := klog.FromContext(ctx)

	files, err := walker.BMLFiles(repoRoot, paths, opt.Skip)
	if err != nil {
		return nil, err
	}
	log.V(2).Info("Linting BML files", "files", len(files))

	jobs := opt.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Each goroutine writes only its own index.
	results := make([]File, len(files))
	errs := make([]error, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rel, err := filepath.Rel(repoRoot, path)
			if err != nil {
				rel = path
			}
			f, err := lintFile(gctx, e, path, opt)
			if err != nil {
				log.Error(err, "Error linting file", "file", rel)
				errs[i] = fmt.Errorf("error linting %s: %w", rel, err)
				return nil
			}
			f.RelPath = rel
			results[i] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []File
	for i := range results {
		if errs[i] == nil {
			out = append(out, results[i])
		}
	}
	return out, errors.Join(errs...)
}

func lintFile(ctx context.Context, e *engine.Engine, path string, opt Options) (File, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return File{}, err
	}
	f := File{Path: path, Text: string(content)}
	uri := PathToURI(path)

	var hash string
	if opt.Cache != nil {
		hash = cache.HashContent(content)
		if diags, ok := opt.Cache.LookupLint(hash, opt.CacheKey); ok {
			klog.FromContext(ctx).V(4).Info("Using cached lint result", "file", path)
			f.Result = diagnostics.Result{URI: uri, Diagnostics: diags}
			return f, nil
		}
	}

	f.Result = e.AnalyzeResult(ctx, engine.NewDocument(uri, f.Text))
	if opt.Cache != nil {
		opt.Cache.StoreLint(hash, opt.CacheKey, f.Result.Diagnostics)
	}
	return f, nil
}

// PathToURI returns the file URI of path.
func PathToURI(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	return u.String()
}
