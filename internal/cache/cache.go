// Copyright 2026 The pdlc Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cache memoizes internal/analyzer.Analyze by file content
// identity, so that repeated analysis of unchanged source (a language
// server re-analyzing on every keystroke, a batch tool re-analyzing a
// shared include file from several entry points) does a single pass of
// work no matter how many callers ask for it concurrently.
package cache

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/pdllang/pdlc/internal/analyzer"
	"github.com/pdllang/pdlc/internal/ast"
	"github.com/pdllang/pdlc/internal/diag"
	"github.com/pdllang/pdlc/internal/schema"
	"github.com/pdllang/pdlc/internal/xlog"
	"github.com/pdllang/pdlc/internal/xsync"
)

// Result is one memoized Analyze outcome.
type Result struct {
	File   *ast.File
	Schema *schema.Schema
	Bag    *diag.Bag
}

// Cache memoizes Analyze results keyed by a file's content hash
// (source.Database.ContentHash), not by FileID: two FileIDs registered
// from identical contents share one cache entry and one in-flight call.
type Cache struct {
	group   singleflight.Group
	results xsync.Map[uuid.UUID, Result]
}

// New returns an empty Cache.
func New() *Cache {
	return &Cache{}
}

// Analyze returns the memoized analysis of file (whose content hash is
// hash), running internal/analyzer.Analyze at most once per distinct
// hash. Concurrent callers racing on the same hash share one underlying
// Analyze call via singleflight; a later call with a different hash
// always runs its own pass.
func (c *Cache) Analyze(hash uuid.UUID, file *ast.File, opts ...analyzer.Option) Result {
	if r, ok := c.results.Load(hash); ok {
		return r
	}

	key := hash.String()
	v, _, _ := c.group.Do(key, func() (any, error) {
		if r, ok := c.results.Load(hash); ok {
			return r, nil
		}
		xlog.Log(key, "cache", "miss, running analyzer")
		rewritten, sch, bag := analyzer.Analyze(file, opts...)
		r := Result{File: rewritten, Schema: sch, Bag: bag}
		c.results.Store(hash, r)
		return r, nil
	})
	return v.(Result)
}

// Job is one file to analyze as part of an AnalyzeAll batch.
type Job struct {
	Hash uuid.UUID
	File *ast.File
	Opts []analyzer.Option
}

// AnalyzeAll analyzes every job concurrently, one goroutine per job with
// no limit on how many run at once, and returns one Result per job in the
// same order. Since internal/analyzer never returns a Go error (only
// diagnostics), the errgroup here only waits for the jobs and propagates
// ctx cancellation, not failures: AnalyzeAll only returns a non-nil error
// if ctx is canceled before every job completes.
func (c *Cache) AnalyzeAll(ctx context.Context, jobs []Job) ([]Result, error) {
	results := make([]Result, len(jobs))

	var seen xsync.Set[uuid.UUID]
	g, ctx := errgroup.WithContext(ctx)
	for i, job := range jobs {
		i, job := i, job
		if seen.Load(job.Hash) {
			xlog.Log(job.Hash.String(), "cache", "batch requests this hash more than once")
		}
		seen.Store(job.Hash)
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			results[i] = c.Analyze(job.Hash, job.File, job.Opts...)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Invalidate drops the memoized result for hash, if any, so the next
// Analyze call for that content runs the pipeline again. Source databases
// are append-only (internal/source.Database never mutates a registered
// file's contents in place), so this is only needed when a caller wants
// to force re-analysis, e.g. after changing analyzer.Option defaults.
func (c *Cache) Invalidate(hash uuid.UUID) {
	c.results.Delete(hash)
}
