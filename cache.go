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

package pdlc

import "github.com/pdllang/pdlc/internal/cache"

// Cache memoizes Analyze by a file's content hash, so repeated analysis
// of unchanged source does one pass of work no matter how many callers
// ask for it, including concurrently.
type Cache = cache.Cache

// Job is one file to analyze as part of a Cache.AnalyzeAll batch.
type Job = cache.Job

// Result is one memoized Analyze outcome.
type Result = cache.Result

// NewCache returns an empty Cache.
func NewCache() *Cache {
	return cache.New()
}
