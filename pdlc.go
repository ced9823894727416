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

// Package pdlc is a semantic analyzer for the Packet Description
// Language (PDL): a small declarative schema language for describing
// binary wire formats.
//
// Analyze takes an already-parsed [ast.File] (parsing PDL source text
// into this shape is outside this module's scope; see internal/conform's
// fixtures for the shape a parser must produce) and runs the full fixed
// pass pipeline: name resolution, the fifteen semantic checks, group/flag
// desugaring, and size-schema computation. It returns the rewritten
// file, the computed schema, and the first failing pass's diagnostics,
// if any pass failed.
package pdlc

import (
	"github.com/pdllang/pdlc/internal/analyzer"
	"github.com/pdllang/pdlc/internal/ast"
	"github.com/pdllang/pdlc/internal/diag"
	"github.com/pdllang/pdlc/internal/schema"
	"github.com/pdllang/pdlc/internal/source"
)

// Option configures an Analyze call.
type Option = analyzer.Option

// WithCorrelationID tags every debug trace line an Analyze call emits
// with id, so concurrent callers (see [Cache.AnalyzeAll]) can tell their
// interleaved traces apart.
var WithCorrelationID = analyzer.WithCorrelationID

// File is the untyped AST an external PDL parser must produce.
type File = ast.File

// Schema is the computed static/dynamic/unknown size layout for an
// analyzed file.
type Schema = schema.Schema

// Diagnostics is the bag of problems a failing pass reported.
type Diagnostics = diag.Bag

// Analyze runs the full pass pipeline over file and returns the
// (possibly rewritten, by desugaring) file, the computed size schema,
// and the first failing pass's diagnostics. On success the returned bag
// is empty and the schema is non-nil.
func Analyze(file *File, opts ...Option) (*File, *Schema, *Diagnostics) {
	return analyzer.Analyze(file, opts...)
}

// NewSourceDatabase returns an empty source database for registering PDL
// file contents and deriving the content hashes [Cache] keys analysis
// results on.
func NewSourceDatabase() *source.Database {
	return source.NewDatabase()
}
