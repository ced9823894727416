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

// Package analyzer drives the full pass pipeline: scope construction,
// semantic checks, desugaring, and schema computation, in the one order
// the language specifies. Every pass is independent and fails fast: the
// first pass to report any diagnostic stops the pipeline and its bag is
// returned, since a later pass cannot be trusted to run over an AST an
// earlier pass has already rejected.
package analyzer

import (
	"github.com/pdllang/pdlc/internal/ast"
	"github.com/pdllang/pdlc/internal/checks"
	"github.com/pdllang/pdlc/internal/desugar"
	"github.com/pdllang/pdlc/internal/diag"
	"github.com/pdllang/pdlc/internal/schema"
	"github.com/pdllang/pdlc/internal/scope"
	"github.com/pdllang/pdlc/internal/xlog"
)

// Options collects the settings an Analyze call can carry. Option closes
// over it so that new settings can be added without breaking callers.
type Options struct {
	correlationID string
}

// Option configures an Analyze call.
type Option struct{ apply func(*Options) }

// WithCorrelationID tags every xlog trace line emitted by this Analyze
// call with id, so interleaved traces from concurrent callers (see
// internal/cache) can be told apart.
func WithCorrelationID(id string) Option {
	return Option{func(o *Options) { o.correlationID = id }}
}

// Analyze runs every semantic check, then desugars groups and flags, then
// computes the size schema, over file. It returns the (possibly rewritten
// by desugaring) file, the computed schema, and the first non-empty
// diagnostic bag encountered; passes after the first failure do not run,
// since their preconditions (a clean AST from the previous pass) no
// longer hold.
//
// On success the returned bag is empty and the returned schema is always
// non-nil.
func Analyze(file *ast.File, opts ...Option) (*ast.File, *schema.Schema, *diag.Bag) {
	var o Options
	for _, opt := range opts {
		opt.apply(&o)
	}

	trace := func(pass string, bag *diag.Bag) bool {
		xlog.Log(o.correlationID, pass, "%d diagnostics", len(bag.Diagnostics()))
		return !bag.Empty()
	}

	if bag := checks.Endianness(file); trace("endianness", bag) {
		return file, nil, bag
	}

	scope1, bag := scope.New(file)
	if trace("scope1", bag) {
		return file, nil, bag
	}

	if bag := checks.DeclIdentifiers(file, scope1); trace("decl_identifiers", bag) {
		return file, nil, bag
	}
	if bag := checks.FieldIdentifiers(file); trace("field_identifiers", bag) {
		return file, nil, bag
	}
	if bag := checks.EnumDeclarations(file); trace("enum_declarations", bag) {
		return file, nil, bag
	}
	if bag := checks.SizeFields(file); trace("size_fields", bag) {
		return file, nil, bag
	}
	if bag := checks.FixedFields(file, scope1); trace("fixed_fields", bag) {
		return file, nil, bag
	}
	if bag := checks.PayloadFields(file); trace("payload_fields", bag) {
		return file, nil, bag
	}
	if bag := checks.ArrayFields(file); trace("array_fields", bag) {
		return file, nil, bag
	}
	if bag := checks.PaddingFields(file); trace("padding_fields", bag) {
		return file, nil, bag
	}
	if bag := checks.ChecksumFields(file, scope1); trace("checksum_fields", bag) {
		return file, nil, bag
	}
	if bag := checks.OptionalFields(file); trace("optional_fields", bag) {
		return file, nil, bag
	}
	if bag := checks.GroupConstraints(file, scope1); trace("group_constraints", bag) {
		return file, nil, bag
	}

	rewritten := desugar.InlineGroups(file)
	desugar.DesugarFlags(rewritten)

	scope2, bag := scope.New(rewritten)
	if trace("scope2", bag) {
		return rewritten, nil, bag
	}

	if bag := checks.DeclConstraints(rewritten, scope2); trace("decl_constraints", bag) {
		return rewritten, nil, bag
	}

	sch := schema.Compute(rewritten, scope2)

	if bag := checks.FieldOffsets(rewritten, scope2, sch); trace("field_offsets", bag) {
		return rewritten, sch, bag
	}
	if bag := checks.DeclSizes(rewritten, sch); trace("decl_sizes", bag) {
		return rewritten, sch, bag
	}

	return rewritten, sch, diag.NewBag()
}
