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

// Package diag implements the analyzer's diagnostic model: an append-only
// bag of coded, labeled diagnostics that each check pass accumulates and
// the driver surfaces on failure.
//
// A Diagnostic is deterministic and serialisable; rendering it to a
// terminal is a separate concern this package does not implement. The
// closed, never-renumbered Code enumeration lets external tools match on
// codes while messages stay free to change, and the Bag accumulates, since
// one analysis pass must be able to report many independent problems.
package diag

import (
	"fmt"
	"strings"

	"github.com/pdllang/pdlc/internal/source"
)

// LabelRole distinguishes the span that makes a diagnostic actionable from
// spans that merely provide supporting context.
type LabelRole int

const (
	// Primary marks the site that makes the diagnostic actionable.
	Primary LabelRole = iota
	// Secondary marks a related, supporting site (e.g. a prior conflicting
	// declaration).
	Secondary
)

// Label attaches a role and an optional message to a source range.
type Label struct {
	Range   source.SourceRange
	Role    LabelRole
	Message string
}

// Diagnostic is a single reported problem.
type Diagnostic struct {
	Code    Code
	Message string
	Labels  []Label
	Notes   []string
}

// Error implements error for a single Diagnostic so it can be used on its
// own (e.g. in code that only ever constructs exactly one).
func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s", d.Code, d.Message)
}

// Bag is an append-only collection of diagnostics produced by one pass (or
// by the whole driver, once a failing pass's bag is returned to the
// caller).
type Bag struct {
	diagnostics []Diagnostic
}

// NewBag returns an empty bag.
func NewBag() *Bag {
	return &Bag{}
}

// Add appends a diagnostic to the bag.
func (b *Bag) Add(d Diagnostic) {
	b.diagnostics = append(b.diagnostics, d)
}

// Addf is a convenience that builds and appends a Diagnostic with a single
// primary label.
func (b *Bag) Addf(code Code, primary source.SourceRange, format string, args ...any) {
	b.Add(Diagnostic{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Labels:  []Label{{Range: primary, Role: Primary}},
	})
}

// Empty reports whether the bag has no diagnostics.
func (b *Bag) Empty() bool {
	return b == nil || len(b.diagnostics) == 0
}

// Diagnostics returns the accumulated diagnostics in report order.
func (b *Bag) Diagnostics() []Diagnostic {
	if b == nil {
		return nil
	}
	return b.diagnostics
}

// Merge appends other's diagnostics onto b. A nil other is a no-op.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	b.diagnostics = append(b.diagnostics, other.diagnostics...)
}

// ErrOr returns (value, nil) if the bag is empty, or (zero, b) otherwise:
// a pass that found no problems hands its result back to the driver; one
// that found problems surfaces itself as the error.
func ErrOr[T any](b *Bag, value T) (T, error) {
	if b.Empty() {
		return value, nil
	}
	var zero T
	return zero, b
}

// Error implements error for Bag, joining every diagnostic's rendering.
// This is a minimal default suitable for logs and test failures; richer
// terminal rendering (source snippets, color, carets under spans) belongs
// to a separate emission package.
func (b *Bag) Error() string {
	var sb strings.Builder
	for i, d := range b.diagnostics {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(d.Error())
	}
	return sb.String()
}
