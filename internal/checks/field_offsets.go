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

package checks

import (
	"github.com/pdllang/pdlc/internal/ast"
	"github.com/pdllang/pdlc/internal/diag"
	"github.com/pdllang/pdlc/internal/schema"
	"github.com/pdllang/pdlc/internal/scope"
)

// FieldOffsets walks every decl's own fields left to right, tracking a
// cumulative bit offset that resets to zero whenever a non-static field
// is crossed. Fields requiring byte alignment (everything scope.IsBitField
// reports false for: Payload/Body, a Typedef to a non-Enum, Array,
// Padding, and a Typedef to a Checksum) must land on an offset that is a
// multiple of 8 (E51). Runs on the post-desugar AST, after Schema has
// been computed, per the fixed pass order.
func FieldOffsets(file *ast.File, sc *scope.Scope, sch *schema.Schema) *diag.Bag {
	bag := diag.NewBag()

	for _, d := range file.Declarations {
		fields := declFields(d.Desc)
		if fields == nil {
			continue
		}

		var offset uint64
		for _, f := range fields {
			if !sc.IsBitField(f) && offset%8 != 0 {
				bag.Addf(diag.E51, f.Loc, "field %q does not start at a byte boundary", fieldRefID(f))
			}

			if bits, ok := sch.FieldSize(f.Key).StaticValue(); ok {
				offset += bits
			} else {
				offset = 0
			}
		}
	}

	return bag
}

// fieldRefID extracts a human-readable identifier for diagnostic messages
// from field kinds that carry one; kinds with no identifier of their own
// (Body, Padding, Reserved, FixedScalar, ...) report a generic label.
func fieldRefID(f *ast.Field) string {
	switch desc := f.Desc.(type) {
	case *ast.Scalar:
		return desc.ID
	case *ast.Typedef:
		return desc.ID
	case *ast.Array:
		return desc.ID
	case *ast.Flag:
		return desc.ID
	default:
		return "<field>"
	}
}
