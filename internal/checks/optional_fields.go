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
)

// OptionalFields validates every field with a condition (cond != nil):
// the field itself must be a Scalar or Typedef (E45); the condition must
// name a 1-bit, non-optional Scalar declared earlier in the same decl
// (E46 undeclared, E47 invalid, E49 condition field is itself optional);
// and the condition's literal value must be 0 or 1, never a tag_id (E48).
func OptionalFields(file *ast.File) *diag.Bag {
	bag := diag.NewBag()

	for _, d := range file.Declarations {
		fields := declFields(d.Desc)
		if fields == nil {
			continue
		}

		seenByID := make(map[string]*ast.Field, len(fields))
		for _, f := range fields {
			if f.Cond != nil {
				checkCondition(bag, f, seenByID)
			}
			if id, ok := fieldID(f.Desc); ok {
				seenByID[id] = f
			}
		}
	}

	return bag
}

func checkCondition(bag *diag.Bag, f *ast.Field, seenByID map[string]*ast.Field) {
	switch f.Desc.(type) {
	case *ast.Scalar, *ast.Typedef:
		// allowed
	default:
		bag.Addf(diag.E45, f.Loc, "optional fields must be scalar or typedef")
	}

	cond := f.Cond
	condField, ok := seenByID[cond.ID]
	switch {
	case !ok:
		bag.Addf(diag.E46, f.Loc, "undeclared condition identifier %q", cond.ID)
	default:
		scalar, isScalar := condField.Desc.(*ast.Scalar)
		if !isScalar || scalar.Width != 1 {
			bag.Addf(diag.E47, f.Loc, "condition identifier %q is not a 1-bit scalar", cond.ID)
		} else if condField.Cond != nil {
			bag.Addf(diag.E49, f.Loc, "condition identifier %q is itself optional", cond.ID)
		}
	}

	if !cond.ValuePresent || (cond.Value != 0 && cond.Value != 1) {
		bag.Addf(diag.E48, f.Loc, "condition value must be literal 0 or 1")
	}
}
