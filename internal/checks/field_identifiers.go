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

// FieldIdentifiers checks, independently within each Packet/Struct/Group's
// own field list, that no two fields share an id (E11). Inherited fields
// are not considered: a child redeclaring a parent's field id is a
// separate (unchecked, intentionally permitted) shadowing concern.
func FieldIdentifiers(file *ast.File) *diag.Bag {
	bag := diag.NewBag()

	for _, d := range file.Declarations {
		fields := declFields(d.Desc)
		if fields == nil {
			continue
		}

		seen := make(map[string]*ast.Field, len(fields))
		for _, f := range fields {
			id, ok := fieldID(f.Desc)
			if !ok {
				continue
			}
			if existing, dup := seen[id]; dup {
				bag.Add(diag.Diagnostic{
					Code:    diag.E11,
					Message: "duplicate field identifier " + id,
					Labels: []diag.Label{
						{Range: f.Loc, Role: diag.Primary},
						{Range: existing.Loc, Role: diag.Secondary, Message: "first declared here"},
					},
				})
				continue
			}
			seen[id] = f
		}
	}

	return bag
}

func declFields(desc ast.DeclDesc) []*ast.Field {
	switch d := desc.(type) {
	case *ast.Packet:
		return d.Fields
	case *ast.Struct:
		return d.Fields
	case *ast.Group:
		return d.Fields
	default:
		return nil
	}
}

// fieldID returns the identifier a field introduces, if it introduces one:
// Scalar, Typedef, Array and Flag fields do. Payload/Body/Padding/Reserved/
// GroupRef and the other shapes carry no id of their own (a GroupRef's ids
// appear only after desugaring, on the fields it expands into).
func fieldID(desc ast.FieldDesc) (string, bool) {
	switch d := desc.(type) {
	case *ast.Scalar:
		return d.ID, true
	case *ast.Typedef:
		return d.ID, true
	case *ast.Array:
		return d.ID, true
	case *ast.Flag:
		return d.ID, true
	default:
		return "", false
	}
}
