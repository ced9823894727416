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

const (
	payloadFieldID = "_payload_"
	bodyFieldID    = "_body_"
)

// SizeFields validates every Size/Count/ElementSize field within each
// decl: at most one of each referencing any given field id (E23, E26,
// E29), and the referenced id must resolve to a field of the expected
// kind (E24/E25, E27/E28, E30/E31).
func SizeFields(file *ast.File) *diag.Bag {
	bag := diag.NewBag()

	for _, d := range file.Declarations {
		fields := declFields(d.Desc)
		if fields == nil {
			continue
		}
		checkSizeFieldsOf(bag, fields)
	}

	return bag
}

func checkSizeFieldsOf(bag *diag.Bag, fields []*ast.Field) {
	byID := indexFieldsByID(fields)
	sizeFor := make(map[string]*ast.Field)
	countFor := make(map[string]*ast.Field)
	elemSizeFor := make(map[string]*ast.Field)

	for _, f := range fields {
		switch desc := f.Desc.(type) {
		case *ast.Size:
			checkRef(bag, f, desc.FieldID, sizeFor, diag.E23, diag.E24, diag.E25, byID, isSizeTarget)
		case *ast.Count:
			checkRef(bag, f, desc.FieldID, countFor, diag.E26, diag.E27, diag.E28, byID, isArrayField)
		case *ast.ElementSize:
			checkRef(bag, f, desc.FieldID, elemSizeFor, diag.E29, diag.E30, diag.E31, byID, isArrayField)
		}
	}
}

// checkRef implements the shared duplicate/undeclared/invalid shape common
// to Size, Count, and ElementSize fields.
func checkRef(bag *diag.Bag, f *ast.Field, targetID string, seen map[string]*ast.Field, dupCode, undeclaredCode, invalidCode diag.Code, byID map[string]*ast.Field, kindOK func(*ast.Field) bool) {
	if existing, dup := seen[targetID]; dup {
		bag.Add(diag.Diagnostic{
			Code:    dupCode,
			Message: "duplicate reference to " + targetID,
			Labels: []diag.Label{
				{Range: f.Loc, Role: diag.Primary},
				{Range: existing.Loc, Role: diag.Secondary, Message: "first declared here"},
			},
		})
	} else {
		seen[targetID] = f
	}

	target, ok := byID[targetID]
	if !ok {
		bag.Addf(undeclaredCode, f.Loc, "undeclared field %q", targetID)
		return
	}
	if !kindOK(target) {
		bag.Addf(invalidCode, f.Loc, "%q is not a valid target for this field", targetID)
	}
}

func isSizeTarget(f *ast.Field) bool {
	switch f.Desc.(type) {
	case *ast.Payload, *ast.Body, *ast.Array:
		return true
	default:
		return false
	}
}

func isArrayField(f *ast.Field) bool {
	_, ok := f.Desc.(*ast.Array)
	return ok
}

// indexFieldsByID maps every field's own identifier, plus the synonyms
// _payload_/_body_ for the decl's Payload/Body field (there is at most
// one, enforced by PayloadFields), to the field itself.
func indexFieldsByID(fields []*ast.Field) map[string]*ast.Field {
	byID := make(map[string]*ast.Field, len(fields))
	for _, f := range fields {
		switch desc := f.Desc.(type) {
		case *ast.Scalar:
			byID[desc.ID] = f
		case *ast.Typedef:
			byID[desc.ID] = f
		case *ast.Array:
			byID[desc.ID] = f
		case *ast.Payload:
			byID[payloadFieldID] = f
		case *ast.Body:
			byID[bodyFieldID] = f
		}
	}
	return byID
}
