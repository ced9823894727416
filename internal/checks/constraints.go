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
	"github.com/pdllang/pdlc/internal/scope"
)

// constrainableFieldsByID indexes the Scalar/Typedef fields of
// targetFields by id; every other field kind is absent, so a constraint
// naming one is not kind-checked as something else (array targets are
// reported separately as E16, any other absent id as E15).
func constrainableFieldsByID(targetFields []*ast.Field) map[string]*ast.Field {
	byID := make(map[string]*ast.Field, len(targetFields))
	for _, f := range targetFields {
		switch desc := f.Desc.(type) {
		case *ast.Scalar:
			byID[desc.ID] = f
		case *ast.Typedef:
			byID[desc.ID] = f
		}
	}
	return byID
}

// checkConstraintList validates one decl's (or group reference's) own
// constraint list against targetFields, the fields those constraints may
// specialize. seen accumulates every constraint id encountered so far —
// including, for packet/struct parent constraints, the ancestors'
// constraint ids — so a duplicate anywhere in the accumulated chain
// raises E22 at the new occurrence.
func checkConstraintList(bag *diag.Bag, sc *scope.Scope, constraints []*ast.Constraint, targetFields []*ast.Field, seen map[string]*ast.Constraint) {
	byID := constrainableFieldsByID(targetFields)
	arrayIDs := make(map[string]bool)
	for _, f := range targetFields {
		if arr, ok := f.Desc.(*ast.Array); ok {
			arrayIDs[arr.ID] = true
		}
	}

	for _, c := range constraints {
		if existing, dup := seen[c.ID]; dup {
			bag.Add(diag.Diagnostic{
				Code:    diag.E22,
				Message: "duplicate constraint identifier " + c.ID,
				Labels: []diag.Label{
					{Range: c.Loc, Role: diag.Primary},
					{Range: existing.Loc, Role: diag.Secondary, Message: "first declared here"},
				},
			})
		} else {
			seen[c.ID] = c
		}

		checkConstraintTarget(bag, sc, c, byID, arrayIDs)
	}
}

func checkConstraintTarget(bag *diag.Bag, sc *scope.Scope, c *ast.Constraint, byID map[string]*ast.Field, arrayIDs map[string]bool) {
	target, ok := byID[c.ID]
	if !ok {
		if arrayIDs[c.ID] {
			bag.Addf(diag.E16, c.Loc, "constraint target %q is an array field", c.ID)
			return
		}
		bag.Addf(diag.E15, c.Loc, "undeclared constraint target %q", c.ID)
		return
	}

	switch desc := target.Desc.(type) {
	case *ast.Scalar:
		if !c.ValuePresent {
			bag.Addf(diag.E17, c.Loc, "constraint on scalar %q must give a value, not a tag", c.ID)
			return
		}
		if bitWidth(c.Value) > desc.Width {
			bag.Addf(diag.E18, c.Loc, "constraint value %d does not fit in %d bits", c.Value, desc.Width)
		}

	case *ast.Typedef:
		typeDecl, ok := sc.Lookup(desc.TypeID)
		if !ok {
			bag.Addf(diag.E21, c.Loc, "%q does not reference a usable type", desc.TypeID)
			return
		}
		enum, isEnum := typeDecl.Desc.(*ast.Enum)
		if !isEnum {
			bag.Addf(diag.E21, c.Loc, "constraint on %q must reference an enum typedef", c.ID)
			return
		}
		if !c.TagIDPresent {
			bag.Addf(diag.E19, c.Loc, "constraint on enum typedef %q must give a tag, not a value", c.ID)
			return
		}
		tag, ok := lookupTag(enum.Tags, c.TagID)
		if !ok {
			bag.Addf(diag.E20, c.Loc, "undeclared tag %q", c.TagID)
			return
		}
		if _, isRange := tag.Desc.(*ast.TagRange); isRange {
			bag.Addf(diag.E42, c.Loc, "constraint tag %q names a range, not a leaf tag", c.TagID)
		}
	}
}
