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

// PayloadFields enforces at most one Payload/Body per decl (E36) and
// requires one whenever any child decl introduces fields of its own
// (E37): a child that adds fields needs somewhere in the parent chain to
// attach them after the parent's own fixed layout ends.
func PayloadFields(file *ast.File) *diag.Bag {
	bag := diag.NewBag()

	childHasFields := make(map[string]bool)
	for _, d := range file.Declarations {
		parentID, fields := parentAndFields(d.Desc)
		if parentID != "" && len(fields) > 0 {
			childHasFields[parentID] = true
		}
	}

	for _, d := range file.Declarations {
		id, fields := declIDAndFields(d.Desc)
		if id == "" {
			continue
		}

		var first *ast.Field
		for _, f := range fields {
			switch f.Desc.(type) {
			case *ast.Payload, *ast.Body:
				if first != nil {
					bag.Add(diag.Diagnostic{
						Code:    diag.E36,
						Message: "duplicate payload/body field",
						Labels: []diag.Label{
							{Range: f.Loc, Role: diag.Primary},
							{Range: first.Loc, Role: diag.Secondary, Message: "first declared here"},
						},
					})
					continue
				}
				first = f
			}
		}

		if id != "" && childHasFields[id] && first == nil {
			bag.Addf(diag.E37, d.Loc, "%q requires a payload or body field because a child declares fields", id)
		}
	}

	return bag
}

func parentAndFields(desc ast.DeclDesc) (string, []*ast.Field) {
	switch d := desc.(type) {
	case *ast.Packet:
		return d.ParentID, d.Fields
	case *ast.Struct:
		return d.ParentID, d.Fields
	default:
		return "", nil
	}
}

func declIDAndFields(desc ast.DeclDesc) (string, []*ast.Field) {
	switch d := desc.(type) {
	case *ast.Packet:
		return d.ID, d.Fields
	case *ast.Struct:
		return d.ID, d.Fields
	case *ast.Group:
		return d.ID, d.Fields
	default:
		return "", nil
	}
}
