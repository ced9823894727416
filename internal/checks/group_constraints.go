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

// GroupConstraints validates every GroupRef field's constraint list
// against the fields of the group it references (E15-E22, E42). This
// runs before InlineGroups: afterwards, GroupRef fields no longer exist.
func GroupConstraints(file *ast.File, sc *scope.Scope) *diag.Bag {
	bag := diag.NewBag()

	for _, d := range file.Declarations {
		for _, f := range declFields(d.Desc) {
			ref, ok := f.Desc.(*ast.GroupRef)
			if !ok {
				continue
			}
			group, ok := sc.Lookup(ref.GroupID)
			if !ok {
				continue // undeclared group already reported by DeclIdentifiers
			}
			g, ok := group.Desc.(*ast.Group)
			if !ok {
				continue
			}
			checkConstraintList(bag, sc, ref.Constraints, g.Fields, make(map[string]*ast.Constraint))
		}
	}

	return bag
}
