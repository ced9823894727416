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

// DeclConstraints validates every Packet/Struct's own constraint list
// (E15-E22, E42) against its parent chain's fields, treating the parent
// chain's own accumulated constraint ids as already "seen" so a child
// re-specializing an id the parent already constrains is caught as a
// duplicate. Runs on the post-desugar AST, per the fixed pass order.
func DeclConstraints(file *ast.File, sc *scope.Scope) *diag.Bag {
	bag := diag.NewBag()

	for _, d := range file.Declarations {
		constraints := ownDeclConstraints(d.Desc)
		if len(constraints) == 0 {
			continue
		}

		var targetFields []*ast.Field
		seen := make(map[string]*ast.Constraint)

		if parent, ok := sc.Parent(d); ok {
			for f := range sc.Fields(parent) {
				targetFields = append(targetFields, f)
			}
			for c := range sc.Constraints(parent) {
				if _, dup := seen[c.ID]; !dup {
					seen[c.ID] = c
				}
			}
		}

		checkConstraintList(bag, sc, constraints, targetFields, seen)
	}

	return bag
}

func ownDeclConstraints(desc ast.DeclDesc) []*ast.Constraint {
	switch d := desc.(type) {
	case *ast.Packet:
		return d.Constraints
	case *ast.Struct:
		return d.Constraints
	default:
		return nil
	}
}
