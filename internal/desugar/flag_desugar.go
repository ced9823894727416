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

package desugar

import "github.com/pdllang/pdlc/internal/ast"

// DesugarFlags rewrites, in place, every field that gates at least one
// conditional field in its own decl into an ast.Flag carrying the list of
// (dependent field id, required value) pairs. Must run after
// InlineGroups, on the same File it returned, since group inlining may
// introduce new condition targets.
func DesugarFlags(file *ast.File) {
	for _, d := range file.Declarations {
		fields := fieldsOf(d.Desc)
		if fields == nil {
			continue
		}

		condMap := make(map[string][]ast.FlagTarget)
		for _, f := range fields {
			if f.Cond == nil {
				continue
			}
			dependentID, ok := fieldID(f.Desc)
			if !ok {
				continue
			}
			condMap[f.Cond.ID] = append(condMap[f.Cond.ID], ast.FlagTarget{
				FieldID:   dependentID,
				CondValue: f.Cond.Value,
			})
		}
		if len(condMap) == 0 {
			continue
		}

		for _, f := range fields {
			id, ok := fieldID(f.Desc)
			if !ok {
				continue
			}
			if targets, gates := condMap[id]; gates {
				f.Desc = &ast.Flag{ID: id, OptionalFieldIDs: targets}
			}
		}
	}
}

func fieldsOf(desc ast.DeclDesc) []*ast.Field {
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
