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

// ArrayFields flags an Array field that carries a static size while also
// being the target of a sibling Size or Count field (E38): the two are
// redundant, and nothing in the schema says which should win.
func ArrayFields(file *ast.File) *diag.Bag {
	bag := diag.NewBag()

	for _, d := range file.Declarations {
		fields := declFields(d.Desc)
		if fields == nil {
			continue
		}

		referenced := make(map[string]bool)
		for _, f := range fields {
			switch desc := f.Desc.(type) {
			case *ast.Size:
				referenced[desc.FieldID] = true
			case *ast.Count:
				referenced[desc.FieldID] = true
			}
		}

		for _, f := range fields {
			arr, ok := f.Desc.(*ast.Array)
			if !ok || !arr.SizePresent {
				continue
			}
			if referenced[arr.ID] {
				bag.Addf(diag.E38, f.Loc, "array %q has both a static size and a sibling size/count field", arr.ID)
			}
		}
	}

	return bag
}
