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

// PaddingFields requires every Padding field to immediately follow an
// Array field in its decl's field order (E39): padding fills the
// preceding array out to a byte count and is meaningless anywhere else.
func PaddingFields(file *ast.File) *diag.Bag {
	bag := diag.NewBag()

	for _, d := range file.Declarations {
		fields := declFields(d.Desc)
		for i, f := range fields {
			if _, ok := f.Desc.(*ast.Padding); !ok {
				continue
			}
			if i == 0 {
				bag.Addf(diag.E39, f.Loc, "padding field must immediately follow an array")
				continue
			}
			if _, ok := fields[i-1].Desc.(*ast.Array); !ok {
				bag.Addf(diag.E39, f.Loc, "padding field must immediately follow an array")
			}
		}
	}

	return bag
}
