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
	"github.com/pdllang/pdlc/internal/schema"
)

// DeclSizes sums the static portion of every field's size per decl
// (Dynamic and Unknown fields contribute nothing) and flags a sum that is
// not a whole number of octets (E52): even when a decl's total size is
// only known at parse time, its fixed bits must still pack into whole
// bytes. Also flags every Array field whose explicit scalar element width
// is not evenly divisible by 8 (E53). Runs after Schema has been
// computed, per the fixed pass order.
func DeclSizes(file *ast.File, sch *schema.Schema) *diag.Bag {
	bag := diag.NewBag()

	for _, d := range file.Declarations {
		fields := declFields(d.Desc)
		if fields == nil {
			continue
		}

		var staticBits uint64
		for _, f := range fields {
			fs := sch.FieldSize(f.Key)
			if padded, ok := sch.PaddedSize(f.Key); ok {
				fs = padded
			}
			if bits, ok := fs.StaticValue(); ok {
				staticBits += bits
			}
		}
		if staticBits%8 != 0 {
			bag.Addf(diag.E52, d.Loc, "declaration packs %d static bits, not a whole number of octets", staticBits)
		}

		for _, f := range fields {
			arr, ok := f.Desc.(*ast.Array)
			if !ok || !arr.WidthPresent {
				continue
			}
			if arr.Width%8 != 0 {
				bag.Addf(diag.E53, f.Loc, "array element width %d bits is not a whole number of octets", arr.Width)
			}
		}
	}

	return bag
}
