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
	"math/bits"

	"github.com/pdllang/pdlc/internal/ast"
	"github.com/pdllang/pdlc/internal/diag"
	"github.com/pdllang/pdlc/internal/scope"
)

// FixedFields validates FixedScalar and FixedEnum field literals: a
// FixedScalar's value must fit in its declared width (E32); a FixedEnum's
// enum identifier must resolve (E33) to an Enum decl (E35) and its tag_id
// must name one of that enum's tags (E34).
func FixedFields(file *ast.File, sc *scope.Scope) *diag.Bag {
	bag := diag.NewBag()

	for _, d := range file.Declarations {
		for _, f := range declFields(d.Desc) {
			switch desc := f.Desc.(type) {
			case *ast.FixedScalar:
				if bitWidth(desc.Value) > desc.Width {
					bag.Addf(diag.E32, f.Loc, "fixed value %d does not fit in %d bits", desc.Value, desc.Width)
				}

			case *ast.FixedEnum:
				target, ok := sc.Lookup(desc.EnumID)
				if !ok {
					bag.Addf(diag.E33, f.Loc, "undeclared enum %q", desc.EnumID)
					continue
				}
				enum, isEnum := target.Desc.(*ast.Enum)
				if !isEnum {
					bag.Addf(diag.E35, f.Loc, "%q is not an enum", desc.EnumID)
					continue
				}
				if !enumHasTag(enum, desc.TagID) {
					bag.Addf(diag.E34, f.Loc, "%q has no tag %q", desc.EnumID, desc.TagID)
				}
			}
		}
	}

	return bag
}

func enumHasTag(enum *ast.Enum, id string) bool {
	_, ok := lookupTag(enum.Tags, id)
	return ok
}

// lookupTag recursively searches an enum's tags, including Range tags'
// nested sub-tags, for a tag with the given id.
func lookupTag(tags []*ast.Tag, id string) (*ast.Tag, bool) {
	for _, t := range tags {
		if ast.TagID(t.Desc) == id {
			return t, true
		}
		if r, ok := t.Desc.(*ast.TagRange); ok {
			if found, ok := lookupTag(r.Tags, id); ok {
				return found, true
			}
		}
	}
	return nil, false
}

// bitWidth returns the number of bits required to represent a
// non-negative value (0 requires zero bits, matching an all-zero field).
func bitWidth(v int64) int {
	if v <= 0 {
		return 0
	}
	return bits.Len64(uint64(v))
}
