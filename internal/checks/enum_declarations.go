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
	"sort"

	"github.com/pdllang/pdlc/internal/ast"
	"github.com/pdllang/pdlc/internal/diag"
)

// EnumDeclarations validates every Enum decl's tag set: unique tag
// identifiers (E12), unique tag values and non-overlapping ranges
// (E13, E40, E41, E43), values within the enum's bit width (E14), valid
// range bounds (E40), and at most one default/"other" tag (E44).
func EnumDeclarations(file *ast.File) *diag.Bag {
	bag := diag.NewBag()

	for _, d := range file.Declarations {
		enum, ok := d.Desc.(*ast.Enum)
		if !ok {
			continue
		}
		checkEnum(bag, enum)
	}

	return bag
}

type enumRange struct {
	tag        *ast.Tag
	start, end uint64
}

func checkEnum(bag *diag.Bag, enum *ast.Enum) {
	hi := enumMax(enum.Width)
	byID := make(map[string]*ast.Tag, len(enum.Tags))
	var hasDefault *ast.Tag

	ranges := checkTopLevelTags(bag, enum.Tags, 0, hi, byID, &hasDefault)

	sort.Slice(ranges, func(i, j int) bool {
		if ranges[i].start != ranges[j].start {
			return ranges[i].start < ranges[j].start
		}
		return ranges[i].end < ranges[j].end
	})
	for i := 1; i < len(ranges); i++ {
		prev, cur := ranges[i-1], ranges[i]
		if cur.start <= prev.end {
			bag.Add(diag.Diagnostic{
				Code:    diag.E41,
				Message: "overlapping tag ranges " + ast.TagID(prev.tag.Desc) + " and " + ast.TagID(cur.tag.Desc),
				Labels: []diag.Label{
					{Range: cur.tag.Loc, Role: diag.Primary},
					{Range: prev.tag.Loc, Role: diag.Secondary, Message: "overlaps this range"},
				},
			})
		}
	}
}

// checkTopLevelTags validates an enum's own top-level tags, additionally
// flagging any Value tag whose value falls within a sibling Range's
// bounds (E43: a Range reserves its span for its own sub-tags) and
// returns every declared top-level Range for the whole-enum overlap
// check in checkEnum. The ranges are collected up front so a Value is
// checked against every sibling Range regardless of declaration order.
func checkTopLevelTags(bag *diag.Bag, tags []*ast.Tag, lo, hi uint64, byID map[string]*ast.Tag, hasDefault **ast.Tag) []enumRange {
	byValue := make(map[uint64]*ast.Tag)

	var ranges []enumRange
	for _, t := range tags {
		if desc, ok := t.Desc.(*ast.TagRange); ok {
			ranges = append(ranges, enumRange{tag: t, start: desc.Start, end: desc.End})
		}
	}

	for _, t := range tags {
		checkTagIdentifier(bag, t, byID)

		switch desc := t.Desc.(type) {
		case *ast.TagValue:
			checkTagValue(bag, t, desc, lo, hi, byValue)
			for _, r := range ranges {
				if desc.Value >= r.start && desc.Value <= r.end {
					bag.Addf(diag.E43, t.Loc, "tag value %d falls within declared range %q", desc.Value, ast.TagID(r.tag.Desc))
				}
			}

		case *ast.TagRange:
			checkTagRangeBounds(bag, t, desc, lo, hi)
			checkNestedTags(bag, desc.Tags, desc.Start, desc.End, byID, hasDefault)

		case *ast.TagOther:
			checkDefaultTag(bag, t, hasDefault)
		}
	}

	return ranges
}

// checkNestedTags validates a Range tag's sub-tags within its own window.
// Sub-tags share the enclosing enum's id namespace and default slot but
// get a fresh duplicate-value map, since their values are meaningful only
// relative to their own range.
func checkNestedTags(bag *diag.Bag, tags []*ast.Tag, lo, hi uint64, byID map[string]*ast.Tag, hasDefault **ast.Tag) {
	byValue := make(map[uint64]*ast.Tag)
	for _, t := range tags {
		checkTagIdentifier(bag, t, byID)

		switch desc := t.Desc.(type) {
		case *ast.TagValue:
			checkTagValue(bag, t, desc, lo, hi, byValue)
		case *ast.TagRange:
			checkTagRangeBounds(bag, t, desc, lo, hi)
			checkNestedTags(bag, desc.Tags, desc.Start, desc.End, byID, hasDefault)
		case *ast.TagOther:
			checkDefaultTag(bag, t, hasDefault)
		}
	}
}

func checkTagIdentifier(bag *diag.Bag, t *ast.Tag, byID map[string]*ast.Tag) {
	id := ast.TagID(t.Desc)
	if existing, dup := byID[id]; dup {
		bag.Add(diag.Diagnostic{
			Code:    diag.E12,
			Message: "duplicate tag identifier " + id,
			Labels: []diag.Label{
				{Range: t.Loc, Role: diag.Primary},
				{Range: existing.Loc, Role: diag.Secondary, Message: "first declared here"},
			},
		})
		return
	}
	byID[id] = t
}

func checkTagValue(bag *diag.Bag, t *ast.Tag, desc *ast.TagValue, lo, hi uint64, byValue map[uint64]*ast.Tag) {
	if existing, dup := byValue[desc.Value]; dup {
		bag.Add(diag.Diagnostic{
			Code:    diag.E13,
			Message: "duplicate tag value",
			Labels: []diag.Label{
				{Range: t.Loc, Role: diag.Primary},
				{Range: existing.Loc, Role: diag.Secondary, Message: "first used here"},
			},
		})
	} else {
		byValue[desc.Value] = t
	}
	if desc.Value < lo || desc.Value > hi {
		bag.Addf(diag.E14, t.Loc, "tag value %d is outside the valid range", desc.Value)
	}
}

func checkTagRangeBounds(bag *diag.Bag, t *ast.Tag, desc *ast.TagRange, lo, hi uint64) {
	if desc.Start >= desc.End || desc.Start < lo || desc.End > hi {
		bag.Addf(diag.E40, t.Loc, "invalid tag range %d..=%d", desc.Start, desc.End)
	}
}

func checkDefaultTag(bag *diag.Bag, t *ast.Tag, hasDefault **ast.Tag) {
	if *hasDefault != nil {
		bag.Add(diag.Diagnostic{
			Code:    diag.E44,
			Message: "duplicate default tag",
			Labels: []diag.Label{
				{Range: t.Loc, Role: diag.Primary},
				{Range: (*hasDefault).Loc, Role: diag.Secondary, Message: "first default declared here"},
			},
		})
		return
	}
	*hasDefault = t
}

// enumMax returns 2^width-1, saturating at math.MaxUint64 for width>=64
// (no PDL enum is expected to need a full 64-bit tag space, but the
// computation must not overflow if one is written).
func enumMax(width int) uint64 {
	if width >= 64 {
		return ^uint64(0)
	}
	if width <= 0 {
		return 0
	}
	return (uint64(1) << uint(width)) - 1
}
