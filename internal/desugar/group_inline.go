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

// Package desugar rewrites a checked AST into the form the schema and
// later stages consume: group references inlined into their host's field
// list, with any constrained field re-expressed as a fixed literal, and
// condition-target scalars re-expressed as Flag fields.
package desugar

import "github.com/pdllang/pdlc/internal/ast"

// archetype classifies how a field within an inlined group must be
// rewritten: a field is either emitted unchanged (plain) or replaced by
// the literal its enclosing reference constrains it to
// (fixedByConstraint).
type archetype int

const (
	archetypePlain archetype = iota
	archetypeFixedByConstraint
)

// InlineGroups returns a new File with every GroupRef field replaced by a
// clone of the referenced Group's own fields, recursively (a group may
// itself reference other groups), and drops every Group decl from the
// output. Field keys are carried over unchanged from the Group's
// declaration. Constraints accumulated along a chain of nested group
// references specialize any Scalar/Typedef field in the inlined fields
// whose id they name, turning it into a FixedScalar/FixedEnum.
func InlineGroups(file *ast.File) *ast.File {
	groups := make(map[string]*ast.Group)
	for _, d := range file.Declarations {
		if g, ok := d.Desc.(*ast.Group); ok {
			groups[g.ID] = g
		}
	}

	out := &ast.File{
		Version:    file.Version,
		FileID:     file.FileID,
		Endianness: file.Endianness,
		Comments:   file.Comments,
		MaxKey:     file.MaxKey,
	}

	for _, d := range file.Declarations {
		switch desc := d.Desc.(type) {
		case *ast.Group:
			continue // dropped from the output file

		case *ast.Packet:
			rewritten := &ast.Packet{
				ID:          desc.ID,
				ParentID:    desc.ParentID,
				Constraints: desc.Constraints,
				Fields:      inlineFields(desc.Fields, groups, nil),
			}
			out.Declarations = append(out.Declarations, &ast.Decl{Loc: d.Loc, Key: d.Key, Desc: rewritten})

		case *ast.Struct:
			rewritten := &ast.Struct{
				ID:          desc.ID,
				ParentID:    desc.ParentID,
				Constraints: desc.Constraints,
				Fields:      inlineFields(desc.Fields, groups, nil),
			}
			out.Declarations = append(out.Declarations, &ast.Decl{Loc: d.Loc, Key: d.Key, Desc: rewritten})

		default:
			out.Declarations = append(out.Declarations, d)
		}
	}

	return out
}

// inlineFields rewrites fields, replacing any GroupRef with a recursive
// inlining of its target's fields under the accumulated constraint set,
// and specializing any remaining field whose id the accumulated
// constraints name.
func inlineFields(fields []*ast.Field, groups map[string]*ast.Group, constraints map[string]*ast.Constraint) []*ast.Field {
	var out []*ast.Field

	for _, f := range fields {
		if ref, ok := f.Desc.(*ast.GroupRef); ok {
			g, ok := groups[ref.GroupID]
			if !ok {
				// Unresolvable group references are reported by
				// DeclIdentifiers before desugaring ever runs; leave the
				// field as-is rather than panic on a File the driver
				// should never hand us.
				out = append(out, f)
				continue
			}
			merged := mergeConstraints(constraints, ref.Constraints)
			out = append(out, inlineFields(g.Fields, groups, merged)...)
			continue
		}

		out = append(out, specialize(f, constraints))
	}

	return out
}

func mergeConstraints(parent map[string]*ast.Constraint, additional []*ast.Constraint) map[string]*ast.Constraint {
	merged := make(map[string]*ast.Constraint, len(parent)+len(additional))
	for k, v := range parent {
		merged[k] = v
	}
	for _, c := range additional {
		merged[c.ID] = c
	}
	return merged
}

// specialize classifies f's archetype against the accumulated constraint
// set and, for archetypeFixedByConstraint, emits the literal field the
// constraint describes in place of the original Scalar/Typedef.
func specialize(f *ast.Field, constraints map[string]*ast.Constraint) *ast.Field {
	id, ok := fieldID(f.Desc)
	if !ok {
		return f
	}
	c, ok := constraints[id]
	at := classify(ok)
	if at != archetypeFixedByConstraint {
		return f
	}

	switch desc := f.Desc.(type) {
	case *ast.Scalar:
		return &ast.Field{Loc: f.Loc, Key: f.Key, Cond: f.Cond, Desc: &ast.FixedScalar{Width: desc.Width, Value: c.Value}}
	case *ast.Typedef:
		return &ast.Field{Loc: f.Loc, Key: f.Key, Cond: f.Cond, Desc: &ast.FixedEnum{EnumID: desc.TypeID, TagID: c.TagID}}
	default:
		return f
	}
}

// classify maps "a matching constraint was found for this field id" onto
// the small archetype set: GroupConstraints has already rejected any
// group constraint that couldn't specialize its target, so a
// match found here is always safe to render as a fixed literal.
func classify(constraintFound bool) archetype {
	if constraintFound {
		return archetypeFixedByConstraint
	}
	return archetypePlain
}

func fieldID(desc ast.FieldDesc) (string, bool) {
	switch d := desc.(type) {
	case *ast.Scalar:
		return d.ID, true
	case *ast.Typedef:
		return d.ID, true
	case *ast.Array:
		return d.ID, true
	case *ast.Flag:
		return d.ID, true
	default:
		return "", false
	}
}
