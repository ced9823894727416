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

// Package scope builds the top-level name table for a File and exposes the
// small set of pure, non-failing iteration helpers every check pass walks:
// parent chains, field chains (self-first, then inherited), and constraint
// chains.
//
// The helpers are iter.Seq sequences: a caller ranges directly over a
// lazily-computed chain instead of building an intermediate slice.
package scope

import (
	"iter"

	"github.com/pdllang/pdlc/internal/ast"
	"github.com/pdllang/pdlc/internal/diag"
)

// Scope is the name→Decl table for one File.
type Scope struct {
	file   *ast.File
	byName map[string]*ast.Decl
}

// New builds a Scope from file's top-level declarations. A duplicate
// identifier fails construction and returns a bag containing one E1
// diagnostic per repeated occurrence, with the primary label on that
// occurrence and a secondary label on the first.
func New(file *ast.File) (*Scope, *diag.Bag) {
	s := &Scope{file: file, byName: make(map[string]*ast.Decl, len(file.Declarations))}
	bag := diag.NewBag()

	for _, d := range file.Declarations {
		id, ok := declID(d.Desc)
		if !ok {
			continue
		}
		if existing, dup := s.byName[id]; dup {
			bag.Add(diag.Diagnostic{
				Code:    diag.E1,
				Message: "duplicate top-level identifier " + id,
				Labels: []diag.Label{
					{Range: d.Loc, Role: diag.Primary},
					{Range: existing.Loc, Role: diag.Secondary, Message: "first declared here"},
				},
			})
			continue
		}
		s.byName[id] = d
	}

	if !bag.Empty() {
		return nil, bag
	}
	return s, nil
}

// declID returns the identifier a top-level Decl introduces into the name
// table. Test decls introduce no identifier of their own.
func declID(desc ast.DeclDesc) (string, bool) {
	switch d := desc.(type) {
	case *ast.Packet:
		return d.ID, true
	case *ast.Struct:
		return d.ID, true
	case *ast.Group:
		return d.ID, true
	case *ast.Enum:
		return d.ID, true
	case *ast.Checksum:
		return d.ID, true
	case *ast.CustomField:
		return d.ID, true
	case *ast.Test:
		return "", false
	default:
		return "", false
	}
}

// Lookup resolves a top-level identifier to its Decl.
func (s *Scope) Lookup(id string) (*ast.Decl, bool) {
	d, ok := s.byName[id]
	return d, ok
}

// parentID returns the parent_id of a Packet or Struct decl, if any.
func parentID(desc ast.DeclDesc) (string, bool) {
	switch d := desc.(type) {
	case *ast.Packet:
		return d.ParentID, d.ParentID != ""
	case *ast.Struct:
		return d.ParentID, d.ParentID != ""
	default:
		return "", false
	}
}

// Parent resolves decl's parent_id, if present, through the name table.
func (s *Scope) Parent(decl *ast.Decl) (*ast.Decl, bool) {
	id, ok := parentID(decl.Desc)
	if !ok {
		return nil, false
	}
	return s.Lookup(id)
}

// Parents yields decl's ancestor chain, nearest first.
func (s *Scope) Parents(decl *ast.Decl) iter.Seq[*ast.Decl] {
	return func(yield func(*ast.Decl) bool) {
		cur := decl
		for {
			p, ok := s.Parent(cur)
			if !ok {
				return
			}
			if !yield(p) {
				return
			}
			cur = p
		}
	}
}

// ParentsAndSelf yields decl, then its ancestor chain, nearest first.
func (s *Scope) ParentsAndSelf(decl *ast.Decl) iter.Seq[*ast.Decl] {
	return func(yield func(*ast.Decl) bool) {
		if !yield(decl) {
			return
		}
		for p := range s.Parents(decl) {
			if !yield(p) {
				return
			}
		}
	}
}

// ownFields returns the Fields slice of a Packet, Struct, or Group decl.
func ownFields(desc ast.DeclDesc) []*ast.Field {
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

// Fields yields decl's own fields, then its parents' fields, nearest
// ancestor first — self-first inheritance order.
func (s *Scope) Fields(decl *ast.Decl) iter.Seq[*ast.Field] {
	return func(yield func(*ast.Field) bool) {
		for d := range s.ParentsAndSelf(decl) {
			for _, f := range ownFields(d.Desc) {
				if !yield(f) {
					return
				}
			}
		}
	}
}

// ownConstraints returns the Constraints slice of a Packet or Struct decl.
// Group decls carry no constraints of their own (constraints live on the
// field-level GroupRef that references a group, not on the Group decl).
func ownConstraints(desc ast.DeclDesc) []*ast.Constraint {
	switch d := desc.(type) {
	case *ast.Packet:
		return d.Constraints
	case *ast.Struct:
		return d.Constraints
	default:
		return nil
	}
}

// Constraints yields decl's own constraints, then its parents', nearest
// ancestor first, mirroring Fields' self-first order.
func (s *Scope) Constraints(decl *ast.Decl) iter.Seq[*ast.Constraint] {
	return func(yield func(*ast.Constraint) bool) {
		for d := range s.ParentsAndSelf(decl) {
			for _, c := range ownConstraints(d.Desc) {
				if !yield(c) {
					return
				}
			}
		}
	}
}

// TypeOf resolves a field's referenced type declaration: Typedef.TypeID,
// Array.TypeID (when present), and FixedEnum.EnumID.
func (s *Scope) TypeOf(field *ast.Field) (*ast.Decl, bool) {
	switch d := field.Desc.(type) {
	case *ast.Typedef:
		return s.Lookup(d.TypeID)
	case *ast.Array:
		if !d.TypeIDPresent {
			return nil, false
		}
		return s.Lookup(d.TypeID)
	case *ast.FixedEnum:
		return s.Lookup(d.EnumID)
	default:
		return nil, false
	}
}

// IsBitField reports whether field packs into a cumulative bit offset
// rather than requiring byte alignment: Scalar, Reserved, FixedScalar,
// Size/Count/ElementSize, Flag, FixedEnum, and Typedef referencing an Enum.
func (s *Scope) IsBitField(field *ast.Field) bool {
	switch d := field.Desc.(type) {
	case *ast.Scalar, *ast.Reserved, *ast.FixedScalar, *ast.Size, *ast.Count,
		*ast.ElementSize, *ast.Flag, *ast.FixedEnum:
		return true
	case *ast.Typedef:
		target, ok := s.Lookup(d.TypeID)
		if !ok {
			return false
		}
		_, isEnum := target.Desc.(*ast.Enum)
		return isEnum
	default:
		return false
	}
}
