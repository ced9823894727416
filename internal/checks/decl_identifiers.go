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

type mark int

const (
	unvisited mark = iota
	inProgress
	done
)

// DeclIdentifiers walks Packet, Struct, and Group declarations with a
// tri-state DFS, flagging recursive inheritance/inclusion (E2) and
// unresolved or mis-kinded identifiers reachable from group references,
// typedefs, sized arrays, parents, and test subjects (E3-E10).
func DeclIdentifiers(file *ast.File, sc *scope.Scope) *diag.Bag {
	bag := diag.NewBag()
	state := make(map[ast.Key]mark, len(file.Declarations))

	var visit func(d *ast.Decl)
	visit = func(d *ast.Decl) {
		switch state[d.Key] {
		case done:
			return
		case inProgress:
			bag.Addf(diag.E2, d.Loc, "recursive declaration %q", declName(d.Desc))
			return
		}
		state[d.Key] = inProgress

		switch desc := d.Desc.(type) {
		case *ast.Packet:
			checkParent(bag, sc, visit, d, desc.ParentID, func(p *ast.Decl) bool {
				_, ok := p.Desc.(*ast.Packet)
				return ok
			})
			for _, f := range desc.Fields {
				visitFieldRef(bag, sc, visit, f)
			}
		case *ast.Struct:
			checkParent(bag, sc, visit, d, desc.ParentID, func(p *ast.Decl) bool {
				_, ok := p.Desc.(*ast.Struct)
				return ok
			})
			for _, f := range desc.Fields {
				visitFieldRef(bag, sc, visit, f)
			}
		case *ast.Group:
			for _, f := range desc.Fields {
				visitFieldRef(bag, sc, visit, f)
			}
		}

		state[d.Key] = done
	}

	for _, d := range file.Declarations {
		switch d.Desc.(type) {
		case *ast.Packet, *ast.Struct, *ast.Group:
			visit(d)
		}
	}

	for _, d := range file.Declarations {
		t, ok := d.Desc.(*ast.Test)
		if !ok {
			continue
		}
		target, ok := sc.Lookup(t.TypeID)
		if !ok {
			bag.Addf(diag.E9, d.Loc, "undeclared test subject %q", t.TypeID)
			continue
		}
		if _, isPacket := target.Desc.(*ast.Packet); !isPacket {
			bag.Addf(diag.E10, d.Loc, "test subject %q is not a packet", t.TypeID)
		}
	}

	return bag
}

// checkParent validates and recurses into a Packet/Struct's parent_id, if
// any. kindOK reports whether a resolved parent is of the expected kind.
func checkParent(bag *diag.Bag, sc *scope.Scope, visit func(*ast.Decl), d *ast.Decl, parentID string, kindOK func(*ast.Decl) bool) {
	if parentID == "" {
		return
	}
	p, ok := sc.Lookup(parentID)
	if !ok {
		bag.Addf(diag.E7, d.Loc, "undeclared parent %q", parentID)
		return
	}
	if !kindOK(p) {
		bag.Addf(diag.E8, d.Loc, "parent %q is not the expected declaration kind", parentID)
		return
	}
	visit(p)
}

// visitFieldRef resolves the identifier a field references, if any, and
// recurses into the target declaration when doing so is required for cycle
// detection: group references always recurse, typedefs always recurse, and
// arrays recurse only when statically sized (an unsized array may legally
// be self-referential, e.g. a TLV element list).
func visitFieldRef(bag *diag.Bag, sc *scope.Scope, visit func(*ast.Decl), f *ast.Field) {
	switch fd := f.Desc.(type) {
	case *ast.GroupRef:
		g, ok := sc.Lookup(fd.GroupID)
		if !ok {
			bag.Addf(diag.E3, f.Loc, "undeclared group %q", fd.GroupID)
			return
		}
		if _, isGroup := g.Desc.(*ast.Group); !isGroup {
			bag.Addf(diag.E4, f.Loc, "%q is not a group", fd.GroupID)
			return
		}
		visit(g)

	case *ast.Typedef:
		target, ok := sc.Lookup(fd.TypeID)
		if !ok {
			bag.Addf(diag.E5, f.Loc, "undeclared type %q", fd.TypeID)
			return
		}
		if _, isPacket := target.Desc.(*ast.Packet); isPacket {
			bag.Addf(diag.E6, f.Loc, "%q is a packet and cannot be used as a field type", fd.TypeID)
			return
		}
		visit(target)

	case *ast.Array:
		if !fd.TypeIDPresent {
			return
		}
		target, ok := sc.Lookup(fd.TypeID)
		if !ok {
			bag.Addf(diag.E5, f.Loc, "undeclared element type %q", fd.TypeID)
			return
		}
		if _, isPacket := target.Desc.(*ast.Packet); isPacket {
			bag.Addf(diag.E6, f.Loc, "%q is a packet and cannot be used as an array element type", fd.TypeID)
			return
		}
		if fd.SizePresent {
			visit(target)
		}
	}
}

// declName returns the identifier of a top-level declaration, for use in
// diagnostic messages; Test decls have none of their own.
func declName(desc ast.DeclDesc) string {
	switch d := desc.(type) {
	case *ast.Packet:
		return d.ID
	case *ast.Struct:
		return d.ID
	case *ast.Group:
		return d.ID
	case *ast.Enum:
		return d.ID
	case *ast.Checksum:
		return d.ID
	case *ast.CustomField:
		return d.ID
	default:
		return ""
	}
}
