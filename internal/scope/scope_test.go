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

package scope_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdllang/pdlc/internal/ast"
	"github.com/pdllang/pdlc/internal/scope"
	"github.com/pdllang/pdlc/internal/source"
)

func loc(db *source.Database, fid source.FileID) source.SourceRange {
	return db.Range(fid, 0, 1)
}

func TestNewDetectsDuplicateTopLevelIdentifier(t *testing.T) {
	t.Parallel()

	db := source.NewDatabase()
	fid := db.AddFile("a.pdl", "packet A {} packet A {}")

	file := &ast.File{
		Declarations: []*ast.Decl{
			{Key: 0, Loc: loc(db, fid), Desc: &ast.Packet{ID: "A"}},
			{Key: 1, Loc: loc(db, fid), Desc: &ast.Packet{ID: "A"}},
		},
	}

	sc, bag := scope.New(file)
	assert.Nil(t, sc)
	require.NotNil(t, bag)
	require.Len(t, bag.Diagnostics(), 1)
	assert.Equal(t, 2, len(bag.Diagnostics()[0].Labels))
}

func TestParentsAndFieldsSelfFirst(t *testing.T) {
	t.Parallel()

	db := source.NewDatabase()
	fid := db.AddFile("a.pdl", "struct Base { a: u8 } struct Child : Base { b: u8 }")

	baseField := &ast.Field{Key: 0, Loc: loc(db, fid), Desc: &ast.Scalar{ID: "a", Width: 8}}
	childField := &ast.Field{Key: 1, Loc: loc(db, fid), Desc: &ast.Scalar{ID: "b", Width: 8}}

	base := &ast.Decl{Key: 0, Loc: loc(db, fid), Desc: &ast.Struct{ID: "Base", Fields: []*ast.Field{baseField}}}
	child := &ast.Decl{Key: 1, Loc: loc(db, fid), Desc: &ast.Struct{ID: "Child", ParentID: "Base", Fields: []*ast.Field{childField}}}

	file := &ast.File{Declarations: []*ast.Decl{base, child}}

	sc, bag := scope.New(file)
	require.Nil(t, bag)
	require.NotNil(t, sc)

	parent, ok := sc.Parent(child)
	require.True(t, ok)
	assert.Same(t, base, parent)

	var ids []string
	for f := range sc.Fields(child) {
		switch d := f.Desc.(type) {
		case *ast.Scalar:
			ids = append(ids, d.ID)
		}
	}
	assert.Equal(t, []string{"b", "a"}, ids)
}

func TestIsBitFieldTypedefToEnum(t *testing.T) {
	t.Parallel()

	db := source.NewDatabase()
	fid := db.AddFile("a.pdl", "enum Color : 8 { RED = 0 } struct S { c: Color }")

	enumDecl := &ast.Decl{Key: 0, Loc: loc(db, fid), Desc: &ast.Enum{ID: "Color", Width: 8}}
	structDecl := &ast.Decl{Key: 1, Loc: loc(db, fid), Desc: &ast.Struct{ID: "S"}}

	file := &ast.File{Declarations: []*ast.Decl{enumDecl, structDecl}}
	sc, bag := scope.New(file)
	require.Nil(t, bag)

	typedefField := &ast.Field{Desc: &ast.Typedef{ID: "c", TypeID: "Color"}}
	assert.True(t, sc.IsBitField(typedefField))

	target, ok := sc.TypeOf(typedefField)
	require.True(t, ok)
	assert.Same(t, enumDecl, target)

	bodyField := &ast.Field{Desc: &ast.Body{}}
	assert.False(t, sc.IsBitField(bodyField))
}
