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

package checks_test

import (
	"testing"

	"github.com/pdllang/pdlc/internal/ast"
	"github.com/pdllang/pdlc/internal/checks"
	"github.com/pdllang/pdlc/internal/diag"
	"github.com/pdllang/pdlc/internal/schema"
)

func TestDeclSizesNonOctetPacketSize(t *testing.T) {
	p := &ast.Packet{ID: "P", Fields: []*ast.Field{
		fld(1, &ast.Scalar{ID: "a", Width: 3}),
	}}
	file := &ast.File{Declarations: []*ast.Decl{dcl(1, p)}}
	sc := mustScope(t, file)
	sch := schema.Compute(file, sc)

	bag := checks.DeclSizes(file, sch)
	requireHasCode(t, bag, diag.E52)
}

func TestDeclSizesOctetAlignedPacketIsFine(t *testing.T) {
	p := &ast.Packet{ID: "P", Fields: []*ast.Field{
		fld(1, &ast.Scalar{ID: "a", Width: 8}),
	}}
	file := &ast.File{Declarations: []*ast.Decl{dcl(1, p)}}
	sc := mustScope(t, file)
	sch := schema.Compute(file, sc)

	bag := checks.DeclSizes(file, sch)
	requireEmpty(t, bag)
}

func TestDeclSizesNonOctetArrayElementWidth(t *testing.T) {
	p := &ast.Packet{ID: "P", Fields: []*ast.Field{
		fld(1, &ast.Array{ID: "items", Width: 3, WidthPresent: true, Size: 2, SizePresent: true}),
	}}
	file := &ast.File{Declarations: []*ast.Decl{dcl(1, p)}}
	sc := mustScope(t, file)
	sch := schema.Compute(file, sc)

	bag := checks.DeclSizes(file, sch)
	requireHasCode(t, bag, diag.E53)
}

func TestDeclSizesDynamicDeclIsNotFlagged(t *testing.T) {
	p := &ast.Packet{ID: "P", Fields: []*ast.Field{
		fld(1, &ast.Count{FieldID: "items", Width: 8}),
		fld(2, &ast.Array{ID: "items", Width: 8, WidthPresent: true}),
	}}
	file := &ast.File{Declarations: []*ast.Decl{dcl(1, p)}}
	sc := mustScope(t, file)
	sch := schema.Compute(file, sc)

	bag := checks.DeclSizes(file, sch)
	requireEmpty(t, bag)
}

func TestDeclSizesStaticRemainderNextToDynamicField(t *testing.T) {
	// The count field's 8 bits plus the 1-bit scalar leave a static
	// remainder of 9 bits; the dynamic array contributes nothing and must
	// not mask it.
	p := &ast.Packet{ID: "P", Fields: []*ast.Field{
		fld(1, &ast.Scalar{ID: "a", Width: 1}),
		fld(2, &ast.Count{FieldID: "items", Width: 8}),
		fld(3, &ast.Array{ID: "items", Width: 8, WidthPresent: true}),
	}}
	file := &ast.File{Declarations: []*ast.Decl{dcl(1, p)}}
	sc := mustScope(t, file)
	sch := schema.Compute(file, sc)

	bag := checks.DeclSizes(file, sch)
	requireHasCode(t, bag, diag.E52)
}

func TestDeclSizesUsesPaddedSizeForPaddedFields(t *testing.T) {
	p := &ast.Packet{ID: "P", Fields: []*ast.Field{
		fld(1, &ast.Array{ID: "items", Width: 8, WidthPresent: true, Size: 3, SizePresent: true}),
		fld(2, &ast.Padding{Size: 4}),
	}}
	file := &ast.File{Declarations: []*ast.Decl{dcl(1, p)}}
	sc := mustScope(t, file)
	sch := schema.Compute(file, sc)

	bag := checks.DeclSizes(file, sch)
	requireEmpty(t, bag)
}
