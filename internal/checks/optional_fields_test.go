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
)

func TestOptionalFieldsForbiddenKind(t *testing.T) {
	p := &ast.Packet{ID: "P", Fields: []*ast.Field{
		fld(1, &ast.Scalar{ID: "flag", Width: 1}),
		condFld(2, &ast.Array{ID: "opt", Width: 8, WidthPresent: true},
			&ast.Constraint{ID: "flag", Value: 1, ValuePresent: true}),
	}}
	file := &ast.File{Declarations: []*ast.Decl{dcl(1, p)}}

	bag := checks.OptionalFields(file)
	requireHasCode(t, bag, diag.E45)
}

func TestOptionalFieldsUndeclaredCondition(t *testing.T) {
	p := &ast.Packet{ID: "P", Fields: []*ast.Field{
		condFld(1, &ast.Scalar{ID: "opt", Width: 8},
			&ast.Constraint{ID: "missing", Value: 1, ValuePresent: true}),
	}}
	file := &ast.File{Declarations: []*ast.Decl{dcl(1, p)}}

	bag := checks.OptionalFields(file)
	requireHasCode(t, bag, diag.E46)
}

func TestOptionalFieldsConditionNotOneBit(t *testing.T) {
	p := &ast.Packet{ID: "P", Fields: []*ast.Field{
		fld(1, &ast.Scalar{ID: "flag", Width: 8}),
		condFld(2, &ast.Scalar{ID: "opt", Width: 8},
			&ast.Constraint{ID: "flag", Value: 1, ValuePresent: true}),
	}}
	file := &ast.File{Declarations: []*ast.Decl{dcl(1, p)}}

	bag := checks.OptionalFields(file)
	requireHasCode(t, bag, diag.E47)
}

func TestOptionalFieldsConditionItselfOptional(t *testing.T) {
	p := &ast.Packet{ID: "P", Fields: []*ast.Field{
		fld(1, &ast.Scalar{ID: "root", Width: 1}),
		condFld(2, &ast.Scalar{ID: "flag", Width: 1},
			&ast.Constraint{ID: "root", Value: 1, ValuePresent: true}),
		condFld(3, &ast.Scalar{ID: "opt", Width: 8},
			&ast.Constraint{ID: "flag", Value: 1, ValuePresent: true}),
	}}
	file := &ast.File{Declarations: []*ast.Decl{dcl(1, p)}}

	bag := checks.OptionalFields(file)
	requireHasCode(t, bag, diag.E49)
}

func TestOptionalFieldsConditionValueMustBeZeroOrOne(t *testing.T) {
	p := &ast.Packet{ID: "P", Fields: []*ast.Field{
		fld(1, &ast.Scalar{ID: "flag", Width: 1}),
		condFld(2, &ast.Scalar{ID: "opt", Width: 8},
			&ast.Constraint{ID: "flag", TagID: "Some", TagIDPresent: true}),
	}}
	file := &ast.File{Declarations: []*ast.Decl{dcl(1, p)}}

	bag := checks.OptionalFields(file)
	requireHasCode(t, bag, diag.E48)
}

func TestOptionalFieldsValidConditionProducesNoDiagnostics(t *testing.T) {
	p := &ast.Packet{ID: "P", Fields: []*ast.Field{
		fld(1, &ast.Scalar{ID: "flag", Width: 1}),
		condFld(2, &ast.Scalar{ID: "opt", Width: 8},
			&ast.Constraint{ID: "flag", Value: 1, ValuePresent: true}),
	}}
	file := &ast.File{Declarations: []*ast.Decl{dcl(1, p)}}

	bag := checks.OptionalFields(file)
	requireEmpty(t, bag)
}
