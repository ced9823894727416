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

package desugar_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pdllang/pdlc/internal/ast"
	"github.com/pdllang/pdlc/internal/desugar"
)

func TestInlineGroupsDropsGroupDeclsAndInlinesFields(t *testing.T) {
	g := &ast.Group{ID: "G", Fields: []*ast.Field{
		{Key: 1, Desc: &ast.Scalar{ID: "a", Width: 8}},
	}}
	p := &ast.Packet{ID: "P", Fields: []*ast.Field{
		{Key: 2, Desc: &ast.GroupRef{GroupID: "G"}},
	}}
	file := &ast.File{Declarations: []*ast.Decl{
		{Key: 10, Desc: g},
		{Key: 11, Desc: p},
	}}

	out := desugar.InlineGroups(file)

	require.Len(t, out.Declarations, 1)
	pkt, ok := out.Declarations[0].Desc.(*ast.Packet)
	require.True(t, ok)
	require.Len(t, pkt.Fields, 1)

	scalar, ok := pkt.Fields[0].Desc.(*ast.Scalar)
	require.True(t, ok)
	require.Equal(t, "a", scalar.ID)
	require.EqualValues(t, 1, pkt.Fields[0].Key, "inlined field key must be preserved from the group")
}

func TestInlineGroupsSpecializesConstrainedScalar(t *testing.T) {
	g := &ast.Group{ID: "G", Fields: []*ast.Field{
		{Key: 1, Desc: &ast.Scalar{ID: "a", Width: 8}},
	}}
	p := &ast.Packet{ID: "P", Fields: []*ast.Field{
		{Key: 2, Desc: &ast.GroupRef{GroupID: "G", Constraints: []*ast.Constraint{
			{ID: "a", Value: 7, ValuePresent: true},
		}}},
	}}
	file := &ast.File{Declarations: []*ast.Decl{
		{Key: 10, Desc: g},
		{Key: 11, Desc: p},
	}}

	out := desugar.InlineGroups(file)
	pkt := out.Declarations[0].Desc.(*ast.Packet)

	fixed, ok := pkt.Fields[0].Desc.(*ast.FixedScalar)
	require.True(t, ok, "constrained scalar should become a FixedScalar")
	require.EqualValues(t, 8, fixed.Width)
	require.EqualValues(t, 7, fixed.Value)
}

func TestInlineGroupsSpecializesConstrainedTypedef(t *testing.T) {
	g := &ast.Group{ID: "G", Fields: []*ast.Field{
		{Key: 1, Desc: &ast.Typedef{ID: "t", TypeID: "E"}},
	}}
	p := &ast.Packet{ID: "P", Fields: []*ast.Field{
		{Key: 2, Desc: &ast.GroupRef{GroupID: "G", Constraints: []*ast.Constraint{
			{ID: "t", TagID: "Tag1", TagIDPresent: true},
		}}},
	}}
	file := &ast.File{Declarations: []*ast.Decl{
		{Key: 10, Desc: g},
		{Key: 11, Desc: p},
	}}

	out := desugar.InlineGroups(file)
	pkt := out.Declarations[0].Desc.(*ast.Packet)

	fixed, ok := pkt.Fields[0].Desc.(*ast.FixedEnum)
	require.True(t, ok, "constrained typedef should become a FixedEnum")
	require.Equal(t, "E", fixed.EnumID)
	require.Equal(t, "Tag1", fixed.TagID)
}

func TestInlineGroupsComposesNestedGroupConstraints(t *testing.T) {
	inner := &ast.Group{ID: "Inner", Fields: []*ast.Field{
		{Key: 1, Desc: &ast.Scalar{ID: "a", Width: 8}},
	}}
	outer := &ast.Group{ID: "Outer", Fields: []*ast.Field{
		{Key: 2, Desc: &ast.GroupRef{GroupID: "Inner", Constraints: []*ast.Constraint{
			{ID: "a", Value: 3, ValuePresent: true},
		}}},
	}}
	p := &ast.Packet{ID: "P", Fields: []*ast.Field{
		{Key: 3, Desc: &ast.GroupRef{GroupID: "Outer"}},
	}}
	file := &ast.File{Declarations: []*ast.Decl{
		{Key: 10, Desc: inner},
		{Key: 11, Desc: outer},
		{Key: 12, Desc: p},
	}}

	out := desugar.InlineGroups(file)
	pkt := out.Declarations[0].Desc.(*ast.Packet)

	fixed, ok := pkt.Fields[0].Desc.(*ast.FixedScalar)
	require.True(t, ok)
	require.EqualValues(t, 3, fixed.Value)
}

func TestInlineGroupsPreservesNonGroupDecls(t *testing.T) {
	e := &ast.Enum{ID: "E", Width: 8}
	file := &ast.File{Declarations: []*ast.Decl{{Key: 1, Desc: e}}}

	out := desugar.InlineGroups(file)
	require.Len(t, out.Declarations, 1)
	_, ok := out.Declarations[0].Desc.(*ast.Enum)
	require.True(t, ok)
}

func TestDesugarFlagsRewritesConditionTarget(t *testing.T) {
	p := &ast.Packet{ID: "P", Fields: []*ast.Field{
		{Key: 1, Desc: &ast.Scalar{ID: "flag", Width: 1}},
		{Key: 2, Desc: &ast.Scalar{ID: "opt", Width: 8}, Cond: &ast.Constraint{ID: "flag", Value: 1, ValuePresent: true}},
	}}
	file := &ast.File{Declarations: []*ast.Decl{{Key: 10, Desc: p}}}

	desugar.DesugarFlags(file)

	flagField := file.Declarations[0].Desc.(*ast.Packet).Fields[0]
	flag, ok := flagField.Desc.(*ast.Flag)
	require.True(t, ok)
	require.Equal(t, "flag", flag.ID)
	require.Len(t, flag.OptionalFieldIDs, 1)
	require.Equal(t, "opt", flag.OptionalFieldIDs[0].FieldID)
	require.EqualValues(t, 1, flag.OptionalFieldIDs[0].CondValue)
}

func TestDesugarFlagsLeavesNonGatingScalarsAlone(t *testing.T) {
	p := &ast.Packet{ID: "P", Fields: []*ast.Field{
		{Key: 1, Desc: &ast.Scalar{ID: "a", Width: 8}},
	}}
	file := &ast.File{Declarations: []*ast.Decl{{Key: 10, Desc: p}}}

	desugar.DesugarFlags(file)

	_, stillScalar := file.Declarations[0].Desc.(*ast.Packet).Fields[0].Desc.(*ast.Scalar)
	require.True(t, stillScalar)
}

func TestDesugarFlagsGatingMultipleFields(t *testing.T) {
	p := &ast.Packet{ID: "P", Fields: []*ast.Field{
		{Key: 1, Desc: &ast.Scalar{ID: "mode", Width: 2}},
		{Key: 2, Desc: &ast.Scalar{ID: "a", Width: 8}, Cond: &ast.Constraint{ID: "mode", Value: 0, ValuePresent: true}},
		{Key: 3, Desc: &ast.Scalar{ID: "b", Width: 8}, Cond: &ast.Constraint{ID: "mode", Value: 1, ValuePresent: true}},
	}}
	file := &ast.File{Declarations: []*ast.Decl{{Key: 10, Desc: p}}}

	desugar.DesugarFlags(file)

	flag := file.Declarations[0].Desc.(*ast.Packet).Fields[0].Desc.(*ast.Flag)
	require.Len(t, flag.OptionalFieldIDs, 2)
}
