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

package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdllang/pdlc/internal/ast"
	"github.com/pdllang/pdlc/internal/source"
)

func TestDeclDescDispatchIsExhaustive(t *testing.T) {
	t.Parallel()

	descs := []ast.DeclDesc{
		&ast.Packet{ID: "P"},
		&ast.Struct{ID: "S"},
		&ast.Group{ID: "G"},
		&ast.Enum{ID: "E", Width: 8},
		&ast.Checksum{ID: "C", Width: 32},
		&ast.CustomField{ID: "CF"},
		&ast.Test{TypeID: "P"},
	}

	var kinds []string
	for _, d := range descs {
		switch x := d.(type) {
		case *ast.Packet:
			kinds = append(kinds, "packet:"+x.ID)
		case *ast.Struct:
			kinds = append(kinds, "struct:"+x.ID)
		case *ast.Group:
			kinds = append(kinds, "group:"+x.ID)
		case *ast.Enum:
			kinds = append(kinds, "enum:"+x.ID)
		case *ast.Checksum:
			kinds = append(kinds, "checksum:"+x.ID)
		case *ast.CustomField:
			kinds = append(kinds, "customfield:"+x.ID)
		case *ast.Test:
			kinds = append(kinds, "test:"+x.TypeID)
		default:
			t.Fatalf("unhandled DeclDesc %T", x)
		}
	}

	assert.Equal(t, []string{
		"packet:P", "struct:S", "group:G", "enum:E", "checksum:C",
		"customfield:CF", "test:P",
	}, kinds)
}

func TestFieldDescDispatchIsExhaustive(t *testing.T) {
	t.Parallel()

	descs := []ast.FieldDesc{
		&ast.Scalar{ID: "a", Width: 8},
		&ast.Typedef{ID: "b", TypeID: "Enum1"},
		&ast.Array{ID: "c", WidthPresent: true, Width: 8},
		&ast.Size{FieldID: "c", Width: 8},
		&ast.Count{FieldID: "c", Width: 8},
		&ast.ElementSize{FieldID: "c", Width: 8},
		&ast.Body{},
		&ast.Payload{},
		&ast.FixedScalar{Width: 8, Value: 1},
		&ast.FixedEnum{EnumID: "Enum1", TagID: "X"},
		&ast.Reserved{Width: 4},
		&ast.Padding{Size: 2},
		&ast.GroupRef{GroupID: "G"},
		&ast.Flag{ID: "flags"},
	}

	count := 0
	for _, d := range descs {
		switch d.(type) {
		case *ast.Scalar, *ast.Typedef, *ast.Array, *ast.Size, *ast.Count,
			*ast.ElementSize, *ast.Body, *ast.Payload, *ast.FixedScalar,
			*ast.FixedEnum, *ast.Reserved, *ast.Padding, *ast.GroupRef, *ast.Flag:
			count++
		default:
			t.Fatalf("unhandled FieldDesc %T", d)
		}
	}
	assert.Equal(t, len(descs), count)
}

func TestTagDescDispatchAndID(t *testing.T) {
	t.Parallel()

	tags := []ast.TagDesc{
		&ast.TagValue{ID: "A", Value: 0},
		&ast.TagRange{ID: "B", Start: 1, End: 4},
		&ast.TagOther{ID: "C"},
	}

	var ids []string
	for _, tg := range tags {
		ids = append(ids, ast.TagID(tg))
	}
	assert.Equal(t, []string{"A", "B", "C"}, ids)
}

func TestFieldCarriesLocAndKey(t *testing.T) {
	t.Parallel()

	db := source.NewDatabase()
	fid := db.AddFile("a.pdl", "x: u8")

	f := &ast.Field{
		Loc:  db.Range(fid, 0, 5),
		Key:  ast.Key(1),
		Desc: &ast.Scalar{ID: "x", Width: 8},
	}

	assert.Equal(t, ast.Key(1), f.Key)
	assert.Equal(t, 0, f.Loc.Start.Offset)
	assert.Equal(t, 5, f.Loc.End.Offset)
}
