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

// Package conform runs end-to-end golden scenarios against
// internal/analyzer. Since the concrete PDL grammar is out of scope (the
// AST is produced by an external, unspecified parser), a scenario's
// input is a YAML fixture describing the AST directly rather than PDL
// source text; the fixture format below stands in for "parsed source",
// structurally mirroring internal/ast one field at a time.
package conform

import (
	"fmt"

	"github.com/pdllang/pdlc/internal/ast"
)

// FieldFixture describes one ast.Field.
type FieldFixture struct {
	Key  ast.Key `yaml:"key"`
	Kind string  `yaml:"kind"`

	ID      string `yaml:"id,omitempty"`
	TypeID  string `yaml:"type_id,omitempty"`
	Width   int    `yaml:"width,omitempty"`
	Value   int64  `yaml:"value,omitempty"`
	EnumID  string `yaml:"enum_id,omitempty"`
	TagID   string `yaml:"tag_id,omitempty"`
	FieldID string `yaml:"field_id,omitempty"`
	Size    int    `yaml:"size,omitempty"`
	GroupID string `yaml:"group_id,omitempty"`

	SizePresent   bool `yaml:"size_present,omitempty"`
	TypeIDPresent bool `yaml:"type_id_present,omitempty"`
	WidthPresent  bool `yaml:"width_present,omitempty"`

	Constraints []ConstraintFixture `yaml:"constraints,omitempty"`
	Cond        *ConstraintFixture  `yaml:"cond,omitempty"`
}

// ConstraintFixture describes one ast.Constraint.
type ConstraintFixture struct {
	ID           string `yaml:"id"`
	Value        int64  `yaml:"value,omitempty"`
	ValuePresent bool   `yaml:"value_present,omitempty"`
	TagID        string `yaml:"tag_id,omitempty"`
	TagIDPresent bool   `yaml:"tag_id_present,omitempty"`
}

func (c ConstraintFixture) build() *ast.Constraint {
	return &ast.Constraint{
		ID:           c.ID,
		Value:        c.Value,
		ValuePresent: c.ValuePresent,
		TagID:        c.TagID,
		TagIDPresent: c.TagIDPresent,
	}
}

func (f FieldFixture) build() (*ast.Field, error) {
	out := &ast.Field{Key: f.Key}
	if f.Cond != nil {
		out.Cond = f.Cond.build()
	}

	switch f.Kind {
	case "scalar":
		out.Desc = &ast.Scalar{ID: f.ID, Width: f.Width}
	case "typedef":
		out.Desc = &ast.Typedef{ID: f.ID, TypeID: f.TypeID}
	case "array":
		out.Desc = &ast.Array{
			ID: f.ID, TypeID: f.TypeID, TypeIDPresent: f.TypeIDPresent,
			Width: f.Width, WidthPresent: f.WidthPresent,
			Size: f.Size, SizePresent: f.SizePresent,
		}
	case "size":
		out.Desc = &ast.Size{FieldID: f.FieldID, Width: f.Width}
	case "count":
		out.Desc = &ast.Count{FieldID: f.FieldID, Width: f.Width}
	case "element_size":
		out.Desc = &ast.ElementSize{FieldID: f.FieldID, Width: f.Width}
	case "body":
		out.Desc = &ast.Body{}
	case "payload":
		out.Desc = &ast.Payload{}
	case "fixed_scalar":
		out.Desc = &ast.FixedScalar{Width: f.Width, Value: f.Value}
	case "fixed_enum":
		out.Desc = &ast.FixedEnum{EnumID: f.EnumID, TagID: f.TagID}
	case "reserved":
		out.Desc = &ast.Reserved{Width: f.Width}
	case "padding":
		out.Desc = &ast.Padding{Size: f.Size}
	case "group_ref":
		constraints := make([]*ast.Constraint, len(f.Constraints))
		for i, c := range f.Constraints {
			constraints[i] = c.build()
		}
		out.Desc = &ast.GroupRef{GroupID: f.GroupID, Constraints: constraints}
	default:
		return nil, fmt.Errorf("conform: unknown field kind %q", f.Kind)
	}
	return out, nil
}

// TagFixture describes one ast.Tag.
type TagFixture struct {
	ID    string       `yaml:"id"`
	Kind  string       `yaml:"kind"`
	Value uint64       `yaml:"value,omitempty"`
	Start uint64       `yaml:"start,omitempty"`
	End   uint64       `yaml:"end,omitempty"`
	Tags  []TagFixture `yaml:"tags,omitempty"`
}

func (t TagFixture) build() (*ast.Tag, error) {
	switch t.Kind {
	case "value":
		return &ast.Tag{Desc: &ast.TagValue{ID: t.ID, Value: t.Value}}, nil
	case "range":
		nested := make([]*ast.Tag, len(t.Tags))
		for i, child := range t.Tags {
			ct, err := child.build()
			if err != nil {
				return nil, err
			}
			nested[i] = ct
		}
		return &ast.Tag{Desc: &ast.TagRange{ID: t.ID, Start: t.Start, End: t.End, Tags: nested}}, nil
	case "other":
		return &ast.Tag{Desc: &ast.TagOther{ID: t.ID}}, nil
	default:
		return nil, fmt.Errorf("conform: unknown tag kind %q", t.Kind)
	}
}

// DeclFixture describes one ast.Decl.
type DeclFixture struct {
	Key  ast.Key `yaml:"key"`
	Kind string  `yaml:"kind"`

	ID           string              `yaml:"id,omitempty"`
	ParentID     string              `yaml:"parent_id,omitempty"`
	Width        int                 `yaml:"width,omitempty"`
	FunctionName string              `yaml:"function_name,omitempty"`
	WidthPresent bool                `yaml:"width_present,omitempty"`
	TypeID       string              `yaml:"type_id,omitempty"`
	Cases        []string            `yaml:"cases,omitempty"`
	Fields       []FieldFixture      `yaml:"fields,omitempty"`
	Tags         []TagFixture        `yaml:"tags,omitempty"`
	Constraints  []ConstraintFixture `yaml:"constraints,omitempty"`
}

func (d DeclFixture) build() (*ast.Decl, error) {
	fields, err := buildFields(d.Fields)
	if err != nil {
		return nil, err
	}
	constraints := make([]*ast.Constraint, len(d.Constraints))
	for i, c := range d.Constraints {
		constraints[i] = c.build()
	}

	out := &ast.Decl{Key: d.Key}
	switch d.Kind {
	case "packet":
		out.Desc = &ast.Packet{ID: d.ID, ParentID: d.ParentID, Constraints: constraints, Fields: fields}
	case "struct":
		out.Desc = &ast.Struct{ID: d.ID, ParentID: d.ParentID, Constraints: constraints, Fields: fields}
	case "group":
		out.Desc = &ast.Group{ID: d.ID, Fields: fields}
	case "enum":
		tags := make([]*ast.Tag, len(d.Tags))
		for i, t := range d.Tags {
			bt, err := t.build()
			if err != nil {
				return nil, err
			}
			tags[i] = bt
		}
		out.Desc = &ast.Enum{ID: d.ID, Width: d.Width, Tags: tags}
	case "checksum":
		out.Desc = &ast.Checksum{ID: d.ID, Width: d.Width, FunctionName: d.FunctionName}
	case "custom_field":
		out.Desc = &ast.CustomField{ID: d.ID, Width: d.Width, WidthPresent: d.WidthPresent, FunctionName: d.FunctionName}
	case "test":
		out.Desc = &ast.Test{TypeID: d.TypeID, Cases: d.Cases}
	default:
		return nil, fmt.Errorf("conform: unknown decl kind %q", d.Kind)
	}
	return out, nil
}

func buildFields(fixtures []FieldFixture) ([]*ast.Field, error) {
	fields := make([]*ast.Field, len(fixtures))
	for i, ff := range fixtures {
		f, err := ff.build()
		if err != nil {
			return nil, err
		}
		fields[i] = f
	}
	return fields, nil
}

// FileFixture describes an ast.File.
type FileFixture struct {
	EndiannessSeen int    `yaml:"endianness_seen"`
	Endianness     string `yaml:"endianness,omitempty"`

	Declarations []DeclFixture `yaml:"declarations"`
}

// Build constructs the ast.File the fixture describes.
func (ff FileFixture) Build() (*ast.File, error) {
	out := &ast.File{EndiannessSeen: ff.EndiannessSeen}
	switch ff.Endianness {
	case "little":
		out.Endianness = ast.LittleEndian
	case "big":
		out.Endianness = ast.BigEndian
	case "":
		out.Endianness = ast.UnknownEndianness
	default:
		return nil, fmt.Errorf("conform: unknown endianness %q", ff.Endianness)
	}

	for _, df := range ff.Declarations {
		d, err := df.build()
		if err != nil {
			return nil, err
		}
		out.Declarations = append(out.Declarations, d)
	}
	return out, nil
}
