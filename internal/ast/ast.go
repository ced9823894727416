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

// Package ast defines the untyped AST that the (external, out of scope)
// surface parser produces and that the analyzer (internal/checks,
// internal/desugar, internal/schema) consumes.
//
// Every Decl and Field carries a SourceRange and a stable integer Key,
// assigned by the parser and never reassigned by this module; desugaring
// (internal/desugar) preserves keys exactly so that internal/schema's
// key-indexed maps remain valid across the pre- and post-desugar ASTs.
//
// Dispatch over the closed sets of declaration, field, and tag shapes uses
// unexported marker methods on otherwise plain data structs (tagged Go
// interfaces rather than a discriminated union field), so a
// `switch x := desc.(type)` is exhaustively checkable by reviewers even
// though the Go compiler cannot itself enforce exhaustiveness.
package ast

import "github.com/pdllang/pdlc/internal/source"

// Key is a stable integer handle assigned to every Decl and Field at parse
// time. It is never invented or renumbered by the analyzer; internal/schema
// uses it as a map index.
type Key int

// Endianness is the file-level byte order declaration
// (little_endian_packets / big_endian_packets).
type Endianness int

const (
	UnknownEndianness Endianness = iota
	LittleEndian
	BigEndian
)

// File is the top-level parsed unit.
type File struct {
	Version        string
	FileID         source.FileID
	Endianness     Endianness
	EndiannessLoc  source.SourceRange
	EndiannessSeen int // number of little_endian_packets/big_endian_packets declarations the parser saw
	Declarations   []*Decl
	Comments       []Comment
	MaxKey         Key
}

// Comment is a source comment, carried through for completeness; the
// analyzer never inspects comment text.
type Comment struct {
	Loc  source.SourceRange
	Text string
}

// Decl is a top-level declaration.
type Decl struct {
	Loc  source.SourceRange
	Key  Key
	Desc DeclDesc
}

// DeclDesc is the closed set of declaration shapes.
type DeclDesc interface {
	declDesc()
}

// Packet is a top-level packet declaration, optionally inheriting from a
// parent Packet.
type Packet struct {
	ID          string
	ParentID    string // empty if no parent
	Constraints []*Constraint
	Fields      []*Field
}

func (*Packet) declDesc() {}

// Struct is a top-level struct declaration, optionally inheriting from a
// parent Struct.
type Struct struct {
	ID          string
	ParentID    string
	Constraints []*Constraint
	Fields      []*Field
}

func (*Struct) declDesc() {}

// Group is a named, reusable field list. Eliminated by
// internal/desugar.InlineGroups.
type Group struct {
	ID     string
	Fields []*Field
}

func (*Group) declDesc() {}

// Enum is a fixed-width enumeration of tag values.
type Enum struct {
	ID    string
	Width int
	Tags  []*Tag
}

func (*Enum) declDesc() {}

// Checksum is an opaque reference to a host checksum function.
type Checksum struct {
	ID           string
	Width        int
	FunctionName string
}

func (*Checksum) declDesc() {}

// CustomField is an opaque reference to a host-provided field type. Width
// is absent (Present=false) when the field is dynamically sized.
type CustomField struct {
	ID           string
	Width        int
	WidthPresent bool
	FunctionName string
}

func (*CustomField) declDesc() {}

// Test is a conformance test referencing a Packet by type id.
type Test struct {
	TypeID string
	Cases  []string
}

func (*Test) declDesc() {}

// Field is a component of a Packet/Struct/Group.
type Field struct {
	Loc  source.SourceRange
	Key  Key
	Cond *Constraint // optional: present only for "if" fields
	Desc FieldDesc
}

// FieldDesc is the closed set of field shapes.
type FieldDesc interface {
	fieldDesc()
}

// Scalar is a plain bit-granular integer field.
type Scalar struct {
	ID    string
	Width int
}

func (*Scalar) fieldDesc() {}

// Typedef references an Enum, Struct, CustomField, or Checksum declaration.
type Typedef struct {
	ID     string
	TypeID string
}

func (*Typedef) fieldDesc() {}

// Array is a repeated element field. Exactly one of TypeID (a reference to
// an Enum/Struct/CustomField element type) or Width (a raw scalar element
// bit-width) is set. Size, if SizePresent, gives a static element count.
type Array struct {
	ID              string
	TypeID          string
	TypeIDPresent   bool
	Width           int
	WidthPresent    bool
	Size            int
	SizePresent     bool
	SizeModifier    string
	HasSizeModifier bool
}

func (*Array) fieldDesc() {}

// Size gives the size (in size-modifier units) of a referenced Array,
// Payload, or Body field.
type Size struct {
	FieldID string
	Width   int
}

func (*Size) fieldDesc() {}

// Count gives the element count of a referenced Array field.
type Count struct {
	FieldID string
	Width   int
}

func (*Count) fieldDesc() {}

// ElementSize gives the per-element size of a referenced Array field.
type ElementSize struct {
	FieldID string
	Width   int
}

func (*ElementSize) fieldDesc() {}

// Body is opaque nested content extending to the end of the enclosing
// container.
type Body struct{}

func (*Body) fieldDesc() {}

// Payload is opaque nested content, optionally scaled by a size modifier.
type Payload struct {
	SizeModifier    string
	HasSizeModifier bool
}

func (*Payload) fieldDesc() {}

// FixedScalar is a literal integer value occupying Width bits.
type FixedScalar struct {
	Width int
	Value int64
}

func (*FixedScalar) fieldDesc() {}

// FixedEnum is a literal enum tag occupying the enum's width in bits.
type FixedEnum struct {
	EnumID string
	TagID  string
}

func (*FixedEnum) fieldDesc() {}

// Reserved is Width zero-filled bits.
type Reserved struct {
	Width int
}

func (*Reserved) fieldDesc() {}

// Padding zero-fills the previous Array field out to Size bytes.
type Padding struct {
	Size int // bytes
}

func (*Padding) fieldDesc() {}

// GroupRef inlines a Group's fields at this point, specialized by
// Constraints. Eliminated by internal/desugar.InlineGroups. (Named
// GroupRef, not Group, to avoid colliding with the Group declaration in
// this package's flat namespace.)
type GroupRef struct {
	GroupID     string
	Constraints []*Constraint
}

func (*GroupRef) fieldDesc() {}

// Flag is produced only by internal/desugar.DesugarFlags: it records which
// optional fields are gated by this (formerly plain scalar) field's value.
type Flag struct {
	ID               string
	OptionalFieldIDs []FlagTarget
}

func (*Flag) fieldDesc() {}

// FlagTarget is one (dependent field, required condition value) pair
// gated by a Flag.
type FlagTarget struct {
	FieldID   string
	CondValue int64
}

// Tag is one member of an Enum.
type Tag struct {
	Loc  source.SourceRange
	Desc TagDesc
}

// TagDesc is the closed set of tag shapes.
type TagDesc interface {
	tagDesc()
	tagID() string
}

// TagID returns the identifier of any TagDesc, without requiring callers to
// switch over the closed set themselves.
func TagID(d TagDesc) string {
	return d.tagID()
}

// TagValue is a single named value.
type TagValue struct {
	ID    string
	Value uint64
}

func (*TagValue) tagDesc()        {}
func (t *TagValue) tagID() string { return t.ID }

// TagRange is a named sub-range of values, itself containing named
// sub-tags.
type TagRange struct {
	ID    string
	Start uint64
	End   uint64 // inclusive
	Tags  []*Tag
}

func (*TagRange) tagDesc()        {}
func (t *TagRange) tagID() string { return t.ID }

// TagOther is the open-enum default tag.
type TagOther struct {
	ID string
}

func (*TagOther) tagDesc()        {}
func (t *TagOther) tagID() string { return t.ID }

// Constraint fixes a referenced field to a literal value or enum tag.
// Exactly one of Value/TagID is present.
type Constraint struct {
	ID           string
	Loc          source.SourceRange
	Value        int64
	ValuePresent bool
	TagID        string
	TagIDPresent bool
}
