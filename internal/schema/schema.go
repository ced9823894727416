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

package schema

import (
	"github.com/pdllang/pdlc/internal/ast"
	"github.com/pdllang/pdlc/internal/scope"
)

const (
	payloadFieldID = "_payload_"
	bodyFieldID    = "_body_"
)

// Schema holds every size computed for a desugared File, keyed by the
// stable integer keys the parser assigned. Once built it is never
// mutated.
type Schema struct {
	sc *scope.Scope

	declSize    map[ast.Key]Size
	parentSize  map[ast.Key]Size
	payloadSize map[ast.Key]Size
	fieldSize   map[ast.Key]Size
	totalSize   map[ast.Key]Size

	paddedSize    map[ast.Key]Size
	paddedPresent map[ast.Key]bool

	computing map[ast.Key]bool
}

// Compute builds the Schema for file, which must already be the
// post-desugar AST (no Group decls, no GroupRef/unsynthesized-Flag
// fields) and must already have passed every identifier/reference check,
// since total-size computation recurses through typedef and array
// element references without re-validating them.
func Compute(file *ast.File, sc *scope.Scope) *Schema {
	s := &Schema{
		sc:            sc,
		declSize:      make(map[ast.Key]Size),
		parentSize:    make(map[ast.Key]Size),
		payloadSize:   make(map[ast.Key]Size),
		fieldSize:     make(map[ast.Key]Size),
		totalSize:     make(map[ast.Key]Size),
		paddedSize:    make(map[ast.Key]Size),
		paddedPresent: make(map[ast.Key]bool),
		computing:     make(map[ast.Key]bool),
	}

	for _, d := range file.Declarations {
		s.propagatePadding(declOwnFields(d.Desc))
	}

	for _, d := range file.Declarations {
		s.totalSizeOf(d)
	}

	return s
}

// FieldSize returns the computed size of the field with this key.
func (s *Schema) FieldSize(key ast.Key) Size { return s.fieldSize[key] }

// DeclSize returns the size of a decl's own (non-payload) fields.
func (s *Schema) DeclSize(key ast.Key) Size { return s.declSize[key] }

// ParentSize returns the accumulated size of a decl's parent chain.
func (s *Schema) ParentSize(key ast.Key) Size { return s.parentSize[key] }

// PaddedSize returns the field's padded size and true, if it is
// immediately followed by a Padding field.
func (s *Schema) PaddedSize(key ast.Key) (Size, bool) {
	if !s.paddedPresent[key] {
		return Size{}, false
	}
	return s.paddedSize[key], true
}

// PayloadSize returns the size of a decl's single Payload/Body field, or
// Static(0) if it has none.
func (s *Schema) PayloadSize(key ast.Key) Size { return s.payloadSize[key] }

// TotalSize returns decl_size + parent_size + payload_size for a decl, or
// the decl's own intrinsic size for Enum/Checksum/CustomField/Test.
func (s *Schema) TotalSize(key ast.Key) Size { return s.totalSize[key] }

func declOwnFields(desc ast.DeclDesc) []*ast.Field {
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

// propagatePadding implements the right-to-left padding-slot rule: each
// field's padded_size is the slot value carried in from the field after
// it, so only a field immediately preceding a Padding field ends up with
// one.
func (s *Schema) propagatePadding(fields []*ast.Field) {
	var slot Size
	present := false

	for i := len(fields) - 1; i >= 0; i-- {
		f := fields[i]
		s.paddedPresent[f.Key] = present
		s.paddedSize[f.Key] = slot

		if padding, ok := f.Desc.(*ast.Padding); ok {
			slot = Static(uint64(8 * padding.Size))
			present = true
		} else {
			present = false
		}
	}
}

// totalSizeOf computes and memoizes a decl's total size. computing guards
// against revisiting a decl already on the current recursion stack: by
// construction (every DeclIdentifiers-valid File has no cyclic parent or
// sized-reference chains), this should never trigger, so hitting it
// indicates a parser contract violation, not a diagnosable PDL error.
func (s *Schema) totalSizeOf(d *ast.Decl) Size {
	if v, ok := s.totalSize[d.Key]; ok {
		return v
	}
	if s.computing[d.Key] {
		panic("schema: cyclic declaration reached Schema.Compute; DeclIdentifiers should have rejected this file")
	}
	s.computing[d.Key] = true
	defer delete(s.computing, d.Key)

	var total Size
	switch desc := d.Desc.(type) {
	case *ast.Enum:
		total = Static(uint64(desc.Width))
	case *ast.Checksum:
		total = Static(uint64(desc.Width))
	case *ast.CustomField:
		if desc.WidthPresent {
			total = Static(uint64(desc.Width))
		} else {
			total = Dynamic
		}
	case *ast.Test:
		total = Static(0)
	case *ast.Packet:
		total = s.computeContainer(d, desc.Fields, desc.ParentID)
	case *ast.Struct:
		total = s.computeContainer(d, desc.Fields, desc.ParentID)
	case *ast.Group:
		total = s.computeContainer(d, desc.Fields, "")
	default:
		total = Unknown
	}

	s.totalSize[d.Key] = total
	return total
}

// computeContainer computes decl_size, parent_size, payload_size, and
// total_size for a Packet/Struct/Group, and every field's field_size as a
// side effect.
func (s *Schema) computeContainer(d *ast.Decl, fields []*ast.Field, parentID string) Size {
	sizeRefs, payloadRef := collectReferences(fields)

	declSize := Static(0)
	payloadSize := Static(0)

	for _, f := range fields {
		fs := s.fieldSizeOf(d, f, sizeRefs, payloadRef)
		s.fieldSize[f.Key] = fs

		switch f.Desc.(type) {
		case *ast.Payload, *ast.Body:
			payloadSize = fs
			continue
		}

		if padded, ok := s.PaddedSize(f.Key); ok {
			fs = padded
		}
		declSize = declSize.Add(fs)
	}

	parentSize := Static(0)
	if parentID != "" {
		if p, ok := s.sc.Lookup(parentID); ok {
			s.totalSizeOf(p)
			parentSize = s.declSize[p.Key].Add(s.parentSize[p.Key])
		} else {
			parentSize = Unknown
		}
	}

	s.declSize[d.Key] = declSize
	s.parentSize[d.Key] = parentSize
	s.payloadSize[d.Key] = payloadSize

	return declSize.Add(parentSize).Add(payloadSize)
}

// collectReferences scans a decl's own fields for Size/Count fields,
// returning which field ids they target (for Array dynamic sizing) and
// whether any Size field targets the decl's payload/body.
func collectReferences(fields []*ast.Field) (targeted map[string]bool, payloadRef bool) {
	targeted = make(map[string]bool)
	for _, f := range fields {
		switch desc := f.Desc.(type) {
		case *ast.Size:
			targeted[desc.FieldID] = true
			if desc.FieldID == payloadFieldID || desc.FieldID == bodyFieldID {
				payloadRef = true
			}
		case *ast.Count:
			targeted[desc.FieldID] = true
		}
	}
	return targeted, payloadRef
}

// fieldSizeOf computes one field's size. Typedef fields referencing a
// Checksum decl are sized Static(0): the checksum's own physical width is
// an artifact of its host function implementation, not of the structural
// layout this analyzer computes.
func (s *Schema) fieldSizeOf(d *ast.Decl, f *ast.Field, sizeRefs map[string]bool, payloadRef bool) Size {
	if f.Cond != nil {
		return Dynamic
	}

	switch desc := f.Desc.(type) {
	case *ast.Size:
		return Static(uint64(desc.Width))
	case *ast.Count:
		return Static(uint64(desc.Width))
	case *ast.ElementSize:
		return Static(uint64(desc.Width))
	case *ast.FixedScalar:
		return Static(uint64(desc.Width))
	case *ast.Reserved:
		return Static(uint64(desc.Width))
	case *ast.Scalar:
		return Static(uint64(desc.Width))
	case *ast.Padding:
		return Static(0)
	case *ast.Flag:
		return Static(1)

	case *ast.Body:
		if payloadRef {
			return Dynamic
		}
		return Unknown
	case *ast.Payload:
		if payloadRef {
			return Dynamic
		}
		return Unknown

	case *ast.Typedef:
		target, ok := s.sc.Lookup(desc.TypeID)
		if !ok {
			return Unknown
		}
		if _, isChecksum := target.Desc.(*ast.Checksum); isChecksum {
			return Static(0)
		}
		return s.totalSizeOf(target)

	case *ast.FixedEnum:
		target, ok := s.sc.Lookup(desc.EnumID)
		if !ok {
			return Unknown
		}
		return s.totalSizeOf(target)

	case *ast.Array:
		return s.arraySize(f, desc, sizeRefs)

	default:
		return Unknown
	}
}

func (s *Schema) arraySize(f *ast.Field, desc *ast.Array, sizeRefs map[string]bool) Size {
	if !desc.SizePresent {
		if sizeRefs[desc.ID] {
			return Dynamic
		}
		return Unknown
	}

	if desc.WidthPresent {
		return Static(uint64(desc.Width)).MulN(uint64(desc.Size))
	}

	if desc.TypeIDPresent {
		target, ok := s.sc.Lookup(desc.TypeID)
		if !ok {
			return Unknown
		}
		return s.totalSizeOf(target).MulN(uint64(desc.Size))
	}

	return Unknown
}
