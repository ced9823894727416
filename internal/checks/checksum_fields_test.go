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
)

func TestChecksumFieldsIsCurrentlyANoOp(t *testing.T) {
	cks := &ast.Checksum{ID: "CRC", Width: 16, FunctionName: "crc16"}
	p := &ast.Packet{ID: "P", Fields: []*ast.Field{
		fld(1, &ast.Typedef{ID: "crc", TypeID: "CRC"}),
	}}
	file := &ast.File{Declarations: []*ast.Decl{dcl(1, cks), dcl(2, p)}}
	sc := mustScope(t, file)

	bag := checks.ChecksumFields(file, sc)
	requireEmpty(t, bag)
}
