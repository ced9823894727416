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

	"github.com/stretchr/testify/require"

	"github.com/pdllang/pdlc/internal/ast"
	"github.com/pdllang/pdlc/internal/diag"
	"github.com/pdllang/pdlc/internal/scope"
)

func fld(key ast.Key, desc ast.FieldDesc) *ast.Field {
	return &ast.Field{Key: key, Desc: desc}
}

func condFld(key ast.Key, desc ast.FieldDesc, cond *ast.Constraint) *ast.Field {
	return &ast.Field{Key: key, Desc: desc, Cond: cond}
}

func dcl(key ast.Key, desc ast.DeclDesc) *ast.Decl {
	return &ast.Decl{Key: key, Desc: desc}
}

func mustScope(t *testing.T, file *ast.File) *scope.Scope {
	t.Helper()
	sc, bag := scope.New(file)
	require.True(t, bag.Empty(), "unexpected scope errors: %v", bag)
	return sc
}

func codes(bag *diag.Bag) []diag.Code {
	var out []diag.Code
	for _, d := range bag.Diagnostics() {
		out = append(out, d.Code)
	}
	return out
}

func requireHasCode(t *testing.T, bag *diag.Bag, code diag.Code) {
	t.Helper()
	require.Contains(t, codes(bag), code, "diagnostics: %v", bag.Diagnostics())
}

func requireEmpty(t *testing.T, bag *diag.Bag) {
	t.Helper()
	require.True(t, bag.Empty(), "expected no diagnostics, got: %v", bag.Diagnostics())
}
