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

//go:build debug

// Package xlog includes tracing helpers for the analyzer pipeline.
//
// It is compiled in only when the module is built with the "debug" build
// tag: the Enabled constant lets call sites be compiled away entirely on
// normal builds.
package xlog

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/timandy/routine"
)

// Enabled is true when the analyzer is built with the debug tag.
const Enabled = true

// Log prints a trace line to stderr, tagged with the calling package, file,
// line, and goroutine id.
//
// corr, if non-empty, is a correlation id (e.g. a file's content hash) that
// is printed alongside the goroutine id, so that interleaved traces from
// concurrent Analyze calls (see internal/cache) can be told apart.
func Log(corr string, pass string, format string, args ...any) {
	pc, file, line, _ := runtime.Caller(1)

	fn := runtime.FuncForPC(pc)
	name := fn.Name()
	if slash := strings.LastIndex(name, "/"); slash >= 0 {
		name = name[slash+1:]
	}
	pkg := name
	if dot := strings.Index(pkg, "."); dot >= 0 {
		pkg = pkg[:dot]
	}

	file = filepath.Base(file)

	buf := new(strings.Builder)
	fmt.Fprintf(buf, "%s/%s:%d [g%04d", pkg, file, line, routine.Goid())
	if corr != "" {
		fmt.Fprintf(buf, ", %s", corr)
	}
	fmt.Fprintf(buf, "] %s: ", pass)
	fmt.Fprintf(buf, format, args...)
	buf.WriteByte('\n')

	_, _ = os.Stderr.WriteString(buf.String())
}

// Assert panics if cond is false. Only compiled in under the debug tag, so
// it must never guard behavior that matters in release builds.
func Assert(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Errorf("pdlc: internal assertion failed: "+format, args...))
	}
}
