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

// Package source implements the source database that underlies every
// diagnostic and AST node: a mapping from an opaque file id to a file's
// name, contents, and line-start offsets, plus the SourceRange type used to
// carry byte-offset and line/column spans through the analyzer.
//
// A Database gives every added file its own stable FileID (adding the same
// contents twice yields two ids) that the rest of the analyzer references
// by value rather than by pointer.
package source

import (
	"fmt"

	"github.com/google/uuid"
)

// fileNamespace is a fixed namespace used to derive a deterministic content
// hash for each registered file, so that repeated analysis of unchanged
// content can be memoized by internal/cache without the caller having to
// supply its own cache key.
var fileNamespace = uuid.MustParse("6ad1d1d6-6f83-4f0a-8c1e-2a6a9d0c9b8e")

// FileID is an opaque handle to a registered file.
type FileID int32

// Position is a resolved line/column location within a file.
type Position struct {
	Offset int
	Line   int // 0-based
	Col    int // 0-based
}

type file struct {
	name       string
	contents   string
	lineStarts []int
	hash       uuid.UUID
}

// Database maps FileIDs to file name, contents, and line-start offsets.
type Database struct {
	files []file
}

// NewDatabase returns an empty source database.
func NewDatabase() *Database {
	return &Database{}
}

// AddFile registers a new file and returns its id.
func (db *Database) AddFile(name, contents string) FileID {
	db.files = append(db.files, file{
		name:       name,
		contents:   contents,
		lineStarts: computeLineStarts(contents),
		hash:       uuid.NewSHA1(fileNamespace, []byte(contents)),
	})
	return FileID(len(db.files) - 1)
}

func computeLineStarts(contents string) []int {
	starts := []int{0}
	for i := 0; i < len(contents); i++ {
		if contents[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// Name returns the registered name of file.
func (db *Database) Name(file FileID) string {
	return db.files[file].name
}

// Contents returns the registered contents of file.
func (db *Database) Contents(file FileID) string {
	return db.files[file].contents
}

// ContentHash returns a deterministic identity for a file's contents,
// stable across process runs, suitable as a memoization key.
func (db *Database) ContentHash(file FileID) uuid.UUID {
	return db.files[file].hash
}

// Locate converts a byte offset into a file into a line/column Position.
//
// line is the largest index i such that lineStarts[i] <= offset; col is
// offset - lineStarts[line]. If the file has no recorded line starts,
// Position is (line: 0, col: offset).
func (db *Database) Locate(fid FileID, offset int) Position {
	starts := db.files[fid].lineStarts
	if len(starts) == 0 {
		return Position{Offset: offset, Line: 0, Col: offset}
	}

	lo, hi := 0, len(starts)-1
	line := 0
	for lo <= hi {
		mid := (lo + hi) / 2
		if starts[mid] <= offset {
			line = mid
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}

	return Position{Offset: offset, Line: line, Col: offset - starts[line]}
}

// Range builds a SourceRange from a byte-offset span within file.
func (db *Database) Range(file FileID, start, end int) SourceRange {
	return SourceRange{
		File:  file,
		Start: db.Locate(file, start),
		End:   db.Locate(file, end),
	}
}

// SourceRange is a span of source text, carrying both byte offsets and
// resolved line/column positions for its endpoints.
type SourceRange struct {
	File  FileID
	Start Position
	End   Position
}

// Merge combines two ranges in the same file by taking the minimum start
// and the maximum end. Merging ranges from different files is a misuse of
// the API by an analyzer pass (never something caller-supplied PDL text can
// trigger) and panics rather than producing a nonsensical range.
func (r SourceRange) Merge(other SourceRange) SourceRange {
	if r.File != other.File {
		panic(fmt.Sprintf("source: cannot merge ranges from different files (%d, %d)", r.File, other.File))
	}

	out := r
	if other.Start.Offset < r.Start.Offset {
		out.Start = other.Start
	}
	if other.End.Offset > r.End.Offset {
		out.End = other.End
	}
	return out
}

// String renders a human-readable "file:line:col" prefix for error
// messages built outside of the diagnostics subsystem (e.g. panics).
func (r SourceRange) String() string {
	return fmt.Sprintf("%d:%d:%d", r.File, r.Start.Line+1, r.Start.Col+1)
}
