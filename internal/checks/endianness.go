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

package checks

import (
	"github.com/pdllang/pdlc/internal/ast"
	"github.com/pdllang/pdlc/internal/diag"
)

// Endianness checks that a file declares little_endian_packets or
// big_endian_packets exactly once. The surface parser records how many
// such declarations it saw in File.EndiannessSeen; this pass never
// re-parses source text, it only judges that count.
func Endianness(file *ast.File) *diag.Bag {
	bag := diag.NewBag()
	switch {
	case file.EndiannessSeen == 0:
		bag.Addf(diag.E54, file.EndiannessLoc, "file does not declare little_endian_packets or big_endian_packets")
	case file.EndiannessSeen > 1:
		bag.Addf(diag.E55, file.EndiannessLoc, "file declares an endianness more than once")
	}
	return bag
}
