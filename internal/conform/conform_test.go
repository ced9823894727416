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

package conform_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pdllang/pdlc/internal/analyzer"
	"github.com/pdllang/pdlc/internal/conform"
)

func TestScenarios(t *testing.T) {
	scenarios, err := conform.LoadDir("testdata/scenarios")
	require.NoError(t, err)
	require.NotEmpty(t, scenarios)

	for _, sc := range scenarios {
		sc := sc
		t.Run(sc.Name, func(t *testing.T) {
			t.Parallel()

			file := sc.Build()
			out, _, bag := analyzer.Analyze(file)

			if len(sc.Expect.Codes) == 0 {
				require.True(t, bag.Empty(), "expected success, got %v", bag)
			} else {
				require.False(t, bag.Empty())
				var got []string
				for _, d := range bag.Diagnostics() {
					got = append(got, d.Code.String())
				}
				require.Equal(t, sc.Expect.Codes, got)
			}

			if sc.Expect.DeclCount != 0 {
				require.Len(t, out.Declarations, sc.Expect.DeclCount)
			}
		})
	}
}
