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

package conform

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/tools/txtar"
	"gopkg.in/yaml.v3"

	"github.com/pdllang/pdlc/internal/ast"
)

// Expectation is what a scenario asserts about Analyze's outcome.
//
// Codes, if non-empty, is the exact (order-sensitive) set of diagnostic
// codes internal/analyzer.Analyze must report; an empty Codes means
// Analyze must succeed. DeclCount, if non-zero, additionally asserts the
// number of top-level declarations in the post-desugar File (used by
// group-inlining scenarios to confirm Group decls were dropped).
type Expectation struct {
	Codes     []string `yaml:"codes,omitempty"`
	DeclCount int      `yaml:"decl_count,omitempty"`
}

// Scenario is one golden end-to-end fixture: a file to analyze and the
// expected outcome.
type Scenario struct {
	Name   string
	File   FileFixture
	Expect Expectation
}

// manifestEntry is one row of testdata/scenarios/manifest.yaml, naming a
// txtar archive and giving it a human-readable scenario name.
type manifestEntry struct {
	Name    string `yaml:"name"`
	Archive string `yaml:"archive"`
}

// LoadDir loads every scenario named in dir's manifest.yaml. Each entry's
// archive names a txtar file, relative to dir, containing two sections:
// "file.yaml" (a FileFixture) and "expect.yaml" (an Expectation).
func LoadDir(dir string) ([]Scenario, error) {
	manifestPath := filepath.Join(dir, "manifest.yaml")
	manifestBytes, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("conform: reading manifest: %w", err)
	}

	var entries []manifestEntry
	if err := yaml.Unmarshal(manifestBytes, &entries); err != nil {
		return nil, fmt.Errorf("conform: decoding manifest: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })

	scenarios := make([]Scenario, 0, len(entries))
	for _, e := range entries {
		sc, err := loadArchive(filepath.Join(dir, e.Archive), e.Name)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, sc)
	}
	return scenarios, nil
}

func loadArchive(path, name string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("conform: reading archive %s: %w", path, err)
	}
	archive := txtar.Parse(data)

	var fileYAML, expectYAML []byte
	for _, f := range archive.Files {
		switch f.Name {
		case "file.yaml":
			fileYAML = f.Data
		case "expect.yaml":
			expectYAML = f.Data
		}
	}
	if fileYAML == nil {
		return Scenario{}, fmt.Errorf("conform: archive %s missing file.yaml", path)
	}
	if expectYAML == nil {
		return Scenario{}, fmt.Errorf("conform: archive %s missing expect.yaml", path)
	}

	var ff FileFixture
	if err := yaml.Unmarshal(fileYAML, &ff); err != nil {
		return Scenario{}, fmt.Errorf("conform: archive %s: decoding file.yaml: %w", path, err)
	}
	var expect Expectation
	if err := yaml.Unmarshal(expectYAML, &expect); err != nil {
		return Scenario{}, fmt.Errorf("conform: archive %s: decoding expect.yaml: %w", path, err)
	}

	return Scenario{Name: name, File: ff, Expect: expect}, nil
}

// Build constructs the scenario's input File, panicking on a malformed
// fixture: a broken testdata archive is a bug in the conformance suite
// itself, not a condition under test.
func (s Scenario) Build() *ast.File {
	file, err := s.File.Build()
	if err != nil {
		panic(fmt.Sprintf("conform: scenario %q: %v", s.Name, err))
	}
	return file
}
