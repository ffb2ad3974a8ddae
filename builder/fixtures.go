package builder

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// FixtureBasisEntry / FixtureCoactionEntry are the YAML shape a
// testdata/*.yaml golden table decodes into: the already-tabulated
// form a consumer of this library would stage as a fixture, not a raw
// text dialect.
type FixtureBasisEntry struct {
	Name  string `yaml:"name"`
	Grade int    `yaml:"grade"`
}

type FixtureCoactionEntry struct {
	Left  string `yaml:"left"`
	Right string `yaml:"right"`
	Value string `yaml:"value"`
}

// Fixture is the decoded shape of a testdata/*.yaml golden table: a
// uni-graded (int grade) basis list plus a name-keyed coaction table.
type Fixture struct {
	Basis    []FixtureBasisEntry               `yaml:"basis"`
	Coaction map[string][]FixtureCoactionEntry `yaml:"coaction"`
}

// LoadFixture decodes a YAML golden table twice: once into the plain
// Fixture struct for its values, once into a yaml.Node tree so each
// entry's source line can be attached to the BasisEntry/CoactionEntry
// slices BuildCoalgebra/BuildComodule consume, giving parse errors a
// line number to report.
func LoadFixture(data []byte) ([]BasisEntry[int], map[string][]CoactionEntry, error) {
	var fx Fixture
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return nil, nil, fmt.Errorf("builder: LoadFixture: %w", err)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, nil, fmt.Errorf("builder: LoadFixture: %w", err)
	}

	basisSeq := findMappingValue(&root, "basis")
	basis := make([]BasisEntry[int], len(fx.Basis))
	for i, e := range fx.Basis {
		line := 0
		if basisSeq != nil && i < len(basisSeq.Content) {
			line = basisSeq.Content[i].Line
		}
		basis[i] = BasisEntry[int]{Name: e.Name, Grade: e.Grade, Line: line}
	}

	coactionMap := findMappingValue(&root, "coaction")
	coaction := make(map[string][]CoactionEntry, len(fx.Coaction))
	for owner, terms := range fx.Coaction {
		ownerSeq := findMappingValue(coactionMap, owner)
		out := make([]CoactionEntry, len(terms))
		for i, t := range terms {
			line := 0
			if ownerSeq != nil && i < len(ownerSeq.Content) {
				line = ownerSeq.Content[i].Line
			}
			out[i] = CoactionEntry{Left: t.Left, Right: t.Right, Value: t.Value, Line: line}
		}
		coaction[owner] = out
	}
	return basis, coaction, nil
}

// findMappingValue walks a decoded yaml.Node document (or a mapping
// node within one) looking for scalar key, returning its value node.
// Returns nil if root is nil, not reachable to a mapping, or the key
// is absent.
func findMappingValue(root *yaml.Node, key string) *yaml.Node {
	if root == nil {
		return nil
	}
	node := root
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}
