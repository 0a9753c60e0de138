package layout

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/peovukea/Pathfinding-visualization/gridgraph"
)

// ErrExpectation is returned by Verify when an outcome does not match.
var ErrExpectation = errors.New("layout: scenario expectation not met")

// Scenario is a named board stored as YAML:
//
//	name: corridor
//	width: 300
//	grid: |
//	  S.#
//	  ..#
//	  ..E
//	expect:
//	  found: true
//	  length: 4
type Scenario struct {
	Name   string       `yaml:"name"`
	Width  int          `yaml:"width,omitempty"`
	Grid   string       `yaml:"grid"`
	Expect *Expectation `yaml:"expect,omitempty"`
}

// Expectation is the outcome a scenario should produce.
type Expectation struct {
	Found  bool `yaml:"found"`
	Length int  `yaml:"length,omitempty"`
}

// NewScenario captures the current board of g under name.
func NewScenario(name string, g *gridgraph.Grid) *Scenario {
	return &Scenario{Name: name, Width: g.Width(), Grid: String(g)}
}

// DecodeScenario reads one YAML scenario from r. Unknown keys are rejected.
func DecodeScenario(r io.Reader) (*Scenario, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var s Scenario
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("layout: decode scenario: %w", err)
	}
	if s.Grid == "" {
		return nil, fmt.Errorf("layout: scenario %q: %w", s.Name, ErrEmpty)
	}
	return &s, nil
}

// LoadScenario opens path and decodes it with DecodeScenario.
func LoadScenario(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	defer f.Close()
	return DecodeScenario(f)
}

// Encode writes s as YAML.
func (s *Scenario) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("layout: encode scenario: %w", err)
	}
	return enc.Close()
}

// Build parses the scenario grid at the scenario width.
func (s *Scenario) Build() (*gridgraph.Grid, error) {
	g, err := ParseString(s.Grid, s.Width)
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", s.Name, err)
	}
	return g, nil
}

// Verify compares a search outcome with s.Expect. A scenario without
// expectations accepts any outcome.
func (s *Scenario) Verify(found bool, length int) error {
	if s.Expect == nil {
		return nil
	}
	if found != s.Expect.Found {
		return fmt.Errorf("%w: %q found=%t, want %t", ErrExpectation, s.Name, found, s.Expect.Found)
	}
	if found && s.Expect.Length > 0 && length != s.Expect.Length {
		return fmt.Errorf("%w: %q length=%d, want %d", ErrExpectation, s.Name, length, s.Expect.Length)
	}
	return nil
}
