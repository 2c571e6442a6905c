package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/dicerules/internal/roll"
)

// Scenario defines a conformance test scenario.
type Scenario struct {
	// Name uniquely identifies this scenario. It also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Roll is the roll under test.
	Roll roll.Options `yaml:"roll"`

	// Draws is the scripted random sequence, consumed in order.
	Draws []int `yaml:"draws"`

	// MaxChain caps rerolls and explosions per die. Zero uses the
	// engine default.
	MaxChain int `yaml:"max_chain,omitempty"`

	// Expect lists the properties the result must have.
	Expect Expect `yaml:"expect"`
}

// Expect holds the expected result. Nil fields are not checked.
type Expect struct {
	Total               *int        `yaml:"total,omitempty"`
	TotalBeforeModifier *int        `yaml:"total_before_modifier,omitempty"`
	FinalModifier       *int        `yaml:"final_modifier,omitempty"`
	Successes           *int        `yaml:"successes,omitempty"`
	Failures            *int        `yaml:"failures,omitempty"`
	Evens               *int        `yaml:"evens,omitempty"`
	Odds                *int        `yaml:"odds,omitempty"`
	Doubled             *int        `yaml:"doubled,omitempty"`
	Halved              *float64    `yaml:"halved,omitempty"`
	Kept                []int       `yaml:"kept,omitempty"`
	Dropped             []int       `yaml:"dropped,omitempty"`
	Grouped             map[int]int `yaml:"grouped,omitempty"`

	// Error is the expected error code. When set, the roll must fail.
	Error string `yaml:"error,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields, or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML. Unknown fields are rejected.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Roll.Expression == "" {
		return fmt.Errorf("roll.expression is required")
	}

	if s.MaxChain < 0 {
		return fmt.Errorf("max_chain must be non-negative")
	}

	for i, d := range s.Draws {
		if d < 1 {
			return fmt.Errorf("draws[%d]: %d is not a die face", i, d)
		}
	}

	return nil
}
