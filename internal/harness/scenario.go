package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/bindcheck/internal/binding"
	"github.com/roach88/bindcheck/internal/lesson"
)

// Execution modes.
const (
	// ModeRun stops at the first fault, like a dynamically checked program.
	ModeRun = "run"
	// ModeCheck runs every lesson and collects all faults, like a compiler.
	ModeCheck = "check"
)

// Scenario defines one program configuration and what it must produce.
type Scenario struct {
	// Name uniquely identifies this scenario.
	Name string `yaml:"name"`

	// Description explains what this scenario demonstrates.
	Description string `yaml:"description"`

	// Break lists the lessons that run their broken variant ("all" for every lesson).
	Break []string `yaml:"break,omitempty"`

	// Mode is "run" (default) or "check".
	Mode string `yaml:"mode,omitempty"`

	// Params is an optional CUE override file.
	// Relative paths are resolved against the scenario's base path.
	Params string `yaml:"params,omitempty"`

	// Assertions validate the resulting trace.
	Assertions []Assertion `yaml:"assertions"`
}

// Assertion validates the trace of a scenario.
type Assertion struct {
	// Type specifies the assertion type:
	// - "output_equals": printed lines equal Lines exactly
	// - "line_contains": some printed line contains Text
	// - "fault_raised": a fault with Code (and Lesson, if set) was raised
	// - "fault_count": exactly Count faults were raised
	Type string `yaml:"type"`

	// Lines is the expected output (used by output_equals).
	Lines []string `yaml:"lines,omitempty"`

	// Text is the expected substring (used by line_contains).
	Text string `yaml:"text,omitempty"`

	// Code is the expected fault code (used by fault_raised).
	Code string `yaml:"code,omitempty"`

	// Lesson optionally narrows fault_raised to one lesson.
	Lesson string `yaml:"lesson,omitempty"`

	// Count is the expected number of faults (used by fault_count).
	Count int `yaml:"count,omitempty"`
}

// Assertion type constants.
const (
	AssertOutputEquals = "output_equals"
	AssertLineContains = "line_contains"
	AssertFaultRaised  = "fault_raised"
	AssertFaultCount   = "fault_count"
)

// LoadScenario reads and parses a scenario YAML file.
// The params path is resolved relative to the scenario file's directory.
func LoadScenario(path string) (*Scenario, error) {
	return LoadScenarioWithBasePath(path, filepath.Dir(path))
}

// LoadScenarioWithBasePath reads and parses a scenario YAML file,
// resolving the params path relative to basePath.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenarioWithBasePath(path, basePath string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Parse YAML with strict field validation (catches typos like "assertion:" vs "assertions:")
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if scenario.Params != "" && !filepath.IsAbs(scenario.Params) && basePath != "" {
		scenario.Params = filepath.Join(basePath, scenario.Params)
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

	switch s.Mode {
	case "", ModeRun, ModeCheck:
	default:
		return fmt.Errorf("mode must be %q or %q, got %q", ModeRun, ModeCheck, s.Mode)
	}

	if _, err := lesson.ParseToggles(s.Break); err != nil {
		return fmt.Errorf("break: %w", err)
	}

	if s.Params != "" {
		if _, err := os.Stat(s.Params); os.IsNotExist(err) {
			return fmt.Errorf("params file not found: %s", s.Params)
		}
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertOutputEquals:
		// An empty Lines list asserts that nothing was printed.
	case AssertLineContains:
		if a.Text == "" {
			return fmt.Errorf("assertions[%d]: text is required for line_contains", index)
		}
	case AssertFaultRaised:
		if !isKnownCode(a.Code) {
			return fmt.Errorf("assertions[%d]: code must be one of %v for fault_raised, got %q", index, binding.Codes, a.Code)
		}
		if a.Lesson != "" {
			if _, ok := lesson.Find(a.Lesson); !ok {
				return fmt.Errorf("assertions[%d]: unknown lesson %q", index, a.Lesson)
			}
		}
	case AssertFaultCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for fault_count", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}

func isKnownCode(code string) bool {
	for _, c := range binding.Codes {
		if string(c) == code {
			return true
		}
	}
	return false
}
