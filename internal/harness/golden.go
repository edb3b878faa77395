package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/bindcheck/internal/canonical"
)

// Snapshot renders a scenario trace as canonical JSON.
// The same bytes are written by `bindcheck test --update` and compared by
// RunWithGolden, so golden files are interchangeable between the two.
func Snapshot(scenarioName string, result *Result) ([]byte, error) {
	trace := make([]any, len(result.Trace))
	for i, event := range result.Trace {
		eventMap := map[string]any{
			"type":   event.Type,
			"lesson": event.Lesson,
			"seq":    event.Seq,
		}
		if event.Text != "" {
			eventMap["text"] = event.Text
		}
		if event.Code != "" {
			eventMap["code"] = event.Code
		}
		if event.Binding != "" {
			eventMap["binding"] = event.Binding
		}
		trace[i] = eventMap
	}

	return canonical.Marshal(map[string]any{
		"scenario_name": scenarioName,
		"trace":         trace,
	})
}

// RunWithGolden and AssertGolden are test helpers for packages that keep
// scenario goldens under their own testdata/golden directory. The CLI's
// test command uses Snapshot directly.

// RunWithGolden executes a scenario and compares the trace against a golden file.
// The golden file is stored in testdata/golden/{scenario.Name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if trace doesn't match golden file.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result's trace against a golden file
// without re-running the scenario.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	data, err := Snapshot(scenarioName, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, data)

	return nil
}
