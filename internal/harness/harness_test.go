package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_FixedProgram(t *testing.T) {
	scenario := &Scenario{
		Name:        "fixed",
		Description: "All lessons fixed",
		Assertions: []Assertion{
			{Type: AssertOutputEquals, Lines: []string{"x= 3", "y= 16", "v2= [1, 2, 3]", "k= 10"}},
			{Type: AssertFaultCount, Count: 0},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Empty(t, result.Errors)

	require.Len(t, result.Trace, 4)
	for i, event := range result.Trace {
		assert.Equal(t, EventLine, event.Type)
		assert.Equal(t, int64(i+1), event.Seq)
	}
}

func TestRun_BrokenStopsAtFirstFault(t *testing.T) {
	scenario := &Scenario{
		Name:        "broken",
		Description: "Mutability and init broken",
		Break:       []string{"mutability", "init"},
		Assertions: []Assertion{
			{Type: AssertFaultCount, Count: 1},
			{Type: AssertFaultRaised, Code: "IMMUTABLE_ASSIGN", Lesson: "mutability"},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)

	require.Len(t, result.Trace, 2)
	assert.Equal(t, EventLine, result.Trace[0].Type)
	assert.Equal(t, EventFault, result.Trace[1].Type)
	assert.Equal(t, "y", result.Trace[1].Binding)
}

func TestRun_CheckModeCollectsAllFaults(t *testing.T) {
	scenario := &Scenario{
		Name:        "check",
		Description: "All broken in check mode",
		Break:       []string{"all"},
		Mode:        ModeCheck,
		Assertions:  []Assertion{{Type: AssertFaultCount, Count: 4}},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Equal(t, []string{"OUT_OF_BOUNDS", "IMMUTABLE_ASSIGN", "USE_AFTER_MOVE", "UNASSIGNED_READ"}, faultCodes(result))
}

func TestRun_FailingAssertionsReported(t *testing.T) {
	scenario := &Scenario{
		Name:        "wrong",
		Description: "Expects output the program never prints",
		Break:       []string{"bounds"},
		Assertions: []Assertion{
			{Type: AssertOutputEquals, Lines: []string{"x= 3"}},
			{Type: AssertLineContains, Text: "k="},
			{Type: AssertFaultRaised, Code: "USE_AFTER_MOVE"},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 3)
	assert.Contains(t, result.Errors[0], "output_equals")
	assert.Contains(t, result.Errors[1], "line_contains")
	assert.Contains(t, result.Errors[2], "faults raised: [OUT_OF_BOUNDS]")
}

func TestRun_ParamsOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.cue")
	require.NoError(t, os.WriteFile(path, []byte(`init: value: 99`), 0644))

	scenario := &Scenario{
		Name:        "params",
		Description: "Override init value",
		Params:      path,
		Assertions:  []Assertion{{Type: AssertLineContains, Text: "k= 99"}},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestRun_InvalidParamsIsExecutionError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.cue")
	require.NoError(t, os.WriteFile(path, []byte(`init: value: "ten"`), 0644))

	scenario := &Scenario{
		Name:        "params",
		Description: "Bad params",
		Params:      path,
		Assertions:  []Assertion{{Type: AssertFaultCount}},
	}

	_, err := Run(scenario)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load params")
}

func TestHarness_RerunIsDeterministic(t *testing.T) {
	scenario := &Scenario{
		Name:        "rerun",
		Description: "Same harness twice",
		Break:       []string{"ownership"},
		Assertions:  []Assertion{{Type: AssertFaultCount, Count: 1}},
	}

	h := New(nil)
	first, err := h.Run(scenario)
	require.NoError(t, err)
	second, err := h.Run(scenario)
	require.NoError(t, err)

	assert.Equal(t, first.Trace, second.Trace)
}

func TestAssertionErrorFormat(t *testing.T) {
	err := &AssertionError{
		Type:     AssertFaultCount,
		Expected: "1 fault(s)",
		Actual:   "0 fault(s): []",
		Trace: []TraceEvent{
			{Type: EventLine, Lesson: "bounds", Text: "x= 3", Seq: 1},
			{Type: EventFault, Lesson: "mutability", Code: "IMMUTABLE_ASSIGN", Seq: 2},
		},
	}

	msg := err.Error()
	assert.Contains(t, msg, "Assertion failed: fault_count")
	assert.Contains(t, msg, "[1] bounds: x= 3")
	assert.Contains(t, msg, "[2] mutability: fault IMMUTABLE_ASSIGN")
}
