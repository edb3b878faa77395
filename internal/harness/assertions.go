package harness

import (
	"fmt"
	"slices"
	"strings"
)

// AssertionError is returned when an assertion fails.
// It includes the trace to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	fmt.Fprintf(&buf, "\nFull trace:\n")
	for _, event := range e.Trace {
		switch event.Type {
		case EventLine:
			fmt.Fprintf(&buf, "  [%d] %s: %s\n", event.Seq, event.Lesson, event.Text)
		case EventFault:
			fmt.Fprintf(&buf, "  [%d] %s: fault %s\n", event.Seq, event.Lesson, event.Code)
		}
	}

	return buf.String()
}

// assertOutputEquals checks that the printed lines equal the expected lines exactly.
func assertOutputEquals(result *Result, assertion Assertion) error {
	actual := result.Lines()
	expected := assertion.Lines
	if expected == nil {
		expected = []string{}
	}
	if slices.Equal(actual, expected) {
		return nil
	}
	return &AssertionError{
		Type:     AssertOutputEquals,
		Expected: fmt.Sprintf("%q", expected),
		Actual:   fmt.Sprintf("%q", actual),
		Trace:    result.Trace,
	}
}

// assertLineContains checks that some printed line contains the text.
func assertLineContains(result *Result, assertion Assertion) error {
	for _, line := range result.Lines() {
		if strings.Contains(line, assertion.Text) {
			return nil
		}
	}
	return &AssertionError{
		Type:     AssertLineContains,
		Expected: fmt.Sprintf("a line containing %q", assertion.Text),
		Actual:   "not found in output",
		Trace:    result.Trace,
	}
}

// assertFaultRaised checks that a fault with the code was raised,
// optionally by a specific lesson.
func assertFaultRaised(result *Result, assertion Assertion) error {
	for _, f := range result.Faults() {
		if f.Code != assertion.Code {
			continue
		}
		if assertion.Lesson == "" || f.Lesson == assertion.Lesson {
			return nil
		}
	}

	expected := fmt.Sprintf("fault %s", assertion.Code)
	if assertion.Lesson != "" {
		expected += fmt.Sprintf(" from lesson %s", assertion.Lesson)
	}
	return &AssertionError{
		Type:     AssertFaultRaised,
		Expected: expected,
		Actual:   fmt.Sprintf("faults raised: %v", faultCodes(result)),
		Trace:    result.Trace,
	}
}

// assertFaultCount checks that exactly Count faults were raised.
func assertFaultCount(result *Result, assertion Assertion) error {
	count := len(result.Faults())
	if count == assertion.Count {
		return nil
	}
	return &AssertionError{
		Type:     AssertFaultCount,
		Expected: fmt.Sprintf("%d fault(s)", assertion.Count),
		Actual:   fmt.Sprintf("%d fault(s): %v", count, faultCodes(result)),
		Trace:    result.Trace,
	}
}

func faultCodes(result *Result) []string {
	codes := []string{}
	for _, f := range result.Faults() {
		codes = append(codes, f.Code)
	}
	return codes
}

// EvaluateAssertions runs all assertions and returns the failure messages.
// Evaluation continues past failures so every problem is reported.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errs []string

	for i, assertion := range assertions {
		var err error
		switch assertion.Type {
		case AssertOutputEquals:
			err = assertOutputEquals(result, assertion)
		case AssertLineContains:
			err = assertLineContains(result, assertion)
		case AssertFaultRaised:
			err = assertFaultRaised(result, assertion)
		case AssertFaultCount:
			err = assertFaultCount(result, assertion)
		default:
			err = fmt.Errorf("unknown assertion type %q", assertion.Type)
		}

		if err != nil {
			errs = append(errs, fmt.Sprintf("assertion %d (%s): %v", i, assertion.Type, err))
		}
	}

	return errs
}
