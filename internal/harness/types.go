package harness

// Trace event types.
const (
	EventLine  = "line"
	EventFault = "fault"
)

// TraceEvent is one observable effect of a program execution: a printed
// line or a raised fault.
type TraceEvent struct {
	Type    string `json:"type"` // "line" or "fault"
	Lesson  string `json:"lesson"`
	Text    string `json:"text,omitempty"`
	Code    string `json:"code,omitempty"`
	Binding string `json:"binding,omitempty"`
	Seq     int64  `json:"seq"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall scenario success.
	// True if all assertions hold.
	Pass bool `json:"pass"`

	// Trace contains every printed line and raised fault in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains assertion failure messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds an assertion failure and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddLineTrace adds a printed line to the trace.
func (r *Result) AddLineTrace(lesson, text string, seq int64) {
	r.Trace = append(r.Trace, TraceEvent{
		Type:   EventLine,
		Lesson: lesson,
		Text:   text,
		Seq:    seq,
	})
}

// AddFaultTrace adds a raised fault to the trace.
func (r *Result) AddFaultTrace(lesson, code, binding string, seq int64) {
	r.Trace = append(r.Trace, TraceEvent{
		Type:    EventFault,
		Lesson:  lesson,
		Code:    code,
		Binding: binding,
		Seq:     seq,
	})
}

// Lines returns the text of every line event.
func (r *Result) Lines() []string {
	lines := []string{}
	for _, e := range r.Trace {
		if e.Type == EventLine {
			lines = append(lines, e.Text)
		}
	}
	return lines
}

// Faults returns every fault event.
func (r *Result) Faults() []TraceEvent {
	var faults []TraceEvent
	for _, e := range r.Trace {
		if e.Type == EventFault {
			faults = append(faults, e)
		}
	}
	return faults
}
