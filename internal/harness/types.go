package harness

import "github.com/roach88/transmerge/internal/pipeline"

// TraceEvent is one line of pipeline activity.
type TraceEvent struct {
	Kind    string `json:"kind"` // "log", "warn" or "report"
	Message string `json:"message"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when every assertion held.
	Pass bool `json:"pass"`

	// Trace holds progress, warnings and reports in the order they happened.
	Trace []TraceEvent `json:"trace"`

	// Errors contains assertion failure messages.
	Errors []string `json:"errors,omitempty"`

	// Output maps each file in the output folder to its content.
	Output map[string]string `json:"output"`

	// Run is the pipeline result; nil when the run aborted.
	Run *pipeline.Result `json:"-"`

	// RunErr is the error that aborted the run, if any.
	RunErr error `json:"-"`

	// RunErrText is RunErr's message with scenario paths made relative.
	RunErrText string `json:"error,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
		Output: map[string]string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddTrace appends a trace event.
func (r *Result) AddTrace(kind, message string) {
	r.Trace = append(r.Trace, TraceEvent{Kind: kind, Message: message})
}
