package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Status represents the verdict of a submission or the kind of a failed execution
type Status string

const (
	StatusAccepted         Status = "ACCEPTED"
	StatusWrongAnswer      Status = "WRONG_ANSWER"
	StatusCompilationError Status = "COMPILATION_ERROR"
	StatusRuntimeError     Status = "RUNTIME_ERROR"
	StatusTimeout          Status = "TIMEOUT"
)

// ExecutionError is the failure of a single execution: the fragment could not be
// compiled, it threw, or it ran out of time.
type ExecutionError struct {
	Kind    Status
	Message string
}

func (e *ExecutionError) Error() string {
	return e.Message
}

// NewCompilationError creates a compilation failure
func NewCompilationError(msg string) *ExecutionError {
	return &ExecutionError{Kind: StatusCompilationError, Message: msg}
}

// NewRuntimeError creates a runtime failure
func NewRuntimeError(msg string) *ExecutionError {
	return &ExecutionError{Kind: StatusRuntimeError, Message: msg}
}

// NewTimeoutError creates a timeout failure
func NewTimeoutError(msg string) *ExecutionError {
	return &ExecutionError{Kind: StatusTimeout, Message: msg}
}

// CaseResult represents the result of a single test case execution
type CaseResult struct {
	Input           []interface{} `json:"input"`
	ExpectedOutput  interface{}   `json:"expectedOutput"`
	Output          interface{}   `json:"output"`
	Passed          bool          `json:"passed"`
	ErrorMessage    *string       `json:"errorMessage"`
	ErrorKind       Status        `json:"errorKind,omitempty"`
	ExecutionTimeMs int64         `json:"executionTimeMs"`
}

// MarshalJSON keeps values that encoding/json rejects (NaN, Infinity) from breaking the report.
func (r CaseResult) MarshalJSON() ([]byte, error) {
	type plain CaseResult
	safe := plain(r)
	if r.Input != nil {
		safe.Input = JSONSafe(r.Input).([]interface{})
	}
	safe.ExpectedOutput = JSONSafe(r.ExpectedOutput)
	safe.Output = JSONSafe(r.Output)
	return json.Marshal(safe)
}

// Failed reports whether execution raised instead of returning.
func (r CaseResult) Failed() bool {
	return r.ErrorMessage != nil
}

// Report is the outcome of judging one submission against every test case of a problem
type Report struct {
	Results   []CaseResult `json:"results"`
	AllPassed bool         `json:"allPassed"`
}

// Verdict is the presentation-level reading of a report.
type Verdict struct {
	Status     Status `json:"status"`
	FailedCase *int   `json:"failedCase,omitempty"`
	Message    string `json:"message"`
}

// Verdict classifies the report by its first failing case.
func (r *Report) Verdict() Verdict {
	for i, res := range r.Results {
		if res.Passed {
			continue
		}
		idx := i
		if res.Failed() {
			kind := res.ErrorKind
			if kind == "" {
				kind = StatusRuntimeError
			}
			return Verdict{
				Status:     kind,
				FailedCase: &idx,
				Message:    fmt.Sprintf("%s on test case %d: %s", humanStatus(kind), i+1, *res.ErrorMessage),
			}
		}
		return Verdict{
			Status:     StatusWrongAnswer,
			FailedCase: &idx,
			Message:    fmt.Sprintf("Wrong answer on test case %d", i+1),
		}
	}
	return Verdict{Status: StatusAccepted, Message: "Accepted"}
}

func humanStatus(s Status) string {
	switch s {
	case StatusCompilationError:
		return "Compilation error"
	case StatusTimeout:
		return "Time limit exceeded"
	default:
		return "Runtime error"
	}
}

// SubmissionResult is a judged submission as returned to clients and kept in the result store
type SubmissionResult struct {
	ID          uuid.UUID `json:"submissionId"`
	ProblemID   string    `json:"problemId"`
	Report      Report    `json:"report"`
	Verdict     Verdict   `json:"verdict"`
	SubmittedAt time.Time `json:"submittedAt"`
	CompletedAt time.Time `json:"completedAt"`
}
