package domain

import "time"

// ResultKind tags the outcome of an execution attempt.
type ResultKind string

const (
	ResultSucceeded ResultKind = "succeeded"
	ResultFailed    ResultKind = "failed"
	ResultCancelled ResultKind = "cancelled"
	ResultTimedOut  ResultKind = "timed_out"
	ResultErrored   ResultKind = "errored"
)

// CommandResult is produced by the executor and consumed immediately for display.
//
// Output carries trimmed stdout for Succeeded and trimmed stderr for Failed.
// NoOutput marks a successful run that printed nothing, so callers can tell
// "ran silently" from "did not run".
type CommandResult struct {
	Kind      ResultKind
	Command   string
	Output    string
	NoOutput  bool
	ExitCode  int
	Message   string
	Timeout   time.Duration
	Duration  time.Duration
	Dangerous bool
	Fault     Fault
}

// Ran reports whether a child process was actually started to completion or timeout.
func (r CommandResult) Ran() bool {
	switch r.Kind {
	case ResultSucceeded, ResultFailed, ResultTimedOut:
		return true
	default:
		return false
	}
}
