package domain

import "time"

// AuditAction names what an audit record describes.
type AuditAction string

const (
	AuditExec  AuditAction = "exec"
	AuditWrite AuditAction = "write"
)

// AuditRecord captures an executed command or file write. Conversation turns are never audited.
type AuditRecord struct {
	Timestamp  time.Time   `json:"timestamp"`
	SessionID  string      `json:"session_id"`
	Action     AuditAction `json:"action"`
	Target     string      `json:"target"`
	Dangerous  bool        `json:"dangerous"`
	Outcome    string      `json:"outcome"`
	ExitCode   int         `json:"exit_code"`
	DurationMS int64       `json:"duration_ms"`
}

// ExecResult rebuilds the result kind and exit details an exec record was saved with.
func (r AuditRecord) ExecResult() CommandResult {
	return CommandResult{
		Kind:     ResultKind(r.Outcome),
		ExitCode: r.ExitCode,
		Duration: time.Duration(r.DurationMS) * time.Millisecond,
	}
}
