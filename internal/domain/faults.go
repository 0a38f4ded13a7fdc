package domain

// Fault names every user-facing failure category. Components convert their
// internal errors into one of these before anything reaches the REPL.
type Fault string

const (
	FaultNone                   Fault = ""
	FaultUserCancelled          Fault = "user_cancelled"
	FaultTimeout                Fault = "timeout"
	FaultProcessNonZeroExit     Fault = "process_non_zero_exit"
	FaultProcessLaunch          Fault = "process_launch"
	FaultFileNotFound           Fault = "file_not_found"
	FaultPermissionDenied       Fault = "permission_denied"
	FaultOtherIO                Fault = "other_io"
	FaultRemoteQuotaOrRateLimit Fault = "remote_quota_or_rate_limit"
	FaultRemoteAuth             Fault = "remote_auth"
	FaultRemoteUnclassified     Fault = "remote_unclassified"
	FaultMissingArgument        Fault = "missing_argument"
)

// CompletionError is returned by completion clients so callers can tell
// "retry later", "fix credentials" and everything else apart.
type CompletionError struct {
	Fault      Fault
	StatusCode int
	Err        error
}

func (e *CompletionError) Error() string {
	if e.Err == nil {
		return string(e.Fault)
	}
	return e.Err.Error()
}

func (e *CompletionError) Unwrap() error {
	return e.Err
}
