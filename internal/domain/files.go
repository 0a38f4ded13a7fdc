package domain

// FileOp names the accessor operation a FileResult belongs to.
type FileOp string

const (
	FileOpRead  FileOp = "read"
	FileOpWrite FileOp = "write"
)

// FileResult is the outcome of a read or write. Fault is FaultNone on success.
type FileResult struct {
	Op      FileOp
	Path    string
	Content string
	Bytes   int
	Fault   Fault
	Err     error
}

// OK reports whether the operation completed.
func (r FileResult) OK() bool {
	return r.Fault == FaultNone
}
