// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// This package establishes the contract between the application core and external
// adapters (infrastructure). The dispatcher and chat session depend only on these
// abstractions, so the shell, the filesystem, the terminal and the remote
// completion service can all be swapped for stubs in tests.
//
// Key architectural concepts:
//   - Ports: Interfaces defined here (e.g., CommandExecutor, CompletionClient)
//   - Adapters: Concrete implementations in the infrastructure layer
//   - Dependency inversion: Application depends on abstractions, not implementations
package ports

import (
	"context"
	"errors"

	"github.com/doeshing/termbot/internal/domain"
)

// ErrInterrupted is returned by a LineReader when the user presses Ctrl+C at a prompt.
var ErrInterrupted = errors.New("input interrupted")

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.termbot/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// DangerClassifier decides whether a command matches a known dangerous pattern.
type DangerClassifier interface {
	IsDangerous(command string) bool
	Assess(command string) domain.RiskAssessment
}

// Confirmer obtains a synchronous yes/no decision from a human before a risky action.
type Confirmer interface {
	Confirm(ctx context.Context, command string, risk domain.RiskAssessment) (bool, error)
}

// CommandExecutor runs shell commands behind the danger gate.
type CommandExecutor interface {
	Execute(ctx context.Context, command string) domain.CommandResult
}

// FileAccessor reads and writes user files, reporting faults as outcomes.
type FileAccessor interface {
	Read(path string) domain.FileResult
	Write(path string, content string) domain.FileResult
}

// CompletionClient is the remote chat-completion collaborator.
// Errors should be *domain.CompletionError so callers can classify them.
type CompletionClient interface {
	Name() string
	Complete(ctx context.Context, turns []domain.Turn) (string, error)
}

// SystemInspector reports host and process state for /sysinfo and /processes.
type SystemInspector interface {
	Info(ctx context.Context) (domain.SystemInfo, error)
	TopProcesses(ctx context.Context, limit int) ([]domain.ProcessInfo, error)
}

// AuditRepository persists executed commands and file writes.
type AuditRepository interface {
	Save(ctx context.Context, record domain.AuditRecord) error
	Records(ctx context.Context, limit int, search string) ([]domain.AuditRecord, error)
	Clear(ctx context.Context) error
	ExportJSON(ctx context.Context, dest string) error
	Path() string
	Close() error
}

// LineReader reads one line of interactive input.
// It returns io.EOF on end-of-input and ErrInterrupted on Ctrl+C.
type LineReader interface {
	ReadLine(prompt string) (string, error)
	Close() error
}

// ReplyRenderer turns a dispatcher reply into terminal text.
type ReplyRenderer interface {
	Render(reply domain.Reply) string
}

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (stdout, files, external services).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}

// ProgressIndicator signals that a blocking remote call is in flight.
type ProgressIndicator interface {
	Start()
	Stop()
}
