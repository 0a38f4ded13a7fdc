package dispatch

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/doeshing/termbot/internal/domain"
	"github.com/doeshing/termbot/internal/ports"
)

type recordingExecutor struct {
	commands []string
	result   domain.CommandResult
}

func (e *recordingExecutor) Execute(_ context.Context, command string) domain.CommandResult {
	e.commands = append(e.commands, command)
	result := e.result
	result.Command = command
	if result.Kind == "" {
		result.Kind = domain.ResultSucceeded
		result.NoOutput = true
	}
	return result
}

type recordingFiles struct {
	reads  []string
	writes map[string]string
	result domain.FileResult
}

func (f *recordingFiles) Read(path string) domain.FileResult {
	f.reads = append(f.reads, path)
	result := f.result
	result.Op = domain.FileOpRead
	result.Path = path
	return result
}

func (f *recordingFiles) Write(path string, content string) domain.FileResult {
	if f.writes == nil {
		f.writes = map[string]string{}
	}
	f.writes[path] = content
	result := f.result
	result.Op = domain.FileOpWrite
	result.Path = path
	return result
}

type stubInspector struct {
	info  domain.SystemInfo
	procs []domain.ProcessInfo
	err   error
	limit int
}

func (s *stubInspector) Info(context.Context) (domain.SystemInfo, error) {
	return s.info, s.err
}

func (s *stubInspector) TopProcesses(_ context.Context, limit int) ([]domain.ProcessInfo, error) {
	s.limit = limit
	return s.procs, s.err
}

type stubCompletion struct {
	calls [][]domain.Turn
}

func (c *stubCompletion) Name() string { return "groq" }

func (c *stubCompletion) Complete(_ context.Context, turns []domain.Turn) (string, error) {
	c.calls = append(c.calls, turns)
	return "ok", nil
}

type memoryAudit struct {
	records []domain.AuditRecord
	saveErr error
}

func (m *memoryAudit) Save(_ context.Context, record domain.AuditRecord) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.records = append(m.records, record)
	return nil
}

func (m *memoryAudit) Records(_ context.Context, limit int, _ string) ([]domain.AuditRecord, error) {
	if limit > len(m.records) {
		limit = len(m.records)
	}
	return m.records[len(m.records)-limit:], nil
}

func (m *memoryAudit) Clear(context.Context) error             { m.records = nil; return nil }
func (m *memoryAudit) ExportJSON(context.Context, string) error { return nil }
func (m *memoryAudit) Path() string                             { return "memory" }
func (m *memoryAudit) Close() error                             { return nil }

// scriptedReader replays lines, then returns end as its final error.
type scriptedReader struct {
	lines   []string
	end     error
	prompts []string
}

func (r *scriptedReader) ReadLine(prompt string) (string, error) {
	r.prompts = append(r.prompts, prompt)
	if len(r.lines) == 0 {
		if r.end == nil {
			return "", io.EOF
		}
		return "", r.end
	}
	line := r.lines[0]
	r.lines = r.lines[1:]
	return line, nil
}

func (r *scriptedReader) Close() error { return nil }

type plainRenderer struct{}

func (plainRenderer) Render(reply domain.Reply) string {
	if reply.Speaker == "" {
		return reply.Text
	}
	return string(reply.Speaker) + " > " + reply.Text
}

type countingProgress struct {
	starts, stops int
}

func (p *countingProgress) Start() { p.starts++ }
func (p *countingProgress) Stop()  { p.stops++ }

var (
	_ ports.CommandExecutor  = (*recordingExecutor)(nil)
	_ ports.FileAccessor     = (*recordingFiles)(nil)
	_ ports.SystemInspector  = (*stubInspector)(nil)
	_ ports.AuditRepository  = (*memoryAudit)(nil)
	_ ports.LineReader       = (*scriptedReader)(nil)
	_ ports.ReplyRenderer    = plainRenderer{}
	_ ports.CompletionClient = (*stubCompletion)(nil)
)

var errBoom = errors.New("boom")

var fixedTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
