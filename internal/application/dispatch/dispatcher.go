package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/doeshing/termbot/internal/domain"
	"github.com/doeshing/termbot/internal/ports"
)

// State is the REPL lifecycle. Terminated is final.
type State int

const (
	Running State = iota
	Terminated
)

// Conversation is the chat session the dispatcher forwards plain text to.
type Conversation interface {
	ID() string
	Chat(ctx context.Context, input string) domain.Reply
	Generate(ctx context.Context, prompt string) domain.Reply
	Reset()
}

// Dispatcher routes classified input to the component that serves it.
// Audit, Progress and Logger are optional.
type Dispatcher struct {
	Executor  ports.CommandExecutor
	Files     ports.FileAccessor
	Inspector ports.SystemInspector
	Session   Conversation
	Audit     ports.AuditRepository
	Input     ports.LineReader
	Output    io.Writer
	Progress  ports.ProgressIndicator
	Logger    ports.Logger
}

// Handle classifies one input line and produces the reply to display.
// An empty reply text means nothing should be printed.
func (d *Dispatcher) Handle(ctx context.Context, line string) (domain.Reply, State) {
	action := Parse(line)
	d.debug("dispatching input", map[string]interface{}{"kind": string(action.Kind)})

	switch action.Kind {
	case KindEmpty:
		return domain.Reply{}, Running
	case KindExit:
		return domain.Reply{Text: msgGoodbye}, Terminated
	case KindExec:
		return d.exec(ctx, action.Arg), Running
	case KindRead:
		return d.read(action.Arg), Running
	case KindWrite:
		return d.write(ctx, action.Arg), Running
	case KindSysinfo:
		return d.sysinfo(ctx), Running
	case KindProcesses:
		return d.processes(ctx), Running
	case KindGenerate:
		if action.Arg == "" {
			return missing(msgMissingPrompt), Running
		}
		return d.remote(func() domain.Reply { return d.Session.Generate(ctx, action.Arg) }), Running
	case KindHelp:
		return system(Banner), Running
	case KindReset:
		d.Session.Reset()
		return system(msgSessionReset), Running
	case KindHistory:
		return d.history(ctx, action.Limit), Running
	default:
		return d.remote(func() domain.Reply { return d.Session.Chat(ctx, action.Arg) }), Running
	}
}

func (d *Dispatcher) exec(ctx context.Context, command string) domain.Reply {
	if command == "" {
		return missing(msgMissingCommand)
	}
	result := d.Executor.Execute(ctx, command)
	d.audit(ctx, domain.AuditRecord{
		Action:     domain.AuditExec,
		Target:     command,
		Dangerous:  result.Dangerous,
		Outcome:    string(result.Kind),
		ExitCode:   result.ExitCode,
		DurationMS: result.Duration.Milliseconds(),
	})
	return domain.Reply{Speaker: domain.SpeakerSystem, Text: formatCommandResult(result), Fault: result.Fault}
}

func (d *Dispatcher) read(path string) domain.Reply {
	if path == "" {
		return missing(msgMissingReadPath)
	}
	result := d.Files.Read(path)
	return domain.Reply{Speaker: domain.SpeakerSystem, Text: formatRead(result), Fault: result.Fault}
}

func (d *Dispatcher) write(ctx context.Context, path string) domain.Reply {
	if path == "" {
		return missing(msgMissingWritePath)
	}
	if d.Output != nil {
		fmt.Fprintln(d.Output, msgWriteInstruction)
	}

	content, err := d.collectLines()
	if err != nil {
		d.debug("write aborted", map[string]interface{}{"path": path, "reason": err.Error()})
		return domain.Reply{Speaker: domain.SpeakerSystem, Text: msgWriteCancelled, Fault: domain.FaultUserCancelled}
	}

	result := d.Files.Write(path, content)
	outcome := "written"
	if !result.OK() {
		outcome = string(result.Fault)
	}
	d.audit(ctx, domain.AuditRecord{Action: domain.AuditWrite, Target: path, Outcome: outcome})
	return domain.Reply{Speaker: domain.SpeakerSystem, Text: formatWrite(result), Fault: result.Fault}
}

// collectLines reads until end-of-input. Each line is stored with a trailing newline.
// Any error other than io.EOF, including an interrupt, abandons the write.
func (d *Dispatcher) collectLines() (string, error) {
	if d.Input == nil {
		return "", errors.New("no input available")
	}
	var b strings.Builder
	for {
		line, err := d.Input.ReadLine("")
		if errors.Is(err, io.EOF) {
			return b.String(), nil
		}
		if err != nil {
			return "", err
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
}

func (d *Dispatcher) sysinfo(ctx context.Context) domain.Reply {
	info, err := d.Inspector.Info(ctx)
	if err != nil {
		return domain.Reply{Speaker: domain.SpeakerSystem, Text: "❌ Error getting system info: " + err.Error(), Fault: domain.FaultOtherIO}
	}
	return system(formatSystemInfo(info))
}

func (d *Dispatcher) processes(ctx context.Context) domain.Reply {
	procs, err := d.Inspector.TopProcesses(ctx, domain.DefaultTopProcesses)
	if err != nil {
		return domain.Reply{Speaker: domain.SpeakerSystem, Text: "❌ Error listing processes: " + err.Error(), Fault: domain.FaultOtherIO}
	}
	return system(formatProcesses(procs))
}

func (d *Dispatcher) history(ctx context.Context, limit int) domain.Reply {
	if d.Audit == nil {
		return system(msgHistoryDisabled)
	}
	if limit < 0 {
		return missing(msgHistoryLimit)
	}
	if limit == 0 {
		limit = domain.DefaultHistoryLimit
	}
	records, err := d.Audit.Records(ctx, limit, "")
	if err != nil {
		return domain.Reply{Speaker: domain.SpeakerSystem, Text: "❌ Error reading history: " + err.Error(), Fault: domain.FaultOtherIO}
	}
	return system(formatHistory(records))
}

func (d *Dispatcher) remote(call func() domain.Reply) domain.Reply {
	if d.Progress != nil {
		d.Progress.Start()
		defer d.Progress.Stop()
	}
	return call()
}

// audit stores a record when a repository is configured. Failures are only logged.
func (d *Dispatcher) audit(ctx context.Context, record domain.AuditRecord) {
	if d.Audit == nil {
		return
	}
	record.Timestamp = time.Now()
	if d.Session != nil {
		record.SessionID = d.Session.ID()
	}
	if err := d.Audit.Save(ctx, record); err != nil && d.Logger != nil {
		d.Logger.Warn("audit save failed", map[string]interface{}{
			"action": string(record.Action),
			"error":  err.Error(),
		})
	}
}

func (d *Dispatcher) debug(msg string, fields map[string]interface{}) {
	if d.Logger != nil {
		d.Logger.Debug(msg, fields)
	}
}

func system(text string) domain.Reply {
	return domain.Reply{Speaker: domain.SpeakerSystem, Text: text}
}

func missing(text string) domain.Reply {
	return domain.Reply{Speaker: domain.SpeakerSystem, Text: text, Fault: domain.FaultMissingArgument}
}
