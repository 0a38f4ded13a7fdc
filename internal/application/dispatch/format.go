package dispatch

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/doeshing/termbot/internal/domain"
)

const (
	msgMissingCommand   = "❌ Please provide a command to execute"
	msgMissingReadPath  = "❌ Please provide a file path to read"
	msgMissingWritePath = "❌ Please provide a file path to write to"
	msgMissingPrompt    = "❌ Please describe the code or command to generate"
	msgWriteCancelled   = "❌ Write operation cancelled"
	msgWriteInstruction = "Enter content to write (press Ctrl+D when done, Ctrl+C to cancel):"
	msgHistoryDisabled  = "❌ Command history is disabled"
	msgHistoryLimit     = "❌ History limit must be a positive number"
	msgSessionReset     = "🧹 Conversation history cleared."
	msgGoodbye          = "Goodbye!"
)

// Banner lists every input shape the REPL understands.
const Banner = `🤖 Enhanced Terminal Chatbot Ready! Type 'exit' to quit.
📋 Available commands:
   /exec <command>     - Execute shell command
   /read <filepath>    - Read file content
   /write <filepath>   - Write to file (will prompt for content)
   /sysinfo            - Show system information
   /processes          - List running processes
   /code <request>     - Generate code/commands (no execution)
   /cmd <request>      - Generate commands (no execution)
   /history [n]        - Show recently executed commands
   /reset              - Start a fresh conversation
   /help               - Show this list`

func formatCommandResult(result domain.CommandResult) string {
	switch result.Kind {
	case domain.ResultSucceeded:
		if result.NoOutput {
			return "✅ Command executed successfully (no output)"
		}
		return "✅ Command executed successfully:\n" + result.Output
	case domain.ResultFailed:
		if result.Output != "" {
			return "❌ Command failed:\n" + result.Output
		}
		return fmt.Sprintf("❌ Command failed with exit code %d", result.ExitCode)
	case domain.ResultTimedOut:
		return fmt.Sprintf("⏱️ Command timed out (%s limit)", result.Timeout)
	case domain.ResultCancelled:
		return "❌ Command cancelled for safety."
	default:
		return "❌ Error executing command: " + result.Message
	}
}

func formatRead(result domain.FileResult) string {
	switch result.Fault {
	case domain.FaultNone:
		return fmt.Sprintf("📄 File content of '%s':\n%s", result.Path, result.Content)
	case domain.FaultFileNotFound:
		return fmt.Sprintf("❌ File '%s' not found", result.Path)
	case domain.FaultPermissionDenied:
		return fmt.Sprintf("❌ Permission denied to read '%s'", result.Path)
	default:
		return fmt.Sprintf("❌ Error reading file: %v", result.Err)
	}
}

func formatWrite(result domain.FileResult) string {
	switch result.Fault {
	case domain.FaultNone:
		return fmt.Sprintf("✅ Content written to '%s'", result.Path)
	case domain.FaultPermissionDenied:
		return fmt.Sprintf("❌ Permission denied to write to '%s'", result.Path)
	default:
		return fmt.Sprintf("❌ Error writing file: %v", result.Err)
	}
}

func formatSystemInfo(info domain.SystemInfo) string {
	var b strings.Builder
	b.WriteString("🖥️ System Information:\n")
	row := func(key, value string) {
		if value != "" {
			fmt.Fprintf(&b, "  %s: %s\n", key, value)
		}
	}
	row("OS", info.OS)
	row("OS Version", info.OSVersion)
	row("Architecture", info.Architecture)
	row("Processor", info.Processor)
	row("CPU Cores", fmt.Sprintf("%d", info.CPUCores))
	row("Memory", humanize.IBytes(info.MemoryTotal))
	row("Disk Usage", fmt.Sprintf("%.1f%% used", info.DiskUsedPct))
	row("Current Directory", info.WorkingDir)
	row("Shell", info.Shell)
	row("User", info.User)
	if len(info.AvailableTools) > 0 {
		row("Tools", strings.Join(info.AvailableTools, ", "))
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatProcesses(procs []domain.ProcessInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🔄 Top %d Processes by CPU Usage:", len(procs))
	for _, p := range procs {
		fmt.Fprintf(&b, "\n  PID: %-8d CPU: %.1f%%  Name: %s", p.PID, p.CPUPercent, p.Name)
	}
	return b.String()
}

func formatHistory(records []domain.AuditRecord) string {
	if len(records) == 0 {
		return "📜 No recorded activity yet."
	}
	var b strings.Builder
	b.WriteString("📜 Recent activity:")
	for _, rec := range records {
		flag := ""
		if rec.Dangerous {
			flag = " ⚠️"
		}
		fmt.Fprintf(&b, "\n  %-16s %-5s %s%s -> %s", humanize.Time(rec.Timestamp), rec.Action, rec.Target, flag, rec.Outcome)
		if rec.Action == domain.AuditExec && rec.ExecResult().Ran() {
			fmt.Fprintf(&b, " (exit %d, %dms)", rec.ExitCode, rec.DurationMS)
		}
	}
	return b.String()
}
