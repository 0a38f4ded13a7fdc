package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/doeshing/termbot/internal/domain"
	"github.com/doeshing/termbot/internal/pkg/logger"
	"github.com/doeshing/termbot/internal/ports"
)

// waitDelay bounds how long Wait blocks on output pipes held open by
// grandchildren after the shell itself has been killed.
const waitDelay = 500 * time.Millisecond

// Options configures a LocalExecutor.
type Options struct {
	// Shell overrides the platform shell (/bin/sh or cmd).
	Shell      string
	Timeout    time.Duration
	Classifier ports.DangerClassifier
	Confirmer  ports.Confirmer
	Logger     ports.Logger
}

// LocalExecutor runs commands on the host shell behind the danger gate.
type LocalExecutor struct {
	shell      string
	shellFlag  string
	timeout    time.Duration
	classifier ports.DangerClassifier
	confirmer  ports.Confirmer
	logger     ports.Logger
}

// NewLocalExecutor builds a new executor; the timeout defaults to 30 seconds.
func NewLocalExecutor(opts Options) *LocalExecutor {
	shell, flag := resolveShell(opts.Shell)
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = domain.DefaultCommandTimeout
	}
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}
	return &LocalExecutor{
		shell:      shell,
		shellFlag:  flag,
		timeout:    timeout,
		classifier: opts.Classifier,
		confirmer:  opts.Confirmer,
		logger:     log,
	}
}

// Shell reports the interpreter commands are handed to.
func (e *LocalExecutor) Shell() string {
	return e.shell
}

// Timeout reports the per-command wall-clock limit.
func (e *LocalExecutor) Timeout() time.Duration {
	return e.timeout
}

// Execute implements ports.CommandExecutor.
func (e *LocalExecutor) Execute(ctx context.Context, command string) domain.CommandResult {
	result := domain.CommandResult{Command: command, Timeout: e.timeout}

	if e.classifier != nil {
		risk := e.classifier.Assess(command)
		result.Dangerous = risk.Dangerous
		if risk.Dangerous && !e.confirm(ctx, command, risk) {
			result.Kind = domain.ResultCancelled
			result.Fault = domain.FaultUserCancelled
			result.Message = "command cancelled for safety"
			return result
		}
	}

	runCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	c := exec.CommandContext(runCtx, e.shell, e.shellFlag, command)
	c.WaitDelay = waitDelay
	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	e.logger.Debug("running command", map[string]interface{}{
		"command": command,
		"shell":   e.shell,
		"timeout": e.timeout.String(),
	})

	start := time.Now()
	err := c.Run()
	result.Duration = time.Since(start)

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		result.Kind = domain.ResultSucceeded
		result.Output = strings.TrimSpace(stdout.String())
		result.NoOutput = result.Output == ""
	case errors.Is(runCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil:
		result.Kind = domain.ResultTimedOut
		result.Fault = domain.FaultTimeout
		result.Message = fmt.Sprintf("command timed out (%s limit)", e.timeout)
	case ctx.Err() != nil:
		result.Kind = domain.ResultErrored
		result.Fault = domain.FaultProcessLaunch
		result.Message = fmt.Sprintf("command aborted: %v", ctx.Err())
	case errors.As(err, &exitErr):
		result.Kind = domain.ResultFailed
		result.Fault = domain.FaultProcessNonZeroExit
		result.ExitCode = exitErr.ExitCode()
		result.Output = strings.TrimSpace(stderr.String())
		if result.Output == "" {
			result.Message = fmt.Sprintf("command failed with exit code %d", result.ExitCode)
		}
	default:
		result.Kind = domain.ResultErrored
		result.Fault = domain.FaultProcessLaunch
		result.Message = err.Error()
	}

	e.logger.Info("command finished", map[string]interface{}{
		"command":     command,
		"outcome":     string(result.Kind),
		"exit_code":   result.ExitCode,
		"duration_ms": result.Duration.Milliseconds(),
	})
	return result
}

func (e *LocalExecutor) confirm(ctx context.Context, command string, risk domain.RiskAssessment) bool {
	if e.confirmer == nil {
		return false
	}
	approved, err := e.confirmer.Confirm(ctx, command, risk)
	if err != nil {
		e.logger.Warn("confirmation failed, treating as no", map[string]interface{}{
			"command": command,
			"error":   err.Error(),
		})
		return false
	}
	e.logger.Info("danger gate decision", map[string]interface{}{
		"command":  command,
		"approved": approved,
		"matched":  risk.MatchedRules,
	})
	return approved
}

func resolveShell(shell string) (string, string) {
	if shell == "" {
		if runtime.GOOS == "windows" {
			return "cmd", "/C"
		}
		return "/bin/sh", "-c"
	}
	name := shell
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	name = strings.TrimSuffix(strings.ToLower(name), ".exe")
	switch name {
	case "cmd":
		return shell, "/C"
	case "powershell", "pwsh":
		return shell, "-Command"
	default:
		return shell, "-c"
	}
}

var _ ports.CommandExecutor = (*LocalExecutor)(nil)
