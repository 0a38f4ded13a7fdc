package executor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/termbot/internal/domain"
	"github.com/doeshing/termbot/internal/infrastructure/security"
)

func newTestExecutor(t *testing.T, confirmer *StaticConfirmer, timeout time.Duration) *LocalExecutor {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("executor tests drive /bin/sh")
	}
	classifier, err := security.NewClassifier("")
	require.NoError(t, err)
	return NewLocalExecutor(Options{
		Timeout:    timeout,
		Classifier: classifier,
		Confirmer:  confirmer,
	})
}

func TestExecuteSucceedsWithOutput(t *testing.T) {
	exec := newTestExecutor(t, AutoDeny(), 5*time.Second)

	result := exec.Execute(context.Background(), "echo hello")

	assert.Equal(t, domain.ResultSucceeded, result.Kind)
	assert.Equal(t, "hello", result.Output)
	assert.False(t, result.NoOutput)
	assert.Equal(t, 0, result.ExitCode)
	assert.Equal(t, domain.FaultNone, result.Fault)
}

func TestExecuteMarksSilentSuccess(t *testing.T) {
	exec := newTestExecutor(t, AutoDeny(), 5*time.Second)

	result := exec.Execute(context.Background(), "true")

	assert.Equal(t, domain.ResultSucceeded, result.Kind)
	assert.Empty(t, result.Output)
	assert.True(t, result.NoOutput)
}

func TestExecuteReportsStderrOnFailure(t *testing.T) {
	exec := newTestExecutor(t, AutoDeny(), 5*time.Second)

	result := exec.Execute(context.Background(), "echo oops >&2; exit 3")

	assert.Equal(t, domain.ResultFailed, result.Kind)
	assert.Equal(t, domain.FaultProcessNonZeroExit, result.Fault)
	assert.Equal(t, 3, result.ExitCode)
	assert.Equal(t, "oops", result.Output)
	assert.Empty(t, result.Message)
}

func TestExecuteFallsBackToExitCodeMessage(t *testing.T) {
	exec := newTestExecutor(t, AutoDeny(), 5*time.Second)

	result := exec.Execute(context.Background(), "exit 4")

	assert.Equal(t, domain.ResultFailed, result.Kind)
	assert.Equal(t, 4, result.ExitCode)
	assert.Empty(t, result.Output)
	assert.Contains(t, result.Message, "exit code 4")
}

func TestExecuteTimesOut(t *testing.T) {
	exec := newTestExecutor(t, AutoDeny(), 200*time.Millisecond)

	result := exec.Execute(context.Background(), "sleep 5")

	assert.Equal(t, domain.ResultTimedOut, result.Kind)
	assert.Equal(t, domain.FaultTimeout, result.Fault)
	assert.Contains(t, result.Message, "200ms limit")
	assert.Less(t, result.Duration, 4*time.Second)
}

func TestExecuteDefaultsToThirtySecondLimit(t *testing.T) {
	exec := NewLocalExecutor(Options{})
	assert.Equal(t, 30*time.Second, exec.Timeout())
}

func TestExecuteDeniedDangerousCommandHasNoSideEffect(t *testing.T) {
	confirmer := AutoDeny()
	exec := newTestExecutor(t, confirmer, 5*time.Second)

	target := filepath.Join(t.TempDir(), "keep.txt")
	require.NoError(t, os.WriteFile(target, []byte("data"), 0o600))

	result := exec.Execute(context.Background(), "rm -f "+target)

	assert.Equal(t, domain.ResultCancelled, result.Kind)
	assert.Equal(t, domain.FaultUserCancelled, result.Fault)
	assert.True(t, result.Dangerous)
	assert.Equal(t, 1, confirmer.Calls)
	assert.FileExists(t, target)
}

func TestExecuteApprovedDangerousCommandRuns(t *testing.T) {
	confirmer := AutoAllow()
	exec := newTestExecutor(t, confirmer, 5*time.Second)

	target := filepath.Join(t.TempDir(), "gone.txt")
	require.NoError(t, os.WriteFile(target, []byte("data"), 0o600))

	result := exec.Execute(context.Background(), "rm -f "+target)

	assert.Equal(t, domain.ResultSucceeded, result.Kind)
	assert.True(t, result.NoOutput)
	assert.Equal(t, 1, confirmer.Calls)
	assert.NoFileExists(t, target)
}

func TestExecuteConfirmerErrorCancels(t *testing.T) {
	confirmer := &StaticConfirmer{Answer: true, Err: errors.New("stdin closed")}
	exec := newTestExecutor(t, confirmer, 5*time.Second)

	result := exec.Execute(context.Background(), "shutdown -h now")

	assert.Equal(t, domain.ResultCancelled, result.Kind)
}

func TestExecuteSafeCommandSkipsConfirmation(t *testing.T) {
	confirmer := AutoDeny()
	exec := newTestExecutor(t, confirmer, 5*time.Second)

	result := exec.Execute(context.Background(), "pwd")

	assert.Equal(t, domain.ResultSucceeded, result.Kind)
	assert.Zero(t, confirmer.Calls)
	assert.False(t, result.Dangerous)
}

func TestExecuteInheritsEnvironment(t *testing.T) {
	exec := newTestExecutor(t, AutoDeny(), 5*time.Second)
	t.Setenv("SAMPLE_VALUE", "42")

	result := exec.Execute(context.Background(), "echo $SAMPLE_VALUE")

	assert.Equal(t, "42", result.Output)
}

func TestExecuteMissingShellIsLaunchFault(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix paths")
	}
	exec := NewLocalExecutor(Options{Shell: "/nonexistent/shell", Confirmer: AutoDeny()})

	result := exec.Execute(context.Background(), "echo hi")

	assert.Equal(t, domain.ResultErrored, result.Kind)
	assert.Equal(t, domain.FaultProcessLaunch, result.Fault)
	assert.NotEmpty(t, result.Message)
}

func TestResolveShell(t *testing.T) {
	tests := []struct {
		shell     string
		wantShell string
		wantFlag  string
	}{
		{shell: "/bin/bash", wantShell: "/bin/bash", wantFlag: "-c"},
		{shell: `C:\Windows\System32\cmd.exe`, wantShell: `C:\Windows\System32\cmd.exe`, wantFlag: "/C"},
		{shell: "pwsh", wantShell: "pwsh", wantFlag: "-Command"},
	}
	for _, tt := range tests {
		shell, flag := resolveShell(tt.shell)
		if shell != tt.wantShell || flag != tt.wantFlag {
			t.Errorf("resolveShell(%q) = (%q, %q), want (%q, %q)", tt.shell, shell, flag, tt.wantShell, tt.wantFlag)
		}
	}
}
