package system

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/termbot/internal/domain"
)

func TestInfoReportsHost(t *testing.T) {
	inspector := NewInspector(nil)

	info, err := inspector.Info(context.Background())
	require.NoError(t, err)

	wd, _ := os.Getwd()
	assert.NotEmpty(t, info.OS)
	assert.NotEmpty(t, info.Architecture)
	assert.Positive(t, info.CPUCores)
	assert.NotZero(t, info.MemoryTotal)
	assert.GreaterOrEqual(t, info.DiskUsedPct, 0.0)
	assert.LessOrEqual(t, info.DiskUsedPct, 100.0)
	assert.Equal(t, wd, info.WorkingDir)
}

func TestTopProcessesRespectsLimit(t *testing.T) {
	inspector := NewInspector(nil)

	procs, err := inspector.TopProcesses(context.Background(), 3)
	require.NoError(t, err)

	assert.LessOrEqual(t, len(procs), 3)
	for i := 1; i < len(procs); i++ {
		assert.GreaterOrEqual(t, procs[i-1].CPUPercent, procs[i].CPUPercent)
	}
}

func TestTopByCPU(t *testing.T) {
	procs := []domain.ProcessInfo{
		{PID: 1, Name: "idle", CPUPercent: 0},
		{PID: 2, Name: "build", CPUPercent: 80},
		{PID: 3, Name: "editor", CPUPercent: 5},
		{PID: 4, Name: "db", CPUPercent: 20},
	}

	top := topByCPU(procs, 2)

	require.Len(t, top, 2)
	assert.Equal(t, "build", top[0].Name)
	assert.Equal(t, "db", top[1].Name)
}

func TestDisplayOS(t *testing.T) {
	tests := map[string]string{
		"darwin":  "macOS",
		"linux":   "Linux",
		"windows": "Windows",
		"plan9":   "plan9",
	}
	for goos, want := range tests {
		if got := displayOS(goos); got != want {
			t.Errorf("displayOS(%q) = %q, want %q", goos, got, want)
		}
	}
}

func TestDetectShellUsesBaseName(t *testing.T) {
	t.Setenv("SHELL", "/usr/local/bin/zsh")
	assert.Equal(t, "zsh", detectShell())
}
