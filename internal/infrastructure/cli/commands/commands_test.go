package commands

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/termbot/internal/app"
	"github.com/doeshing/termbot/internal/domain"
	"github.com/doeshing/termbot/internal/infrastructure/history"
	"github.com/doeshing/termbot/internal/infrastructure/security"
)

func containerWithHistory(t *testing.T) *app.Container {
	t.Helper()
	store := history.NewFileStore(filepath.Join(t.TempDir(), "history.jsonl"))
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, domain.AuditRecord{Timestamp: time.Now(), Action: domain.AuditExec, Target: "ls -la", Outcome: "succeeded", DurationMS: 7}))
	require.NoError(t, store.Save(ctx, domain.AuditRecord{Timestamp: time.Now(), Action: domain.AuditExec, Target: "rm -rf build", Dangerous: true, Outcome: "cancelled"}))
	return &app.Container{AuditStore: store}
}

func run(t *testing.T, c *app.Container, args ...string) (string, error) {
	t.Helper()
	cmd := NewHistoryCommand(func() *app.Container { return c })
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestHistoryListAndQuery(t *testing.T) {
	c := containerWithHistory(t)

	out, err := run(t, c, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "ls -la")
	assert.Contains(t, out, "exit=0 7ms")
	assert.Contains(t, out, "rm -rf build [dangerous] -> cancelled")
	assert.NotContains(t, out, "cancelled exit=")

	out, err = run(t, c, "list", "--query", "rm")
	require.NoError(t, err)
	assert.NotContains(t, out, "ls -la")
}

func TestHistoryClearThenEmpty(t *testing.T) {
	c := containerWithHistory(t)

	out, err := run(t, c, "clear")
	require.NoError(t, err)
	assert.Contains(t, out, MsgHistoryCleared)

	out, err = run(t, c, "list")
	require.NoError(t, err)
	assert.Contains(t, out, MsgNoHistoryRecorded)
}

func TestHistoryExport(t *testing.T) {
	c := containerWithHistory(t)
	dest := filepath.Join(t.TempDir(), "export.jsonl")

	_, err := run(t, c, "export", dest)
	require.NoError(t, err)
	assert.FileExists(t, dest)
}

func TestHistoryDisabled(t *testing.T) {
	_, err := run(t, &app.Container{}, "list")
	assert.EqualError(t, err, ErrHistoryDisabled)
}

func TestVersionCommand(t *testing.T) {
	cmd := NewVersionCommand()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "termbot version")
	assert.Contains(t, out.String(), "Platform: "+runtime.GOOS+"/"+runtime.GOARCH)
	assert.Contains(t, out.String(), "Default model: "+domain.DefaultModelID)
}

func TestDoctorWithoutServiceFails(t *testing.T) {
	cmd := NewDoctorCommand(func() *app.Container { return nil })
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	assert.EqualError(t, cmd.Execute(), ErrDoctorUnavailable)
}

func TestDoctorSourcesListPatternsAndHistory(t *testing.T) {
	c := containerWithHistory(t)
	c.Config = domain.Config{Model: domain.ModelDefinition{ModelID: "llama3-8b-8192", Endpoint: domain.DefaultEndpoint}}
	c.Classifier = security.NewClassifierFromPatterns("rm", "dd")
	out := &bytes.Buffer{}

	displayDoctorSources(out, c)

	assert.Contains(t, out.String(), "Danger patterns: 2 from inline")
	assert.Contains(t, out.String(), "Command history: "+c.AuditStore.Path())
	assert.Contains(t, out.String(), fmt.Sprintf("%d max tokens", domain.DefaultMaxTokens))
	assert.NotContains(t, out.String(), "Config file:")
}

func TestDoctorSourcesWithHistoryDisabled(t *testing.T) {
	out := &bytes.Buffer{}

	displayDoctorSources(out, &app.Container{})

	assert.Contains(t, out.String(), "Command history: disabled")
	assert.NotContains(t, out.String(), "Danger patterns:")
}
