package files

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/termbot/internal/domain"
)

func skipIfPermissionsIgnored(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("unix permission bits")
	}
	if os.Geteuid() == 0 {
		t.Skip("root bypasses permission checks")
	}
}

func TestReadReturnsContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("héllo\nworld\n"), 0o600))

	result := NewAccessor(nil).Read(path)

	require.True(t, result.OK(), "unexpected fault %s: %v", result.Fault, result.Err)
	assert.Equal(t, "héllo\nworld\n", result.Content)
	assert.Equal(t, domain.FileOpRead, result.Op)
}

func TestReadMissingFileIsNotFound(t *testing.T) {
	result := NewAccessor(nil).Read(filepath.Join(t.TempDir(), "absent.txt"))

	assert.Equal(t, domain.FaultFileNotFound, result.Fault)
	assert.Error(t, result.Err)
}

func TestReadUnreadableFileIsPermissionDenied(t *testing.T) {
	skipIfPermissionsIgnored(t)
	path := filepath.Join(t.TempDir(), "secret.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o000))

	result := NewAccessor(nil).Read(path)

	assert.Equal(t, domain.FaultPermissionDenied, result.Fault)
}

func TestReadDirectoryIsOtherFault(t *testing.T) {
	result := NewAccessor(nil).Read(t.TempDir())

	assert.Equal(t, domain.FaultOtherIO, result.Fault)
}

func TestReadBinaryIsOtherFault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blob.bin")
	require.NoError(t, os.WriteFile(path, []byte{0xff, 0xfe, 0x00, 0x80}, 0o600))

	result := NewAccessor(nil).Read(path)

	assert.Equal(t, domain.FaultOtherIO, result.Fault)
	assert.ErrorIs(t, result.Err, ErrInvalidUTF8)
}

func TestWriteCreatesAndTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	accessor := NewAccessor(nil)

	first := accessor.Write(path, "a much longer first version\n")
	require.True(t, first.OK())

	second := accessor.Write(path, "short\n")
	require.True(t, second.OK())
	assert.Equal(t, 6, second.Bytes)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "short\n", string(data))
}

func TestWriteIntoReadOnlyDirIsPermissionDenied(t *testing.T) {
	skipIfPermissionsIgnored(t)
	dir := filepath.Join(t.TempDir(), "locked")
	require.NoError(t, os.Mkdir(dir, 0o500))
	t.Cleanup(func() { _ = os.Chmod(dir, 0o700) })

	result := NewAccessor(nil).Write(filepath.Join(dir, "out.txt"), "data")

	assert.Equal(t, domain.FaultPermissionDenied, result.Fault)
}

func TestWriteIntoMissingDirIsOtherFault(t *testing.T) {
	result := NewAccessor(nil).Write(filepath.Join(t.TempDir(), "nope", "out.txt"), "data")

	assert.Equal(t, domain.FaultOtherIO, result.Fault)
	assert.NotEqual(t, domain.FaultPermissionDenied, result.Fault)
}
