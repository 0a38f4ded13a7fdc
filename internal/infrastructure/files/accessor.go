package files

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"unicode/utf8"

	"github.com/doeshing/termbot/internal/domain"
	"github.com/doeshing/termbot/internal/pkg/logger"
	"github.com/doeshing/termbot/internal/ports"
)

// ErrInvalidUTF8 is reported when a file cannot be decoded as text.
var ErrInvalidUTF8 = errors.New("file is not valid UTF-8 text")

// Accessor reads and writes paths relative to the working directory.
// There is no path sandboxing and no atomic write: a failed write may leave
// a partially written file behind.
type Accessor struct {
	logger ports.Logger
}

// NewAccessor builds an accessor.
func NewAccessor(log ports.Logger) *Accessor {
	if log == nil {
		log = logger.NewNop()
	}
	return &Accessor{logger: log}
}

// Read implements ports.FileAccessor.
func (a *Accessor) Read(path string) domain.FileResult {
	result := domain.FileResult{Op: domain.FileOpRead, Path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Err = err
		result.Fault = classify(err, true)
		a.logger.Warn("read failed", map[string]interface{}{"path": path, "fault": string(result.Fault)})
		return result
	}
	if !utf8.Valid(data) {
		result.Err = fmt.Errorf("%s: %w", path, ErrInvalidUTF8)
		result.Fault = domain.FaultOtherIO
		return result
	}

	result.Content = string(data)
	result.Bytes = len(data)
	a.logger.Debug("read file", map[string]interface{}{"path": path, "bytes": len(data)})
	return result
}

// Write implements ports.FileAccessor. The file is created or truncated.
func (a *Accessor) Write(path string, content string) domain.FileResult {
	result := domain.FileResult{Op: domain.FileOpWrite, Path: path}

	if err := os.WriteFile(path, []byte(content), domain.WrittenFilePermissions); err != nil {
		result.Err = err
		result.Fault = classify(err, false)
		a.logger.Warn("write failed", map[string]interface{}{"path": path, "fault": string(result.Fault)})
		return result
	}

	result.Bytes = len(content)
	a.logger.Info("wrote file", map[string]interface{}{"path": path, "bytes": len(content)})
	return result
}

// classify maps OS errors onto user-facing faults. Writes only distinguish
// permission problems from everything else.
func classify(err error, reading bool) domain.Fault {
	switch {
	case errors.Is(err, fs.ErrPermission):
		return domain.FaultPermissionDenied
	case reading && errors.Is(err, fs.ErrNotExist):
		return domain.FaultFileNotFound
	default:
		return domain.FaultOtherIO
	}
}

var _ ports.FileAccessor = (*Accessor)(nil)
