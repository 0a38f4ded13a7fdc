package history

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/doeshing/termbot/internal/domain"
	"github.com/doeshing/termbot/internal/ports"
)

// FileStore appends audit records to a jsonl file.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a store backed by the jsonl file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Save appends one record.
func (f *FileStore) Save(_ context.Context, record domain.AuditRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(f.path), domain.DirectoryPermissions); err != nil {
		return err
	}
	file, err := os.OpenFile(f.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, domain.SecureFilePermissions)
	if err != nil {
		return err
	}
	defer file.Close()
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	_, err = file.Write(append(data, '\n'))
	return err
}

// Records loads entries newest first (best-effort: malformed lines are skipped).
func (f *FileStore) Records(_ context.Context, limit int, search string) ([]domain.AuditRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	all, err := f.readAll()
	if err != nil {
		return nil, err
	}
	var records []domain.AuditRecord
	for i := len(all) - 1; i >= 0; i-- {
		if search != "" && !strings.Contains(all[i].Target, search) {
			continue
		}
		records = append(records, all[i])
		if limit > 0 && len(records) == limit {
			break
		}
	}
	return records, nil
}

func (f *FileStore) readAll() ([]domain.AuditRecord, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var records []domain.AuditRecord
	for _, line := range bytes.Split(bytes.TrimSpace(data), []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		var rec domain.AuditRecord
		if err := json.Unmarshal(line, &rec); err == nil {
			records = append(records, rec)
		}
	}
	return records, nil
}

// Clear removes the history file.
func (f *FileStore) Clear(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// ExportJSON copies every record to dest as JSON lines, oldest first.
func (f *FileStore) ExportJSON(_ context.Context, dest string) error {
	f.mu.Lock()
	records, err := f.readAll()
	f.mu.Unlock()
	if err != nil {
		return err
	}
	return writeJSONLines(dest, records)
}

// Path returns the backing file path.
func (f *FileStore) Path() string {
	return f.path
}

// Close is a no-op; every write opens and closes the file.
func (f *FileStore) Close() error {
	return nil
}

var _ ports.AuditRepository = (*FileStore)(nil)
