// Package history stores an audit trail of executed commands and file writes.
// Conversation turns are never written here.
package history

import (
	"context"
	"encoding/json"
	"os"
	"strings"

	"github.com/doeshing/termbot/internal/domain"
	"github.com/doeshing/termbot/internal/pkg/filesystem"
	"github.com/doeshing/termbot/internal/ports"
)

// Open returns a SQLite store at path, or a jsonl FileStore next to it when
// the database cannot be opened.
func Open(ctx context.Context, path string, log ports.Logger) ports.AuditRepository {
	path = filesystem.ExpandPath(path)
	store, err := NewSQLiteStore(ctx, path)
	if err == nil {
		return store
	}
	fallback := strings.TrimSuffix(path, ".db") + ".jsonl"
	if log != nil {
		log.Warn("sqlite history unavailable, using jsonl file", map[string]interface{}{
			"error":    err.Error(),
			"fallback": fallback,
		})
	}
	return NewFileStore(fallback)
}

func writeJSONLines(dest string, records []domain.AuditRecord) error {
	file, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer file.Close()
	enc := json.NewEncoder(file)
	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return err
		}
	}
	return nil
}

func reversed(records []domain.AuditRecord) []domain.AuditRecord {
	out := make([]domain.AuditRecord, len(records))
	for i, rec := range records {
		out[len(records)-1-i] = rec
	}
	return out
}
