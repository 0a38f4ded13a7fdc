package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/doeshing/termbot/internal/domain"
	"github.com/doeshing/termbot/internal/ports"
)

// SQLiteStore persists audit records in a SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	path string
	mu   sync.Mutex
}

// NewSQLiteStore creates (or opens) the database at path.
func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	store := &SQLiteStore{db: db, path: path}
	if err := store.init(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init %s: %w", path, err)
	}
	return store, nil
}

func (s *SQLiteStore) init(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS audit (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp TEXT NOT NULL,
		session_id TEXT,
		action TEXT NOT NULL,
		target TEXT,
		dangerous INTEGER,
		outcome TEXT,
		exit_code INTEGER,
		duration_ms INTEGER
	);`)
	return err
}

// Save inserts a new record.
func (s *SQLiteStore) Save(ctx context.Context, record domain.AuditRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx, `INSERT INTO audit
		(timestamp, session_id, action, target, dangerous, outcome, exit_code, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		record.Timestamp.UTC().Format(time.RFC3339Nano),
		record.SessionID,
		string(record.Action),
		record.Target,
		boolToInt(record.Dangerous),
		record.Outcome,
		record.ExitCode,
		record.DurationMS,
	)
	return err
}

// Records returns the newest records first. limit <= 0 means all; search matches the target.
func (s *SQLiteStore) Records(ctx context.Context, limit int, search string) ([]domain.AuditRecord, error) {
	builder := strings.Builder{}
	builder.WriteString("SELECT timestamp, session_id, action, target, dangerous, outcome, exit_code, duration_ms FROM audit")
	var args []interface{}
	if search != "" {
		builder.WriteString(" WHERE target LIKE ?")
		args = append(args, "%"+search+"%")
	}
	builder.WriteString(" ORDER BY id DESC")
	if limit > 0 {
		builder.WriteString(" LIMIT ?")
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, builder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.AuditRecord
	for rows.Next() {
		var rec domain.AuditRecord
		var ts, action string
		var dangerous int
		if err := rows.Scan(&ts, &rec.SessionID, &action, &rec.Target, &dangerous, &rec.Outcome, &rec.ExitCode, &rec.DurationMS); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			rec.Timestamp = t
		}
		rec.Action = domain.AuditAction(action)
		rec.Dangerous = dangerous == 1
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Clear deletes all records.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx, "DELETE FROM audit")
	return err
}

// ExportJSON writes every record to dest as JSON lines, oldest first.
func (s *SQLiteStore) ExportJSON(ctx context.Context, dest string) error {
	records, err := s.Records(ctx, 0, "")
	if err != nil {
		return err
	}
	return writeJSONLines(dest, reversed(records))
}

// Path returns the sqlite database path.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

var _ ports.AuditRepository = (*SQLiteStore)(nil)
