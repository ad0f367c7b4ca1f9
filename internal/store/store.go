// Package store persists converted schedules: the forest as a JSON
// artifact on disk and the flat records in SQLite.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/hstree/hstree/internal/schedule"
)

// Store wraps the SQLite database and the artifact directory.
type Store struct {
	db          *sql.DB
	artifactDir string
}

// ScheduleMeta describes one converted schedule.
type ScheduleMeta struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	Title       string    `json:"title,omitempty"`
	NodeCount   int       `json:"node_count"`
	RecordCount int       `json:"record_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// Open opens (creating if needed) the database and artifact directory.
func Open(dbPath, artifactDir string) (*Store, error) {
	if err := os.MkdirAll(artifactDir, 0o755); err != nil {
		return nil, fmt.Errorf("create artifact dir: %w", err)
	}

	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// SQLite only supports a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	s := &Store{db: db, artifactDir: artifactDir}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return s, nil
}

func (s *Store) initSchema() error {
	schemaSQL := `
	CREATE TABLE IF NOT EXISTS schedules (
		id TEXT PRIMARY KEY,
		filename TEXT NOT NULL,
		title TEXT,
		node_count INTEGER NOT NULL,
		record_count INTEGER NOT NULL,
		created_at INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS records (
		schedule_id TEXT NOT NULL,
		pos INTEGER NOT NULL,
		record_id TEXT,
		parent_id TEXT,
		level INTEGER,
		breadcrumb TEXT,
		doc TEXT NOT NULL,
		PRIMARY KEY (schedule_id, pos)
	);
	CREATE INDEX IF NOT EXISTS idx_records_record_id ON records(schedule_id, record_id);
	`
	_, err := s.db.Exec(schemaSQL)
	return err
}

// SaveSchedule writes the forest artifact and the flat records in one
// transaction. The artifact file is the re-readable boundary between
// the builder and the flattener.
func (s *Store) SaveSchedule(ctx context.Context, meta ScheduleMeta, forest schedule.Forest, records []schedule.FlatRecord) error {
	if err := s.writeForest(meta.ID, forest); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO schedules (id, filename, title, node_count, record_count, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		meta.ID, meta.Filename, meta.Title, meta.NodeCount, meta.RecordCount, meta.CreatedAt.Unix())
	if err != nil {
		return fmt.Errorf("insert schedule: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM records WHERE schedule_id = ?`, meta.ID); err != nil {
		return fmt.Errorf("clear records: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO records (schedule_id, pos, record_id, parent_id, level, breadcrumb, doc)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, rec := range records {
		doc, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("marshal record %d: %w", i, err)
		}
		var lvl any
		if rec.Level != nil {
			lvl = *rec.Level
		}
		if _, err := stmt.ExecContext(ctx, meta.ID, i, rec.ID, rec.ParentID, lvl, rec.Breadcrumb, string(doc)); err != nil {
			return fmt.Errorf("insert record %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// ListSchedules returns all converted schedules, newest first.
func (s *Store) ListSchedules(ctx context.Context) ([]ScheduleMeta, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, filename, title, node_count, record_count, created_at
		 FROM schedules ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	defer rows.Close()

	var out []ScheduleMeta
	for rows.Next() {
		var m ScheduleMeta
		var created int64
		if err := rows.Scan(&m.ID, &m.Filename, &m.Title, &m.NodeCount, &m.RecordCount, &created); err != nil {
			return nil, fmt.Errorf("scan schedule: %w", err)
		}
		m.CreatedAt = time.Unix(created, 0).UTC()
		out = append(out, m)
	}
	return out, rows.Err()
}

// GetSchedule returns one schedule's metadata, or nil when absent.
func (s *Store) GetSchedule(ctx context.Context, id string) (*ScheduleMeta, error) {
	var m ScheduleMeta
	var created int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id, filename, title, node_count, record_count, created_at
		 FROM schedules WHERE id = ?`, id).
		Scan(&m.ID, &m.Filename, &m.Title, &m.NodeCount, &m.RecordCount, &created)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get schedule: %w", err)
	}
	m.CreatedAt = time.Unix(created, 0).UTC()
	return &m, nil
}

// Records returns a page of flat records in emission order.
func (s *Store) Records(ctx context.Context, scheduleID string, limit, offset int) ([]schedule.FlatRecord, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT doc FROM records WHERE schedule_id = ? ORDER BY pos LIMIT ? OFFSET ?`,
		scheduleID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var out []schedule.FlatRecord
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		var rec schedule.FlatRecord
		if err := json.Unmarshal([]byte(doc), &rec); err != nil {
			return nil, fmt.Errorf("decode record: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// DeleteSchedule removes the schedule, its records, and its artifact.
func (s *Store) DeleteSchedule(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM records WHERE schedule_id = ?`, id); err != nil {
		return fmt.Errorf("delete records: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM schedules WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete schedule: %w", err)
	}
	if err := os.Remove(s.forestPath(id)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove artifact: %w", err)
	}
	return nil
}

// writeForest serializes the forest to the artifact directory.
func (s *Store) writeForest(id string, forest schedule.Forest) error {
	data, err := json.MarshalIndent(forest, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal forest: %w", err)
	}
	if err := os.WriteFile(s.forestPath(id), data, 0o644); err != nil {
		return fmt.Errorf("write forest artifact: %w", err)
	}
	return nil
}

// LoadForest re-reads a previously written forest artifact.
func (s *Store) LoadForest(id string) (schedule.Forest, error) {
	data, err := os.ReadFile(s.forestPath(id))
	if err != nil {
		return nil, fmt.Errorf("read forest artifact: %w", err)
	}
	var forest schedule.Forest
	if err := json.Unmarshal(data, &forest); err != nil {
		return nil, fmt.Errorf("decode forest artifact: %w", err)
	}
	return forest, nil
}

func (s *Store) forestPath(id string) string {
	return filepath.Join(s.artifactDir, id+".json")
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
