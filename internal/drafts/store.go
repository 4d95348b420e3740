package drafts

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"mythus/internal/config"
	"mythus/internal/services"
	"mythus/internal/sheet"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump when the schema changes;
// users must delete the drafts database after a bump.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database was created by a different version.
var ErrSchemaMismatch = errors.New("drafts schema version mismatch")

const component = "drafts"

// Store manages draft persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
	lock *flock.Flock
}

// Open initializes or connects to the drafts database, acquiring the writer
// lock file next to it.
func Open(cfg *config.Config) (*Store, error) {
	if cfg == nil {
		return nil, services.Wrap(services.ErrConfiguration, component, "open", "config is required", nil)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := cfg.DraftsDatabasePath()
	lock := flock.New(filepath.Join(filepath.Dir(dbPath), "drafts.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire drafts lock: %w", err)
	}
	if !locked {
		return nil, services.Wrap(services.ErrConfiguration, component, "open", "another mythus process holds the drafts database", nil)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath, lock: lock}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}
	return store, nil
}

// Close releases the database connection and the writer lock.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	var dbErr error
	if s.db != nil {
		dbErr = s.db.Close()
	}
	if s.lock != nil {
		if unlockErr := s.lock.Unlock(); unlockErr != nil && dbErr == nil {
			dbErr = unlockErr
		}
	}
	return dbErr
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		return s.createSchema(ctx)
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}

// Save inserts or updates a draft. New drafts get a generated identifier;
// timestamps are maintained here.
func (s *Store) Save(ctx context.Context, draft *Draft) error {
	if draft == nil {
		return services.Wrap(services.ErrValidation, component, "save", "draft is required", nil)
	}
	if !draft.Kind.Valid() {
		return services.Wrap(services.ErrValidation, component, "save", fmt.Sprintf("unknown draft kind %q", draft.Kind), nil)
	}
	if strings.TrimSpace(draft.Title) == "" {
		return services.Wrap(services.ErrValidation, component, "save", "draft title is required", nil)
	}

	payload, err := json.Marshal(draft.Document)
	if err != nil {
		return services.Wrap(services.ErrValidation, component, "save", "encode document", err)
	}

	now := time.Now().UTC()
	if draft.ID == "" {
		draft.ID = uuid.NewString()
		draft.CreatedAt = now
	}
	if draft.CreatedAt.IsZero() {
		draft.CreatedAt = now
	}
	draft.UpdatedAt = now

	_, err = s.db.ExecContext(ctx, `
INSERT INTO drafts (id, kind, screenplay_id, title, document_json, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    kind = excluded.kind,
    screenplay_id = excluded.screenplay_id,
    title = excluded.title,
    document_json = excluded.document_json,
    updated_at = excluded.updated_at`,
		draft.ID,
		string(draft.Kind),
		nullableString(draft.ScreenplayID),
		draft.Title,
		string(payload),
		draft.CreatedAt.Format(time.RFC3339Nano),
		draft.UpdatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

const draftColumns = "id, kind, screenplay_id, title, document_json, created_at, updated_at"

// Get loads one draft by identifier.
func (s *Store) Get(ctx context.Context, id string) (*Draft, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+draftColumns+" FROM drafts WHERE id = ?", id)
	draft, err := scanDraft(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, services.Wrap(services.ErrNotFound, component, "get", fmt.Sprintf("draft %s", id), nil)
	}
	if err != nil {
		return nil, fmt.Errorf("load draft: %w", err)
	}
	return draft, nil
}

// List returns drafts newest-first, optionally restricted to one kind.
func (s *Store) List(ctx context.Context, kind Kind) ([]*Draft, error) {
	query := "SELECT " + draftColumns + " FROM drafts"
	args := []any{}
	if kind != "" {
		if !kind.Valid() {
			return nil, services.Wrap(services.ErrValidation, component, "list", fmt.Sprintf("unknown draft kind %q", kind), nil)
		}
		query += " WHERE kind = ?"
		args = append(args, string(kind))
	}
	query += " ORDER BY updated_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list drafts: %w", err)
	}
	defer rows.Close()

	var out []*Draft
	for rows.Next() {
		draft, err := scanDraft(rows)
		if err != nil {
			return nil, fmt.Errorf("scan draft: %w", err)
		}
		out = append(out, draft)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate drafts: %w", err)
	}
	return out, nil
}

// Delete removes one draft. Deleting an unknown identifier is reported.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM drafts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete draft: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete draft result: %w", err)
	}
	if affected == 0 {
		return services.Wrap(services.ErrNotFound, component, "delete", fmt.Sprintf("draft %s", id), nil)
	}
	return nil
}

func scanDraft(scanner interface{ Scan(dest ...any) error }) (*Draft, error) {
	var (
		id           string
		kind         string
		screenplayID sql.NullString
		title        string
		documentJSON string
		createdRaw   string
		updatedRaw   string
	)
	if err := scanner.Scan(&id, &kind, &screenplayID, &title, &documentJSON, &createdRaw, &updatedRaw); err != nil {
		return nil, err
	}

	draft := &Draft{
		ID:           id,
		Kind:         Kind(kind),
		ScreenplayID: screenplayID.String,
		Title:        title,
	}
	doc := sheet.Document{}
	if err := json.Unmarshal([]byte(documentJSON), &doc); err != nil {
		return nil, fmt.Errorf("decode document for draft %s: %w", id, err)
	}
	draft.Document = doc

	if created, err := time.Parse(time.RFC3339Nano, createdRaw); err == nil {
		draft.CreatedAt = created
	}
	if updated, err := time.Parse(time.RFC3339Nano, updatedRaw); err == nil {
		draft.UpdatedAt = updated
	}
	return draft, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
