// Package templatestore persists named template specs.
//
// Saved templates live in the shared SQLite database and are referenced on
// the command line as "@name". Specs are validated before they are stored,
// so anything read back parses.
package templatestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"nathanbeddoewebdev/tspec/internal/database"
	"nathanbeddoewebdev/tspec/internal/domain"
	"nathanbeddoewebdev/tspec/internal/templatespec"
	"nathanbeddoewebdev/tspec/internal/util"
)

// RefPrefix marks a command-line argument as a saved template reference.
const RefPrefix = "@"

// Template is a saved, named template spec.
type Template struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Spec      string    `json:"spec"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store defines the persistence interface for saved templates.
type Store interface {
	// Save validates and upserts a template.
	Save(ctx context.Context, name, spec string) (*Template, error)

	// Get returns the named template or an error wrapping domain.ErrNotFound.
	Get(ctx context.Context, name string) (*Template, error)

	// List returns all templates ordered by name.
	List(ctx context.Context) ([]Template, error)

	// Delete removes the named template.
	Delete(ctx context.Context, name string) error

	// Close releases database resources.
	Close() error
}

// SQLiteStore implements Store on top of internal/database.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

const ddl = `
	CREATE TABLE IF NOT EXISTS templates (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		name       TEXT NOT NULL UNIQUE,
		spec       TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
`

// Open opens the store in the default database.
func Open(ctx context.Context) (*SQLiteStore, error) {
	path, err := database.DefaultPath()
	if err != nil {
		return nil, err
	}
	return OpenAt(ctx, path)
}

// OpenAt opens the store in the database at path, creating the table if
// needed.
func OpenAt(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := database.Open(path)
	if err != nil {
		return nil, err
	}

	if err := database.Migrate(ctx, db, ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("templatestore: %w", err)
	}

	return &SQLiteStore{db: db, now: time.Now}, nil
}

// Save validates name and spec and upserts the template. The creation time
// of an existing template is preserved.
func (s *SQLiteStore) Save(ctx context.Context, name, spec string) (*Template, error) {
	name = strings.TrimSpace(name)
	spec = strings.TrimSpace(spec)

	if err := util.ValidateTemplateName(name); err != nil {
		return nil, err
	}
	if _, err := templatespec.Parse(spec); err != nil {
		return nil, fmt.Errorf("template %q: %w", name, err)
	}

	now := s.now().UTC().Format(time.RFC3339Nano)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO templates (name, spec, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			spec = excluded.spec,
			updated_at = excluded.updated_at`,
		name, spec, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("templatestore: upsert failed: %w", err)
	}

	return s.Get(ctx, name)
}

// Get returns the named template.
func (s *SQLiteStore) Get(ctx context.Context, name string) (*Template, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, spec, created_at, updated_at FROM templates WHERE name = ?`,
		strings.TrimSpace(name),
	)

	tmpl, err := scanTemplate(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("template %q: %w", name, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("templatestore: query failed: %w", err)
	}
	return tmpl, nil
}

// List returns all saved templates ordered by name.
func (s *SQLiteStore) List(ctx context.Context) ([]Template, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, spec, created_at, updated_at FROM templates ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("templatestore: query failed: %w", err)
	}
	defer rows.Close()

	var templates []Template
	for rows.Next() {
		tmpl, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("templatestore: scan failed: %w", err)
		}
		templates = append(templates, *tmpl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("templatestore: query failed: %w", err)
	}
	return templates, nil
}

// Delete removes the named template.
func (s *SQLiteStore) Delete(ctx context.Context, name string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM templates WHERE name = ?`, strings.TrimSpace(name))
	if err != nil {
		return fmt.Errorf("templatestore: delete failed: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("templatestore: delete failed: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("template %q: %w", name, domain.ErrNotFound)
	}
	return nil
}

// Close releases database resources.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTemplate(row scanner) (*Template, error) {
	var tmpl Template
	var created, updated string
	if err := row.Scan(&tmpl.ID, &tmpl.Name, &tmpl.Spec, &created, &updated); err != nil {
		return nil, err
	}
	tmpl.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
	tmpl.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updated)
	return &tmpl, nil
}

// IsRef reports whether arg refers to a saved template.
func IsRef(arg string) bool {
	return strings.HasPrefix(strings.TrimSpace(arg), RefPrefix)
}

// ResolveRef expands an "@name" argument to the saved spec string. Any other
// argument is returned unchanged.
func ResolveRef(ctx context.Context, store Store, arg string) (string, error) {
	if !IsRef(arg) {
		return arg, nil
	}

	name := strings.TrimPrefix(strings.TrimSpace(arg), RefPrefix)
	tmpl, err := store.Get(ctx, name)
	if err != nil {
		return "", err
	}
	return tmpl.Spec, nil
}
