// Package catalog stores the production entities, publish types and publishes
// the loader browses. Data lives in a local SQLite file; every query takes a
// context so the backend worker can cancel fetches on shutdown.
package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("catalog: not found")

// Entity is a production entity such as a Shot, Asset or Task. Fields holds
// every non-core attribute; links to other entities are stored as
// {"type": ..., "id": ..., "name": ...} maps.
type Entity struct {
	Type   string
	ID     int64
	Code   string
	Fields map[string]interface{}
}

// Ref returns a link to the entity.
func (e *Entity) Ref() EntityRef {
	if e == nil {
		return EntityRef{}
	}
	return EntityRef{Type: e.Type, ID: e.ID, Name: e.Code}
}

// Field returns the value of a named field. The core fields id, type and code
// are always available.
func (e *Entity) Field(name string) interface{} {
	if e == nil {
		return nil
	}
	switch name {
	case "id":
		return e.ID
	case "type":
		return e.Type
	case "code":
		return e.Code
	}
	if e.Fields == nil {
		return nil
	}
	return e.Fields[name]
}

// PublishType categorises publishes (e.g. "Maya Scene", "Alembic Cache").
type PublishType struct {
	ID          int64
	Code        string
	Description string
}

// Publish is a versioned file linked to an entity.
type Publish struct {
	ID          int64
	Code        string
	Version     int
	TypeID      int64
	TypeCode    string
	Entity      EntityRef
	Path        string
	CreatedBy   string
	CreatedAt   time.Time
	Description string
}

// Catalog is a handle on the SQLite catalog file.
type Catalog struct {
	db   *sql.DB
	path string
}

// Open opens (creating when missing) the catalog at path and brings its schema
// up to date.
func Open(ctx context.Context, path string) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("catalog path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create catalog dir: %w", err)
		}
	}
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", filepath.ToSlash(path))
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Catalog{db: db, path: path}, nil
}

// Path returns the file backing the catalog.
func (c *Catalog) Path() string {
	return c.path
}

// Close releases the database handle.
func (c *Catalog) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS entities (
		id     INTEGER PRIMARY KEY,
		type   TEXT NOT NULL,
		code   TEXT NOT NULL,
		fields TEXT NOT NULL DEFAULT '{}'
	);
	CREATE INDEX IF NOT EXISTS entities_type ON entities(type, code);`,
	`CREATE TABLE IF NOT EXISTS publish_types (
		id          INTEGER PRIMARY KEY,
		code        TEXT NOT NULL UNIQUE,
		description TEXT NOT NULL DEFAULT ''
	);
	CREATE TABLE IF NOT EXISTS publishes (
		id          INTEGER PRIMARY KEY,
		code        TEXT NOT NULL,
		version     INTEGER NOT NULL DEFAULT 1,
		type_id     INTEGER REFERENCES publish_types(id),
		entity_type TEXT NOT NULL,
		entity_id   INTEGER NOT NULL,
		path        TEXT NOT NULL DEFAULT '',
		created_by  TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT ''
	);
	CREATE INDEX IF NOT EXISTS publishes_entity ON publishes(entity_type, entity_id);`,
}

func migrate(ctx context.Context, db *sql.DB) error {
	var current int
	if err := db.QueryRowContext(ctx, `PRAGMA user_version`).Scan(&current); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	for i := current; i < len(migrations); i++ {
		if _, err := db.ExecContext(ctx, migrations[i]); err != nil {
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
		if _, err := db.ExecContext(ctx, fmt.Sprintf(`PRAGMA user_version = %d`, i+1)); err != nil {
			return fmt.Errorf("bump schema version: %w", err)
		}
	}
	return nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// InsertEntity stores an entity, replacing any row with the same id.
func (c *Catalog) InsertEntity(ctx context.Context, e Entity) error {
	return insertEntity(ctx, c.db, e)
}

// InsertPublishType stores a publish type.
func (c *Catalog) InsertPublishType(ctx context.Context, t PublishType) error {
	return insertPublishType(ctx, c.db, t)
}

// InsertPublish stores a publish.
func (c *Catalog) InsertPublish(ctx context.Context, p Publish) error {
	return insertPublish(ctx, c.db, p)
}

func insertEntity(ctx context.Context, db execer, e Entity) error {
	fields := e.Fields
	if fields == nil {
		fields = map[string]interface{}{}
	}
	blob, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encode fields for %s %d: %w", e.Type, e.ID, err)
	}
	_, err = db.ExecContext(ctx,
		`INSERT OR REPLACE INTO entities (id, type, code, fields) VALUES (?, ?, ?, ?)`,
		e.ID, e.Type, e.Code, string(blob))
	if err != nil {
		return fmt.Errorf("insert entity %s %d: %w", e.Type, e.ID, err)
	}
	return nil
}

func insertPublishType(ctx context.Context, db execer, t PublishType) error {
	_, err := db.ExecContext(ctx,
		`INSERT OR REPLACE INTO publish_types (id, code, description) VALUES (?, ?, ?)`,
		t.ID, t.Code, t.Description)
	if err != nil {
		return fmt.Errorf("insert publish type %s: %w", t.Code, err)
	}
	return nil
}

func insertPublish(ctx context.Context, db execer, p Publish) error {
	created := ""
	if !p.CreatedAt.IsZero() {
		created = p.CreatedAt.UTC().Format(time.RFC3339)
	}
	_, err := db.ExecContext(ctx,
		`INSERT OR REPLACE INTO publishes
			(id, code, version, type_id, entity_type, entity_id, path, created_by, created_at, description)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Code, p.Version, p.TypeID, p.Entity.Type, p.Entity.ID, p.Path, p.CreatedBy, created, p.Description)
	if err != nil {
		return fmt.Errorf("insert publish %s: %w", p.Code, err)
	}
	return nil
}
