package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Entities returns the entities of q.Type that match every filter, ordered by
// code then id. Filters run in Go so link-valued fields can be compared.
func (c *Catalog) Entities(ctx context.Context, q EntityQuery) ([]Entity, error) {
	if strings.TrimSpace(q.Type) == "" {
		return nil, errors.New("entity type is required")
	}
	rows, err := c.db.QueryContext(ctx,
		`SELECT id, type, code, fields FROM entities WHERE type = ? ORDER BY code, id`, q.Type)
	if err != nil {
		return nil, fmt.Errorf("query %s entities: %w", q.Type, err)
	}
	defer rows.Close()

	var out []Entity
	for rows.Next() {
		ent, err := scanEntity(rows)
		if err != nil {
			return nil, err
		}
		ok, err := Match(&ent, q.Filters)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, ent)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s entities: %w", q.Type, err)
	}
	return out, nil
}

// Resolve loads the entity a ref points at.
func (c *Catalog) Resolve(ctx context.Context, ref EntityRef) (Entity, error) {
	row := c.db.QueryRowContext(ctx,
		`SELECT id, type, code, fields FROM entities WHERE type = ? AND id = ?`, ref.Type, ref.ID)
	ent, err := scanEntity(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entity{}, fmt.Errorf("%s: %w", ref, ErrNotFound)
	}
	return ent, err
}

// Publishes lists the publishes linked to ref, ordered by code then newest
// version first.
func (c *Catalog) Publishes(ctx context.Context, ref EntityRef) ([]Publish, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT p.id, p.code, p.version, COALESCE(p.type_id, 0), COALESCE(t.code, ''),
		       p.entity_type, p.entity_id, p.path, p.created_by, p.created_at, p.description
		FROM publishes p
		LEFT JOIN publish_types t ON t.id = p.type_id
		WHERE p.entity_type = ? AND p.entity_id = ?
		ORDER BY p.code, p.version DESC, p.id`, ref.Type, ref.ID)
	if err != nil {
		return nil, fmt.Errorf("query publishes for %s: %w", ref, err)
	}
	defer rows.Close()

	var out []Publish
	for rows.Next() {
		var (
			p       Publish
			created string
		)
		if err := rows.Scan(&p.ID, &p.Code, &p.Version, &p.TypeID, &p.TypeCode,
			&p.Entity.Type, &p.Entity.ID, &p.Path, &p.CreatedBy, &created, &p.Description); err != nil {
			return nil, fmt.Errorf("scan publish: %w", err)
		}
		p.Entity.Name = ref.Name
		if created != "" {
			if ts, err := time.Parse(time.RFC3339, created); err == nil {
				p.CreatedAt = ts
			}
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate publishes: %w", err)
	}
	return out, nil
}

// PublishTypes lists every publish type ordered by code.
func (c *Catalog) PublishTypes(ctx context.Context) ([]PublishType, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT id, code, description FROM publish_types ORDER BY code, id`)
	if err != nil {
		return nil, fmt.Errorf("query publish types: %w", err)
	}
	defer rows.Close()
	var out []PublishType
	for rows.Next() {
		var t PublishType
		if err := rows.Scan(&t.ID, &t.Code, &t.Description); err != nil {
			return nil, fmt.Errorf("scan publish type: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// EntityTypes lists the distinct entity types present.
func (c *Catalog) EntityTypes(ctx context.Context) ([]string, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT DISTINCT type FROM entities`)
	if err != nil {
		return nil, fmt.Errorf("query entity types: %w", err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	sort.Strings(out)
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanEntity(s scanner) (Entity, error) {
	var (
		ent  Entity
		blob string
	)
	if err := s.Scan(&ent.ID, &ent.Type, &ent.Code, &blob); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entity{}, err
		}
		return Entity{}, fmt.Errorf("scan entity: %w", err)
	}
	ent.Fields = map[string]interface{}{}
	if blob != "" {
		if err := json.Unmarshal([]byte(blob), &ent.Fields); err != nil {
			return Entity{}, fmt.Errorf("decode fields for %s %d: %w", ent.Type, ent.ID, err)
		}
	}
	return ent, nil
}
