package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// EntityRef is a lightweight link to an entity.
type EntityRef struct {
	Type string
	ID   int64
	Name string
}

// IsZero reports whether the ref points nowhere.
func (r EntityRef) IsZero() bool {
	return r.Type == "" && r.ID == 0
}

// String renders the ref as Type:id.
func (r EntityRef) String() string {
	if r.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s:%d", r.Type, r.ID)
}

// Link returns the map form used inside entity fields and filters.
func (r EntityRef) Link() map[string]interface{} {
	return map[string]interface{}{"type": r.Type, "id": r.ID, "name": r.Name}
}

// ParseRef parses "Type:id" into a ref. Empty input yields nil.
func ParseRef(value string) (*EntityRef, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	idx := strings.LastIndex(trimmed, ":")
	if idx <= 0 || idx == len(trimmed)-1 {
		return nil, fmt.Errorf("invalid entity reference %q (want Type:id)", value)
	}
	id, err := strconv.ParseInt(trimmed[idx+1:], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid entity id in %q: %w", value, err)
	}
	return &EntityRef{Type: trimmed[:idx], ID: id}, nil
}

// AsRef interprets a field or filter value as an entity link.
func AsRef(value interface{}) (EntityRef, bool) {
	switch v := value.(type) {
	case EntityRef:
		return v, !v.IsZero()
	case *EntityRef:
		if v == nil {
			return EntityRef{}, false
		}
		return *v, !v.IsZero()
	case map[string]interface{}:
		typ, _ := v["type"].(string)
		id, ok := toInt64(v["id"])
		if typ == "" || !ok {
			return EntityRef{}, false
		}
		name, _ := v["name"].(string)
		return EntityRef{Type: typ, ID: id, Name: name}, true
	}
	return EntityRef{}, false
}

// Context describes where the loader was launched from. Any part may be nil.
type Context struct {
	Project *EntityRef
	Entity  *EntityRef
	Step    *EntityRef
	Task    *EntityRef
	User    *EntityRef
}

// Refs lists the populated refs keyed by context slot.
func (c Context) Refs() map[string]*EntityRef {
	refs := map[string]*EntityRef{}
	for name, ref := range map[string]*EntityRef{
		"project": c.Project,
		"entity":  c.Entity,
		"step":    c.Step,
		"task":    c.Task,
		"user":    c.User,
	} {
		if ref != nil {
			refs[name] = ref
		}
	}
	return refs
}

func toInt64(value interface{}) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int64:
		return v, true
	case int32:
		return int64(v), true
	case float64:
		return int64(v), true
	case uint64:
		return int64(v), true
	case string:
		parsed, err := strconv.ParseInt(v, 10, 64)
		return parsed, err == nil
	}
	return 0, false
}
