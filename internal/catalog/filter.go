package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedFilter is returned for filters with an unknown operator or shape.
var ErrUnsupportedFilter = errors.New("catalog: unsupported filter")

// EntityQuery selects the entities that back one preset tree.
type EntityQuery struct {
	Type      string
	Filters   [][]interface{}
	Hierarchy []string
}

// Match reports whether the entity satisfies every filter. Filters take the
// form [field, operator, value...].
func Match(e *Entity, filters [][]interface{}) (bool, error) {
	for _, f := range filters {
		ok, err := matchOne(e, f)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

func matchOne(e *Entity, filter []interface{}) (bool, error) {
	if len(filter) < 2 {
		return false, fmt.Errorf("%w: %v", ErrUnsupportedFilter, filter)
	}
	field, ok := filter[0].(string)
	if !ok {
		return false, fmt.Errorf("%w: field must be a string in %v", ErrUnsupportedFilter, filter)
	}
	op, ok := filter[1].(string)
	if !ok {
		return false, fmt.Errorf("%w: operator must be a string in %v", ErrUnsupportedFilter, filter)
	}
	values := filter[2:]
	actual := e.Field(field)
	switch strings.ToLower(op) {
	case "is":
		return equalValues(actual, first(values)), nil
	case "is_not":
		return !equalValues(actual, first(values)), nil
	case "in":
		return inValues(actual, values), nil
	case "not_in":
		return !inValues(actual, values), nil
	case "contains":
		return strings.Contains(strings.ToLower(display(actual)), strings.ToLower(display(first(values)))), nil
	case "starts_with":
		return strings.HasPrefix(strings.ToLower(display(actual)), strings.ToLower(display(first(values)))), nil
	}
	return false, fmt.Errorf("%w: operator %q", ErrUnsupportedFilter, op)
}

func first(values []interface{}) interface{} {
	if len(values) == 0 {
		return nil
	}
	return values[0]
}

func inValues(actual interface{}, values []interface{}) bool {
	if len(values) == 1 {
		if list, ok := values[0].([]interface{}); ok {
			values = list
		}
	}
	for _, v := range values {
		if equalValues(actual, v) {
			return true
		}
	}
	return false
}

func equalValues(actual, expected interface{}) bool {
	if list, ok := actual.([]interface{}); ok {
		// multi-entity fields match when any member does
		for _, member := range list {
			if equalValues(member, expected) {
				return true
			}
		}
		return isNil(expected) && len(list) == 0
	}
	if isNil(expected) {
		return isNil(actual)
	}
	if ref, ok := AsRef(expected); ok {
		got, ok := AsRef(actual)
		return ok && got.Type == ref.Type && got.ID == ref.ID
	}
	if want, ok := toInt64(expected); ok {
		if _, isString := expected.(string); !isString {
			got, ok := toInt64(actual)
			return ok && got == want
		}
	}
	if _, ok := AsRef(actual); ok {
		return false
	}
	return display(actual) == display(expected)
}

func isNil(value interface{}) bool {
	if value == nil {
		return true
	}
	if ref, ok := value.(*EntityRef); ok && ref == nil {
		return true
	}
	return false
}

// DisplayValue renders a field value the way tree labels show it.
func DisplayValue(value interface{}) string {
	return display(value)
}

func display(value interface{}) string {
	if isNil(value) {
		return ""
	}
	if ref, ok := AsRef(value); ok {
		if ref.Name != "" {
			return ref.Name
		}
		return ref.String()
	}
	switch v := value.(type) {
	case string:
		return v
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
	}
	return fmt.Sprint(value)
}
