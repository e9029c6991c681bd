// Package schema describes the resource shapes the stores persist.
package schema

import (
	"fmt"

	"github.com/tessera-db/tessera/internal/convert"
)

// Field is one persisted attribute of a resource. Type is the domain type
// of the in-memory value; Column is the storage type it is persisted as.
// When the two differ, the store hands the value off to a registered
// converter before writing and after reading.
type Field struct {
	Name   string
	Type   convert.TypeDescriptor
	Column convert.TypeDescriptor
}

// StorageType returns the type the field is persisted as. A field with no
// explicit Column is stored as its domain type.
func (f Field) StorageType() convert.TypeDescriptor {
	if f.Column == "" {
		return f.Type
	}
	return f.Column
}

// Resource describes one persisted resource: its table (or key prefix for
// non-SQL engines) and its fields in declaration order.
type Resource struct {
	Name   string
	Table  string
	Fields []Field
}

// Field returns the field with the given name.
func (r *Resource) Field(name string) (Field, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// HasField reports whether a field with the given name is declared.
func (r *Resource) HasField(name string) bool {
	_, ok := r.Field(name)
	return ok
}

// Validate checks the resource for structural problems: missing name or
// table, fields without a name or type, and duplicate field names.
func (r *Resource) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("resource name is required")
	}
	if r.Table == "" {
		return fmt.Errorf("resource %s: table is required", r.Name)
	}
	if len(r.Fields) == 0 {
		return fmt.Errorf("resource %s: at least one field is required", r.Name)
	}

	seen := make(map[string]bool, len(r.Fields))
	for _, f := range r.Fields {
		if f.Name == "" {
			return fmt.Errorf("resource %s: field name is required", r.Name)
		}
		if f.Type == "" {
			return fmt.Errorf("resource %s: field %s: type is required", r.Name, f.Name)
		}
		if seen[f.Name] {
			return fmt.Errorf("resource %s: duplicate field %s", r.Name, f.Name)
		}
		seen[f.Name] = true
	}

	return nil
}
