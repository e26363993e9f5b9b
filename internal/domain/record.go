package domain

import (
	"strconv"
	"strings"
)

// Record is a transient attribute bag describing one row to be written,
// tagged with its target entity. Attribute keys are lower-cased column
// names. Insertion order is preserved so Columns and Values stay
// positionally aligned: Columns()[i] and Values()[i] always describe the
// same attribute.
type Record struct {
	entity string
	keys   []string
	attrs  map[string]any
}

// NewRecord creates an empty record targeting the given entity.
func NewRecord(entity string) *Record {
	return &Record{
		entity: strings.ToLower(entity),
		attrs:  make(map[string]any),
	}
}

// Entity returns the lower-cased target entity name.
func (r *Record) Entity() string { return r.entity }

// Set stores an attribute value. Setting an existing column replaces the
// value in place without changing its position.
func (r *Record) Set(column string, value any) {
	column = strings.ToLower(column)
	if _, ok := r.attrs[column]; !ok {
		r.keys = append(r.keys, column)
	}
	r.attrs[column] = value
}

// Get returns the value for a column, reporting whether it is present.
func (r *Record) Get(column string) (any, bool) {
	v, ok := r.attrs[strings.ToLower(column)]
	return v, ok
}

// Remove drops an attribute. Removing an absent column is a no-op.
func (r *Record) Remove(column string) {
	column = strings.ToLower(column)
	if _, ok := r.attrs[column]; !ok {
		return
	}
	delete(r.attrs, column)
	for i, k := range r.keys {
		if k == column {
			r.keys = append(r.keys[:i], r.keys[i+1:]...)
			break
		}
	}
}

// Columns returns the attribute column names in insertion order.
func (r *Record) Columns() []string {
	cols := make([]string, len(r.keys))
	copy(cols, r.keys)
	return cols
}

// Values returns the attribute values aligned with Columns.
func (r *Record) Values() []any {
	vals := make([]any, len(r.keys))
	for i, k := range r.keys {
		vals[i] = r.attrs[k]
	}
	return vals
}

// Len returns the number of attributes.
func (r *Record) Len() int { return len(r.keys) }

// Coerce converts a digit-only string to an int64 and leaves everything
// else as text. Seed values and interactive input pass through this
// before being bound or interpolated.
func Coerce(s string) any {
	if s == "" {
		return s
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return s
		}
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return s
	}
	return n
}
