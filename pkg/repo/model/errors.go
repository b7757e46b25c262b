package model

import (
	"sort"
	"strings"
)

// FieldErrors maps a form field to every message raised against it.
// The empty key holds errors not tied to a single field.
type FieldErrors map[string][]string

func (f FieldErrors) Add(field, msg string) {
	f[field] = append(f[field], msg)
}

func (f FieldErrors) Has(field string) bool {
	return len(f[field]) > 0
}

func (f FieldErrors) Merge(other FieldErrors) {
	for k, msgs := range other {
		for _, m := range msgs {
			f.Add(k, m)
		}
	}
}

// OrNil lets callers return the map as an error only when it is non-empty.
func (f FieldErrors) OrNil() error {
	if len(f) == 0 {
		return nil
	}
	return f
}

func (f FieldErrors) Error() string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		name := k
		if name == "" {
			name = "__all__"
		}
		parts = append(parts, name+": "+strings.Join(f[k], "; "))
	}
	return strings.Join(parts, ", ")
}

func (f FieldErrors) FieldMessages() map[string][]string {
	return f
}
