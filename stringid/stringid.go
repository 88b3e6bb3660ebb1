// Package stringid provides a process-wide interned string handle: two IDs
// compare equal iff their underlying strings are equal, and comparison is
// pointer-cheap regardless of string length.
package stringid

import "unique"

// ID is an interned, comparable handle for a string. The zero value is the
// distinguished empty ID.
type ID struct {
	h unique.Handle[string]
}

// Intern returns the ID for s. Equal strings always yield equal IDs.
func Intern(s string) ID {
	if s == "" {
		return ID{}
	}
	return ID{h: unique.Make(s)}
}

// Empty reports whether id is the distinguished empty ID.
func (id ID) Empty() bool {
	var zero unique.Handle[string]
	return id.h == zero
}

// String returns the underlying string value.
func (id ID) String() string {
	var zero unique.Handle[string]
	if id.h == zero {
		return ""
	}
	return id.h.Value()
}

// MarshalText implements encoding.TextMarshaler.
func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ID) UnmarshalText(text []byte) error {
	*id = Intern(string(text))
	return nil
}
