package influxc

import "fmt"

// Database is a validated database name. A Database obtained from
// NewDatabase or MustDatabase is never empty; the zero value is empty and
// is rejected by every request builder before anything reaches the wire.
type Database struct {
	name string
}

// NewDatabase wraps a database name, failing on empty input. Empty
// identifiers are never valid on the wire, so construction refuses them
// rather than deferring the failure to request time.
func NewDatabase(name string) (Database, error) {
	if name == "" {
		return Database{}, fmt.Errorf("database name: %w", ErrEmptyIdentifier)
	}
	return Database{name: name}, nil
}

// MustDatabase is like NewDatabase but panics on empty input.
// Intended for literals.
func MustDatabase(name string) Database {
	db, err := NewDatabase(name)
	if err != nil {
		panic(err)
	}
	return db
}

// String returns the backing name.
func (d Database) String() string { return d.name }

// IsZero reports whether the value is the (invalid) zero Database.
func (d Database) IsZero() bool { return d.name == "" }

// Less orders databases by backing text.
func (d Database) Less(other Database) bool { return d.name < other.name }

// Key is a validated measurement, tag, or field key. Construction rules
// match Database: never empty.
type Key struct {
	name string
}

// NewKey wraps a key, failing on empty input.
func NewKey(name string) (Key, error) {
	if name == "" {
		return Key{}, fmt.Errorf("key: %w", ErrEmptyIdentifier)
	}
	return Key{name: name}, nil
}

// MustKey is like NewKey but panics on empty input. Intended for literals.
func MustKey(name string) Key {
	k, err := NewKey(name)
	if err != nil {
		panic(err)
	}
	return k
}

// String returns the backing name.
func (k Key) String() string { return k.name }

// IsZero reports whether the value is the (invalid) zero Key.
func (k Key) IsZero() bool { return k.name == "" }

// Less orders keys by backing text.
func (k Key) Less(other Key) bool { return k.name < other.name }

// RetentionPolicy names a retention policy. It is opaque: the server owns
// the namespace, so no validation is applied and "" means the default
// policy.
type RetentionPolicy string

// String returns the policy name.
func (rp RetentionPolicy) String() string { return string(rp) }
