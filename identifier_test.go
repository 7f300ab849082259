package influxc

import (
	"errors"
	"testing"
)

func TestNewDatabase(t *testing.T) {
	db, err := NewDatabase("mydb")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if db.String() != "mydb" {
		t.Errorf("String() = %q, want %q", db.String(), "mydb")
	}
	if db.IsZero() {
		t.Error("valid database reported as zero")
	}
}

func TestNewDatabaseEmpty(t *testing.T) {
	_, err := NewDatabase("")
	if !errors.Is(err, ErrEmptyIdentifier) {
		t.Errorf("expected ErrEmptyIdentifier, got %v", err)
	}
}

func TestMustDatabasePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustDatabase(\"\") did not panic")
		}
	}()
	MustDatabase("")
}

func TestDatabaseOrdering(t *testing.T) {
	a := MustDatabase("alpha")
	b := MustDatabase("beta")
	if !a.Less(b) || b.Less(a) {
		t.Error("databases not ordered by backing text")
	}
	if a != MustDatabase("alpha") {
		t.Error("equal databases compare unequal")
	}
}

func TestNewKey(t *testing.T) {
	k, err := NewKey("temperature")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if k.String() != "temperature" {
		t.Errorf("String() = %q, want %q", k.String(), "temperature")
	}

	if _, err := NewKey(""); !errors.Is(err, ErrEmptyIdentifier) {
		t.Errorf("expected ErrEmptyIdentifier, got %v", err)
	}
}

func TestMustKeyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustKey(\"\") did not panic")
		}
	}()
	MustKey("")
}

func TestZeroIdentifiersAreInvalid(t *testing.T) {
	var db Database
	if !db.IsZero() {
		t.Error("zero Database not reported as zero")
	}
	var k Key
	if !k.IsZero() {
		t.Error("zero Key not reported as zero")
	}
}

func TestRetentionPolicyIsOpaque(t *testing.T) {
	// No validation: empty means the server default.
	var rp RetentionPolicy
	if rp.String() != "" {
		t.Errorf("zero RetentionPolicy = %q", rp.String())
	}
	if RetentionPolicy("autogen").String() != "autogen" {
		t.Error("RetentionPolicy did not round-trip")
	}
}
