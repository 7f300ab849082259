package influxc

import "strconv"

// FieldKind enumerates the closed set of field value variants.
type FieldKind int

const (
	// FieldNull is an absent value.
	FieldNull FieldKind = iota
	// FieldInt is a signed 64-bit integer.
	FieldInt
	// FieldFloat is a 64-bit float.
	FieldFloat
	// FieldString is a text value.
	FieldString
	// FieldBool is a boolean.
	FieldBool
)

// FieldValue is one column's value within a data point. All five variants
// are always well formed; construction needs no validation. FieldValue is
// comparable, so == gives structural equality.
type FieldValue struct {
	kind FieldKind
	i    int64
	f    float64
	s    string
	b    bool
}

// IntField returns an integer field value.
func IntField(v int64) FieldValue { return FieldValue{kind: FieldInt, i: v} }

// FloatField returns a float field value.
func FloatField(v float64) FieldValue { return FieldValue{kind: FieldFloat, f: v} }

// StringField returns a string field value.
func StringField(v string) FieldValue { return FieldValue{kind: FieldString, s: v} }

// BoolField returns a boolean field value.
func BoolField(v bool) FieldValue { return FieldValue{kind: FieldBool, b: v} }

// NullField returns the absent field value. It equals the zero FieldValue.
func NullField() FieldValue { return FieldValue{} }

// Kind returns the variant tag.
func (v FieldValue) Kind() FieldKind { return v.kind }

// Int returns the integer payload, or zero if the kind is not FieldInt.
func (v FieldValue) Int() int64 { return v.i }

// Float returns the float payload, or zero if the kind is not FieldFloat.
func (v FieldValue) Float() float64 { return v.f }

// Text returns the string payload, or "" if the kind is not FieldString.
func (v FieldValue) Text() string { return v.s }

// Bool returns the boolean payload, or false if the kind is not FieldBool.
func (v FieldValue) Bool() bool { return v.b }

// String returns a human-readable rendering for logs and errors. The wire
// encoding lives in the line-protocol layer, not here.
func (v FieldValue) String() string {
	switch v.kind {
	case FieldInt:
		return strconv.FormatInt(v.i, 10)
	case FieldFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case FieldString:
		return strconv.Quote(v.s)
	case FieldBool:
		return strconv.FormatBool(v.b)
	}
	return "null"
}
