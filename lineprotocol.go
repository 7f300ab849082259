package influxc

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// MarshalLineProtocol encodes points into line protocol, one line per point,
// with timestamps expressed as integer counts of the given write precision
// (the unit the server is told about via the precision request parameter).
//
// Tag and field keys are emitted in sorted order so output is deterministic.
// A point with no measurement, no writable field, or an empty key fails with
// a BadRequest error; nothing partially encoded is returned.
func MarshalLineProtocol(points []Point, prec WritePrecision) (string, error) {
	var b strings.Builder
	for i, p := range points {
		if i > 0 {
			b.WriteByte('\n')
		}
		if err := appendLine(&b, p, prec); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

func appendLine(b *strings.Builder, p Point, prec WritePrecision) error {
	m, err := NewKey(p.Measurement)
	if err != nil {
		return newBadRequestError("point has no measurement", "", 0, err)
	}
	b.WriteString(escapeMeasurement(m.String()))

	for _, k := range sortedKeys(p.Tags) {
		if k == "" {
			return newBadRequestError(
				fmt.Sprintf("measurement %q has an empty tag key", p.Measurement),
				"", 0, ErrEmptyIdentifier)
		}
		b.WriteByte(',')
		b.WriteString(escapeTag(k))
		b.WriteByte('=')
		b.WriteString(escapeTag(p.Tags[k]))
	}

	wrote := false
	fieldKeys := make([]string, 0, len(p.Fields))
	for k := range p.Fields {
		fieldKeys = append(fieldKeys, k)
	}
	sort.Strings(fieldKeys)
	for _, k := range fieldKeys {
		v := p.Fields[k]
		if v.Kind() == FieldNull {
			continue
		}
		fk, err := NewKey(k)
		if err != nil {
			return newBadRequestError(
				fmt.Sprintf("measurement %q has an empty field key", p.Measurement),
				"", 0, err)
		}
		if wrote {
			b.WriteByte(',')
		} else {
			b.WriteByte(' ')
			wrote = true
		}
		b.WriteString(escapeTag(fk.String()))
		b.WriteByte('=')
		b.WriteString(encodeFieldValue(v))
	}
	if !wrote {
		return newBadRequestError(
			fmt.Sprintf("measurement %q has no writable field", p.Measurement),
			"", 0, nil)
	}

	if p.Time != nil {
		b.WriteByte(' ')
		b.WriteString(strconv.FormatInt(p.Time.ScaleTo(prec), 10))
	}
	return nil
}

// encodeFieldValue renders a non-null field value in line-protocol syntax.
func encodeFieldValue(v FieldValue) string {
	switch v.Kind() {
	case FieldInt:
		return strconv.FormatInt(v.Int(), 10) + "i"
	case FieldFloat:
		return strconv.FormatFloat(v.Float(), 'g', -1, 64)
	case FieldString:
		return `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(v.Text()) + `"`
	case FieldBool:
		if v.Bool() {
			return "true"
		}
		return "false"
	}
	return ""
}

func escapeMeasurement(s string) string {
	return strings.NewReplacer(`,`, `\,`, ` `, `\ `).Replace(s)
}

func escapeTag(s string) string {
	return strings.NewReplacer(`,`, `\,`, `=`, `\=`, ` `, `\ `).Replace(s)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
