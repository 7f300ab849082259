package influxc

import "time"

// Precision identifies the timestamp granularity used on the wire.
// Six of the seven variants count fixed units since the Unix epoch; RFC3339
// is a human-readable calendar format the protocol accepts on queries only.
type Precision int

const (
	PrecisionNanosecond Precision = iota
	PrecisionMicrosecond
	PrecisionMillisecond
	PrecisionSecond
	PrecisionMinute
	PrecisionHour
	// PrecisionRFC3339 requests calendar-formatted timestamps.
	// It is valid on query requests only; see WritePrecision.
	PrecisionRFC3339
)

// Name returns the wire token for the precision, as sent in the
// "precision" (write) or "epoch" (query) request parameter.
func (p Precision) Name() string {
	switch p {
	case PrecisionNanosecond:
		return "n"
	case PrecisionMicrosecond:
		return "u"
	case PrecisionMillisecond:
		return "ms"
	case PrecisionSecond:
		return "s"
	case PrecisionMinute:
		return "m"
	case PrecisionHour:
		return "h"
	case PrecisionRFC3339:
		return "rfc3339"
	}
	return "n"
}

// Scale returns the number of seconds one unit of the precision represents.
// RFC3339 timestamps carry nanosecond resolution, so it scales as nanoseconds.
func (p Precision) Scale() float64 {
	switch p {
	case PrecisionNanosecond, PrecisionRFC3339:
		return 1e-9
	case PrecisionMicrosecond:
		return 1e-6
	case PrecisionMillisecond:
		return 1e-3
	case PrecisionSecond:
		return 1
	case PrecisionMinute:
		return 60
	case PrecisionHour:
		return 3600
	}
	return 1e-9
}

// String returns the wire token.
func (p Precision) String() string { return p.Name() }

// WritePrecision is the subset of Precision that is legal on write requests.
// The only values are the six exported package variables; the wrapped field
// is unexported, so a WritePrecision holding PrecisionRFC3339 cannot be
// constructed outside this package. Functions on the write path accept
// WritePrecision, which makes a calendar-format write a compile error rather
// than a runtime check.
type WritePrecision struct {
	p Precision
}

// The write-legal precisions.
var (
	WriteNanosecond  = WritePrecision{PrecisionNanosecond}
	WriteMicrosecond = WritePrecision{PrecisionMicrosecond}
	WriteMillisecond = WritePrecision{PrecisionMillisecond}
	WriteSecond      = WritePrecision{PrecisionSecond}
	WriteMinute      = WritePrecision{PrecisionMinute}
	WriteHour        = WritePrecision{PrecisionHour}
)

// Precision widens to the full precision set, for use on the query path.
func (w WritePrecision) Precision() Precision { return w.p }

// Name returns the wire token.
func (w WritePrecision) Name() string { return w.p.Name() }

// Scale returns seconds per unit.
func (w WritePrecision) Scale() float64 { return w.p.Scale() }

// String returns the wire token.
func (w WritePrecision) String() string { return w.p.Name() }

// writePrecisionNamed resolves a wire token back to a write precision.
// Only the six write-legal tokens resolve; "rfc3339" does not.
func writePrecisionNamed(name string) (WritePrecision, bool) {
	for _, w := range []WritePrecision{
		WriteNanosecond, WriteMicrosecond, WriteMillisecond,
		WriteSecond, WriteMinute, WriteHour,
	} {
		if w.Name() == name {
			return w, true
		}
	}
	return WritePrecision{}, false
}

// Duration returns the exact size of one precision unit.
// Unlike Scale it is exact integer nanoseconds, which is what the
// timestamp conversion arithmetic uses.
func (w WritePrecision) Duration() time.Duration {
	switch w.p {
	case PrecisionNanosecond:
		return time.Nanosecond
	case PrecisionMicrosecond:
		return time.Microsecond
	case PrecisionMillisecond:
		return time.Millisecond
	case PrecisionSecond:
		return time.Second
	case PrecisionMinute:
		return time.Minute
	case PrecisionHour:
		return time.Hour
	}
	return time.Nanosecond
}
