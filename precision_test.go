package influxc

import (
	"testing"
	"time"
)

var allPrecisions = []Precision{
	PrecisionNanosecond,
	PrecisionMicrosecond,
	PrecisionMillisecond,
	PrecisionSecond,
	PrecisionMinute,
	PrecisionHour,
	PrecisionRFC3339,
}

var allWritePrecisions = []WritePrecision{
	WriteNanosecond,
	WriteMicrosecond,
	WriteMillisecond,
	WriteSecond,
	WriteMinute,
	WriteHour,
}

func TestPrecisionNames(t *testing.T) {
	tests := []struct {
		p    Precision
		want string
	}{
		{PrecisionNanosecond, "n"},
		{PrecisionMicrosecond, "u"},
		{PrecisionMillisecond, "ms"},
		{PrecisionSecond, "s"},
		{PrecisionMinute, "m"},
		{PrecisionHour, "h"},
		{PrecisionRFC3339, "rfc3339"},
	}
	for _, tt := range tests {
		if got := tt.p.Name(); got != tt.want {
			t.Errorf("Name(%v) = %q, want %q", tt.p, got, tt.want)
		}
	}
}

func TestPrecisionNameInjective(t *testing.T) {
	seen := make(map[string]Precision)
	for _, p := range allPrecisions {
		name := p.Name()
		if name == "" {
			t.Errorf("precision %d has empty name", p)
		}
		if prev, ok := seen[name]; ok {
			t.Errorf("precisions %v and %v share wire token %q", prev, p, name)
		}
		seen[name] = p
	}
}

func TestPrecisionScale(t *testing.T) {
	tests := []struct {
		p    Precision
		want float64
	}{
		{PrecisionNanosecond, 1e-9},
		{PrecisionMicrosecond, 1e-6},
		{PrecisionMillisecond, 1e-3},
		{PrecisionSecond, 1},
		{PrecisionMinute, 60},
		{PrecisionHour, 3600},
		{PrecisionRFC3339, 1e-9},
	}
	for _, tt := range tests {
		if got := tt.p.Scale(); got != tt.want {
			t.Errorf("Scale(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestWritePrecisionWidens(t *testing.T) {
	for _, w := range allWritePrecisions {
		p := w.Precision()
		if p == PrecisionRFC3339 {
			t.Fatalf("write precision %v widened to RFC3339", w)
		}
		if w.Name() != p.Name() {
			t.Errorf("name mismatch after widening: %q vs %q", w.Name(), p.Name())
		}
		if w.Scale() != p.Scale() {
			t.Errorf("scale mismatch after widening: %v vs %v", w.Scale(), p.Scale())
		}
	}
}

func TestWritePrecisionDuration(t *testing.T) {
	tests := []struct {
		w    WritePrecision
		want time.Duration
	}{
		{WriteNanosecond, time.Nanosecond},
		{WriteMicrosecond, time.Microsecond},
		{WriteMillisecond, time.Millisecond},
		{WriteSecond, time.Second},
		{WriteMinute, time.Minute},
		{WriteHour, time.Hour},
	}
	for _, tt := range tests {
		if got := tt.w.Duration(); got != tt.want {
			t.Errorf("Duration(%v) = %v, want %v", tt.w, got, tt.want)
		}
		// Duration and Scale describe the same unit.
		if got := tt.w.Duration().Seconds(); got != tt.w.Scale() {
			t.Errorf("Duration(%v).Seconds() = %v, Scale() = %v", tt.w, got, tt.w.Scale())
		}
	}
}

func TestWritePrecisionZeroValueIsNanosecond(t *testing.T) {
	var w WritePrecision
	if w != WriteNanosecond {
		t.Errorf("zero WritePrecision = %v, want WriteNanosecond", w)
	}
}

func TestWritePrecisionNamed(t *testing.T) {
	for _, w := range allWritePrecisions {
		got, ok := writePrecisionNamed(w.Name())
		if !ok || got != w {
			t.Errorf("writePrecisionNamed(%q) = %v, %v", w.Name(), got, ok)
		}
	}
	// The calendar token must not resolve to a write precision.
	if _, ok := writePrecisionNamed("rfc3339"); ok {
		t.Error("writePrecisionNamed accepted rfc3339")
	}
	if _, ok := writePrecisionNamed("bogus"); ok {
		t.Error("writePrecisionNamed accepted bogus token")
	}
}
