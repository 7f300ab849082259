package influxc

import (
	"testing"
	"time"
)

func TestRoundToSecond(t *testing.T) {
	tests := []struct {
		name string
		ts   Timestamp
		want int64
	}{
		{"1.4s rounds down", Epoch(1400 * time.Millisecond), 1_000_000_000},
		{"1.6s rounds up", Epoch(1600 * time.Millisecond), 2_000_000_000},
		{"exact second unchanged", Epoch(3 * time.Second), 3_000_000_000},
		{"-1.6s rounds away from zero", Epoch(-1600 * time.Millisecond), -2_000_000_000},
		{"-1.4s rounds toward zero", Epoch(-1400 * time.Millisecond), -1_000_000_000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ts.RoundTo(WriteSecond); got != tt.want {
				t.Errorf("RoundTo(Second) = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestScaleToMinute(t *testing.T) {
	tests := []struct {
		name string
		ts   Timestamp
		want int64
	}{
		{"90s is 1.5 min, rounds to 2", Epoch(90 * time.Second), 2},
		{"100s is under 2 min, rounds to 2", Epoch(100 * time.Second), 2},
		{"80s rounds to 1", Epoch(80 * time.Second), 1},
		{"-90s rounds to -2", Epoch(-90 * time.Second), -2},
		{"-80s rounds to -1", Epoch(-80 * time.Second), -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ts.ScaleTo(WriteMinute); got != tt.want {
				t.Errorf("ScaleTo(Minute) = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRoundVersusScaleAsymmetry(t *testing.T) {
	// RoundTo snaps to the precision but reports nanoseconds; ScaleTo
	// reports a count in the precision's unit.
	ts := Epoch(90 * time.Second)
	if got := ts.RoundTo(WriteMinute); got != 120_000_000_000 {
		t.Errorf("RoundTo(Minute) = %d, want 120000000000", got)
	}
	if got := ts.ScaleTo(WriteMinute); got != 2 {
		t.Errorf("ScaleTo(Minute) = %d, want 2", got)
	}
}

func TestNanosecondRoundEqualsScale(t *testing.T) {
	// At nanosecond granularity there is nothing to round, so both
	// operations agree exactly, including for nanos beyond float64's
	// 53-bit integer range.
	values := []int64{
		0,
		1,
		-1,
		1_700_000_000_123_456_789,
		-1_700_000_000_123_456_789,
	}
	for _, ns := range values {
		e := Epoch(ns)
		if r, s := e.RoundTo(WriteNanosecond), e.ScaleTo(WriteNanosecond); r != s || r != ns {
			t.Errorf("Epoch(%d): RoundTo = %d, ScaleTo = %d, want both %d", ns, r, s, ns)
		}
		u := UTC(time.Unix(0, ns))
		if r, s := u.RoundTo(WriteNanosecond), u.ScaleTo(WriteNanosecond); r != s || r != ns {
			t.Errorf("UTC(%d): RoundTo = %d, ScaleTo = %d, want both %d", ns, r, s, ns)
		}
	}
}

func TestUTCAndEpochAgree(t *testing.T) {
	instant := time.Date(2024, 6, 15, 12, 30, 45, 500_000_000, time.UTC)
	u := UTC(instant)
	e := Epoch(time.Duration(instant.UnixNano()))
	for _, w := range allWritePrecisions {
		if ur, er := u.RoundTo(w), e.RoundTo(w); ur != er {
			t.Errorf("RoundTo(%v): UTC %d != Epoch %d", w, ur, er)
		}
		if us, es := u.ScaleTo(w), e.ScaleTo(w); us != es {
			t.Errorf("ScaleTo(%v): UTC %d != Epoch %d", w, us, es)
		}
	}
}

func TestScaleToRoundTrips(t *testing.T) {
	// Scaling to a unit and multiplying back reconstructs the instant
	// within one unit of the precision's granularity.
	instants := []time.Duration{
		17*time.Hour + 23*time.Minute + 7*time.Second + 123*time.Millisecond,
		-(3*time.Hour + 59*time.Minute + 59*time.Second),
		42 * time.Nanosecond,
	}
	for _, d := range instants {
		for _, w := range allWritePrecisions {
			unit := int64(w.Duration())
			back := Epoch(d).ScaleTo(w) * unit
			diff := int64(d) - back
			if diff < 0 {
				diff = -diff
			}
			if diff > unit {
				t.Errorf("Epoch(%v) via %v: reconstructed %d, off by %d > one unit %d",
					d, w, back, diff, unit)
			}
		}
	}
}

func TestRoundToIsScaleTimesUnit(t *testing.T) {
	for _, w := range allWritePrecisions {
		for _, d := range []time.Duration{
			90 * time.Second,
			-90 * time.Second,
			1234567891 * time.Nanosecond,
		} {
			e := Epoch(d)
			if got, want := e.RoundTo(w), e.ScaleTo(w)*int64(w.Duration()); got != want {
				t.Errorf("%v at %v: RoundTo = %d, ScaleTo*unit = %d", d, w, got, want)
			}
		}
	}
}

func TestDivRoundHalfAwayFromZero(t *testing.T) {
	tests := []struct {
		ns, step, want int64
	}{
		{1_500_000_000, 1_000_000_000, 2},
		{-1_500_000_000, 1_000_000_000, -2},
		{2_500_000_000, 1_000_000_000, 3},
		{-2_500_000_000, 1_000_000_000, -3},
		{499, 1000, 0},
		{500, 1000, 1},
		{-500, 1000, -1},
	}
	for _, tt := range tests {
		if got := divRound(tt.ns, tt.step); got != tt.want {
			t.Errorf("divRound(%d, %d) = %d, want %d", tt.ns, tt.step, got, tt.want)
		}
	}
}
