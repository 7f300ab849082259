package influxc

import "time"

// Timestamp is implemented by types that can express an instant at a given
// write precision. Implementations must keep the two operations distinct:
// RoundTo snaps to the precision's granularity but always reports
// nanoseconds, while ScaleTo reports a count in the target unit.
//
// The interface is open so downstream time representations can conform;
// [UTC] and [Epoch] are the two canonical implementers.
type Timestamp interface {
	// RoundTo returns the instant rounded to the nearest multiple of the
	// precision's unit, expressed in nanoseconds since the Unix epoch.
	RoundTo(p WritePrecision) int64

	// ScaleTo returns the instant as an integer count of precision units
	// since the Unix epoch, rounded to the nearest unit.
	ScaleTo(p WritePrecision) int64
}

// UTC adapts an absolute instant. The zero value is the zero time.Time.
type UTC time.Time

// RoundTo implements Timestamp.
func (t UTC) RoundTo(p WritePrecision) int64 {
	step := int64(p.Duration())
	return divRound(time.Time(t).UnixNano(), step) * step
}

// ScaleTo implements Timestamp.
func (t UTC) ScaleTo(p WritePrecision) int64 {
	return divRound(time.Time(t).UnixNano(), int64(p.Duration()))
}

// Epoch adapts a signed duration since the Unix epoch. Negative values
// denote instants before the epoch and round symmetrically with positive
// ones.
type Epoch time.Duration

// RoundTo implements Timestamp.
func (d Epoch) RoundTo(p WritePrecision) int64 {
	step := int64(p.Duration())
	return divRound(int64(d), step) * step
}

// ScaleTo implements Timestamp.
func (d Epoch) ScaleTo(p WritePrecision) int64 {
	return divRound(int64(d), int64(p.Duration()))
}

// divRound divides ns by step rounding half away from zero. Pure integer
// arithmetic: float64 has a 53-bit mantissa and cannot represent current
// Unix nanosecond values exactly.
func divRound(ns, step int64) int64 {
	if step <= 1 {
		return ns
	}
	if ns >= 0 {
		return (ns + step/2) / step
	}
	return -((-ns + step/2) / step)
}
