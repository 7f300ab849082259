package influxc

// Point represents a single data point to be written: a measurement name,
// optional tags, one or more field values, and an optional timestamp.
type Point struct {
	// Measurement is the series name (e.g., "cpu.usage", "temperature").
	Measurement string
	// Tags are optional key-value labels for filtering and grouping.
	Tags map[string]string
	// Fields are the measured values. At least one non-null field is
	// required for a point to be writable.
	Fields map[string]FieldValue
	// Time is the observation time. When nil the server assigns its own
	// receive timestamp.
	Time Timestamp
}

// NewPoint creates a point without a timestamp; the server assigns one.
func NewPoint(measurement string, tags map[string]string, fields map[string]FieldValue) Point {
	return Point{Measurement: measurement, Tags: tags, Fields: fields}
}

// NewPointAt creates a point with an explicit timestamp.
func NewPointAt(measurement string, tags map[string]string, fields map[string]FieldValue, ts Timestamp) Point {
	return Point{Measurement: measurement, Tags: tags, Fields: fields, Time: ts}
}
