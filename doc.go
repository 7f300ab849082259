// Package influxc provides a client for InfluxDB-compatible time-series
// HTTP APIs, including Chronicle's line-protocol and streaming endpoints.
//
// The core of the package is a typed timestamp-precision model: write
// requests accept only [WritePrecision] values, so the human-readable
// RFC3339 precision (which the wire protocol permits on queries only) can
// never reach a write by construction.
//
// # Basic Usage
//
// Create a client and write a point:
//
//	client, err := influxc.NewClient(influxc.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	db := influxc.MustDatabase("sensors")
//	err = client.Write(ctx, influxc.WriteParams{
//	    Database:  db,
//	    Precision: influxc.WriteSecond,
//	}, influxc.Point{
//	    Measurement: "temperature",
//	    Tags:        map[string]string{"room": "lab"},
//	    Fields:      map[string]influxc.FieldValue{"value": influxc.FloatField(21.7)},
//	    Time:        influxc.UTC(time.Now()),
//	})
//
// Query data back:
//
//	result, err := client.Query(ctx, influxc.QueryParams{Database: db},
//	    `SELECT "value" FROM "temperature" WHERE time > now() - 1h`)
//
// # Features
//
// Core model:
//   - Typed precision set (nanosecond through hour, plus query-only RFC3339)
//   - Timestamp capability with rounding and precision-unit scaling
//   - Closed field value variant (int, float, string, bool, null)
//   - Validated database and key identifiers
//
// Transport:
//   - Line-protocol writes and JSON query decoding over HTTP
//   - Background batching writer with a durable SQLite spool
//   - Prometheus remote-write output (snappy + protobuf)
//   - WebSocket streaming subscriptions
//
// The client reports failures as typed [ClientError] values and never
// retries on its own; [Retryer] is available for applications that want a
// retry policy on top.
package influxc
