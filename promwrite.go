package influxc

import (
	"bytes"
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/golang/snappy"
	"github.com/prometheus/prometheus/prompb"
)

// DefaultRemoteWritePath is the remote-write endpoint Chronicle exposes.
const DefaultRemoteWritePath = "/prometheus/write"

// RemoteWriter delivers points to a Prometheus remote-write endpoint:
// points become snappy-compressed protobuf WriteRequests. Remote write
// carries millisecond timestamps and float samples, so integer and boolean
// fields are widened to float and string/null fields are skipped.
type RemoteWriter struct {
	client *Client
	path   string
}

// NewRemoteWriter creates a remote writer on top of an existing client.
// An empty path selects DefaultRemoteWritePath.
func NewRemoteWriter(client *Client, path string) *RemoteWriter {
	if path == "" {
		path = DefaultRemoteWritePath
	}
	return &RemoteWriter{client: client, path: path}
}

// Write converts and posts the points. Points whose fields are all
// string-valued or null produce no samples and are silently skipped.
func (rw *RemoteWriter) Write(ctx context.Context, points ...Point) error {
	req := toPromWriteRequest(points)
	if len(req.Timeseries) == 0 {
		return nil
	}
	data, err := req.Marshal()
	if err != nil {
		return newBadRequestError("encoding remote write request failed", "", 0, err)
	}
	encoded := snappy.Encode(nil, data)

	httpReq, err := rw.client.newRequest(ctx, http.MethodPost, rw.path, nil, bytes.NewReader(encoded))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/x-protobuf")
	httpReq.Header.Set("Content-Encoding", "snappy")
	httpReq.Header.Set("X-Prometheus-Remote-Write-Version", "0.1.0")

	resp, body, err := rw.client.do(httpReq)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 300 {
		return rw.client.statusError(resp.StatusCode, body, rw.path)
	}
	return nil
}

// toPromWriteRequest converts points to remote-write series. Each numeric
// field becomes its own series: the "value" field keeps the measurement
// name, any other field appends its key with an underscore.
func toPromWriteRequest(points []Point) *prompb.WriteRequest {
	req := &prompb.WriteRequest{}
	for _, p := range points {
		ts := timestampMillis(p.Time)

		fieldKeys := make([]string, 0, len(p.Fields))
		for k := range p.Fields {
			fieldKeys = append(fieldKeys, k)
		}
		sort.Strings(fieldKeys)

		for _, k := range fieldKeys {
			val, ok := sampleValue(p.Fields[k])
			if !ok {
				continue
			}
			name := p.Measurement
			if k != "value" {
				name = p.Measurement + "_" + k
			}
			labels := make([]prompb.Label, 0, len(p.Tags)+1)
			labels = append(labels, prompb.Label{Name: "__name__", Value: name})
			for tk, tv := range p.Tags {
				labels = append(labels, prompb.Label{Name: tk, Value: tv})
			}
			// The remote-write contract wants the whole label set sorted
			// by name; tag keys starting with an uppercase letter sort
			// before "__name__".
			sort.Slice(labels, func(i, j int) bool {
				return labels[i].Name < labels[j].Name
			})
			req.Timeseries = append(req.Timeseries, prompb.TimeSeries{
				Labels:  labels,
				Samples: []prompb.Sample{{Value: val, Timestamp: ts}},
			})
		}
	}
	return req
}

func sampleValue(v FieldValue) (float64, bool) {
	switch v.Kind() {
	case FieldInt:
		return float64(v.Int()), true
	case FieldFloat:
		return v.Float(), true
	case FieldBool:
		if v.Bool() {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

func timestampMillis(ts Timestamp) int64 {
	if ts == nil {
		ts = UTC(time.Now())
	}
	return ts.ScaleTo(WriteMillisecond)
}
