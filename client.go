package influxc

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// maxResponseBody bounds how much of a response body is read (10MB).
const maxResponseBody = 10 * 1024 * 1024

// Client talks to an InfluxDB-compatible HTTP API. It is safe for
// concurrent use; all state after construction is read-only.
//
// The client surfaces failures as typed errors (see ClientError) and never
// retries on its own. Retry policy belongs to the calling application.
type Client struct {
	config Config
	base   string
	httpc  *http.Client
}

// NewClient creates a client from the configuration. Zero config fields
// are filled with DefaultConfig values.
func NewClient(config Config) (*Client, error) {
	config.normalize()
	if config.Server.Host == "" {
		return nil, newBadRequestError("server host not configured", "", 0, nil)
	}
	return &Client{
		config: config,
		base:   config.Server.URL(),
		httpc:  &http.Client{Timeout: config.Timeout},
	}, nil
}

// Config returns the normalized configuration the client was built with.
func (c *Client) Config() Config { return c.config }

// Ping checks connectivity and returns the server version reported in the
// X-Influxdb-Version response header, which may be empty.
func (c *Client) Ping(ctx context.Context) (string, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/ping", nil, nil)
	if err != nil {
		return "", err
	}
	resp, body, err := c.do(req)
	if err != nil {
		return "", err
	}
	if resp.StatusCode >= 300 {
		return "", c.statusError(resp.StatusCode, body, "/ping")
	}
	return resp.Header.Get("X-Influxdb-Version"), nil
}

// WriteParams configures a write request. Precision is a WritePrecision,
// so the calendar format cannot be selected for writes.
type WriteParams struct {
	// Database receives the points. Required.
	Database Database

	// RetentionPolicy optionally names the target retention policy.
	RetentionPolicy RetentionPolicy

	// Precision is the unit point timestamps are expressed in.
	// The zero value is WriteNanosecond.
	Precision WritePrecision
}

// Write encodes the points as line protocol and posts them. A 4xx response
// yields a BadRequest error carrying the rejected lines; a 5xx response
// yields a ServerError.
func (c *Client) Write(ctx context.Context, params WriteParams, points ...Point) error {
	if params.Database.IsZero() {
		return newBadRequestError("write requires a database", "", 0, ErrEmptyIdentifier)
	}
	if len(points) == 0 {
		return nil
	}
	lines, err := MarshalLineProtocol(points, params.Precision)
	if err != nil {
		return err
	}
	return c.writeLines(ctx, params, lines)
}

// writeLines posts already-encoded line protocol. The spool replays through
// this path so re-delivery bytes are identical to the original attempt.
func (c *Client) writeLines(ctx context.Context, params WriteParams, lines string) error {
	q := url.Values{}
	q.Set("db", params.Database.String())
	q.Set("precision", params.Precision.Name())
	if params.RetentionPolicy != "" {
		q.Set("rp", params.RetentionPolicy.String())
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/write", q, strings.NewReader(lines))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")

	resp, body, err := c.do(req)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 300 {
		return c.statusError(resp.StatusCode, body, lines)
	}
	return nil
}

// Query runs a query statement and decodes its results. The full precision
// set is legal here: setting QueryParams.Precision to PrecisionRFC3339
// requests calendar-formatted timestamps.
func (c *Client) Query(ctx context.Context, params QueryParams, command string) (*QueryResult, error) {
	if command == "" {
		return nil, newBadRequestError("empty query", "", 0, nil)
	}

	q := url.Values{}
	q.Set("q", command)
	if !params.Database.IsZero() {
		q.Set("db", params.Database.String())
	}
	if params.RetentionPolicy != "" {
		q.Set("rp", params.RetentionPolicy.String())
	}
	// Calendar timestamps are the server default; any other precision is
	// requested through the epoch parameter.
	if params.Precision != PrecisionRFC3339 {
		q.Set("epoch", params.Precision.Name())
	}

	req, err := c.newRequest(ctx, http.MethodGet, "/query", q, nil)
	if err != nil {
		return nil, err
	}
	resp, body, err := c.do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 300 {
		return nil, c.statusError(resp.StatusCode, body, command)
	}
	return decodeQueryResponse(body)
}

// CreateDatabase issues CREATE DATABASE for the given database.
func (c *Client) CreateDatabase(ctx context.Context, db Database) error {
	return c.manage(ctx, fmt.Sprintf(`CREATE DATABASE %q`, db.String()), db)
}

// DropDatabase issues DROP DATABASE for the given database.
func (c *Client) DropDatabase(ctx context.Context, db Database) error {
	return c.manage(ctx, fmt.Sprintf(`DROP DATABASE %q`, db.String()), db)
}

func (c *Client) manage(ctx context.Context, command string, db Database) error {
	if db.IsZero() {
		return newBadRequestError("management statement requires a database", command, 0, ErrEmptyIdentifier)
	}

	q := url.Values{}
	q.Set("q", command)

	req, err := c.newRequest(ctx, http.MethodPost, "/query", q, nil)
	if err != nil {
		return err
	}
	resp, body, err := c.do(req)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 300 {
		return c.statusError(resp.StatusCode, body, command)
	}
	_, err = decodeQueryResponse(body)
	return err
}

// newRequest builds a request with auth and user agent applied.
func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, newBadRequestError("building request failed", u, 0, err)
	}
	req.Header.Set("User-Agent", c.config.UserAgent)
	if !c.config.Credentials.IsZero() {
		req.SetBasicAuth(c.config.Credentials.User, c.config.Credentials.Password)
	}
	return req, nil
}

// do sends the request and drains the response body.
func (c *Client) do(req *http.Request) (*http.Response, []byte, error) {
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, nil, fmt.Errorf("reading response: %w", err)
	}
	return resp, body, nil
}

// statusError maps a non-2xx response to the error taxonomy: 4xx means the
// request was malformed and carries it for diagnostics, everything else is
// a server-side failure.
func (c *Client) statusError(status int, body []byte, request string) error {
	msg := serverMessage(body)
	if msg == "" {
		msg = http.StatusText(status)
	}
	if status >= 400 && status < 500 {
		return newBadRequestError(msg, request, status, nil)
	}
	return newServerError(msg, status)
}

// serverMessage extracts the error message from a {"error": "..."} body,
// falling back to the trimmed body text.
func serverMessage(body []byte) string {
	var e struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &e); err == nil && e.Error != "" {
		return e.Error
	}
	return strings.TrimSpace(string(body))
}
