package influxc

import "encoding/json"

// QueryParams configures a query request.
type QueryParams struct {
	// Database is the database queried against. Required for statements
	// that read data; management statements may leave it zero.
	Database Database

	// RetentionPolicy optionally names the retention policy to read from.
	RetentionPolicy RetentionPolicy

	// Precision selects the timestamp representation in results. The full
	// precision set is legal here, including PrecisionRFC3339: calendar
	// timestamps are the protocol default, so that precision is expressed
	// by omitting the epoch parameter.
	Precision Precision
}

// QueryResult is the decoded response of a query request.
type QueryResult struct {
	Results []StatementResult `json:"results"`
	Err     string            `json:"error,omitempty"`
}

// StatementResult holds the outcome of one statement within a query.
type StatementResult struct {
	StatementID int      `json:"statement_id"`
	Series      []Series `json:"series,omitempty"`
	Err         string   `json:"error,omitempty"`
}

// Series is one series of a statement result: column names plus rows of
// values. Timestamps appear in the first column, formatted per the query's
// precision.
type Series struct {
	Name    string            `json:"name"`
	Tags    map[string]string `json:"tags,omitempty"`
	Columns []string          `json:"columns"`
	Values  [][]any           `json:"values"`
}

// decodeQueryResponse parses a query response body. A body that does not
// parse yields an IllformedJSON error carrying the raw bytes; a body that
// parses but reports a server-side error yields a ServerError.
func decodeQueryResponse(body []byte) (*QueryResult, error) {
	var result QueryResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, newIllformedJSONError("query response did not parse", body, err)
	}
	if result.Err != "" {
		return nil, newServerError(result.Err, 0)
	}
	for _, r := range result.Results {
		if r.Err != "" {
			return nil, newServerError(r.Err, 0)
		}
	}
	return &result, nil
}
