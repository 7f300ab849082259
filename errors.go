package influxc

import (
	"errors"
	"fmt"
)

// Common sentinel errors for the influxc package.
var (
	// ErrServer is matched by errors reported by the remote service.
	ErrServer = errors.New("server reported failure")

	// ErrBadRequest is matched by errors for requests the client detected
	// as malformed before or during transmission.
	ErrBadRequest = errors.New("malformed request")

	// ErrIllformedJSON is matched by errors for response bodies that could
	// not be parsed as the expected structured format.
	ErrIllformedJSON = errors.New("ill-formed response body")

	// ErrEmptyIdentifier is returned when constructing a Database or Key
	// from an empty string.
	ErrEmptyIdentifier = errors.New("empty identifier")

	// ErrClosed is returned when operations are attempted on a closed
	// writer or spool.
	ErrClosed = errors.New("closed")
)

// ClientErrorType categorizes client errors.
type ClientErrorType int

const (
	// ClientErrorUnknown is an unclassified error.
	ClientErrorUnknown ClientErrorType = iota
	// ClientErrorServer indicates the remote service reported a failure.
	ClientErrorServer
	// ClientErrorBadRequest indicates the request was malformed.
	ClientErrorBadRequest
	// ClientErrorIllformedJSON indicates the response body did not parse.
	ClientErrorIllformedJSON
)

// ClientError provides detailed information about request failures.
// BadRequest errors carry the offending request for diagnostics;
// IllformedJSON errors carry the raw response body.
type ClientError struct {
	Type    ClientErrorType
	Message string
	// Request is the request line or body that was rejected, set for
	// ClientErrorBadRequest.
	Request string
	// RawBody is the unparseable response body, set for
	// ClientErrorIllformedJSON.
	RawBody []byte
	// StatusCode is the HTTP status, when the error came from a response.
	StatusCode int
	Cause      error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// Is implements error matching for ClientError.
func (e *ClientError) Is(target error) bool {
	switch e.Type {
	case ClientErrorServer:
		return target == ErrServer
	case ClientErrorBadRequest:
		return target == ErrBadRequest
	case ClientErrorIllformedJSON:
		return target == ErrIllformedJSON
	}
	return false
}

// newServerError reports a failure signalled by the remote service.
func newServerError(message string, statusCode int) *ClientError {
	return &ClientError{
		Type:       ClientErrorServer,
		Message:    message,
		StatusCode: statusCode,
	}
}

// newBadRequestError reports a malformed request, carrying it for diagnostics.
func newBadRequestError(message, request string, statusCode int, cause error) *ClientError {
	return &ClientError{
		Type:       ClientErrorBadRequest,
		Message:    message,
		Request:    request,
		StatusCode: statusCode,
		Cause:      cause,
	}
}

// newIllformedJSONError reports an unparseable response body.
func newIllformedJSONError(message string, rawBody []byte, cause error) *ClientError {
	return &ClientError{
		Type:    ClientErrorIllformedJSON,
		Message: message,
		RawBody: rawBody,
		Cause:   cause,
	}
}
