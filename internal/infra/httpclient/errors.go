package httpclient

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrDecode wraps failures to parse a successful response body.
	ErrDecode = errors.New("decode response")

	// ErrUnknown is returned when the retry loop ends without recording a failure.
	ErrUnknown = errors.New("unknown error")
)

// HTTPError is returned when the final attempt produced a non-2xx response.
type HTTPError struct {
	StatusCode int
	Method     string
	URL        string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("http error: %s %s: status %d", e.Method, e.URL, e.StatusCode)
}

// StatusCode extracts the status code carried by err, if any.
func StatusCode(err error) (int, bool) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode, true
	}
	return 0, false
}

func isSuccess(code int) bool {
	return code >= http.StatusOK && code < http.StatusMultipleChoices
}

func isServerError(code int) bool {
	return code >= http.StatusInternalServerError && code <= 599
}
