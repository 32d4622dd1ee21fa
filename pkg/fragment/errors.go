package fragment

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnavailable matches every error reporting that a fragment does not exist
// at its location (non-2xx response or missing file). Anything else a loader
// returns is a fetch failure.
var ErrUnavailable = errors.New("fragment: unavailable")

// StatusError reports a fragment that could not be served.
type StatusError struct {
	Location   string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	status := e.Status
	if status == "" {
		status = fmt.Sprintf("%d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("fragment: unexpected status %s for %s", status, e.Location)
}

// Is lets errors.Is(err, ErrUnavailable) match any StatusError.
func (e *StatusError) Is(target error) bool {
	return target == ErrUnavailable
}

// NotFound builds the StatusError used for fragments missing from disk.
func NotFound(location string) *StatusError {
	return &StatusError{
		Location:   location,
		StatusCode: http.StatusNotFound,
		Status:     "404 Not Found",
	}
}

// IsUnavailable reports whether err means the fragment does not exist, as
// opposed to a failure while fetching it.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
