package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Networking & Transport Errors
var (
	ErrNetworkUnreachable = errors.New("network unreachable")
	ErrTimeout            = errors.New("timeout")
)

// NewServiceUnreachableError reports that a remote service could not be contacted at all.
func NewServiceUnreachableError(service string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusServiceUnavailable,
		err:        ErrNetworkUnreachable,
		Details:    fmt.Sprintf("Unable to reach %s. Check your network connection and that the server is running", service),
		Cause:      cause,
	}
}

func NewTimeoutError(service string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusGatewayTimeout,
		err:        ErrTimeout,
		Details:    fmt.Sprintf("Request to %s timed out", service),
		Cause:      cause,
	}
}

func IsNetworkUnreachableError(err error) bool {
	return errors.Is(err, ErrNetworkUnreachable)
}

func IsTimeoutError(err error) bool {
	return errors.Is(err, ErrTimeout)
}
