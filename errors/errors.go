package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrEmptyPrompt        = fmt.Errorf("no prompt provided")
	ErrInvalidHistory     = fmt.Errorf("invalid history entry")
	ErrMissingCredential  = fmt.Errorf("server is not configured")
	ErrUpstreamFormat     = fmt.Errorf("invalid response format from upstream model")
	ErrUpstreamCall       = fmt.Errorf("upstream model call failed")
	ErrOriginNotAllowed   = fmt.Errorf("origin not allowed")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
	ErrTokenGeneration    = fmt.Errorf("token generation failed")
	ErrNotSignedIn        = fmt.Errorf("no user is signed in")
)

// MapToHTTPStatus converts a domain error into the status code returned by
// the relay. Unknown errors map to 500 so internals never leak a taxonomy
// the caller cannot act on.
func MapToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrEmptyPrompt), errors.Is(err, ErrInvalidHistory):
		return http.StatusBadRequest
	case errors.Is(err, ErrOriginNotAllowed):
		return http.StatusForbidden
	case errors.Is(err, ErrUpstreamFormat), errors.Is(err, ErrUpstreamCall):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
