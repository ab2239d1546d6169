package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Map_To_HTTP_Status(t *testing.T) {
	req := require.New(t)
	tests := []struct {
		description string
		err         error
		want        int
	}{
		{"Empty prompt is a client error", ErrEmptyPrompt, http.StatusBadRequest},
		{"Invalid history is a client error", ErrInvalidHistory, http.StatusBadRequest},
		{"Disallowed origin is forbidden", ErrOriginNotAllowed, http.StatusForbidden},
		{"Upstream format error is a bad gateway", ErrUpstreamFormat, http.StatusBadGateway},
		{"Upstream call error is a bad gateway", ErrUpstreamCall, http.StatusBadGateway},
		{"Missing credential stays generic", ErrMissingCredential, http.StatusInternalServerError},
		{"Unknown errors stay generic", fmt.Errorf("boom"), http.StatusInternalServerError},
		{"Wrapped errors unwrap to their sentinel", fmt.Errorf("calling model: %w", ErrUpstreamCall), http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			req.Equal(tt.want, MapToHTTPStatus(tt.err))
		})
	}
}
