package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/profilesync/internal/common"
	"github.com/dmitrijs2005/profilesync/internal/netx"
)

// Details attached to gateway failures.
const (
	DetailUnavailable     = "API server is currently unavailable. Please try again later."
	DetailBadGateway      = "Server communication error. Please try again."
	DetailEmptyResponse   = "Empty response from server"
	DetailInvalidResponse = "Server returned invalid response format"
)

// mapError turns a transport failure into the common taxonomy. Cancellation
// by the caller is passed through unchanged.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	if netx.IsTimeout(err) {
		return common.NewAPIError(common.ErrUnavailable, 0, "request to API server timed out")
	}
	return common.NewAPIError(common.ErrUnavailable, 0, fmt.Sprintf("cannot reach API server: %v", err))
}

// statusError maps a non-2xx status to an error. Gateway statuses are
// checked first, then the per-operation specific kinds; any other status is
// REQUEST_FAILED with the server text, falling back to "HTTP <code>: <what>".
func statusError(status int, specific map[int]error, serverText, what string) error {
	switch status {
	case http.StatusServiceUnavailable:
		return common.NewAPIError(common.ErrUnavailable, status, DetailUnavailable)
	case http.StatusBadGateway:
		return common.NewAPIError(common.ErrUnavailable, status, DetailBadGateway)
	}
	if kind, ok := specific[status]; ok {
		return common.NewAPIError(kind, status, serverText)
	}
	if serverText == "" {
		serverText = fmt.Sprintf("HTTP %d: %s", status, what)
	}
	return common.NewAPIError(common.ErrRequestFailed, status, serverText)
}

// malformedError is used for a non-2xx body that is not JSON and a status
// without a specific mapping.
func malformedError(status int, raw string) error {
	detail := raw
	if detail == "" {
		detail = DetailInvalidResponse
	}
	return common.NewAPIError(common.ErrMalformedResponse, status,
		fmt.Sprintf("HTTP %d %s: %s", status, common.StatusText(status), detail))
}

func isSpecific(status int, specific map[int]error) bool {
	if status == http.StatusServiceUnavailable || status == http.StatusBadGateway {
		return true
	}
	_, ok := specific[status]
	return ok
}
