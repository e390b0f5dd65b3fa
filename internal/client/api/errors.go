package api

import (
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/estatekeeper/internal/common"
)

// APIError carries the HTTP status and the server-provided message of a
// failed request. It unwraps to the matching sentinel in common, so callers
// keep using errors.Is:
//
//	errors.Is(err, common.ErrorNotFound)
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: %s", http.StatusText(e.Status))
	}
	return fmt.Sprintf("api: %s: %s", http.StatusText(e.Status), e.Message)
}

func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return common.ErrorUnauthorized
	case http.StatusNotFound:
		return common.ErrorNotFound
	default:
		return common.ErrorInternal
	}
}
