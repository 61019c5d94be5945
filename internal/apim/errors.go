package apim

import (
	"errors"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
)

var (
	// ErrNotFound is returned by lookups when the remote resource does not exist.
	ErrNotFound = errors.New("resource not found")
	// ErrPrerequisiteMissing means the service or API handle was not supplied.
	ErrPrerequisiteMissing = errors.New("apim service and api are required")
	ErrInvalidConfig       = errors.New("invalid apim configuration")
)

func isNotFound(err error) bool {
	var respErr *azcore.ResponseError
	return errors.As(err, &respErr) && respErr.StatusCode == http.StatusNotFound
}

// remoteErrorBody extracts the error code reported by ARM, if any.
func remoteErrorBody(err error) (code string, status int, ok bool) {
	var respErr *azcore.ResponseError
	if !errors.As(err, &respErr) {
		return "", 0, false
	}
	return respErr.ErrorCode, respErr.StatusCode, true
}
