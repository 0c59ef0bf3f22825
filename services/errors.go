// services/errors.go - Business error taxonomy
//
// Handlers translate these sentinels at the request boundary:
// ErrNotFound -> 404, ErrDuplicate -> 409, ErrInvalidSearchType -> 400,
// ErrInvalidCredentials -> 401. Anything else is a storage failure -> 500.
package services

import "errors"

var (
	ErrNotFound           = errors.New("team not found")
	ErrDuplicate          = errors.New("already registered")
	ErrInvalidSearchType  = errors.New("invalid search type")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
