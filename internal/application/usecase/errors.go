// internal/application/usecase/errors.go
package usecase

import "errors"

var (
	ErrNotAuthenticated = errors.New("usecase: not authenticated")
	ErrForbidden        = errors.New("usecase: forbidden")
	ErrInvalidArgument  = errors.New("usecase: invalid argument")
)
