package admin

import "errors"

var (
	ErrUnknownResource    = errors.New("unknown admin resource")
	ErrStatusNotSupported = errors.New("resource has no status")
	ErrInvalidStatus      = errors.New("status not allowed for resource")
	ErrBulkNotSupported   = errors.New("bulk updates not supported for resource")
	ErrMissingID          = errors.New("id is required")
	ErrNoSelection        = errors.New("no rows selected")
	ErrMissingItems       = errors.New("response is missing the item list")
)
