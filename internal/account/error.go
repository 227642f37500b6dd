package account

import "errors"

var (
	ErrEmptyUpdate      = errors.New("nothing to update")
	ErrInvalidProfile   = errors.New("invalid profile update")
	ErrInvalidSettings  = errors.New("invalid settings update")
	ErrInvalidProductID = errors.New("product id is required")
	ErrInvalidPage      = errors.New("page and limit must be positive")
)
