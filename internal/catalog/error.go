package catalog

import "errors"

var (
	ErrProductNotFound    = errors.New("product not found")
	ErrCollectionNotFound = errors.New("collection not found")
	ErrInvalidID          = errors.New("invalid id")
	ErrEmptyUpdate        = errors.New("nothing to update")
	ErrInvalidPrice       = errors.New("price must not be negative")

	ErrNoImages          = errors.New("at least one image is required")
	ErrUnsupportedImage  = errors.New("unsupported image type")
	ErrImageTooLarge     = errors.New("image file too large (max 5MB)")
	ErrMissingExtension  = errors.New("image file extension is required")
	ErrFailedReadImage   = errors.New("failed to read image")
	ErrFailedUploadImage = errors.New("failed to upload images")
)
