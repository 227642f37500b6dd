package cart

import "errors"

var (
	// -- Validation & Input --
	ErrInvalidQuantity   = errors.New("invalid cart quantity")
	ErrInvalidProductID  = errors.New("invalid cart product id")
	ErrMissingSession    = errors.New("cart session id is required")
	ErrUnknownAction     = errors.New("unknown cart action")
	ErrMissingClearToken = errors.New("cart clear token is required")

	// -- Resource State --
	ErrCartItemNotFound = errors.New("cart item not found")

	// -- Backend & Storage Failures --
	ErrFailedSyncCart    = errors.New("failed to sync cart with backend")
	ErrFailedLoadSession = errors.New("failed to load cart session")
	ErrFailedSaveSession = errors.New("failed to save cart session")
)
