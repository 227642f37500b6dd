package server

import (
	"errors"
	"net/http"

	"maison-storefront/internal/account"
	"maison-storefront/internal/admin"
	"maison-storefront/internal/apiclient"
	"maison-storefront/internal/cart"
	"maison-storefront/internal/catalog"
	"maison-storefront/internal/checkout"
	"maison-storefront/internal/contact"
	"maison-storefront/internal/logger"
	"maison-storefront/internal/notice"
	"maison-storefront/internal/order"
	"maison-storefront/internal/wholesale"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// page is the view model every storefront route answers with.
type page struct {
	Data   any            `json:"data,omitempty"`
	Notice *notice.Notice `json:"notice,omitempty"`
	Error  string         `json:"error,omitempty"`
}

func respond(c *gin.Context, status int, data any, n *notice.Notice) {
	c.JSON(status, page{Data: data, Notice: n})
}

// fail answers with the status that matches err and a single notice. When n
// is nil a generic destructive notice is used.
func fail(c *gin.Context, err error, n *notice.Notice) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.FromCtx(c.Request.Context()).Error("request failed",
			zap.String("layer", "handler"),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
	if n == nil {
		n = noticeFor(status)
	}
	c.JSON(status, page{Notice: n, Error: err.Error()})
}

var badRequest = []error{
	cart.ErrInvalidQuantity,
	cart.ErrInvalidProductID,
	catalog.ErrInvalidID,
	catalog.ErrEmptyUpdate,
	catalog.ErrInvalidPrice,
	catalog.ErrNoImages,
	catalog.ErrUnsupportedImage,
	catalog.ErrImageTooLarge,
	catalog.ErrMissingExtension,
	checkout.ErrIncompleteStep,
	checkout.ErrInvalidStep,
	checkout.ErrEmptyCart,
	checkout.ErrInvalidQuantity,
	order.ErrMissingOrderID,
	order.ErrInvalidStatus,
	admin.ErrInvalidStatus,
	admin.ErrStatusNotSupported,
	admin.ErrBulkNotSupported,
	admin.ErrMissingID,
	admin.ErrNoSelection,
	account.ErrEmptyUpdate,
	account.ErrInvalidProfile,
	account.ErrInvalidSettings,
	account.ErrInvalidProductID,
	account.ErrInvalidPage,
	contact.ErrInvalidMessage,
	wholesale.ErrInvalidApplication,
	errInvalidBody,
}

var notFound = []error{
	catalog.ErrProductNotFound,
	catalog.ErrCollectionNotFound,
	order.ErrOrderNotFound,
	cart.ErrCartItemNotFound,
	admin.ErrUnknownResource,
}

var conflict = []error{
	checkout.ErrOutOfStock,
}

var errInvalidBody = errors.New("invalid request body")

func statusFor(err error) int {
	switch {
	case isAny(err, badRequest):
		return http.StatusBadRequest
	case isAny(err, notFound):
		return http.StatusNotFound
	case isAny(err, conflict):
		return http.StatusConflict
	case errors.Is(err, checkout.ErrOrderCreate), errors.Is(err, checkout.ErrPaymentInit), errors.Is(err, catalog.ErrFailedUploadImage):
		return http.StatusBadGateway
	}

	// backend client errors pass through; backend outages become 502
	if code := apiclient.StatusCode(err); code >= 400 && code < 500 {
		return code
	}
	if apiclient.StatusCode(err) >= 500 || errors.Is(err, apiclient.ErrInvalidResponse) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func isAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func noticeFor(status int) *notice.Notice {
	switch status {
	case http.StatusBadRequest:
		return notice.Error("Invalid request", "Please check the information you entered.")
	case http.StatusUnauthorized:
		return notice.Error("Sign in required", "Please sign in to continue.")
	case http.StatusForbidden:
		return notice.Error("Access denied", "You do not have permission to do that.")
	case http.StatusNotFound:
		return notice.Error("Not found", "The requested item could not be found.")
	}
	return notice.Error("Something went wrong", "Please try again.")
}
