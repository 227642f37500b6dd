package server

import (
	"errors"
	"net/http"
	"strings"

	"maison-storefront/internal/checkout"
	"maison-storefront/internal/notice"
	"maison-storefront/internal/order"

	"github.com/gin-gonic/gin"
)

type advanceRequest struct {
	Step checkout.Step `json:"step" binding:"required"`
	Form checkout.Form `json:"form"`
}

type advanceResponse struct {
	Step    checkout.Step `json:"step"`
	Missing []string      `json:"missing,omitempty"`
}

type buyNowRequest struct {
	ProductID string        `json:"productId" binding:"required"`
	Quantity  int           `json:"quantity"`
	Form      checkout.Form `json:"form"`
}

type confirmationResponse struct {
	*order.ConfirmationView
	checkout.CartClear
}

func (s *Server) checkoutQuote(c *gin.Context) {
	q, err := s.deps.Checkout.Quote(c.Request.Context(), checkout.NewCartSource(s.deps.Carts, s.cartSession(c)))
	if err != nil {
		fail(c, err, checkout.NoticeFor(err))
		return
	}
	respond(c, http.StatusOK, q, nil)
}

// checkoutAdvance validates the current step before the buyer may move on.
func (s *Server) checkoutAdvance(c *gin.Context) {
	var req advanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, errInvalidBody, nil)
		return
	}

	next, err := checkout.Advance(req.Form, req.Step)
	if err != nil {
		var incomplete *checkout.IncompleteError
		if errors.As(err, &incomplete) {
			c.JSON(http.StatusUnprocessableEntity, page{
				Data:   advanceResponse{Step: req.Step, Missing: incomplete.Fields},
				Notice: checkout.NoticeFor(err),
				Error:  err.Error(),
			})
			return
		}
		fail(c, err, checkout.NoticeFor(err))
		return
	}
	respond(c, http.StatusOK, advanceResponse{Step: next}, nil)
}

func (s *Server) submitCheckout(c *gin.Context) {
	var form checkout.Form
	if err := c.ShouldBindJSON(&form); err != nil {
		fail(c, errInvalidBody, nil)
		return
	}
	s.submit(c, checkout.NewCartSource(s.deps.Carts, s.cartSession(c)), form)
}

func (s *Server) submitBuyNow(c *gin.Context) {
	var req buyNowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, errInvalidBody, nil)
		return
	}
	s.submit(c, checkout.NewSingleProduct(s.deps.Catalog, req.ProductID, req.Quantity), req.Form)
}

func (s *Server) submit(c *gin.Context, src checkout.Source, form checkout.Form) {
	res, err := s.deps.Checkout.Submit(c.Request.Context(), src, form)
	if err != nil {
		fail(c, err, checkout.NoticeFor(err))
		return
	}
	respond(c, http.StatusCreated, res, notice.Success("Order placed", "Redirecting you to payment."))
}

// confirmation renders the page the gateway redirects back to. Without an
// order id the buyer is sent home with an error notice.
func (s *Server) confirmation(c *gin.Context) {
	ctx := c.Request.Context()

	reference := c.Query("reference")
	if reference == "" {
		reference = c.Query("trxref")
	}

	view, err := s.deps.Confirmation.Resolve(ctx, c.Query("orderId"), reference)
	if errors.Is(err, order.ErrMissingOrderID) {
		s.redirectWithNotice(c, "/", notice.Error("Order not found", "We could not find that order."))
		return
	}
	if err != nil {
		fail(c, err, nil)
		return
	}

	resp := confirmationResponse{ConfirmationView: view}
	if source := strings.TrimSpace(c.Query("source")); source == checkout.SourceCart {
		resp.CartClear = s.deps.Checkout.AfterConfirmation(ctx, s.deps.Carts, s.cartSession(c), source, view)
	}
	respond(c, http.StatusOK, resp, view.Notice)
}
