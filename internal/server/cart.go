package server

import (
	"errors"
	"net/http"

	"maison-storefront/internal/cart"
	"maison-storefront/internal/checkout"
	"maison-storefront/internal/notice"

	"github.com/gin-gonic/gin"
)

type addItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"omitempty,gte=1"`
}

type quantityRequest struct {
	Quantity *int `json:"quantity" binding:"required,gte=0"`
}

var syncWarning = notice.Warning("Cart not saved", "Your cart was updated here but could not be saved. It will refresh shortly.")

// cartView answers with the cart, downgrading a failed backend sync to a
// warning since the local state was already applied.
func (s *Server) cartView(c *gin.Context, items []cart.Item, err error, ok *notice.Notice) {
	if err != nil && !errors.Is(err, cart.ErrFailedSyncCart) {
		fail(c, err, nil)
		return
	}
	n := ok
	if err != nil {
		n = syncWarning
	}
	respond(c, http.StatusOK, cart.NewView(items, s.opts.Pricing), n)
}

func (s *Server) getCart(c *gin.Context) {
	ctx := c.Request.Context()
	sid := s.cartSession(c)

	items, err := s.deps.Carts.Reload(ctx, sid)
	if err != nil {
		// the backend is down; show the last known cart
		items, err = s.deps.Carts.Items(ctx, sid)
		if err != nil {
			fail(c, err, nil)
			return
		}
		respond(c, http.StatusOK, cart.NewView(items, s.opts.Pricing),
			notice.Warning("Cart may be out of date", "We could not refresh your cart."))
		return
	}
	respond(c, http.StatusOK, cart.NewView(items, s.opts.Pricing), nil)
}

func (s *Server) addCartItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, errInvalidBody, nil)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	ctx := c.Request.Context()
	p, err := s.deps.Catalog.GetProduct(ctx, req.ProductID)
	if err != nil {
		fail(c, err, checkout.NoticeFor(err))
		return
	}
	if !p.InStock {
		fail(c, checkout.ErrOutOfStock, checkout.NoticeFor(checkout.ErrOutOfStock))
		return
	}

	items, err := s.deps.Carts.AddItem(ctx, s.cartSession(c), cart.Item{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Image:     p.PrimaryImage(),
		Slug:      p.Slug,
		Quantity:  req.Quantity,
	})
	s.cartView(c, items, err, notice.Success("Added to cart", p.Name+" was added to your cart."))
}

func (s *Server) updateCartItem(c *gin.Context) {
	var req quantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, errInvalidBody, nil)
		return
	}

	items, err := s.deps.Carts.UpdateQuantity(c.Request.Context(), s.cartSession(c), c.Param("productId"), *req.Quantity)
	s.cartView(c, items, err, nil)
}

func (s *Server) removeCartItem(c *gin.Context) {
	items, err := s.deps.Carts.RemoveItem(c.Request.Context(), s.cartSession(c), c.Param("productId"))
	s.cartView(c, items, err, notice.Success("Removed", "The item was removed from your cart."))
}

func (s *Server) clearCart(c *gin.Context) {
	err := s.deps.Carts.Clear(c.Request.Context(), s.cartSession(c))
	s.cartView(c, nil, err, nil)
}
