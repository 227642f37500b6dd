package server

import (
	"net/http"

	"maison-storefront/internal/account"
	"maison-storefront/internal/notice"

	"github.com/gin-gonic/gin"
)

const defaultOrdersLimit = 10

func (s *Server) accountOrders(c *gin.Context) {
	page, limit := queryInt(c, "page"), queryInt(c, "limit")
	if page == 0 {
		page = 1
	}
	if limit == 0 {
		limit = defaultOrdersLimit
	}

	orders, err := s.deps.Account.Orders(c.Request.Context(), page, limit)
	if err != nil {
		fail(c, err, nil)
		return
	}
	respond(c, http.StatusOK, orders, nil)
}

func (s *Server) getProfile(c *gin.Context) {
	p, err := s.deps.Account.Profile(c.Request.Context())
	if err != nil {
		fail(c, err, nil)
		return
	}
	respond(c, http.StatusOK, p, nil)
}

func (s *Server) updateProfile(c *gin.Context) {
	var in account.ProfileUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, errInvalidBody, nil)
		return
	}

	p, err := s.deps.Account.UpdateProfile(c.Request.Context(), in)
	if err != nil {
		fail(c, err, nil)
		return
	}
	respond(c, http.StatusOK, p, notice.Success("Profile updated", "Your changes were saved."))
}

func (s *Server) getSettings(c *gin.Context) {
	settings, err := s.deps.Account.Settings(c.Request.Context())
	if err != nil {
		fail(c, err, nil)
		return
	}
	respond(c, http.StatusOK, settings, nil)
}

func (s *Server) updateSettings(c *gin.Context) {
	var in account.SettingsUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, errInvalidBody, nil)
		return
	}

	settings, err := s.deps.Account.UpdateSettings(c.Request.Context(), in)
	if err != nil {
		fail(c, err, nil)
		return
	}
	respond(c, http.StatusOK, settings, notice.Success("Settings saved", "Your preferences were updated."))
}

func (s *Server) getWishlist(c *gin.Context) {
	items, err := s.deps.Account.Wishlist(c.Request.Context())
	if err != nil {
		fail(c, err, nil)
		return
	}
	respond(c, http.StatusOK, gin.H{"items": items}, nil)
}

func (s *Server) toggleWishlist(c *gin.Context) {
	items, saved, err := s.deps.Account.ToggleWishlist(c.Request.Context(), c.Param("productId"))
	if err != nil {
		fail(c, err, notice.Error("Wishlist not updated", "Please try again."))
		return
	}

	n := notice.Success("Removed from wishlist", "The product was removed from your wishlist.")
	if saved {
		n = notice.Success("Saved to wishlist", "The product was added to your wishlist.")
	}
	respond(c, http.StatusOK, gin.H{"items": items, "saved": saved}, n)
}
