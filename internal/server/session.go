package server

import (
	"encoding/json"
	"net/http"

	"maison-storefront/internal/notice"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	cartSessionCookie = "cart_session"
	flashCookie       = "flash_notice"

	cartSessionMaxAge = 60 * 60 * 24 * 30
)

// cartSession returns the visitor's cart session id, issuing one on first use.
func (s *Server) cartSession(c *gin.Context) string {
	if id, err := c.Cookie(cartSessionCookie); err == nil {
		if _, err := uuid.Parse(id); err == nil {
			return id
		}
	}

	id := uuid.NewString()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cartSessionCookie, id, cartSessionMaxAge, "/", "", s.opts.SecureCookie, true)
	return id
}

// redirectWithNotice stores n in a short-lived cookie for the next page.
// gin escapes the cookie value, so the client unescapes once to get JSON.
func (s *Server) redirectWithNotice(c *gin.Context, location string, n *notice.Notice) {
	if raw, err := json.Marshal(n); err == nil {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(flashCookie, string(raw), 60, "/", "", s.opts.SecureCookie, false)
	}
	c.Redirect(http.StatusFound, location)
}
