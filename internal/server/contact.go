package server

import (
	"net/http"

	"maison-storefront/internal/contact"
	"maison-storefront/internal/notice"
	"maison-storefront/internal/wholesale"

	"github.com/gin-gonic/gin"
)

func (s *Server) submitContact(c *gin.Context) {
	var in contact.SubmitInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, errInvalidBody, nil)
		return
	}

	msg, err := s.deps.Contact.Submit(c.Request.Context(), in)
	if err != nil {
		fail(c, err, nil)
		return
	}
	respond(c, http.StatusCreated, msg, notice.Success("Message sent", "We will get back to you soon."))
}

func (s *Server) applyWholesale(c *gin.Context) {
	var in wholesale.ApplyInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, errInvalidBody, nil)
		return
	}

	app, err := s.deps.Wholesale.Apply(c.Request.Context(), in)
	if err != nil {
		fail(c, err, nil)
		return
	}
	respond(c, http.StatusCreated, app, notice.Success("Application received", "Our team will review your application."))
}
