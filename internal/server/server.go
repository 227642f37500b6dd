package server

import (
	"net/http"

	"maison-storefront/internal/account"
	"maison-storefront/internal/admin"
	"maison-storefront/internal/cart"
	"maison-storefront/internal/catalog"
	"maison-storefront/internal/checkout"
	"maison-storefront/internal/contact"
	"maison-storefront/internal/logger"
	"maison-storefront/internal/middleware"
	"maison-storefront/internal/order"
	"maison-storefront/internal/pricing"
	"maison-storefront/internal/wholesale"

	"github.com/gin-gonic/gin"
)

type Options struct {
	JWTSecret    string
	CORSOrigins  []string
	SecureCookie bool
	Pricing      pricing.Policy
}

// Deps are the services the storefront routes delegate to.
type Deps struct {
	Carts        cart.Service
	Catalog      catalog.Service
	Checkout     *checkout.Flow
	Confirmation *order.Confirmation
	Admin        *admin.Service
	Account      *account.Service
	Contact      *contact.Service
	Wholesale    *wholesale.Service
	Webhook      gin.HandlerFunc
	Limiter      *middleware.Limiter
}

type Server struct {
	opts Options
	deps Deps
}

func New(opts Options, deps Deps) *Server {
	return &Server{opts: opts, deps: deps}
}

// Router builds the gin engine with every storefront route.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(
		gin.Recovery(),
		logger.RequestID(),
		logger.AccessLog(),
		middleware.CORS(s.opts.CORSOrigins),
		middleware.Auth(s.opts.JWTSecret),
	)
	if s.deps.Limiter != nil {
		r.Use(s.deps.Limiter.Middleware())
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/cart", s.getCart)
	r.POST("/cart/items", s.addCartItem)
	r.PATCH("/cart/items/:productId", s.updateCartItem)
	r.DELETE("/cart/items/:productId", s.removeCartItem)
	r.DELETE("/cart", s.clearCart)

	r.GET("/checkout/quote", s.checkoutQuote)
	r.POST("/checkout/advance", s.checkoutAdvance)
	r.POST("/checkout", s.submitCheckout)
	r.POST("/buy-now", s.submitBuyNow)
	r.GET("/orders/confirmation", s.confirmation)

	r.GET("/catalog/products", s.listProducts)
	r.GET("/catalog/products/:id", s.getProduct)
	r.GET("/catalog/collections", s.listCollections)
	r.GET("/catalog/collections/:id", s.getCollection)

	r.POST("/contact", s.submitContact)
	r.POST("/wholesale/apply", s.applyWholesale)

	acct := r.Group("", middleware.RequireUser())
	{
		acct.GET("/account/orders", s.accountOrders)
		acct.GET("/account/profile", s.getProfile)
		acct.PATCH("/account/profile", s.updateProfile)
		acct.GET("/account/settings", s.getSettings)
		acct.PATCH("/account/settings", s.updateSettings)

		acct.GET("/wishlist", s.getWishlist)
		acct.POST("/wishlist/:productId/toggle", s.toggleWishlist)
	}

	adm := r.Group("/admin", middleware.RequireAdmin())
	{
		adm.GET("/:resource", s.adminList)
		adm.DELETE("/:resource/:id", s.adminDelete)
		adm.PATCH("/:resource/:id/status", s.adminUpdateStatus)
		adm.PATCH("/products/:id", s.adminUpdateProduct)
		adm.PATCH("/collections/:id", s.adminUpdateCollection)
		adm.POST("/applications/bulk-status", s.adminBulkStatus)
		adm.POST("/products/images", s.adminUploadImages)
	}

	if s.deps.Webhook != nil {
		r.POST("/webhook/payment", s.deps.Webhook)
	}

	return r
}
