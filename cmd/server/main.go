package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"maison-storefront/internal/account"
	"maison-storefront/internal/admin"
	"maison-storefront/internal/apiclient"
	"maison-storefront/internal/cart"
	"maison-storefront/internal/catalog"
	"maison-storefront/internal/checkout"
	"maison-storefront/internal/config"
	"maison-storefront/internal/contact"
	"maison-storefront/internal/db"
	"maison-storefront/internal/logger"
	"maison-storefront/internal/middleware"
	"maison-storefront/internal/order"
	"maison-storefront/internal/payment"
	"maison-storefront/internal/payment/webhook"
	"maison-storefront/internal/pricing"
	"maison-storefront/internal/server"
	"maison-storefront/internal/wholesale"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()
	log := logger.L()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// the payment ledger and webhook inbox need postgres
	var database *sqlx.DB
	if cfg.DBHost != "" {
		var err error
		database, err = db.NewDatabase(ctx, cfg)
		if err != nil {
			log.Fatal("failed to connect db", zap.Error(err))
		}
		defer database.Close()
	} else {
		log.Warn("DB_HOST not set; payment ledger and webhook disabled")
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatal("failed to connect redis", zap.Error(err))
	}

	limiter := middleware.NewLimiter(cfg.InternalSecretKey)
	go limiter.Run(ctx)

	srv, err := buildServer(cfg, rdb, database, limiter)
	if err != nil {
		log.Fatal("failed to build server", zap.Error(err))
	}

	httpServer := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("storefront listening", zap.String("port", cfg.AppPort), zap.String("env", cfg.AppEnv))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	cancel()

	shutdownCtx, done := context.WithTimeout(context.Background(), 10*time.Second)
	defer done()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
}

// buildServer wires every service onto the backend client. A nil database
// leaves the payment ledger off and skips the webhook route.
func buildServer(cfg *config.Config, rdb redis.Cmdable, database *sqlx.DB, limiter *middleware.Limiter) (*server.Server, error) {
	client, err := apiclient.New(apiclient.Options{
		BaseURL:       cfg.APIBaseURL,
		Timeout:       cfg.APITimeout,
		MaxRetries:    cfg.APIMaxRetries,
		RetryInterval: cfg.APIRetryInterval,
	})
	if err != nil {
		return nil, fmt.Errorf("api client: %w", err)
	}

	policy, err := pricing.NewPolicy(cfg.FreeShippingThreshold, cfg.FlatShippingFee, cfg.TaxRate)
	if err != nil {
		return nil, fmt.Errorf("pricing: %w", err)
	}

	clearOn, err := checkout.ParseClearPolicy(cfg.ClearCartOn)
	if err != nil {
		return nil, fmt.Errorf("checkout: %w", err)
	}

	var ledger payment.Repository
	if database != nil {
		ledger = payment.NewRepository(database)
	}

	carts := cart.NewService(cart.NewRepository(client), cart.NewSessionStore(rdb, cfg.CartTTL))
	products := catalog.NewService(catalog.NewRepository(client))
	orders := order.NewService(order.NewRepository(client))
	gateway := payment.NewGateway(client, cfg.PaymentWebhookSecret)
	payments := payment.NewService(gateway, ledger, cfg.PublicBaseURL)

	deps := server.Deps{
		Carts:        carts,
		Catalog:      products,
		Checkout:     checkout.NewFlow(orders, payments, policy, clearOn),
		Confirmation: order.NewConfirmation(orders, payments),
		Admin:        admin.NewService(client),
		Account:      account.NewService(client, orders),
		Contact:      contact.NewService(client),
		Wholesale:    wholesale.NewService(client),
		Limiter:      limiter,
	}
	if ledger != nil {
		deps.Webhook = webhook.NewHandler(orders, ledger, gateway).Handle
	}

	return server.New(server.Options{
		JWTSecret:    cfg.JWTSecret,
		CORSOrigins:  cfg.CORSOrigins,
		SecureCookie: cfg.IsProduction(),
		Pricing:      policy,
	}, deps), nil
}
