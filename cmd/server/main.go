// Command server runs the reservation API: table availability, booking
// with food pre-orders, and the payment endpoints that confirm bookings
// through the processor's webhook.
package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/avlonti/restobook/internal/config"
	"github.com/avlonti/restobook/internal/database"
	"github.com/avlonti/restobook/internal/handler"
	"github.com/avlonti/restobook/internal/middleware"
	"github.com/avlonti/restobook/internal/payment"
	"github.com/avlonti/restobook/internal/queue"
	"github.com/avlonti/restobook/internal/repository"
	"github.com/avlonti/restobook/internal/router"
)

func main() {
	// Load .env when present; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)
	tableRepo := repository.NewTableRepo(db)
	menuRepo := repository.NewMenuRepo(db)
	resvRepo := repository.NewReservationRepo(db)
	orderRepo := repository.NewOrderRepo(db)

	bridge := payment.NewBridge(cfg.StripeSecretKey, cfg.PaymentCurrency)

	authH := handler.NewAuthHandler(cfg, userRepo, tokenRepo)
	browseH := handler.NewBrowseHandler(tableRepo, menuRepo)
	customerH := handler.NewCustomerHandler(resvRepo, orderRepo, menuRepo, userRepo)
	staffH := handler.NewStaffHandler(resvRepo)
	paymentH := handler.NewPaymentHandler(bridge, cfg.StripeWebhookSecret, resvRepo, tableRepo, orderRepo)

	// Redis is optional: without it the API runs uncached and unlimited.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, rate limiting and response cache disabled")
	}
	var cacheMW echo.MiddlewareFunc
	if rdb != nil {
		cacheMW = middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	}

	e := echo.New()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterPublic(e, browseH, cacheMW)
	router.RegisterCustomer(e, customerH, cfg.JWTSecret)
	router.RegisterStaff(e, staffH, cfg.JWTSecret)
	router.RegisterPayments(e, paymentH, cfg.JWTSecret)

	// Consumer for reservation.confirmed events; reconnects on its own.
	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("reservation consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
