package main

import (
	"context"
	"log"
	"os"

	"github.com/stealclub21/final-exam-demo-project-lotr-webshop/external/midtrans"
	"github.com/stealclub21/final-exam-demo-project-lotr-webshop/external/resend"

	"github.com/stealclub21/final-exam-demo-project-lotr-webshop/internal/db"
	"github.com/stealclub21/final-exam-demo-project-lotr-webshop/internal/repository"
	"github.com/stealclub21/final-exam-demo-project-lotr-webshop/internal/services"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	// ======================
	// INFRA
	// ======================
	pool, err := db.Connect()
	if err != nil {
		logger.Fatal("database connect failed", zap.Error(err))
	}
	defer pool.Close()

	if err := db.EnsureSchema(ctx, pool); err != nil {
		logger.Fatal("schema setup failed", zap.Error(err))
	}

	var cache *redis.Client
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cache = redis.NewClient(&redis.Options{Addr: addr})
		if err := cache.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unavailable, caching disabled", zap.Error(err))
			cache = nil
		}
	}

	// ======================
	// EXTERNALS
	// ======================
	var notifier services.Notifier
	if mailer, err := resend.NewMailer("LOTR Webshop <onboarding@resend.dev>"); err == nil {
		notifier = mailer
	} else {
		logger.Warn("mailer disabled", zap.Error(err))
		notifier = services.NewLogNotifier(logger)
	}

	snapClient := midtrans.NewSnapClient()

	// ======================
	// REPOSITORIES
	// ======================
	customerRepo := repository.NewCustomerRepository(pool)
	tokenRepo := repository.NewConfirmationTokenRepository(pool)
	spendingRepo := repository.NewTotalSpendingRepository(pool)
	addressRepo := repository.NewAddressRepository(pool)
	productRepo := repository.NewProductRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)
	emporiumRepo := repository.NewEmporiumRepository(pool)
	balanceRepo := repository.NewBalanceRepository(pool)
	paymentRepo := repository.NewPaymentRepository(pool)
	ratingRepo := repository.NewRatingRepository(pool)

	// ======================
	// SERVICES
	// ======================
	confirmURL := os.Getenv("CONFIRM_URL")
	if confirmURL == "" {
		confirmURL = "http://localhost:8080/lotr-webshop/auth/confirm?token="
	}

	balanceSvc := services.NewBalanceService(balanceRepo)
	if err := balanceSvc.Init(ctx); err != nil {
		logger.Fatal("balance bootstrap failed", zap.Error(err))
	}

	authSvc := services.NewAuthService(pool, customerRepo, spendingRepo, tokenRepo, notifier, logger, confirmURL)
	customerSvc := services.NewCustomerService(customerRepo, spendingRepo, orderRepo)
	addressSvc := services.NewAddressService(addressRepo, customerRepo)
	productSvc := services.NewProductService(productRepo, emporiumRepo, customerRepo, cache, logger)
	orderSvc := services.NewOrderService(pool, orderRepo, productRepo, customerRepo, spendingRepo, balanceRepo, notifier, logger)
	emporiumSvc := services.NewEmporiumService(pool, orderRepo, productRepo, customerRepo, spendingRepo, balanceRepo, emporiumRepo, addressRepo, logger)
	paymentSvc := services.NewPaymentService(paymentRepo, orderRepo, snapClient, logger)
	ratingSvc := services.NewRatingService(ratingRepo, orderRepo, productRepo, customerRepo, logger)

	// ======================
	// ECHO
	// ======================
	e := echo.New()
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	api := e.Group("/lotr-webshop")

	// ======================
	// ROUTES (ONLY REGISTRATION)
	// ======================
	registerAuthRoutes(api, authSvc)
	registerCustomerRoutes(api, customerSvc)
	registerAddressRoutes(api, addressSvc)
	registerProductRoutes(api, productSvc)
	registerOrderRoutes(api, orderSvc)
	registerEmporiumRoutes(api, emporiumSvc)
	registerBalanceRoutes(api, balanceSvc)
	registerPaymentRoutes(api, paymentSvc)
	registerRatingRoutes(api, ratingSvc)

	// ======================
	// SERVER
	// ======================
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	e.Logger.Fatal(e.Start(":" + port))
}
