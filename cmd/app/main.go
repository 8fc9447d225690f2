package main

import (
	"log"
	"os"

	"CoffeeStoreAPI/external/resend"

	"CoffeeStoreAPI/internal/db"
	"CoffeeStoreAPI/internal/invoice"
	"CoffeeStoreAPI/internal/middleware"
	"CoffeeStoreAPI/internal/repository"
	"CoffeeStoreAPI/internal/services"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

func main() {
	// ======================
	// INFRA
	// ======================
	pool, err := db.Connect()
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	enforcer, err := middleware.NewEnforcer()
	if err != nil {
		log.Fatal(err)
	}

	// ======================
	// EXTERNALS
	// ======================
	mailer, err := resend.NewMailer("DriftMood Coffee<onboarding@resend.dev>")
	if err != nil {
		log.Fatal(err)
	}

	renderer := invoice.NewRenderer(os.Getenv("INVOICE_FONT_DIR"))

	// ======================
	// REPOSITORIES
	// ======================
	userRepo := repository.NewUserRepository(pool)
	customerRepo := repository.NewCustomerRepository(pool)
	productRepo := repository.NewProductRepository(pool)
	cartRepo := repository.NewCartRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)
	refundRepo := repository.NewRefundRepository(pool)
	ratingRepo := repository.NewRatingRepository(pool)
	wishlistRepo := repository.NewWishlistRepository(pool)
	reportRepo := repository.NewReportRepository(pool)

	// ======================
	// SERVICES
	// ======================
	authSvc := services.NewAuthService(userRepo, cartRepo, customerRepo)
	customerSvc := services.NewCustomerService(customerRepo)
	productSvc := services.NewProductService(productRepo, wishlistRepo, userRepo, mailer)
	cartSvc := services.NewCartService(cartRepo, productRepo, customerRepo)
	orderSvc := services.NewOrderService(orderRepo, cartRepo, productRepo, customerRepo, userRepo, mailer, renderer)
	refundSvc := services.NewRefundService(refundRepo, orderRepo, userRepo, mailer)
	ratingSvc := services.NewRatingService(ratingRepo, productRepo)
	wishlistSvc := services.NewWishlistService(wishlistRepo, productRepo)
	reportSvc := services.NewReportService(reportRepo)

	// ======================
	// ECHO
	// ======================
	e := echo.New()
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	api := e.Group("/coffee-store")

	// ======================
	// ROUTES (ONLY REGISTRATION)
	// ======================
	registerAuthRoutes(api, authSvc)
	registerCustomerRoutes(api, customerSvc)
	registerProductRoutes(api, productSvc, enforcer)
	registerCartRoutes(api, cartSvc)
	registerOrderRoutes(api, orderSvc, enforcer)
	registerRefundRoutes(api, refundSvc, enforcer)
	registerRatingRoutes(api, ratingSvc)
	registerWishlistRoutes(api, wishlistSvc)
	registerReportRoutes(api, reportSvc, enforcer)

	// ======================
	// SERVER
	// ======================
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	e.Logger.Fatal(e.Start(":" + port))
}
